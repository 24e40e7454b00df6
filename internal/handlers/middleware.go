package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/model"
)

// RequestLogger logs every request once it has been handled
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user-agent", c.Get(fiber.HeaderUserAgent)),
		}
		if cacheOutcome := c.GetRespHeader("X-Cache"); cacheOutcome != "" {
			fields = append(fields, zap.String("cache", cacheOutcome))
		}

		if status >= fiber.StatusInternalServerError {
			logging.Error("Request failed", append(fields, zap.Error(err))...)
		} else {
			logging.Info("Request processed", fields...)
		}
		return err
	}
}

// errorHandler answers errors that escape a handler, such as unknown routes
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		logging.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(model.ErrorResponse{
		Error:   message,
		Details: c.Method() + " " + c.Path(),
	})
}
