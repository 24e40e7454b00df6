package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
)

// Cache lifetimes per resource
const (
	representativeTTL = 6 * time.Hour
	votesTTL          = time.Hour
	billsTTL          = 6 * time.Hour
	financeTTL        = 24 * time.Hour
	newsTTL           = time.Hour
	connectionsTTL    = 6 * time.Hour
	districtTTL       = 24 * time.Hour
	spendingTTL       = 24 * time.Hour
	zipLookupTTL      = 24 * time.Hour
	committeeTTL      = 24 * time.Hour
	legislatureTTL    = 24 * time.Hour
	billTTL           = 6 * time.Hour
)

// payload is any API response carrying metadata
type payload interface {
	Meta() model.Metadata
}

// cached answers a request from the cache or by running produce. Results
// whose metadata is not cacheable are returned but never stored. On error
// the value produce returned is handed back so 404s keep their shape.
func cached[T payload](c *fiber.Ctx, store *cache.Cache, key string, ttl time.Duration, produce func(ctx context.Context) (T, error)) (T, cache.Outcome, error) {
	// Upstream work is detached from the client connection so an abandoned
	// request still fills the cache.
	ctx := context.Background()

	req := cache.Request{Key: key, TTL: ttl, Bypass: c.QueryBool("refresh", false)}

	v, outcome, err := cache.Compute(ctx, store, req, func(ctx context.Context) (T, bool, error) {
		v, err := produce(ctx)
		if err != nil {
			return v, false, err
		}
		return v, v.Meta().Cacheable, nil
	})
	if err != nil {
		return v, outcome, err
	}

	logging.Info("Cache lookup",
		zap.String("key", key),
		zap.String("outcome", string(outcome)))
	return v, outcome, nil
}

// respond runs the cached lookup and writes the JSON response with cache
// headers, or maps the error to a status code.
func respond[T payload](c *fiber.Ctx, store *cache.Cache, key string, ttl time.Duration, produce func(ctx context.Context) (T, error)) error {
	v, outcome, err := cached(c, store, key, ttl, produce)
	if err != nil {
		return writeError(c, err, v)
	}

	c.Set("X-Cache", string(outcome))
	if v.Meta().Cacheable {
		c.Set(fiber.HeaderCacheControl, cacheControl(ttl))
	} else {
		c.Set(fiber.HeaderCacheControl, "no-store")
	}
	return c.JSON(v)
}

func cacheControl(ttl time.Duration) string {
	seconds := int(ttl.Seconds())
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", seconds, seconds/2)
}

// writeError maps the error taxonomy onto HTTP responses. Details never
// carry upstream URLs since those contain API keys.
func writeError(c *fiber.Ctx, err error, empty any) error {
	var (
		validationErr *ValidationError
		notFound      *service.NotFoundError
		configErr     *service.ConfigurationError
		upstream      *service.UpstreamError
		normErr       *service.NormalizationError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{
			Error:   "invalid request",
			Details: validationErr.Error(),
		})

	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(withError(empty, "not found", notFound.Error()))

	case errors.As(err, &upstream) && upstream.NotFound():
		return c.Status(fiber.StatusNotFound).JSON(withError(empty, "not found", upstream.Source+" has no such record"))

	case errors.As(err, &configErr):
		logging.Error("Service misconfigured",
			zap.String("path", c.Path()),
			zap.String("key", configErr.Key))
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Error:   "service misconfigured",
			Details: configErr.Error(),
		})

	case errors.As(err, &upstream):
		logging.Error("Upstream request failed",
			zap.String("path", c.Path()),
			zap.String("source", upstream.Source),
			zap.Int("status", upstream.StatusCode),
			zap.Error(err))
		details := upstream.Source + " is unreachable"
		if upstream.StatusCode != 0 {
			details = fmt.Sprintf("%s returned status %d", upstream.Source, upstream.StatusCode)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Error:   "upstream request failed",
			Details: details,
		})

	case errors.As(err, &normErr):
		logging.Error("Upstream data rejected",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
			Error:   "upstream data could not be read",
			Details: normErr.Error(),
		})
	}

	logging.Error("Request failed",
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
		Error:   "internal error",
		Details: "the request could not be completed",
	})
}

// withError merges error fields into the route's empty payload
func withError(empty any, message, details string) fiber.Map {
	body := fiber.Map{}
	if empty != nil {
		if raw, err := json.Marshal(empty); err == nil {
			_ = json.Unmarshal(raw, &body)
		}
	}
	if body == nil {
		body = fiber.Map{}
	}
	body["error"] = message
	body["details"] = details
	return body
}
