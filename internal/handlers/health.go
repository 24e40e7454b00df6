package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/service"
)

// HealthResponse reports cache counters and which upstreams are configured
type HealthResponse struct {
	Status  string          `json:"status"`
	Time    time.Time       `json:"time"`
	Cache   cache.Stats     `json:"cache"`
	Sources map[string]bool `json:"sources"`
}

func HealthHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(HealthResponse{
			Status:  "ok",
			Time:    time.Now().UTC(),
			Cache:   store.Stats(ctx),
			Sources: civic.Sources(),
		})
	}
}
