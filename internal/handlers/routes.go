package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
)

// Deps holds what the routes need
type Deps struct {
	Civic *service.Civic
	Cache *cache.Cache
	// RateLimit is requests per minute per client IP on /api; zero disables it
	RateLimit int
}

// NewApp builds the Fiber application with middleware and every route
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "CIV.IQ",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(RequestLogger())

	Register(app, deps)
	return app
}

// Register mounts the API and page routes
func Register(app *fiber.App, deps Deps) {
	civic, store := deps.Civic, deps.Cache

	api := app.Group("/api", limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return deps.RateLimit <= 0
		},
		Max:        deps.RateLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(model.ErrorResponse{
				Error:   "rate limit exceeded",
				Details: "try again in a minute",
			})
		},
	}))

	api.Get("/health", HealthHandler(civic, store))

	// Representative routes
	api.Get("/representative/:bioguideId", RepresentativeHandler(civic, store))
	api.Get("/representative/:bioguideId/votes", VotesHandler(civic, store))
	api.Get("/representative/:bioguideId/bills", BillsHandler(civic, store))
	api.Get("/representative/:bioguideId/finance", FinanceHandler(civic, store))
	api.Get("/representative/:bioguideId/news", NewsHandler(civic, store))
	api.Get("/representative/:bioguideId/connections", ConnectionsHandler(civic, store))

	// District routes
	api.Get("/districts/:districtId", DistrictHandler(civic, store))
	api.Get("/districts/:districtId/spending", SpendingHandler(civic, store))
	api.Get("/district-lookup", DistrictLookupHandler(civic, store))
	api.Get("/state-legislature/:state", StateLegislatureHandler(civic, store))

	api.Get("/committee/:committeeId", CommitteeHandler(civic, store))
	api.Get("/bill/:billId", BillHandler(civic, store))

	// Pages
	app.Get("/", HomeHandler(civic, store))
	app.Get("/representative/:bioguideId", RepresentativePageHandler(civic, store))
	app.Get("/districts/:districtId", DistrictPageHandler(civic, store))
}
