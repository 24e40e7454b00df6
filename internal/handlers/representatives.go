package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
)

const (
	defaultVoteLimit = 10
	defaultBillLimit = 20
	defaultNewsLimit = 10
)

func bioguideParam(c *fiber.Ctx) string {
	return strings.ToUpper(c.Params("bioguideId"))
}

func RepresentativeHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: 1}); err != nil {
			return writeError(c, err, nil)
		}

		return respond(c, store, representativeKey(id), representativeTTL, func(ctx context.Context) (model.RepresentativeResponse, error) {
			return civic.Representative(ctx, id)
		})
	}
}

func representativeKey(id string) string {
	return "representative:" + id
}

func VotesHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		limit := c.QueryInt("limit", defaultVoteLimit)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: limit}); err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("votes:%s:%d", id, limit)
		return respond(c, store, key, votesTTL, func(ctx context.Context) (model.VotesResponse, error) {
			return civic.Votes(ctx, id, limit)
		})
	}
}

func BillsHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		limit := c.QueryInt("limit", defaultBillLimit)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: limit}); err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("bills:%s:%d", id, limit)
		return respond(c, store, key, billsTTL, func(ctx context.Context) (model.BillsResponse, error) {
			return civic.Bills(ctx, id, limit)
		})
	}
}

func FinanceHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		cycle := c.QueryInt("cycle", 0)
		if err := validateRequest(financeRequest{BioguideID: id, Cycle: cycle}); err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("finance:%s:%d", id, cycle)
		return respond(c, store, key, financeTTL, func(ctx context.Context) (model.FinanceResponse, error) {
			return civic.Finance(ctx, id, cycle)
		})
	}
}

func NewsHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		limit := c.QueryInt("limit", defaultNewsLimit)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: limit}); err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("news:%s:%d", id, limit)
		return respond(c, store, key, newsTTL, func(ctx context.Context) (model.NewsResponse, error) {
			return civic.News(ctx, id, limit)
		})
	}
}

func ConnectionsHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: 1}); err != nil {
			return writeError(c, err, nil)
		}

		return respond(c, store, "connections:"+id, connectionsTTL, func(ctx context.Context) (model.ConnectionsResponse, error) {
			return civic.Connections(ctx, id)
		})
	}
}
