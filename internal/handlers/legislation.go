package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
)

func CommitteeHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(c.Params("committeeId"))
		if err := validateRequest(committeeRequest{Code: code}); err != nil {
			return writeError(c, err, nil)
		}

		return respond(c, store, "committee:"+code, committeeTTL, func(ctx context.Context) (model.CommitteeResponse, error) {
			return civic.Committee(ctx, code)
		})
	}
}

func BillHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("billId")
		if err := validateRequest(billRequest{BillID: raw}); err != nil {
			return writeError(c, err, nil)
		}

		congress, billType, number, err := service.ParseBillID(raw)
		if err != nil {
			return writeError(c, err, nil)
		}

		id := service.BillID(congress, billType, number)
		return respond(c, store, "bill:"+id, billTTL, func(ctx context.Context) (model.BillResponse, error) {
			return civic.Bill(ctx, congress, billType, number)
		})
	}
}
