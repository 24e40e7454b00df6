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

// districtParam validates and canonicalizes the :districtId parameter
func districtParam(c *fiber.Ctx, fiscalYear int) (string, string, error) {
	raw := c.Params("districtId")
	if err := validateRequest(districtRequest{DistrictID: raw, FiscalYear: fiscalYear}); err != nil {
		return "", "", err
	}
	return service.ParseDistrictID(raw)
}

func districtKey(state, district string) string {
	return "district:" + service.DistrictID(state, district)
}

func DistrictHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, district, err := districtParam(c, 0)
		if err != nil {
			return writeError(c, err, nil)
		}

		return respond(c, store, districtKey(state, district), districtTTL, func(ctx context.Context) (model.DistrictResponse, error) {
			return civic.District(ctx, state, district)
		})
	}
}

func SpendingHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fiscalYear := c.QueryInt("fy", 0)
		state, district, err := districtParam(c, fiscalYear)
		if err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("spending:%s:%d", service.DistrictID(state, district), fiscalYear)
		return respond(c, store, key, spendingTTL, func(ctx context.Context) (model.SpendingResponse, error) {
			return civic.DistrictSpending(ctx, state, district, fiscalYear)
		})
	}
}

func DistrictLookupHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Query("zip")
		if err := validateRequest(zipRequest{Zip: zip}); err != nil {
			return writeError(c, err, nil)
		}

		return respond(c, store, zipKey(zip), zipLookupTTL, func(ctx context.Context) (model.DistrictLookupResponse, error) {
			return civic.LookupZip(ctx, zip)
		})
	}
}

func zipKey(zip string) string {
	return "zip:" + zip
}

func StateLegislatureHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := strings.ToUpper(c.Params("state"))
		chamber := c.Query("chamber")
		if err := validateRequest(legislatureRequest{State: state, Chamber: chamber}); err != nil {
			return writeError(c, err, nil)
		}

		key := fmt.Sprintf("state-legislature:%s:%s", state, chamber)
		return respond(c, store, key, legislatureTTL, func(ctx context.Context) (model.StateLegislatureResponse, error) {
			return civic.StateLegislature(ctx, state, chamber)
		})
	}
}
