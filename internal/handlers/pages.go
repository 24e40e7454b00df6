package handlers

import (
	"context"
	"errors"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/cache"
	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
	"github.com/jjenkins/civiq/internal/templates"
)

func render(c *fiber.Ctx, page templ.Component, status int) error {
	handler := adaptor.HTTPHandler(templ.Handler(page, templ.WithStatus(status)))
	return handler(c)
}

// renderError shows a message page for a failed lookup
func renderError(c *fiber.Ctx, err error) error {
	var (
		validationErr *ValidationError
		notFound      *service.NotFoundError
		upstream      *service.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		return render(c, templates.Message("Invalid request", validationErr.Error()), fiber.StatusBadRequest)
	case errors.As(err, &notFound), errors.As(err, &upstream) && upstream.NotFound():
		return render(c, templates.Message("Not found", "We could not find that record."), fiber.StatusNotFound)
	}

	logging.Error("Page failed", zap.String("path", c.Path()), zap.Error(err))
	return render(c, templates.Message("Something went wrong", "Government data sources are not responding. Please try again later."), fiber.StatusInternalServerError)
}

// HomeHandler shows the ZIP search. A ZIP inside a single district
// redirects straight to that district.
func HomeHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zip := c.Query("zip")
		if zip == "" {
			return render(c, templates.Home(templates.HomeData{}), fiber.StatusOK)
		}

		data := templates.HomeData{Zip: zip}
		if err := validateRequest(zipRequest{Zip: zip}); err != nil {
			data.Error = "Please enter a five-digit ZIP code."
			return render(c, templates.Home(data), fiber.StatusBadRequest)
		}

		resp, _, err := cached(c, store, zipKey(zip), zipLookupTTL, func(ctx context.Context) (model.DistrictLookupResponse, error) {
			return civic.LookupZip(ctx, zip)
		})
		if err != nil {
			var notFound *service.NotFoundError
			if !errors.As(err, &notFound) {
				logging.Warn("ZIP search failed", zap.String("zip", zip), zap.Error(err))
			}
			data.Error = "No congressional district found for ZIP " + zip + "."
			return render(c, templates.Home(data), fiber.StatusOK)
		}

		if len(resp.Districts) == 1 {
			return c.Redirect("/districts/"+resp.Districts[0].DistrictID(), fiber.StatusFound)
		}

		data.Districts = resp.Districts
		return render(c, templates.Home(data), fiber.StatusOK)
	}
}

// RepresentativePageHandler renders a profile from the same cache entry as
// the JSON route.
func RepresentativePageHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := bioguideParam(c)
		if err := validateRequest(memberRequest{BioguideID: id, Limit: 1}); err != nil {
			return renderError(c, err)
		}

		resp, _, err := cached(c, store, representativeKey(id), representativeTTL, func(ctx context.Context) (model.RepresentativeResponse, error) {
			return civic.Representative(ctx, id)
		})
		if err != nil {
			return renderError(c, err)
		}

		return render(c, templates.Representative(resp), fiber.StatusOK)
	}
}

func DistrictPageHandler(civic *service.Civic, store *cache.Cache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, district, err := districtParam(c, 0)
		if err != nil {
			return renderError(c, err)
		}

		resp, _, err := cached(c, store, districtKey(state, district), districtTTL, func(ctx context.Context) (model.DistrictResponse, error) {
			return civic.District(ctx, state, district)
		})
		if err != nil {
			return renderError(c, err)
		}

		return render(c, templates.District(resp), fiber.StatusOK)
	}
}
