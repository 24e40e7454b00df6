package service

import (
	"context"
	"fmt"
	"strings"
)

const usaSpendingSource = "usaspending"

// USASpendingClient handles communication with the USAspending v2 API
type USASpendingClient struct {
	baseURL string
	fetch   *fetcher
}

// NewUSASpendingClient creates a new USAspending API client
func NewUSASpendingClient(baseURL string, opts HTTPOptions) *USASpendingClient {
	return &USASpendingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   newFetcher(usaSpendingSource, opts),
	}
}

// GeographySpending is a row of spending_by_geography
type GeographySpending struct {
	ShapeCode        string   `json:"shape_code"`
	DisplayName      string   `json:"display_name"`
	AggregatedAmount *float64 `json:"aggregated_amount"`
	Population       *int     `json:"population"`
	PerCapita        *float64 `json:"per_capita"`
}

type geographyRequest struct {
	Scope           string         `json:"scope"`
	GeoLayer        string         `json:"geo_layer"`
	GeoLayerFilters []string       `json:"geo_layer_filters"`
	Filters         spendingFilter `json:"filters"`
}

type spendingFilter struct {
	TimePeriod []timePeriod `json:"time_period"`
}

type timePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type geographyResponse struct {
	Results []GeographySpending `json:"results"`
}

// FetchDistrictSpending retrieves federal obligations by place of
// performance for a district in a fiscal year.
func (c *USASpendingClient) FetchDistrictSpending(ctx context.Context, state, district string, fiscalYear int) ([]GeographySpending, error) {
	fips, known := StateFIPS(state)
	if !known {
		return nil, &NormalizationError{Field: "state", Value: state, Reason: "no FIPS code"}
	}

	req := geographyRequest{
		Scope:           "place_of_performance",
		GeoLayer:        "district",
		GeoLayerFilters: []string{fips + CensusDistrictCode(state, district)},
		Filters: spendingFilter{
			TimePeriod: []timePeriod{{
				StartDate: fmt.Sprintf("%d-10-01", fiscalYear-1),
				EndDate:   fmt.Sprintf("%d-09-30", fiscalYear),
			}},
		},
	}

	var resp geographyResponse
	if err := c.fetch.postJSON(ctx, c.baseURL+"/search/spending_by_geography/", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch spending for %s-%s: %w", state, district, err)
	}
	return resp.Results, nil
}
