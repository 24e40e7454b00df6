package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const censusSource = "census"

// ACS 5-year variables requested for every district profile
const (
	varPopulation     = "B01003_001E"
	varMedianIncome   = "B19013_001E"
	varMedianAge      = "B01002_001E"
	varWhite          = "B02001_002E"
	varBlack          = "B02001_003E"
	varAsian          = "B02001_005E"
	varHispanic       = "B03003_003E"
	varBachelors      = "B15003_022E"
	varEducationTotal = "B15003_001E"
	varPoverty        = "B17001_002E"
	varPovertyTotal   = "B17001_001E"
)

var censusVariables = []string{
	"NAME", varPopulation, varMedianIncome, varMedianAge,
	varWhite, varBlack, varAsian, varHispanic,
	varBachelors, varEducationTotal, varPoverty, varPovertyTotal,
}

// CensusTable is the array-of-rows shape the Census API returns: a header
// row followed by data rows. Null cells decode as nil.
type CensusTable [][]*string

// CensusClient handles communication with the Census ACS5 API
type CensusClient struct {
	baseURL string
	apiKey  string
	year    string
	fetch   *fetcher
}

// NewCensusClient creates a new Census API client. The key is optional.
func NewCensusClient(baseURL, apiKey, year string, opts HTTPOptions) *CensusClient {
	return &CensusClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		year:    year,
		fetch:   newFetcher(censusSource, opts),
	}
}

// FetchDistrictProfile retrieves the ACS5 profile of one district. The
// district is the canonical code and is translated to the Census form.
func (c *CensusClient) FetchDistrictProfile(ctx context.Context, state, district string) (CensusTable, error) {
	fips, known := StateFIPS(state)
	if !known {
		return nil, &NormalizationError{Field: "state", Value: state, Reason: "no FIPS code"}
	}

	query := url.Values{
		"get": {strings.Join(censusVariables, ",")},
		"for": {"congressional district:" + CensusDistrictCode(state, district)},
		"in":  {"state:" + fips},
	}
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	rawURL := buildURL(c.baseURL, "/"+c.year+"/acs/acs5", query)
	body, _, err := c.fetch.get(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch census profile for %s-%s: %w", state, district, err)
	}

	// The API answers 204 with no body for a geography it does not know
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &NotFoundError{Resource: "district", ID: DistrictID(state, district)}
	}

	var table CensusTable
	if err := c.fetch.decode(rawURL, 200, body, &table); err != nil {
		return nil, err
	}
	if len(table) < 2 {
		return nil, &NotFoundError{Resource: "district", ID: DistrictID(state, district)}
	}

	return table, nil
}
