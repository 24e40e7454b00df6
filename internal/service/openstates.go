package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	openStatesSource   = "openstates"
	openStatesPageSize = 50
	openStatesMaxPages = 10
)

// OpenStatesClient handles communication with the OpenStates v3 API
type OpenStatesClient struct {
	baseURL string
	apiKey  string
	fetch   *fetcher
}

// NewOpenStatesClient creates a new OpenStates API client
func NewOpenStatesClient(baseURL, apiKey string, opts HTTPOptions) *OpenStatesClient {
	return &OpenStatesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetch:   newFetcher(openStatesSource, opts),
	}
}

// Configured reports whether an API key is set
func (c *OpenStatesClient) Configured() bool {
	return c.apiKey != ""
}

// OpenStatesPerson is a row of /people
type OpenStatesPerson struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Image       string `json:"image"`
	Email       string `json:"email"`
	CurrentRole *struct {
		Title             string `json:"title"`
		OrgClassification string `json:"org_classification"`
		District          string `json:"district"`
	} `json:"current_role"`
}

type peopleResponse struct {
	Results    []OpenStatesPerson `json:"results"`
	Pagination struct {
		Page       int `json:"page"`
		MaxPage    int `json:"max_page"`
		TotalItems int `json:"total_items"`
	} `json:"pagination"`
}

// FetchLegislators retrieves the sitting legislators of a state. chamber is
// "upper", "lower" or empty for both.
func (c *OpenStatesClient) FetchLegislators(ctx context.Context, state, chamber string) ([]OpenStatesPerson, error) {
	if c.apiKey == "" {
		return nil, &ConfigurationError{Key: "OPENSTATES_API_KEY"}
	}

	header := http.Header{}
	header.Set("X-API-KEY", c.apiKey)

	jurisdiction := fmt.Sprintf("ocd-jurisdiction/country:us/state:%s/government", strings.ToLower(state))

	var people []OpenStatesPerson
	for page := 1; page <= openStatesMaxPages; page++ {
		query := url.Values{
			"jurisdiction": {jurisdiction},
			"per_page":     {strconv.Itoa(openStatesPageSize)},
			"page":         {strconv.Itoa(page)},
		}
		if chamber != "" {
			query.Set("org_classification", chamber)
		}

		var resp peopleResponse
		if err := c.fetch.getJSON(ctx, buildURL(c.baseURL, "/people", query), header, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch legislators for %s: %w", state, err)
		}
		people = append(people, resp.Results...)

		// Some responses omit max_page; an empty or short page ends the walk
		if page >= resp.Pagination.MaxPage || len(resp.Results) < openStatesPageSize {
			break
		}
	}

	return people, nil
}
