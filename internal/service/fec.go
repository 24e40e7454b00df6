package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const fecSource = "fec"

// FECClient handles communication with the OpenFEC API
type FECClient struct {
	baseURL string
	apiKey  string
	fetch   *fetcher
}

// NewFECClient creates a new OpenFEC API client
func NewFECClient(baseURL, apiKey string, opts HTTPOptions) *FECClient {
	return &FECClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetch:   newFetcher(fecSource, opts),
	}
}

// Configured reports whether an API key is set
func (c *FECClient) Configured() bool {
	return c.apiKey != ""
}

// FECCandidate is a row of /candidates/search
type FECCandidate struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	State       string `json:"state"`
	District    string `json:"district"`
	Office      string `json:"office"`
	Cycles      []int  `json:"cycles"`
}

// FECTotals is a row of /candidate/{id}/totals. Amounts are nullable.
type FECTotals struct {
	CandidateID             string   `json:"candidate_id"`
	Cycle                   int      `json:"cycle"`
	Receipts                *float64 `json:"receipts"`
	Disbursements           *float64 `json:"disbursements"`
	CashOnHand              *float64 `json:"last_cash_on_hand_end_period"`
	Debts                   *float64 `json:"last_debts_owed_by_committee"`
	IndividualContributions *float64 `json:"individual_contributions"`
	PACContributions        *float64 `json:"other_political_committee_contributions"`
	CoverageEndDate         string   `json:"coverage_end_date"`
}

type fecPage[T any] struct {
	Results []T `json:"results"`
}

func (c *FECClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return &ConfigurationError{Key: "FEC_API_KEY"}
	}
	query.Set("api_key", c.apiKey)
	return c.fetch.getJSON(ctx, buildURL(c.baseURL, path, query), nil, out)
}

// SearchCandidates finds candidates by name for a state and office (H or S)
func (c *FECClient) SearchCandidates(ctx context.Context, name, state, office string) ([]FECCandidate, error) {
	query := url.Values{
		"q":        {name},
		"state":    {strings.ToUpper(state)},
		"office":   {office},
		"per_page": {"20"},
		"sort":     {"name"},
	}

	var resp fecPage[FECCandidate]
	if err := c.get(ctx, "/candidates/search/", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to search candidates for %s: %w", name, err)
	}
	return resp.Results, nil
}

// FetchCandidateTotals retrieves financial totals for one election cycle
func (c *FECClient) FetchCandidateTotals(ctx context.Context, candidateID string, cycle int) ([]FECTotals, error) {
	query := url.Values{
		"cycle":           {strconv.Itoa(cycle)},
		"election_full":   {"false"},
		"sort_nulls_last": {"true"},
	}

	var resp fecPage[FECTotals]
	if err := c.get(ctx, "/candidate/"+url.PathEscape(candidateID)+"/totals/", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch totals for %s: %w", candidateID, err)
	}
	return resp.Results, nil
}
