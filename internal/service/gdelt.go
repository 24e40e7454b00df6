package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const gdeltSource = "gdelt"

// GDELTClient handles communication with the GDELT DOC 2.0 API
type GDELTClient struct {
	baseURL string
	fetch   *fetcher
}

// NewGDELTClient creates a new GDELT API client
func NewGDELTClient(baseURL string, opts HTTPOptions) *GDELTClient {
	return &GDELTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetch:   newFetcher(gdeltSource, opts),
	}
}

// GDELTArticle is a row of an artlist response
type GDELTArticle struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	SeenDate      string `json:"seendate"`
	SocialImage   string `json:"socialimage"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
}

type artListResponse struct {
	Articles []GDELTArticle `json:"articles"`
}

// SearchArticles runs a phrase search over recent coverage
func (c *GDELTClient) SearchArticles(ctx context.Context, phrase string, limit int) ([]GDELTArticle, error) {
	query := url.Values{
		"query":      {strconv.Quote(phrase) + " sourcelang:english"},
		"mode":       {"artlist"},
		"format":     {"json"},
		"sort":       {"datedesc"},
		"timespan":   {"1month"},
		"maxrecords": {strconv.Itoa(limit)},
	}

	rawURL := buildURL(c.baseURL, "/doc", query)
	body, status, err := c.fetch.get(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles for %s: %w", phrase, err)
	}

	// GDELT answers an empty body when nothing matched
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var resp artListResponse
	if err := c.fetch.decode(rawURL, status, body, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}
