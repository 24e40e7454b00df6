package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const govInfoSource = "govinfo"

// GovInfoClient handles communication with the GovInfo API
type GovInfoClient struct {
	baseURL string
	apiKey  string
	fetch   *fetcher
}

// NewGovInfoClient creates a new GovInfo API client. GovInfo accepts
// DEMO_KEY when no key is configured.
func NewGovInfoClient(baseURL, apiKey string, opts HTTPOptions) *GovInfoClient {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &GovInfoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetch:   newFetcher(govInfoSource, opts),
	}
}

// GovInfoPackage is the /packages/{id}/summary payload
type GovInfoPackage struct {
	PackageID  string `json:"packageId"`
	Title      string `json:"title"`
	DateIssued string `json:"dateIssued"`
	Pages      string `json:"pages"`
	Download   struct {
		PDFLink string `json:"pdfLink"`
		TxtLink string `json:"txtLink"`
	} `json:"download"`
}

// FetchBillPackage retrieves the summary of a BILLS package
func (c *GovInfoClient) FetchBillPackage(ctx context.Context, packageID string) (*GovInfoPackage, error) {
	query := url.Values{"api_key": {c.apiKey}}
	rawURL := buildURL(c.baseURL, "/packages/"+url.PathEscape(packageID)+"/summary", query)

	var pkg GovInfoPackage
	if err := c.fetch.getJSON(ctx, rawURL, nil, &pkg); err != nil {
		return nil, fmt.Errorf("failed to fetch package %s: %w", packageID, err)
	}
	return &pkg, nil
}

// BillPackageID builds the GovInfo package of a bill's introduced text,
// e.g. BILLS-118hr1234ih.
func BillPackageID(congress int, billType, number string) string {
	billType = strings.ToLower(billType)
	version := "ih"
	if strings.HasPrefix(billType, "s") {
		version = "is"
	}
	return fmt.Sprintf("BILLS-%d%s%s%s", congress, billType, number, version)
}
