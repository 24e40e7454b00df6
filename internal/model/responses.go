package model

// Envelope carries the metadata block every API payload ends with
type Envelope struct {
	Metadata Metadata `json:"metadata"`
}

// Meta returns the payload metadata
func (e Envelope) Meta() Metadata {
	return e.Metadata
}

type RepresentativeResponse struct {
	Representative Representative `json:"representative"`
	Envelope
}

type VotesResponse struct {
	BioguideID string `json:"bioguideId"`
	Votes      []Vote `json:"votes"`
	Envelope
}

type BillsResponse struct {
	BioguideID       string `json:"bioguideId"`
	Bills            []Bill `json:"bills"`
	SponsoredCount   int    `json:"sponsoredCount"`
	CosponsoredCount int    `json:"cosponsoredCount"`
	Envelope
}

type FinanceResponse struct {
	BioguideID string         `json:"bioguideId"`
	Finance    FinanceSummary `json:"finance"`
	Envelope
}

type NewsResponse struct {
	BioguideID string        `json:"bioguideId"`
	Articles   []NewsArticle `json:"articles"`
	Envelope
}

type ConnectionsResponse struct {
	BioguideID string `json:"bioguideId"`
	ConnectionGraph
	Envelope
}

type DistrictResponse struct {
	District District `json:"district"`
	Envelope
}

type SpendingResponse struct {
	DistrictID string          `json:"districtId"`
	Spending   SpendingSummary `json:"spending"`
	Envelope
}

type DistrictLookupResponse struct {
	Zip       string        `json:"zip"`
	Districts []ZipDistrict `json:"districts"`
	Primary   *ZipDistrict  `json:"primary"`
	Envelope
}

type CommitteeResponse struct {
	Committee Committee `json:"committee"`
	Envelope
}

type StateLegislatureResponse struct {
	State       string            `json:"state"`
	Chamber     string            `json:"chamber,omitempty"`
	Legislators []StateLegislator `json:"legislators"`
	Envelope
}

type BillResponse struct {
	Bill BillDetail `json:"bill"`
	Envelope
}
