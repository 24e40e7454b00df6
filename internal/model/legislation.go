package model

// Bill relationship kinds
const (
	RelationshipSponsor   = "sponsor"
	RelationshipCosponsor = "cosponsor"
)

// Bill is a piece of legislation linked to a member
type Bill struct {
	ID               string `json:"id"`
	Congress         int    `json:"congress"`
	Type             string `json:"type"`
	Number           string `json:"number"`
	Title            string `json:"title"`
	IntroducedDate   string `json:"introducedDate,omitempty"`
	LatestAction     string `json:"latestAction,omitempty"`
	LatestActionDate string `json:"latestActionDate,omitempty"`
	PolicyArea       string `json:"policyArea,omitempty"`
	Relationship     string `json:"relationship,omitempty"`
}

// BillSponsor is a sponsor listed on a bill
type BillSponsor struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	Party      string `json:"party,omitempty"`
	State      string `json:"state,omitempty"`
}

// BillTextVersion is a published text of a bill from GovInfo
type BillTextVersion struct {
	PackageID  string `json:"packageId"`
	Title      string `json:"title"`
	DateIssued string `json:"dateIssued,omitempty"`
	Pages      int    `json:"pages,omitempty"`
	PDFURL     string `json:"pdfUrl,omitempty"`
}

// BillDetail combines Congress.gov bill data with its published text
type BillDetail struct {
	Bill
	Sponsors       []BillSponsor     `json:"sponsors"`
	CosponsorCount int               `json:"cosponsorCount"`
	TextVersions   []BillTextVersion `json:"textVersions"`
}

// Vote is a member's position on one roll call
type Vote struct {
	Congress    int    `json:"congress"`
	Session     int    `json:"session"`
	RollCall    int    `json:"rollCall"`
	Date        string `json:"date"`
	Question    string `json:"question,omitempty"`
	Result      string `json:"result,omitempty"`
	Position    string `json:"position"`
	Legislation string `json:"legislation,omitempty"`
}
