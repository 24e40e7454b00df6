package model

// Representative is a member of Congress assembled from Congress.gov
type Representative struct {
	BioguideID    string `json:"bioguideId"`
	Name          string `json:"name"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Party         string `json:"party"`
	State         string `json:"state"`
	District      string `json:"district,omitempty"`
	Chamber       string `json:"chamber"`
	BirthYear     string `json:"birthYear,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	OfficialURL   string `json:"officialUrl,omitempty"`
	Phone         string `json:"phone,omitempty"`
	OfficeAddress string `json:"officeAddress,omitempty"`
	CurrentMember bool   `json:"currentMember"`
	Terms         []Term `json:"terms"`
}

// Term is one congressional term served
type Term struct {
	Chamber   string `json:"chamber"`
	Congress  int    `json:"congress,omitempty"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear,omitempty"`
	State     string `json:"state,omitempty"`
	District  string `json:"district,omitempty"`
}

// StateLegislator is a member of a state legislature from OpenStates
type StateLegislator struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Party    string `json:"party"`
	Chamber  string `json:"chamber"`
	District string `json:"district"`
	ImageURL string `json:"imageUrl,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NewsArticle is a press mention from GDELT
type NewsArticle struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Domain        string `json:"domain"`
	SeenDate      string `json:"seenDate"`
	Language      string `json:"language,omitempty"`
	SourceCountry string `json:"sourceCountry,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}
