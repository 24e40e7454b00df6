package model

// District is a congressional district and what is known about it
type District struct {
	ID             string          `json:"id"`
	State          string          `json:"state"`
	District       string          `json:"district"`
	StateFIPS      string          `json:"stateFips,omitempty"`
	AtLarge        bool            `json:"atLarge"`
	Name           string          `json:"name,omitempty"`
	Representative *Representative `json:"representative"`
	Demographics   DemographicData `json:"demographics"`
}

// DemographicData is the ACS profile of a district. Percentages are 0-100.
type DemographicData struct {
	Population       int     `json:"population"`
	MedianIncome     int     `json:"medianIncome"`
	MedianAge        float64 `json:"medianAge"`
	WhitePercent     float64 `json:"whitePercent"`
	BlackPercent     float64 `json:"blackPercent"`
	AsianPercent     float64 `json:"asianPercent"`
	HispanicPercent  float64 `json:"hispanicPercent"`
	BachelorsPercent float64 `json:"bachelorsPercent"`
	PovertyPercent   float64 `json:"povertyPercent"`
	DiversityIndex   float64 `json:"diversityIndex"`
}

// SpendingSummary is federal spending in a district from USAspending
type SpendingSummary struct {
	FiscalYear       int     `json:"fiscalYear"`
	TotalObligations float64 `json:"totalObligations"`
	PerCapita        float64 `json:"perCapita"`
	Population       int     `json:"population"`
}

// ZipDistrict maps a ZIP code (ZCTA) to one congressional district
type ZipDistrict struct {
	Zip      string `json:"zip"`
	State    string `json:"state"`
	District string `json:"district"`
}

// DistrictID returns the "ST-DD" identifier
func (z ZipDistrict) DistrictID() string {
	return z.State + "-" + z.District
}
