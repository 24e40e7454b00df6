package model

// Committee is a congressional committee or subcommittee
type Committee struct {
	Code           string         `json:"code"`
	Name           string         `json:"name"`
	Chamber        string         `json:"chamber"`
	Type           string         `json:"type,omitempty"`
	URL            string         `json:"url,omitempty"`
	ParentCode     string         `json:"parentCode,omitempty"`
	IsSubcommittee bool           `json:"isSubcommittee"`
	Subcommittees  []Subcommittee `json:"subcommittees"`
	// FallbackFrom is set when the requested code was unknown and this
	// record describes its base committee instead.
	FallbackFrom string `json:"fallbackFrom,omitempty"`
}

// Subcommittee is a child of a Committee
type Subcommittee struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
