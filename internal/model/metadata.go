package model

import "time"

// Metadata describes where a payload came from and whether it may be cached
type Metadata struct {
	DataSource  string    `json:"dataSource"`
	LastUpdated time.Time `json:"lastUpdated"`
	Cacheable   bool      `json:"cacheable"`
	// Unavailable lists sources that failed and were replaced by defaults
	Unavailable []string `json:"unavailable,omitempty"`
	// Flags carries data-quality notes, e.g. an unrecognized state code
	Flags []string `json:"flags,omitempty"`
}

// MarkUnavailable records a failed source and makes the payload non-cacheable
func (m *Metadata) MarkUnavailable(source string) {
	m.Unavailable = append(m.Unavailable, source)
	m.Cacheable = false
}

// Flag records a data-quality note
func (m *Metadata) Flag(note string) {
	m.Flags = append(m.Flags, note)
}

// ErrorResponse is the body of every failed API request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
