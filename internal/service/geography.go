package service

import (
	"strconv"
	"strings"
)

// AtLargeDistrict is the canonical district code for a state or territory
// with a single House seat.
const AtLargeDistrict = "01"

var stateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "DC": "11", "FL": "12",
	"GA": "13", "HI": "15", "ID": "16", "IL": "17", "IN": "18",
	"IA": "19", "KS": "20", "KY": "21", "LA": "22", "ME": "23",
	"MD": "24", "MA": "25", "MI": "26", "MN": "27", "MS": "28",
	"MO": "29", "MT": "30", "NE": "31", "NV": "32", "NH": "33",
	"NJ": "34", "NM": "35", "NY": "36", "NC": "37", "ND": "38",
	"OH": "39", "OK": "40", "OR": "41", "PA": "42", "RI": "44",
	"SC": "45", "SD": "46", "TN": "47", "TX": "48", "UT": "49",
	"VT": "50", "VA": "51", "WA": "53", "WV": "54", "WI": "55",
	"WY": "56", "AS": "60", "GU": "66", "MP": "69", "PR": "72",
	"VI": "78",
}

var fipsState = func() map[string]string {
	m := make(map[string]string, len(stateFIPS))
	for abbr, fips := range stateFIPS {
		m[fips] = abbr
	}
	return m
}()

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"AS": "American Samoa", "GU": "Guam", "MP": "Northern Mariana Islands",
	"PR": "Puerto Rico", "VI": "U.S. Virgin Islands",
}

var stateByName = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for abbr, name := range stateNames {
		m[strings.ToLower(name)] = abbr
	}
	return m
}()

// single-seat states plus DC and the territories, which elect a delegate
var atLargeStates = map[string]bool{
	"AK": true, "DE": true, "ND": true, "SD": true, "VT": true, "WY": true,
	"DC": true, "AS": true, "GU": true, "MP": true, "PR": true, "VI": true,
}

// StateFIPS returns the FIPS code for a postal abbreviation. Unknown input is
// returned unchanged with known=false.
func StateFIPS(abbr string) (string, bool) {
	fips, ok := stateFIPS[strings.ToUpper(abbr)]
	if !ok {
		return abbr, false
	}
	return fips, true
}

// StateFromFIPS returns the postal abbreviation for a FIPS code. Unknown
// input is returned unchanged with known=false.
func StateFromFIPS(fips string) (string, bool) {
	if len(fips) == 1 {
		fips = "0" + fips
	}
	abbr, ok := fipsState[fips]
	if !ok {
		return fips, false
	}
	return abbr, true
}

// StateName returns the full name of a state or territory
func StateName(abbr string) string {
	return stateNames[strings.ToUpper(abbr)]
}

// StateFromName resolves a full state name ("Michigan") or abbreviation
func StateFromName(name string) (string, bool) {
	if abbr, ok := stateByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return abbr, true
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := stateFIPS[upper]; ok {
		return upper, true
	}
	return name, false
}

// IsAtLarge reports whether a state has a single House seat
func IsAtLarge(state string) bool {
	return atLargeStates[strings.ToUpper(state)]
}

// NormalizeDistrictCode maps the many spellings of a district number to a
// two-digit code. Every at-large spelling becomes AtLargeDistrict.
func NormalizeDistrictCode(raw string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(raw))

	switch code {
	case "0", "00", "al", "at large", "at-large", "atlarge":
		return AtLargeDistrict, nil
	case "98":
		// Census code for the DC delegate
		return AtLargeDistrict, nil
	}

	n, err := strconv.Atoi(code)
	if err != nil || n < 1 || n > 99 {
		return "", &NormalizationError{Field: "district", Value: raw, Reason: "not a district number"}
	}

	return strconv.Itoa(n/10) + strconv.Itoa(n%10), nil
}

// NormalizeStateDistrict is NormalizeDistrictCode with the state known, so
// that a missing code for a single-seat state resolves to at-large.
func NormalizeStateDistrict(state, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" && IsAtLarge(state) {
		return AtLargeDistrict, nil
	}
	if IsAtLarge(state) {
		if _, err := NormalizeDistrictCode(raw); err == nil {
			return AtLargeDistrict, nil
		}
	}
	return NormalizeDistrictCode(raw)
}

// ParseDistrictID splits "MI-12" into a known state and canonical district
func ParseDistrictID(id string) (string, string, error) {
	state, district, ok := strings.Cut(strings.TrimSpace(id), "-")
	if !ok {
		return "", "", &NormalizationError{Field: "districtId", Value: id, Reason: "expected STATE-DISTRICT"}
	}

	state = strings.ToUpper(state)
	if _, known := StateFIPS(state); !known {
		return "", "", &NormalizationError{Field: "state", Value: state, Reason: "unknown state"}
	}

	code, err := NormalizeStateDistrict(state, district)
	if err != nil {
		return "", "", err
	}

	return state, code, nil
}

// DistrictID formats a state and canonical district as "MI-12"
func DistrictID(state, district string) string {
	return strings.ToUpper(state) + "-" + district
}

// CensusDistrictCode translates a canonical district into the code the
// Census Bureau and USAspending use: "00" for at-large seats and "98" for
// the DC delegate.
func CensusDistrictCode(state, district string) string {
	state = strings.ToUpper(state)
	if state == "DC" {
		return "98"
	}
	if IsAtLarge(state) {
		return "00"
	}
	return district
}
