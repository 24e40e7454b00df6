package service

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jjenkins/civiq/internal/model"
)

//go:embed committees.yaml
var committeesYAML []byte

// CatalogEntry is static metadata for one committee
type CatalogEntry struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Chamber     string   `yaml:"chamber"`
	Type        string   `yaml:"type"`
	PolicyAreas []string `yaml:"policyAreas"`
}

// CommitteeCatalog answers committee lookups when Congress.gov cannot
type CommitteeCatalog struct {
	byCode map[string]CatalogEntry
	codes  []string
}

// LoadCommitteeCatalog parses the embedded committee table
func LoadCommitteeCatalog() (*CommitteeCatalog, error) {
	return ParseCommitteeCatalog(committeesYAML)
}

// ParseCommitteeCatalog parses a YAML committee table
func ParseCommitteeCatalog(data []byte) (*CommitteeCatalog, error) {
	var doc struct {
		Committees []CatalogEntry `yaml:"committees"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse committee catalog: %w", err)
	}

	c := &CommitteeCatalog{byCode: make(map[string]CatalogEntry, len(doc.Committees))}
	for _, e := range doc.Committees {
		code := strings.ToUpper(e.Code)
		if code == "" || e.Name == "" {
			return nil, fmt.Errorf("committee catalog entry missing code or name: %+v", e)
		}
		if _, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate committee code %s", code)
		}
		e.Code = code
		c.byCode[code] = e
		c.codes = append(c.codes, code)
	}
	sort.Strings(c.codes)

	return c, nil
}

// Lookup finds a committee by exact code
func (c *CommitteeCatalog) Lookup(code string) (CatalogEntry, bool) {
	e, ok := c.byCode[strings.ToUpper(code)]
	return e, ok
}

// Resolve finds a committee by code. A subcommittee code the catalog does
// not know resolves to its base committee with fallback=true.
func (c *CommitteeCatalog) Resolve(code string) (entry CatalogEntry, fallback bool, ok bool) {
	if e, found := c.Lookup(code); found {
		return e, false, true
	}

	base := BaseCommitteeCode(code)
	if base == strings.ToUpper(code) {
		return CatalogEntry{}, false, false
	}

	e, found := c.Lookup(base)
	return e, found, found
}

// ForPolicyArea returns committees of a chamber with jurisdiction over a
// policy area, ordered by code.
func (c *CommitteeCatalog) ForPolicyArea(chamber, area string) []CatalogEntry {
	var out []CatalogEntry
	for _, code := range c.codes {
		e := c.byCode[code]
		if chamber != "" && !strings.EqualFold(e.Chamber, chamber) {
			continue
		}
		for _, a := range e.PolicyAreas {
			if strings.EqualFold(a, area) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// Len returns the number of committees in the catalog
func (c *CommitteeCatalog) Len() int {
	return len(c.codes)
}

// ToCommittee converts a catalog entry into the API record
func (e CatalogEntry) ToCommittee() model.Committee {
	return model.Committee{
		Code:          e.Code,
		Name:          e.Name,
		Chamber:       e.Chamber,
		Type:          e.Type,
		Subcommittees: []model.Subcommittee{},
	}
}

// BaseCommitteeCode strips the numeric subcommittee suffix, so "HSAG14"
// and "hsag00" both become "HSAG".
func BaseCommitteeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	return strings.TrimRight(code, "0123456789")
}

// committeeChamber derives the Congress.gov chamber path segment from a
// committee code prefix.
func committeeChamber(code string) (string, bool) {
	if code == "" {
		return "", false
	}
	switch strings.ToUpper(code[:1]) {
	case "H":
		return "house", true
	case "S":
		return "senate", true
	case "J":
		return "joint", true
	}
	return "", false
}
