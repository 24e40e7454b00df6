package service

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/civiq/internal/model"
)

func str(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func censusFixture(values ...string) CensusTable {
	header := []*string{}
	for _, h := range censusVariables {
		header = append(header, str(h))
	}
	header = append(header, str("state"), str("congressional district"))

	row := []*string{}
	for _, v := range values {
		row = append(row, str(v))
	}
	return CensusTable{header, row}
}

// NAME, population, income, age, white, black, asian, hispanic,
// bachelors, education total, poverty, poverty total, state, district
var mi12 = []string{
	"Congressional District 12 (118th Congress), Michigan",
	"760000", "47000", "36.4", "380000", "300000", "20000", "40000",
	"90000", "500000", "190000", "750000", "26", "12",
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50.0, Percent(1, 2))
	assert.Equal(t, 33.3, Percent(1, 3))
	assert.Equal(t, 0.0, Percent(10, 0))
	assert.Equal(t, 0.0, Percent(0, 0))
}

func TestDiversityIndex(t *testing.T) {
	assert.Equal(t, 0.0, DiversityIndex([]float64{0, 0}, 0))
	assert.Equal(t, 0.0, DiversityIndex([]float64{100}, 100))
	assert.Equal(t, 50.0, DiversityIndex([]float64{50, 50}, 100))

	v := DiversityIndex([]float64{1, 2, 3}, 0)
	assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
}

func TestNormalizeDemographics(t *testing.T) {
	d, err := NormalizeDemographics(censusFixture(mi12...))
	require.NoError(t, err)

	assert.Equal(t, 760000, d.Population)
	assert.Equal(t, 47000, d.MedianIncome)
	assert.Equal(t, 36.4, d.MedianAge)
	assert.Equal(t, 50.0, d.WhitePercent)
	assert.Equal(t, 39.5, d.BlackPercent)
	assert.Equal(t, 18.0, d.BachelorsPercent)
	assert.Greater(t, d.DiversityIndex, 0.0)
	assert.Equal(t, "Congressional District 12 (118th Congress), Michigan", CensusName(censusFixture(mi12...)))
}

func TestNormalizeDemographics_SentinelsDegradeToZero(t *testing.T) {
	values := append([]string(nil), mi12...)
	values[2] = "-666666666"
	values[3] = "-999999999"

	d, err := NormalizeDemographics(censusFixture(values...))
	require.NoError(t, err)
	assert.Equal(t, 0, d.MedianIncome)
	assert.Equal(t, 0.0, d.MedianAge)
}

func TestNormalizeDemographics_ZeroPopulation(t *testing.T) {
	values := append([]string(nil), mi12...)
	values[1] = "0"

	d, err := NormalizeDemographics(censusFixture(values...))
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.WhitePercent)
	assert.Equal(t, 0.0, d.DiversityIndex)
}

func TestNormalizeDemographics_MissingPopulation(t *testing.T) {
	table := CensusTable{
		{str("NAME"), str(varMedianIncome)},
		{str("somewhere"), str("1000")},
	}

	_, err := NormalizeDemographics(table)
	var normErr *NormalizationError
	assert.ErrorAs(t, err, &normErr)
}

func memberFixture() CongressMember {
	m := CongressMember{
		BioguideID:      "T000481",
		DirectOrderName: "Rashida Tlaib",
		FirstName:       "Rashida",
		LastName:        "Tlaib",
		State:           "Michigan",
		CurrentMember:   true,
		Terms: []CongressTerm{
			{Chamber: "House of Representatives", Congress: 118, StartYear: 2023, StateCode: "MI", District: intPtr(12)},
			{Chamber: "House of Representatives", Congress: 116, StartYear: 2019, EndYear: 2021, StateCode: "MI", District: intPtr(13)},
		},
	}
	m.PartyHistory = append(m.PartyHistory, struct {
		PartyName string `json:"partyName"`
		StartYear int    `json:"startYear"`
	}{PartyName: "Democratic", StartYear: 2019})
	return m
}

func TestNormalizeMember(t *testing.T) {
	rep, err := NormalizeMember(memberFixture())
	require.NoError(t, err)

	assert.Equal(t, "Rashida Tlaib", rep.Name)
	assert.Equal(t, "Democratic", rep.Party)
	assert.Equal(t, "MI", rep.State)
	assert.Equal(t, "12", rep.District)
	assert.Equal(t, "House", rep.Chamber)
	require.Len(t, rep.Terms, 2)
	assert.Equal(t, 2019, rep.Terms[0].StartYear)
}

func TestNormalizeMember_AtLarge(t *testing.T) {
	m := CongressMember{
		BioguideID: "H001096",
		FirstName:  "Harriet",
		LastName:   "Hageman",
		Terms: []CongressTerm{
			{Chamber: "House of Representatives", StartYear: 2023, StateCode: "WY"},
		},
	}

	rep, err := NormalizeMember(m)
	require.NoError(t, err)
	assert.Equal(t, "Harriet Hageman", rep.Name)
	assert.Equal(t, AtLargeDistrict, rep.District)
}

func TestNormalizeMember_RequiresID(t *testing.T) {
	_, err := NormalizeMember(CongressMember{FirstName: "Nobody"})
	var normErr *NormalizationError
	assert.ErrorAs(t, err, &normErr)
}

func TestNormalizeBills(t *testing.T) {
	items := []CongressLegislation{
		{Congress: 118, Type: "HR", Number: "10", Title: "Older", IntroducedDate: "2023-02-01"},
		{Congress: 118, Number: "", Title: "amendment"},
		{Congress: 118, Type: "HRES", Number: "20", Title: "Newer", IntroducedDate: "2024-03-01", PolicyArea: congressPolicyArea{Name: "Health"}},
	}

	bills := NormalizeBills(items, model.RelationshipSponsor)
	require.Len(t, bills, 2)
	assert.Equal(t, "118-hres-20", bills[0].ID)
	assert.Equal(t, "Health", bills[0].PolicyArea)
	assert.Equal(t, model.RelationshipSponsor, bills[1].Relationship)
}

func TestNormalizeCommittee(t *testing.T) {
	var c CongressCommittee
	require.NoError(t, json.Unmarshal([]byte(`{
		"systemCode": "hsag00",
		"type": "Standing",
		"history": [{"officialName": "Committee on Agriculture"}],
		"subcommittees": [
			{"name": "Livestock, Dairy, and Poultry", "systemCode": "hsag29"},
			{"name": "General Farm Commodities", "systemCode": "hsag16"}
		]
	}`), &c))

	committee, err := NormalizeCommittee(c)
	require.NoError(t, err)
	assert.Equal(t, "HSAG", committee.Code)
	assert.Equal(t, "House", committee.Chamber)
	assert.Equal(t, "Committee on Agriculture", committee.Name)
	require.Len(t, committee.Subcommittees, 2)
	assert.Equal(t, "HSAG16", committee.Subcommittees[0].Code)
	assert.False(t, committee.IsSubcommittee)
}

func TestNormalizeVotePositions(t *testing.T) {
	votes := []HouseVote{
		{Congress: 119, SessionNumber: 1, RollCallNumber: 10, StartDate: "2025-02-01T10:00:00Z", LegislationType: "HR", LegislationNumber: "1"},
		{Congress: 119, SessionNumber: 1, RollCallNumber: 11, StartDate: "2025-02-02T10:00:00Z"},
		{Congress: 119, SessionNumber: 1, RollCallNumber: 12, StartDate: "2025-02-03T10:00:00Z"},
	}

	out := NormalizeVotePositions(votes, map[int]string{10: "Aye", 12: "No"})
	require.Len(t, out, 2)
	assert.Equal(t, 12, out[0].RollCall)
	assert.Equal(t, "Nay", out[0].Position)
	assert.Equal(t, "Yea", out[1].Position)
	assert.Equal(t, "HR 1", out[1].Legislation)
}

func TestNormalizeCandidateTotals(t *testing.T) {
	candidate := FECCandidate{CandidateID: "H8MI13250", Name: "TLAIB, RASHIDA"}
	totals := []FECTotals{
		{Cycle: 2022, Receipts: floatPtr(1)},
		{Cycle: 2024, Receipts: floatPtr(1000), IndividualContributions: floatPtr(900), PACContributions: nil},
	}

	summary := NormalizeCandidateTotals(candidate, totals, 2024)
	assert.Equal(t, 1000.0, summary.Receipts)
	assert.Equal(t, 90.0, summary.IndividualPercent)
	assert.Equal(t, 0.0, summary.PACPercent)

	empty := NormalizeCandidateTotals(candidate, nil, 2026)
	assert.Equal(t, 2026, empty.Cycle)
	assert.Equal(t, 0.0, empty.Receipts)
}

func TestNormalizeLegislators(t *testing.T) {
	var people []OpenStatesPerson
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": "b", "name": "B", "party": "Republican", "current_role": {"org_classification": "lower", "district": "10"}},
		{"id": "a", "name": "A", "party": "Democratic", "current_role": {"org_classification": "lower", "district": "9"}},
		{"id": "c", "name": "C", "party": "Democratic", "current_role": {"org_classification": "upper", "district": "1"}},
		{"id": "d", "name": "Former"},
		{"id": "a", "name": "A", "current_role": {"org_classification": "lower", "district": "9"}}
	]`), &people))

	out := NormalizeLegislators(people)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestNormalizeArticles(t *testing.T) {
	articles := []GDELTArticle{
		{URL: "https://a.example/1", Title: "One", SeenDate: "20250101T120000Z"},
		{URL: "https://a.example/2", Title: "Two", SeenDate: "20250102T120000Z"},
		{URL: "https://a.example/1", Title: "One again", SeenDate: "20250101T120000Z"},
		{URL: "", Title: "No URL"},
	}

	out := NormalizeArticles(articles)
	require.Len(t, out, 2)
	assert.Equal(t, "https://a.example/2", out[0].URL)
	assert.Equal(t, "2025-01-02T12:00:00Z", out[0].SeenDate)
}

func TestNormalizeSpending(t *testing.T) {
	rows := []GeographySpending{
		{ShapeCode: "2612", AggregatedAmount: floatPtr(1500000.456), Population: intPtr(750000)},
	}
	s := NormalizeSpending(rows, 2024)
	assert.Equal(t, 1500000.46, s.TotalObligations)
	assert.Equal(t, 2.0, s.PerCapita)

	empty := NormalizeSpending(nil, 2024)
	assert.Equal(t, 0.0, empty.PerCapita)
}

// Normalizing the same payload twice must give byte-identical records.
func TestNormalizers_Idempotent(t *testing.T) {
	same := func(t *testing.T, a, b any) {
		t.Helper()
		ja, err := json.Marshal(a)
		require.NoError(t, err)
		jb, err := json.Marshal(b)
		require.NoError(t, err)
		assert.Equal(t, string(ja), string(jb))
	}

	t.Run("member", func(t *testing.T) {
		a, _ := NormalizeMember(memberFixture())
		b, _ := NormalizeMember(memberFixture())
		same(t, a, b)
	})

	t.Run("demographics", func(t *testing.T) {
		a, _ := NormalizeDemographics(censusFixture(mi12...))
		b, _ := NormalizeDemographics(censusFixture(mi12...))
		same(t, a, b)
	})

	t.Run("legislators", func(t *testing.T) {
		people := []OpenStatesPerson{{ID: "x", Name: "X"}, {ID: "y", Name: "Y"}}
		same(t, NormalizeLegislators(people), NormalizeLegislators(people))
	})

	t.Run("articles", func(t *testing.T) {
		articles := []GDELTArticle{
			{URL: "u2", Title: "b", SeenDate: "20250101T000000Z"},
			{URL: "u1", Title: "a", SeenDate: "20250101T000000Z"},
		}
		same(t, NormalizeArticles(articles), NormalizeArticles(articles))
	})

	t.Run("graph", func(t *testing.T) {
		catalog, err := LoadCommitteeCatalog()
		require.NoError(t, err)
		rep := model.Representative{BioguideID: "T000481", Name: "Rashida Tlaib", Chamber: "House"}
		bills := NormalizeBills([]CongressLegislation{
			{Congress: 118, Type: "HR", Number: "1", PolicyArea: congressPolicyArea{Name: "Health"}},
			{Congress: 118, Type: "HR", Number: "2", PolicyArea: congressPolicyArea{Name: "Taxation"}},
		}, model.RelationshipSponsor)
		same(t, BuildConnectionGraph(rep, bills, catalog), BuildConnectionGraph(rep, bills, catalog))
	})
}
