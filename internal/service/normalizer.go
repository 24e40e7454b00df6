package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jjenkins/civiq/internal/model"
)

// Percent returns subset as a percentage of total, rounded to one decimal.
// A zero total yields 0.
func Percent(subset, total float64) float64 {
	if total == 0 {
		return 0
	}
	return round(subset/total*100, 1)
}

// DiversityIndex is the Simpson diversity of the group counts, scaled to
// 0-100: the chance two random residents belong to different groups.
func DiversityIndex(groups []float64, total float64) float64 {
	if total <= 0 {
		return 0
	}

	var sumSquares float64
	for _, g := range groups {
		p := g / total
		sumSquares += p * p
	}

	return round((1-sumSquares)*100, 1)
}

func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// censusValue parses a Census cell. Null cells and the negative
// annotation sentinels (-666666666 and friends) read as 0.
func censusValue(cell *string) float64 {
	if cell == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*cell), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// NormalizeDemographics converts the first data row of an ACS table
func NormalizeDemographics(table CensusTable) (model.DemographicData, error) {
	if len(table) < 2 {
		return model.DemographicData{}, &NormalizationError{Field: "census table", Reason: "no data row"}
	}

	header, row := table[0], table[1]
	cols := make(map[string]*string, len(header))
	for i, h := range header {
		if h == nil || i >= len(row) {
			continue
		}
		cols[*h] = row[i]
	}

	popCell, ok := cols[varPopulation]
	if !ok || popCell == nil {
		return model.DemographicData{}, &NormalizationError{Field: varPopulation, Reason: "population is missing"}
	}

	population := censusValue(popCell)
	white := censusValue(cols[varWhite])
	black := censusValue(cols[varBlack])
	asian := censusValue(cols[varAsian])
	hispanic := censusValue(cols[varHispanic])
	other := math.Max(0, population-white-black-asian-hispanic)

	return model.DemographicData{
		Population:       int(population),
		MedianIncome:     int(censusValue(cols[varMedianIncome])),
		MedianAge:        round(censusValue(cols[varMedianAge]), 1),
		WhitePercent:     Percent(white, population),
		BlackPercent:     Percent(black, population),
		AsianPercent:     Percent(asian, population),
		HispanicPercent:  Percent(hispanic, population),
		BachelorsPercent: Percent(censusValue(cols[varBachelors]), censusValue(cols[varEducationTotal])),
		PovertyPercent:   Percent(censusValue(cols[varPoverty]), censusValue(cols[varPovertyTotal])),
		DiversityIndex:   DiversityIndex([]float64{white, black, asian, hispanic, other}, population),
	}, nil
}

// CensusName returns the NAME column of an ACS table, if requested
func CensusName(table CensusTable) string {
	if len(table) < 2 {
		return ""
	}
	for i, h := range table[0] {
		if h != nil && *h == "NAME" && i < len(table[1]) {
			return deref(table[1][i])
		}
	}
	return ""
}

func normalizeChamber(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "house"):
		return "House"
	case strings.HasPrefix(lower, "senate"):
		return "Senate"
	case strings.HasPrefix(lower, "joint"):
		return "Joint"
	}
	return raw
}

func districtString(d *int) string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(*d)
}

// NormalizeMember converts a Congress.gov member record
func NormalizeMember(m CongressMember) (model.Representative, error) {
	if m.BioguideID == "" {
		return model.Representative{}, &NormalizationError{Field: "bioguideId", Reason: "member has no id"}
	}

	terms := make([]model.Term, 0, len(m.Terms))
	for _, t := range m.Terms {
		terms = append(terms, model.Term{
			Chamber:   normalizeChamber(t.Chamber),
			Congress:  t.Congress,
			StartYear: t.StartYear,
			EndYear:   t.EndYear,
			State:     t.StateCode,
			District:  districtString(t.District),
		})
	}
	sort.SliceStable(terms, func(i, j int) bool {
		if terms[i].StartYear != terms[j].StartYear {
			return terms[i].StartYear < terms[j].StartYear
		}
		return terms[i].Congress < terms[j].Congress
	})

	rep := model.Representative{
		BioguideID:    m.BioguideID,
		Name:          m.DirectOrderName,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		BirthYear:     m.BirthYear,
		ImageURL:      m.Depiction.ImageURL,
		OfficialURL:   m.OfficialURL,
		Phone:         m.Address.PhoneNumber,
		OfficeAddress: m.Address.OfficeAddress,
		CurrentMember: m.CurrentMember,
		Terms:         terms,
	}
	if rep.Name == "" {
		rep.Name = strings.TrimSpace(m.FirstName + " " + m.LastName)
	}

	// Latest party affiliation wins
	latestParty := -1
	for _, p := range m.PartyHistory {
		if p.StartYear >= latestParty {
			latestParty = p.StartYear
			rep.Party = p.PartyName
		}
	}

	district := districtString(m.District)
	if len(terms) > 0 {
		last := terms[len(terms)-1]
		rep.Chamber = last.Chamber
		rep.State = last.State
		if last.District != "" {
			district = last.District
		}
	}
	if rep.State == "" {
		rep.State, _ = StateFromName(m.State)
	}

	if rep.Chamber == "House" {
		code, err := NormalizeStateDistrict(rep.State, district)
		if err == nil {
			rep.District = code
		}
	}

	return rep, nil
}

// NormalizeMemberSummary converts a member from a list endpoint. Names come
// as "Last, First".
func NormalizeMemberSummary(s CongressMemberSummary, state, district string) model.Representative {
	name := s.Name
	if last, first, ok := strings.Cut(s.Name, ", "); ok {
		name = first + " " + last
	}

	rep := model.Representative{
		BioguideID:    s.BioguideID,
		Name:          name,
		Party:         s.PartyName,
		State:         strings.ToUpper(state),
		District:      district,
		Chamber:       "House",
		ImageURL:      s.Depiction.ImageURL,
		CurrentMember: true,
		Terms:         []model.Term{},
	}
	for _, t := range s.Terms.Item {
		rep.Terms = append(rep.Terms, model.Term{
			Chamber:   normalizeChamber(t.Chamber),
			StartYear: t.StartYear,
			EndYear:   t.EndYear,
		})
	}
	sort.SliceStable(rep.Terms, func(i, j int) bool {
		return rep.Terms[i].StartYear < rep.Terms[j].StartYear
	})

	return rep
}

// BillID formats a bill identifier as "118-hr-1234"
func BillID(congress int, billType, number string) string {
	return fmt.Sprintf("%d-%s-%s", congress, strings.ToLower(billType), number)
}

// NormalizeBills converts sponsored or cosponsored legislation. Amendments,
// which carry no bill type, are dropped. Bills are ordered newest first.
func NormalizeBills(items []CongressLegislation, relationship string) []model.Bill {
	bills := make([]model.Bill, 0, len(items))
	for _, item := range items {
		if item.Type == "" || item.Number == "" {
			continue
		}
		bills = append(bills, model.Bill{
			ID:               BillID(item.Congress, item.Type, item.Number),
			Congress:         item.Congress,
			Type:             strings.ToUpper(item.Type),
			Number:           item.Number,
			Title:            item.Title,
			IntroducedDate:   item.IntroducedDate,
			LatestAction:     item.LatestAction.Text,
			LatestActionDate: item.LatestAction.ActionDate,
			PolicyArea:       item.PolicyArea.Name,
			Relationship:     relationship,
		})
	}
	sortBills(bills)
	return bills
}

func sortBills(bills []model.Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		if bills[i].IntroducedDate != bills[j].IntroducedDate {
			return bills[i].IntroducedDate > bills[j].IntroducedDate
		}
		if bills[i].ID != bills[j].ID {
			return bills[i].ID < bills[j].ID
		}
		return bills[i].Relationship < bills[j].Relationship
	})
}

// NormalizeBill converts a Congress.gov bill record
func NormalizeBill(b CongressBill) model.BillDetail {
	detail := model.BillDetail{
		Bill: model.Bill{
			ID:               BillID(b.Congress, b.Type, b.Number),
			Congress:         b.Congress,
			Type:             strings.ToUpper(b.Type),
			Number:           b.Number,
			Title:            b.Title,
			IntroducedDate:   b.IntroducedDate,
			LatestAction:     b.LatestAction.Text,
			LatestActionDate: b.LatestAction.ActionDate,
			PolicyArea:       b.PolicyArea.Name,
		},
		Sponsors:       make([]model.BillSponsor, 0, len(b.Sponsors)),
		CosponsorCount: b.Cosponsors.Count,
		TextVersions:   []model.BillTextVersion{},
	}
	for _, s := range b.Sponsors {
		detail.Sponsors = append(detail.Sponsors, model.BillSponsor{
			BioguideID: s.BioguideID,
			Name:       s.FullName,
			Party:      s.Party,
			State:      s.State,
		})
	}
	return detail
}

// NormalizeBillText converts a GovInfo package summary
func NormalizeBillText(pkg GovInfoPackage) model.BillTextVersion {
	pages, _ := strconv.Atoi(pkg.Pages)
	return model.BillTextVersion{
		PackageID:  pkg.PackageID,
		Title:      pkg.Title,
		DateIssued: pkg.DateIssued,
		Pages:      pages,
		PDFURL:     pkg.Download.PDFLink,
	}
}

// canonicalCommitteeCode upper-cases a code and drops the "00" suffix
// Congress.gov gives full committees.
func canonicalCommitteeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) == 6 && strings.HasSuffix(code, "00") {
		return code[:4]
	}
	return code
}

func chamberFromCode(code string) string {
	if code == "" {
		return ""
	}
	switch strings.ToUpper(code[:1]) {
	case "H":
		return "House"
	case "S":
		return "Senate"
	case "J":
		return "Joint"
	}
	return ""
}

// NormalizeCommittee converts a Congress.gov committee record
func NormalizeCommittee(c CongressCommittee) (model.Committee, error) {
	if c.SystemCode == "" {
		return model.Committee{}, &NormalizationError{Field: "systemCode", Reason: "committee has no code"}
	}

	name := c.Name
	for _, h := range c.History {
		if name != "" {
			break
		}
		name = h.OfficialName
		if name == "" {
			name = h.LibraryOfCongressName
		}
	}
	if name == "" {
		return model.Committee{}, &NormalizationError{Field: "name", Value: c.SystemCode, Reason: "committee has no name"}
	}

	code := canonicalCommitteeCode(c.SystemCode)
	committee := model.Committee{
		Code:          code,
		Name:          name,
		Chamber:       chamberFromCode(code),
		Type:          c.Type,
		URL:           c.URL,
		Subcommittees: make([]model.Subcommittee, 0, len(c.Subcommittees)),
	}
	if c.Parent != nil && c.Parent.SystemCode != "" {
		committee.ParentCode = canonicalCommitteeCode(c.Parent.SystemCode)
		committee.IsSubcommittee = true
	}
	for _, s := range c.Subcommittees {
		committee.Subcommittees = append(committee.Subcommittees, model.Subcommittee{
			Code: canonicalCommitteeCode(s.SystemCode),
			Name: s.Name,
		})
	}
	sort.Slice(committee.Subcommittees, func(i, j int) bool {
		return committee.Subcommittees[i].Code < committee.Subcommittees[j].Code
	})

	return committee, nil
}

func normalizePosition(cast string) string {
	switch strings.ToLower(strings.TrimSpace(cast)) {
	case "yea", "aye", "yes":
		return "Yea"
	case "nay", "no":
		return "Nay"
	case "present":
		return "Present"
	case "not voting", "":
		return "Not Voting"
	}
	return cast
}

// NormalizeVotePositions joins roll calls with a member's position on each.
// Roll calls without a recorded position are omitted. Newest first.
func NormalizeVotePositions(votes []HouseVote, positions map[int]string) []model.Vote {
	out := make([]model.Vote, 0, len(positions))
	for _, v := range votes {
		cast, ok := positions[v.RollCallNumber]
		if !ok {
			continue
		}
		vote := model.Vote{
			Congress: v.Congress,
			Session:  v.SessionNumber,
			RollCall: v.RollCallNumber,
			Date:     v.StartDate,
			Question: v.VoteQuestion,
			Result:   v.Result,
			Position: normalizePosition(cast),
		}
		if v.LegislationType != "" && v.LegislationNumber != "" {
			vote.Legislation = strings.ToUpper(v.LegislationType) + " " + v.LegislationNumber
		}
		out = append(out, vote)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].RollCall > out[j].RollCall
	})
	return out
}

// NormalizeCandidateTotals converts FEC totals for the requested cycle.
// Missing amounts read as 0.
func NormalizeCandidateTotals(c FECCandidate, totals []FECTotals, cycle int) model.FinanceSummary {
	summary := model.FinanceSummary{
		CandidateID:   c.CandidateID,
		CandidateName: c.Name,
		Cycle:         cycle,
	}

	var row *FECTotals
	for i := range totals {
		if totals[i].Cycle == cycle {
			row = &totals[i]
			break
		}
	}
	if row == nil {
		return summary
	}

	summary.Receipts = deref(row.Receipts)
	summary.Disbursements = deref(row.Disbursements)
	summary.CashOnHand = deref(row.CashOnHand)
	summary.Debts = deref(row.Debts)
	summary.IndividualContributions = deref(row.IndividualContributions)
	summary.PACContributions = deref(row.PACContributions)
	summary.IndividualPercent = Percent(summary.IndividualContributions, summary.Receipts)
	summary.PACPercent = Percent(summary.PACContributions, summary.Receipts)
	summary.CoverageEndDate = row.CoverageEndDate

	return summary
}

// lessDistrict orders numeric districts numerically, others by name
func lessDistrict(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// NormalizeLegislators converts OpenStates people. People without a current
// role are dropped.
func NormalizeLegislators(people []OpenStatesPerson) []model.StateLegislator {
	out := make([]model.StateLegislator, 0, len(people))
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		if p.CurrentRole == nil || p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, model.StateLegislator{
			ID:       p.ID,
			Name:     p.Name,
			Party:    p.Party,
			Chamber:  p.CurrentRole.OrgClassification,
			District: p.CurrentRole.District,
			ImageURL: p.Image,
			Email:    p.Email,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Chamber != out[j].Chamber {
			return out[i].Chamber < out[j].Chamber
		}
		if out[i].District != out[j].District {
			return lessDistrict(out[i].District, out[j].District)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// gdeltTimeLayout is the seendate format, e.g. 20240115T120000Z
const gdeltTimeLayout = "20060102T150405Z"

// NormalizeArticles converts GDELT articles, dropping duplicates and rows
// without a URL or title. Newest first.
func NormalizeArticles(articles []GDELTArticle) []model.NewsArticle {
	out := make([]model.NewsArticle, 0, len(articles))
	seen := make(map[string]bool, len(articles))
	for _, a := range articles {
		if a.URL == "" || a.Title == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true

		seenDate := a.SeenDate
		if t, err := time.Parse(gdeltTimeLayout, a.SeenDate); err == nil {
			seenDate = t.UTC().Format(time.RFC3339)
		}

		out = append(out, model.NewsArticle{
			Title:         strings.TrimSpace(a.Title),
			URL:           a.URL,
			Domain:        a.Domain,
			SeenDate:      seenDate,
			Language:      a.Language,
			SourceCountry: a.SourceCountry,
			ImageURL:      a.SocialImage,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SeenDate != out[j].SeenDate {
			return out[i].SeenDate > out[j].SeenDate
		}
		return out[i].URL < out[j].URL
	})
	return out
}

// NormalizeSpending totals spending_by_geography rows for one fiscal year
func NormalizeSpending(rows []GeographySpending, fiscalYear int) model.SpendingSummary {
	summary := model.SpendingSummary{FiscalYear: fiscalYear}
	for _, r := range rows {
		summary.TotalObligations += deref(r.AggregatedAmount)
		if summary.Population == 0 {
			summary.Population = deref(r.Population)
		}
	}
	summary.TotalObligations = round(summary.TotalObligations, 2)
	if summary.Population > 0 {
		summary.PerCapita = round(summary.TotalObligations/float64(summary.Population), 2)
	}
	return summary
}
