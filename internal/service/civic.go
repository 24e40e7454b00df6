package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/model"
)

// Data source labels reported in payload metadata
const (
	dataSourceCongress    = "congress.gov"
	dataSourceFEC         = "fec.gov"
	dataSourceCensus      = "census.gov ACS5"
	dataSourceOpenStates  = "openstates.org"
	dataSourceUSASpending = "usaspending.gov"
	dataSourceGovInfo     = "govinfo.gov"
	dataSourceGDELT       = "gdeltproject.org"
	dataSourceZip         = "census.gov ZCTA relationship file"
	dataSourceCatalog     = "committee catalog"
)

const (
	voteLookupWorkers   = 4
	connectionBillLimit = 20
)

//go:generate mockgen -source=civic.go -destination=zip_lookup_mock.go -package=service

// ZipLookup resolves ZIP codes to congressional districts
type ZipLookup interface {
	LookupZip(ctx context.Context, zip string) ([]model.ZipDistrict, error)
}

// Clients bundles one client per upstream
type Clients struct {
	Congress    *CongressClient
	FEC         *FECClient
	Census      *CensusClient
	OpenStates  *OpenStatesClient
	USASpending *USASpendingClient
	GovInfo     *GovInfoClient
	GDELT       *GDELTClient
}

// Civic assembles API payloads from the upstream clients. Methods fetch and
// normalize; caching is the caller's concern.
type Civic struct {
	clients Clients
	catalog *CommitteeCatalog
	zips    ZipLookup
	now     func() time.Time
}

// CivicOption configures a Civic
type CivicOption func(*Civic)

// WithNow replaces time.Now, for tests
func WithNow(now func() time.Time) CivicOption {
	return func(c *Civic) {
		c.now = now
	}
}

// NewCivic creates a Civic. zips may be nil when no database is configured.
func NewCivic(clients Clients, catalog *CommitteeCatalog, zips ZipLookup, opts ...CivicOption) *Civic {
	c := &Civic{
		clients: clients,
		catalog: catalog,
		zips:    zips,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Civic) metadata(sources ...string) model.Metadata {
	return model.Metadata{
		DataSource:  strings.Join(sources, ", "),
		LastUpdated: c.now().UTC().Truncate(time.Second),
		Cacheable:   true,
	}
}

// partial records a failed facet on the payload metadata
func partial(meta *model.Metadata, source string, err error) {
	logging.Warn("Upstream facet unavailable",
		zap.String("source", source),
		zap.Error(err))
	meta.MarkUnavailable(source)
}

func isConfigurationError(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.NotFound()
}

// CurrentCongress returns the Congress and session in session at t
func CurrentCongress(t time.Time) (congress, session int) {
	year := t.Year()
	congress = (year-1789)/2 + 1
	session = 1
	if year%2 == 0 {
		session = 2
	}
	return congress, session
}

// CurrentCycle returns the two-year FEC election cycle containing t
func CurrentCycle(t time.Time) int {
	year := t.Year()
	if year%2 == 1 {
		year++
	}
	return year
}

// LatestFiscalYear returns the most recent completed federal fiscal year
func LatestFiscalYear(t time.Time) int {
	if t.Month() >= time.October {
		return t.Year()
	}
	return t.Year() - 1
}

func (c *Civic) member(ctx context.Context, bioguideID string) (model.Representative, error) {
	m, err := c.clients.Congress.FetchMember(ctx, bioguideID)
	if err != nil {
		if isNotFound(err) {
			return model.Representative{}, &NotFoundError{Resource: "representative", ID: bioguideID}
		}
		return model.Representative{}, err
	}
	return NormalizeMember(*m)
}

// Representative builds a member profile
func (c *Civic) Representative(ctx context.Context, bioguideID string) (model.RepresentativeResponse, error) {
	rep, err := c.member(ctx, bioguideID)
	if err != nil {
		return model.RepresentativeResponse{}, err
	}

	return model.RepresentativeResponse{
		Representative: rep,
		Envelope:       model.Envelope{Metadata: c.metadata(dataSourceCongress)},
	}, nil
}

// Votes lists a member's positions on recent House roll calls. Upstream
// failures yield the positions that could be read rather than an error; a
// missing API key is still an error.
func (c *Civic) Votes(ctx context.Context, bioguideID string, limit int) (model.VotesResponse, error) {
	resp := model.VotesResponse{
		BioguideID: bioguideID,
		Votes:      []model.Vote{},
		Envelope:   model.Envelope{Metadata: c.metadata(dataSourceCongress)},
	}

	votes, positions, err := c.memberPositions(ctx, bioguideID, limit)
	if isConfigurationError(err) {
		return resp, err
	}
	if err != nil {
		partial(&resp.Metadata, dataSourceCongress, err)
	}

	resp.Votes = NormalizeVotePositions(votes, positions)
	return resp, nil
}

type votePosition struct {
	rollCall int
	cast     string
	found    bool
	err      error
}

// memberPositions looks up the member's position on each recent roll call.
// A failed lookup drops that roll call only; the first such error is
// returned alongside the positions that were read.
func (c *Civic) memberPositions(ctx context.Context, bioguideID string, limit int) ([]HouseVote, map[int]string, error) {
	congress, session := CurrentCongress(c.now())

	votes, err := c.clients.Congress.FetchRecentHouseVotes(ctx, congress, session, limit)
	if err != nil {
		return nil, nil, err
	}

	p := pool.NewWithResults[votePosition]().WithMaxGoroutines(voteLookupWorkers)
	for _, v := range votes {
		p.Go(func() votePosition {
			members, err := c.clients.Congress.FetchHouseVoteMembers(ctx, v.Congress, v.SessionNumber, v.RollCallNumber)
			if err != nil {
				return votePosition{rollCall: v.RollCallNumber, err: err}
			}
			for _, m := range members {
				if strings.EqualFold(m.BioguideID, bioguideID) {
					return votePosition{rollCall: v.RollCallNumber, cast: m.VoteCast, found: true}
				}
			}
			return votePosition{rollCall: v.RollCallNumber}
		})
	}

	var (
		positions = make(map[int]string, len(votes))
		failed    int
		firstErr  error
	)
	for _, r := range p.Wait() {
		switch {
		case r.err != nil:
			failed++
			if firstErr == nil {
				firstErr = r.err
			}
		case r.found:
			positions[r.rollCall] = r.cast
		}
	}
	if failed > 0 {
		logging.Warn("Roll call positions unavailable",
			zap.String("bioguideId", bioguideID),
			zap.Int("failed", failed),
			zap.Int("total", len(votes)))
	}
	return votes, positions, firstErr
}

// Bills lists sponsored and cosponsored legislation. One list failing
// leaves it empty; both failing is an error.
func (c *Civic) Bills(ctx context.Context, bioguideID string, limit int) (model.BillsResponse, error) {
	resp := model.BillsResponse{
		BioguideID: bioguideID,
		Bills:      []model.Bill{},
		Envelope:   model.Envelope{Metadata: c.metadata(dataSourceCongress)},
	}

	var (
		sponsored, cosponsored       []CongressLegislation
		sponsoredErr, cosponsoredErr error
		wg                           conc.WaitGroup
	)
	wg.Go(func() {
		sponsored, sponsoredErr = c.clients.Congress.FetchSponsoredLegislation(ctx, bioguideID, limit)
	})
	wg.Go(func() {
		cosponsored, cosponsoredErr = c.clients.Congress.FetchCosponsoredLegislation(ctx, bioguideID, limit)
	})
	wg.Wait()

	switch {
	case sponsoredErr != nil && cosponsoredErr != nil:
		if isNotFound(sponsoredErr) {
			return resp, &NotFoundError{Resource: "representative", ID: bioguideID}
		}
		return resp, sponsoredErr
	case sponsoredErr != nil:
		partial(&resp.Metadata, dataSourceCongress+" sponsored legislation", sponsoredErr)
	case cosponsoredErr != nil:
		partial(&resp.Metadata, dataSourceCongress+" cosponsored legislation", cosponsoredErr)
	}

	s := NormalizeBills(sponsored, model.RelationshipSponsor)
	cs := NormalizeBills(cosponsored, model.RelationshipCosponsor)
	resp.SponsoredCount = len(s)
	resp.CosponsoredCount = len(cs)
	resp.Bills = append(append(resp.Bills, s...), cs...)
	sortBills(resp.Bills)

	return resp, nil
}

// Finance looks the member up in FEC by name and state and returns the
// totals for cycle.
func (c *Civic) Finance(ctx context.Context, bioguideID string, cycle int) (model.FinanceResponse, error) {
	if cycle == 0 {
		cycle = CurrentCycle(c.now())
	}

	resp := model.FinanceResponse{
		BioguideID: bioguideID,
		Finance:    model.FinanceSummary{Cycle: cycle},
		Envelope:   model.Envelope{Metadata: c.metadata(dataSourceCongress, dataSourceFEC)},
	}

	rep, err := c.member(ctx, bioguideID)
	if err != nil {
		return resp, err
	}

	office := "H"
	if rep.Chamber == "Senate" {
		office = "S"
	}

	candidates, err := c.clients.FEC.SearchCandidates(ctx, rep.LastName, rep.State, office)
	if err != nil {
		return resp, err
	}

	candidate, ok := matchCandidate(candidates, rep)
	if !ok {
		return resp, &NotFoundError{Resource: "FEC candidate", ID: bioguideID}
	}

	totals, err := c.clients.FEC.FetchCandidateTotals(ctx, candidate.CandidateID, cycle)
	if err != nil {
		return resp, err
	}

	resp.Finance = NormalizeCandidateTotals(candidate, totals, cycle)
	if len(totals) == 0 {
		resp.Metadata.Flag(fmt.Sprintf("no FEC totals reported for %d", cycle))
	}
	return resp, nil
}

// matchCandidate picks the FEC candidate for a member. FEC names read
// "LAST, FIRST"; House candidates must also match the district.
func matchCandidate(candidates []FECCandidate, rep model.Representative) (FECCandidate, bool) {
	last := strings.ToUpper(rep.LastName)

	var matches []FECCandidate
	for _, cand := range candidates {
		if !strings.HasPrefix(strings.ToUpper(cand.Name), last) {
			continue
		}
		if rep.Chamber == "House" && rep.District != "" && cand.District != "" {
			d, err := NormalizeStateDistrict(rep.State, cand.District)
			if err != nil || d != rep.District {
				continue
			}
		}
		matches = append(matches, cand)
	}
	if len(matches) == 0 {
		return FECCandidate{}, false
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CandidateID < matches[j].CandidateID
	})
	return matches[0], true
}

// News searches recent coverage of a member. A GDELT failure leaves the
// list empty.
func (c *Civic) News(ctx context.Context, bioguideID string, limit int) (model.NewsResponse, error) {
	resp := model.NewsResponse{
		BioguideID: bioguideID,
		Articles:   []model.NewsArticle{},
		Envelope:   model.Envelope{Metadata: c.metadata(dataSourceCongress, dataSourceGDELT)},
	}

	rep, err := c.member(ctx, bioguideID)
	if err != nil {
		return resp, err
	}

	phrase := rep.Name
	if rep.FirstName != "" && rep.LastName != "" {
		phrase = rep.FirstName + " " + rep.LastName
	}

	articles, err := c.clients.GDELT.SearchArticles(ctx, phrase, limit)
	if err != nil {
		partial(&resp.Metadata, dataSourceGDELT, err)
		return resp, nil
	}

	resp.Articles = NormalizeArticles(articles)
	if len(resp.Articles) > limit {
		resp.Articles = resp.Articles[:limit]
	}
	return resp, nil
}

// Connections links a member to recent sponsored bills, their policy areas
// and the committees of the member's chamber with jurisdiction over them.
func (c *Civic) Connections(ctx context.Context, bioguideID string) (model.ConnectionsResponse, error) {
	resp := model.ConnectionsResponse{
		BioguideID:      bioguideID,
		ConnectionGraph: model.ConnectionGraph{Nodes: []model.ConnectionNode{}, Edges: []model.ConnectionEdge{}},
		Envelope:        model.Envelope{Metadata: c.metadata(dataSourceCongress, dataSourceCatalog)},
	}

	var (
		rep       model.Representative
		repErr    error
		sponsored []CongressLegislation
		billsErr  error
		wg        conc.WaitGroup
	)
	wg.Go(func() {
		rep, repErr = c.member(ctx, bioguideID)
	})
	wg.Go(func() {
		sponsored, billsErr = c.clients.Congress.FetchSponsoredLegislation(ctx, bioguideID, connectionBillLimit)
	})
	wg.Wait()

	if repErr != nil {
		return resp, repErr
	}
	if billsErr != nil {
		partial(&resp.Metadata, dataSourceCongress+" sponsored legislation", billsErr)
	}

	resp.ConnectionGraph = BuildConnectionGraph(rep, NormalizeBills(sponsored, model.RelationshipSponsor), c.catalog)
	return resp, nil
}

// BuildConnectionGraph assembles the graph with nodes and edges sorted
func BuildConnectionGraph(rep model.Representative, bills []model.Bill, catalog *CommitteeCatalog) model.ConnectionGraph {
	nodes := map[string]model.ConnectionNode{}
	edges := map[model.ConnectionEdge]bool{}

	repID := "rep:" + rep.BioguideID
	nodes[repID] = model.ConnectionNode{ID: repID, Label: rep.Name, Type: model.NodeRepresentative}

	for _, b := range bills {
		billID := "bill:" + b.ID
		label := strings.ToUpper(b.Type) + " " + b.Number
		nodes[billID] = model.ConnectionNode{ID: billID, Label: label, Type: model.NodeBill}
		edges[model.ConnectionEdge{Source: repID, Target: billID, Relationship: b.Relationship}] = true

		if b.PolicyArea == "" {
			continue
		}
		areaID := "policy:" + b.PolicyArea
		nodes[areaID] = model.ConnectionNode{ID: areaID, Label: b.PolicyArea, Type: model.NodePolicyArea}
		edges[model.ConnectionEdge{Source: billID, Target: areaID, Relationship: "policyArea"}] = true

		if catalog == nil {
			continue
		}
		for _, committee := range catalog.ForPolicyArea(rep.Chamber, b.PolicyArea) {
			committeeID := "committee:" + committee.Code
			nodes[committeeID] = model.ConnectionNode{ID: committeeID, Label: committee.Name, Type: model.NodeCommittee}
			edges[model.ConnectionEdge{Source: areaID, Target: committeeID, Relationship: "jurisdiction"}] = true
		}
	}

	graph := model.ConnectionGraph{
		Nodes: make([]model.ConnectionNode, 0, len(nodes)),
		Edges: make([]model.ConnectionEdge, 0, len(edges)),
	}
	for _, n := range nodes {
		graph.Nodes = append(graph.Nodes, n)
	}
	for e := range edges {
		graph.Edges = append(graph.Edges, e)
	}

	sort.Slice(graph.Nodes, func(i, j int) bool { return graph.Nodes[i].ID < graph.Nodes[j].ID })
	sort.Slice(graph.Edges, func(i, j int) bool {
		a, b := graph.Edges[i], graph.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Relationship < b.Relationship
	})
	return graph
}

// District combines Census demographics with the current representative.
// Either facet may fail on its own; a district neither Census nor
// Congress.gov knows is not found.
func (c *Civic) District(ctx context.Context, state, district string) (model.DistrictResponse, error) {
	fips, _ := StateFIPS(state)
	resp := model.DistrictResponse{
		District: model.District{
			ID:        DistrictID(state, district),
			State:     state,
			District:  district,
			StateFIPS: fips,
			AtLarge:   IsAtLarge(state),
		},
		Envelope: model.Envelope{Metadata: c.metadata(dataSourceCensus, dataSourceCongress)},
	}

	var (
		table     CensusTable
		censusErr error
		members   []CongressMemberSummary
		memberErr error
		wg        conc.WaitGroup
	)
	wg.Go(func() {
		table, censusErr = c.clients.Census.FetchDistrictProfile(ctx, state, district)
	})
	wg.Go(func() {
		members, memberErr = c.clients.Congress.FetchMembersByDistrict(ctx, state, district)
	})
	wg.Wait()

	if isNotFound(censusErr) && (memberErr != nil || len(members) == 0) {
		return resp, &NotFoundError{Resource: "district", ID: resp.District.ID}
	}
	if censusErr != nil && memberErr != nil {
		return resp, censusErr
	}

	if censusErr != nil {
		partial(&resp.Metadata, dataSourceCensus, censusErr)
	} else {
		demographics, err := NormalizeDemographics(table)
		if err != nil {
			partial(&resp.Metadata, dataSourceCensus, err)
		} else {
			resp.District.Demographics = demographics
			resp.District.Name = CensusName(table)
		}
	}

	if memberErr != nil {
		partial(&resp.Metadata, dataSourceCongress, memberErr)
	} else if len(members) == 0 {
		resp.Metadata.Flag("no current representative found")
	} else {
		sort.Slice(members, func(i, j int) bool { return members[i].BioguideID < members[j].BioguideID })
		rep := NormalizeMemberSummary(members[0], state, district)
		resp.District.Representative = &rep
	}

	return resp, nil
}

// DistrictSpending returns federal obligations in a district for a fiscal
// year; zero selects the latest completed year.
func (c *Civic) DistrictSpending(ctx context.Context, state, district string, fiscalYear int) (model.SpendingResponse, error) {
	if fiscalYear == 0 {
		fiscalYear = LatestFiscalYear(c.now())
	}

	resp := model.SpendingResponse{
		DistrictID: DistrictID(state, district),
		Spending:   model.SpendingSummary{FiscalYear: fiscalYear},
		Envelope:   model.Envelope{Metadata: c.metadata(dataSourceUSASpending)},
	}

	rows, err := c.clients.USASpending.FetchDistrictSpending(ctx, state, district, fiscalYear)
	if err != nil {
		return resp, err
	}

	resp.Spending = NormalizeSpending(rows, fiscalYear)
	if len(rows) == 0 {
		resp.Metadata.Flag("no spending reported for district")
	}
	return resp, nil
}

// LookupZip resolves a ZIP code to every district it spans. The first
// district in order is the primary.
func (c *Civic) LookupZip(ctx context.Context, zip string) (model.DistrictLookupResponse, error) {
	resp := model.DistrictLookupResponse{
		Zip:       zip,
		Districts: []model.ZipDistrict{},
		Envelope:  model.Envelope{Metadata: c.metadata(dataSourceZip)},
	}

	if c.zips == nil {
		return resp, &ConfigurationError{Key: "DATABASE_URL"}
	}

	districts, err := c.zips.LookupZip(ctx, zip)
	if err != nil {
		return resp, err
	}
	if len(districts) == 0 {
		return resp, &NotFoundError{Resource: "zip", ID: zip}
	}

	sort.Slice(districts, func(i, j int) bool {
		if districts[i].State != districts[j].State {
			return districts[i].State < districts[j].State
		}
		return districts[i].District < districts[j].District
	})
	for _, d := range districts {
		if _, known := StateFIPS(d.State); !known {
			resp.Metadata.Flag("unrecognized state code " + d.State)
		}
	}

	resp.Districts = districts
	primary := districts[0]
	resp.Primary = &primary
	return resp, nil
}

// Committee returns committee metadata from Congress.gov, falling back to
// the catalog and then to the base committee of an unknown subcommittee.
func (c *Civic) Committee(ctx context.Context, code string) (model.CommitteeResponse, error) {
	code = canonicalCommitteeCode(code)
	resp := model.CommitteeResponse{
		Committee: model.Committee{Code: code, Subcommittees: []model.Subcommittee{}},
		Envelope:  model.Envelope{Metadata: c.metadata(dataSourceCongress)},
	}

	raw, err := c.clients.Congress.FetchCommittee(ctx, code)
	if err == nil {
		committee, normErr := NormalizeCommittee(*raw)
		if normErr == nil {
			resp.Committee = committee
			return resp, nil
		}
		err = normErr
	}

	if isConfigurationError(err) {
		return resp, err
	}
	if !isNotFound(err) {
		partial(&resp.Metadata, dataSourceCongress, err)
	}

	entry, fallback, ok := c.catalog.Resolve(code)
	if !ok {
		if isNotFound(err) {
			return resp, &NotFoundError{Resource: "committee", ID: code}
		}
		return resp, err
	}

	resp.Committee = entry.ToCommittee()
	resp.Metadata.DataSource = dataSourceCatalog
	if fallback {
		resp.Committee.FallbackFrom = code
		resp.Metadata.Flag(fmt.Sprintf("%s unknown; showing base committee %s", code, entry.Code))
	}
	return resp, nil
}

// StateLegislature lists sitting state legislators. chamber is "upper",
// "lower" or empty for both.
func (c *Civic) StateLegislature(ctx context.Context, state, chamber string) (model.StateLegislatureResponse, error) {
	resp := model.StateLegislatureResponse{
		State:       state,
		Chamber:     chamber,
		Legislators: []model.StateLegislator{},
		Envelope:    model.Envelope{Metadata: c.metadata(dataSourceOpenStates)},
	}

	people, err := c.clients.OpenStates.FetchLegislators(ctx, state, chamber)
	if err != nil {
		return resp, err
	}

	resp.Legislators = NormalizeLegislators(people)
	return resp, nil
}

// Bill combines Congress.gov bill data with the GovInfo text of the
// introduced version. Missing text is not an error.
func (c *Civic) Bill(ctx context.Context, congress int, billType, number string) (model.BillResponse, error) {
	id := BillID(congress, billType, number)
	resp := model.BillResponse{
		Bill: model.BillDetail{
			Bill:         model.Bill{ID: id, Congress: congress, Type: strings.ToUpper(billType), Number: number},
			Sponsors:     []model.BillSponsor{},
			TextVersions: []model.BillTextVersion{},
		},
		Envelope: model.Envelope{Metadata: c.metadata(dataSourceCongress, dataSourceGovInfo)},
	}

	var (
		bill    *CongressBill
		billErr error
		pkg     *GovInfoPackage
		pkgErr  error
		wg      conc.WaitGroup
	)
	wg.Go(func() {
		bill, billErr = c.clients.Congress.FetchBill(ctx, congress, billType, number)
	})
	wg.Go(func() {
		pkg, pkgErr = c.clients.GovInfo.FetchBillPackage(ctx, BillPackageID(congress, billType, number))
	})
	wg.Wait()

	if billErr != nil {
		if isNotFound(billErr) {
			return resp, &NotFoundError{Resource: "bill", ID: id}
		}
		return resp, billErr
	}

	resp.Bill = NormalizeBill(*bill)
	switch {
	case pkgErr == nil:
		resp.Bill.TextVersions = append(resp.Bill.TextVersions, NormalizeBillText(*pkg))
	case isNotFound(pkgErr):
		resp.Metadata.Flag("no published text")
	default:
		partial(&resp.Metadata, dataSourceGovInfo, pkgErr)
	}
	return resp, nil
}

// Sources reports which upstream integrations have credentials
func (c *Civic) Sources() map[string]bool {
	return map[string]bool{
		dataSourceCongress:    c.clients.Congress.Configured(),
		dataSourceFEC:         c.clients.FEC.Configured(),
		dataSourceOpenStates:  c.clients.OpenStates.Configured(),
		dataSourceCensus:      true,
		dataSourceUSASpending: true,
		dataSourceGovInfo:     true,
		dataSourceGDELT:       true,
		dataSourceZip:         c.zips != nil,
	}
}

// ParseBillID splits "118-hr-1234"
func ParseBillID(id string) (int, string, string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(id)), "-")
	if len(parts) != 3 {
		return 0, "", "", &NormalizationError{Field: "billId", Value: id, Reason: "expected CONGRESS-TYPE-NUMBER"}
	}

	congress, err := strconv.Atoi(parts[0])
	if err != nil || congress < 1 {
		return 0, "", "", &NormalizationError{Field: "billId", Value: id, Reason: "bad congress number"}
	}
	if !validBillTypes[parts[1]] {
		return 0, "", "", &NormalizationError{Field: "billId", Value: id, Reason: "unknown bill type"}
	}
	if n, err := strconv.Atoi(parts[2]); err != nil || n < 1 {
		return 0, "", "", &NormalizationError{Field: "billId", Value: id, Reason: "bad bill number"}
	}

	return congress, parts[1], parts[2], nil
}

var validBillTypes = map[string]bool{
	"hr": true, "s": true, "hjres": true, "sjres": true,
	"hconres": true, "sconres": true, "hres": true, "sres": true,
}
