package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const congressSource = "congress.gov"

// CongressClient handles communication with the Congress.gov v3 API
type CongressClient struct {
	baseURL string
	apiKey  string
	fetch   *fetcher
}

// NewCongressClient creates a new Congress.gov API client
func NewCongressClient(baseURL, apiKey string, opts HTTPOptions) *CongressClient {
	return &CongressClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		fetch:   newFetcher(congressSource, opts),
	}
}

// Configured reports whether an API key is set
func (c *CongressClient) Configured() bool {
	return c.apiKey != ""
}

type congressDepiction struct {
	ImageURL string `json:"imageUrl"`
}

type congressLatestAction struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
}

type congressPolicyArea struct {
	Name string `json:"name"`
}

type CongressTerm struct {
	Chamber    string `json:"chamber"`
	Congress   int    `json:"congress"`
	StartYear  int    `json:"startYear"`
	EndYear    int    `json:"endYear"`
	StateCode  string `json:"stateCode"`
	District   *int   `json:"district"`
	MemberType string `json:"memberType"`
}

// CongressMember is the /member/{bioguideId} payload
type CongressMember struct {
	BioguideID      string            `json:"bioguideId"`
	BirthYear       string            `json:"birthYear"`
	CurrentMember   bool              `json:"currentMember"`
	Depiction       congressDepiction `json:"depiction"`
	DirectOrderName string            `json:"directOrderName"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	OfficialURL     string            `json:"officialWebsiteUrl"`
	State           string            `json:"state"`
	District        *int              `json:"district"`
	PartyHistory    []struct {
		PartyName string `json:"partyName"`
		StartYear int    `json:"startYear"`
	} `json:"partyHistory"`
	Terms   []CongressTerm `json:"terms"`
	Address struct {
		OfficeAddress string `json:"officeAddress"`
		PhoneNumber   string `json:"phoneNumber"`
	} `json:"addressInformation"`
}

type memberResponse struct {
	Member CongressMember `json:"member"`
}

// CongressMemberSummary is the shorter shape of list endpoints
type CongressMemberSummary struct {
	BioguideID string            `json:"bioguideId"`
	Name       string            `json:"name"`
	PartyName  string            `json:"partyName"`
	State      string            `json:"state"`
	District   *int              `json:"district"`
	Depiction  congressDepiction `json:"depiction"`
	Terms      struct {
		Item []CongressTerm `json:"item"`
	} `json:"terms"`
}

type membersResponse struct {
	Members []CongressMemberSummary `json:"members"`
}

type CongressLegislation struct {
	Congress       int                  `json:"congress"`
	Type           string               `json:"type"`
	Number         string               `json:"number"`
	Title          string               `json:"title"`
	IntroducedDate string               `json:"introducedDate"`
	LatestAction   congressLatestAction `json:"latestAction"`
	PolicyArea     congressPolicyArea   `json:"policyArea"`
}

type sponsoredResponse struct {
	Legislation []CongressLegislation `json:"sponsoredLegislation"`
}

type cosponsoredResponse struct {
	Legislation []CongressLegislation `json:"cosponsoredLegislation"`
}

type CongressCommittee struct {
	SystemCode string `json:"systemCode"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	History    []struct {
		OfficialName          string `json:"officialName"`
		LibraryOfCongressName string `json:"libraryOfCongressName"`
	} `json:"history"`
	Parent *struct {
		Name       string `json:"name"`
		SystemCode string `json:"systemCode"`
	} `json:"parent"`
	Subcommittees []struct {
		Name       string `json:"name"`
		SystemCode string `json:"systemCode"`
	} `json:"subcommittees"`
}

type committeeResponse struct {
	Committee CongressCommittee `json:"committee"`
}

// HouseVote is one roll call from /house-vote
type HouseVote struct {
	Congress          int    `json:"congress"`
	SessionNumber     int    `json:"sessionNumber"`
	RollCallNumber    int    `json:"rollCallNumber"`
	StartDate         string `json:"startDate"`
	Result            string `json:"result"`
	VoteQuestion      string `json:"voteQuestion"`
	LegislationType   string `json:"legislationType"`
	LegislationNumber string `json:"legislationNumber"`
}

type houseVotesResponse struct {
	Votes []HouseVote `json:"houseRollCallVotes"`
}

type HouseVoteMember struct {
	BioguideID string `json:"bioguideID"`
	VoteCast   string `json:"voteCast"`
}

type houseVoteMembersResponse struct {
	Vote struct {
		Results []HouseVoteMember `json:"results"`
	} `json:"houseRollCallVoteMemberVotes"`
}

type CongressBill struct {
	Congress       int                  `json:"congress"`
	Type           string               `json:"type"`
	Number         string               `json:"number"`
	Title          string               `json:"title"`
	IntroducedDate string               `json:"introducedDate"`
	LatestAction   congressLatestAction `json:"latestAction"`
	PolicyArea     congressPolicyArea   `json:"policyArea"`
	Sponsors       []struct {
		BioguideID string `json:"bioguideId"`
		FullName   string `json:"fullName"`
		Party      string `json:"party"`
		State      string `json:"state"`
	} `json:"sponsors"`
	Cosponsors struct {
		Count int `json:"count"`
	} `json:"cosponsors"`
}

type billResponse struct {
	Bill CongressBill `json:"bill"`
}

func (c *CongressClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.apiKey == "" {
		return &ConfigurationError{Key: "CONGRESS_API_KEY"}
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("format", "json")
	query.Set("api_key", c.apiKey)

	return c.fetch.getJSON(ctx, buildURL(c.baseURL, path, query), nil, out)
}

// FetchMember retrieves a member's biography and terms
func (c *CongressClient) FetchMember(ctx context.Context, bioguideID string) (*CongressMember, error) {
	var resp memberResponse
	if err := c.get(ctx, "/member/"+url.PathEscape(bioguideID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", bioguideID, err)
	}
	if resp.Member.BioguideID == "" {
		return nil, &NotFoundError{Resource: "member", ID: bioguideID}
	}
	return &resp.Member, nil
}

// FetchMembersByDistrict retrieves the current members for a state district
func (c *CongressClient) FetchMembersByDistrict(ctx context.Context, state, district string) ([]CongressMemberSummary, error) {
	n, err := strconv.Atoi(district)
	if err != nil {
		return nil, fmt.Errorf("invalid district %q: %w", district, err)
	}
	if IsAtLarge(state) {
		n = 0
	}

	path := fmt.Sprintf("/member/%s/%d", strings.ToUpper(state), n)
	query := url.Values{"currentMember": {"true"}}

	var resp membersResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch members for %s-%s: %w", state, district, err)
	}
	return resp.Members, nil
}

// FetchSponsoredLegislation retrieves the most recent bills a member sponsored
func (c *CongressClient) FetchSponsoredLegislation(ctx context.Context, bioguideID string, limit int) ([]CongressLegislation, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var resp sponsoredResponse
	if err := c.get(ctx, "/member/"+url.PathEscape(bioguideID)+"/sponsored-legislation", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch sponsored legislation for %s: %w", bioguideID, err)
	}
	return resp.Legislation, nil
}

// FetchCosponsoredLegislation retrieves the most recent bills a member cosponsored
func (c *CongressClient) FetchCosponsoredLegislation(ctx context.Context, bioguideID string, limit int) ([]CongressLegislation, error) {
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var resp cosponsoredResponse
	if err := c.get(ctx, "/member/"+url.PathEscape(bioguideID)+"/cosponsored-legislation", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch cosponsored legislation for %s: %w", bioguideID, err)
	}
	return resp.Legislation, nil
}

// FetchCommittee retrieves a committee by system code. Four-letter full
// committee codes are expanded to the "00" form Congress.gov uses.
func (c *CongressClient) FetchCommittee(ctx context.Context, code string) (*CongressCommittee, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 4 {
		code += "00"
	}

	chamber, ok := committeeChamber(code)
	if !ok {
		return nil, &NormalizationError{Field: "committeeId", Value: code, Reason: "unknown chamber prefix"}
	}

	var resp committeeResponse
	if err := c.get(ctx, "/committee/"+chamber+"/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch committee %s: %w", code, err)
	}
	if resp.Committee.SystemCode == "" {
		return nil, &NotFoundError{Resource: "committee", ID: code}
	}
	return &resp.Committee, nil
}

// FetchRecentHouseVotes lists the latest roll call votes of a session
func (c *CongressClient) FetchRecentHouseVotes(ctx context.Context, congress, session, limit int) ([]HouseVote, error) {
	path := fmt.Sprintf("/house-vote/%d/%d", congress, session)
	query := url.Values{"limit": {strconv.Itoa(limit)}}

	var resp houseVotesResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch house votes: %w", err)
	}
	return resp.Votes, nil
}

// FetchHouseVoteMembers retrieves how every member voted on one roll call
func (c *CongressClient) FetchHouseVoteMembers(ctx context.Context, congress, session, rollCall int) ([]HouseVoteMember, error) {
	path := fmt.Sprintf("/house-vote/%d/%d/%d/members", congress, session, rollCall)

	var resp houseVoteMembersResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch members for roll call %d: %w", rollCall, err)
	}
	return resp.Vote.Results, nil
}

// FetchBill retrieves a bill with sponsors and cosponsor count
func (c *CongressClient) FetchBill(ctx context.Context, congress int, billType, number string) (*CongressBill, error) {
	path := fmt.Sprintf("/bill/%d/%s/%s", congress, strings.ToLower(billType), url.PathEscape(number))

	var resp billResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch bill %d-%s-%s: %w", congress, billType, number, err)
	}
	if resp.Bill.Number == "" {
		return nil, &NotFoundError{Resource: "bill", ID: fmt.Sprintf("%d-%s-%s", congress, billType, number)}
	}
	return &resp.Bill, nil
}
