package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantErr string
	}{
		{"member ok", memberRequest{BioguideID: "P000197", Limit: 10}, ""},
		{"member bad id", memberRequest{BioguideID: "P97", Limit: 10}, "invalid bioguideId"},
		{"member zero limit", memberRequest{BioguideID: "P000197", Limit: 0}, "invalid limit"},
		{"finance any cycle", financeRequest{BioguideID: "P000197"}, ""},
		{"finance bad cycle", financeRequest{BioguideID: "P000197", Cycle: 24}, "invalid cycle"},
		{"district ok", districtRequest{DistrictID: "MI-12"}, ""},
		{"district at large", districtRequest{DistrictID: "AK-AL"}, ""},
		{"district bad", districtRequest{DistrictID: "MI-XX"}, "invalid districtId"},
		{"district bad year", districtRequest{DistrictID: "MI-12", FiscalYear: 1999}, "invalid fy"},
		{"zip ok", zipRequest{Zip: "48202"}, ""},
		{"zip plus four", zipRequest{Zip: "48202-1234"}, "invalid zip"},
		{"committee ok", committeeRequest{Code: "HSAG"}, ""},
		{"subcommittee ok", committeeRequest{Code: "SSFI13"}, ""},
		{"committee bad prefix", committeeRequest{Code: "XSAG"}, "invalid committeeId"},
		{"legislature ok", legislatureRequest{State: "MI", Chamber: "upper"}, ""},
		{"legislature both chambers", legislatureRequest{State: "MI"}, ""},
		{"legislature bad state", legislatureRequest{State: "ZZ"}, "invalid state"},
		{"bill ok", billRequest{BillID: "118-hr-1234"}, ""},
		{"bill bad", billRequest{BillID: "118-hr"}, "invalid billId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCacheControl(t *testing.T) {
	assert.Equal(t, "public, s-maxage=3600, stale-while-revalidate=1800", cacheControl(votesTTL))
	assert.Equal(t, "public, s-maxage=86400, stale-while-revalidate=43200", cacheControl(districtTTL))
}
