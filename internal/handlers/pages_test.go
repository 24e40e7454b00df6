package handlers

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jjenkins/civiq/internal/model"
	"github.com/jjenkins/civiq/internal/service"
)

func TestHomePage(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux(), nil)

	resp, body := srv.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `<form method="get" action="/">`)
}

func TestHomePage_SingleDistrictRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	zips := service.NewMockZipLookup(ctrl)
	zips.EXPECT().LookupZip(gomock.Any(), "48202").Return([]model.ZipDistrict{
		{Zip: "48202", State: "MI", District: "12"},
	}, nil)

	srv := newTestServer(t, http.NewServeMux(), zips)

	resp, _ := srv.get(t, "/?zip=48202")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/districts/MI-12", resp.Header.Get("Location"))
}

func TestHomePage_SplitZipListsDistricts(t *testing.T) {
	ctrl := gomock.NewController(t)
	zips := service.NewMockZipLookup(ctrl)
	zips.EXPECT().LookupZip(gomock.Any(), "20001").Return([]model.ZipDistrict{
		{Zip: "20001", State: "MD", District: "04"},
		{Zip: "20001", State: "DC", District: "01"},
	}, nil)

	srv := newTestServer(t, http.NewServeMux(), zips)

	resp, body := srv.get(t, "/?zip=20001")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `href="/districts/DC-01"`)
	assert.Contains(t, string(body), `href="/districts/MD-04"`)
}

func TestHomePage_BadZip(t *testing.T) {
	srv := newTestServer(t, http.NewServeMux(), nil)

	resp, body := srv.get(t, "/?zip=12")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "five-digit ZIP code")
}

func TestRepresentativePage_SharesCacheWithAPI(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/congress/member/T000481", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(memberJSON)(w, r)
	})
	srv := newTestServer(t, mux, nil)

	resp, _ := srv.get(t, "/api/representative/T000481")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := srv.get(t, "/representative/T000481")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<h1>Rashida Tlaib</h1>")
	assert.Contains(t, string(body), `href="/districts/MI-12"`)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDistrictPage_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/census/2022/acs/acs5", withStatus(http.StatusNoContent))
	mux.HandleFunc("/congress/member/MI/12", writeJSON(`{"members": []}`))
	srv := newTestServer(t, mux, nil)

	resp, body := srv.get(t, "/districts/MI-12")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Not found")
}
