package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() HTTPOptions {
	return HTTPOptions{Timeout: 5 * time.Second, MaxAttempts: 3, InitialBackoff: time.Millisecond}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	f := newFetcher("test", testOptions())
	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, f.getJSON(context.Background(), srv.URL, nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_RetriesRateLimitThenGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := newFetcher("test", testOptions())
	err := f.getJSON(context.Background(), srv.URL, nil, &struct{}{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.True(t, upstream.RateLimited())
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetcher_DoesNotRetryClientErrors(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusBadRequest} {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
		}))

		f := newFetcher("congress.gov", testOptions())
		err := f.getJSON(context.Background(), srv.URL, nil, &struct{}{})
		srv.Close()

		var upstream *UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, status, upstream.StatusCode)
		assert.Equal(t, "congress.gov", upstream.Source)
		assert.Equal(t, int32(1), calls.Load())
	}
}

func TestFetcher_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	f := newFetcher("fec", testOptions())
	err := f.getJSON(context.Background(), srv.URL, nil, &struct{}{})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusOK, upstream.StatusCode)
	assert.Error(t, upstream.Unwrap())
}

func TestFetcher_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	f := newFetcher("usaspending", testOptions())
	var out geographyResponse
	require.NoError(t, f.postJSON(context.Background(), srv.URL, map[string]string{"scope": "x"}, &out))
}

func TestFetcher_BackoffHonoursCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newFetcher("test", HTTPOptions{Timeout: time.Second, MaxAttempts: 5, InitialBackoff: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := f.getJSON(ctx, srv.URL, nil, &struct{}{})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://api.congress.gov/v3/member/P000197?api_key=secret&format=json")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "format=json")
}

func TestUpstreamError_DoesNotLeakKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewCongressClient(srv.URL, "super-secret", testOptions())
	_, err := client.FetchMember(context.Background(), "P000197")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret")
}

func TestMissingKeyIsConfigurationError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	_, err := NewCongressClient(srv.URL, "", testOptions()).FetchMember(context.Background(), "P000197")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CONGRESS_API_KEY", cfgErr.Key)

	_, err = NewFECClient(srv.URL, "", testOptions()).SearchCandidates(context.Background(), "Pelosi", "CA", "H")
	require.ErrorAs(t, err, &cfgErr)

	_, err = NewOpenStatesClient(srv.URL, "", testOptions()).FetchLegislators(context.Background(), "CA", "")
	require.ErrorAs(t, err, &cfgErr)

	assert.Equal(t, int32(0), calls.Load())
}
