package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/logging"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxAttempts    = 2
	defaultInitialBackoff = 500 * time.Millisecond
	userAgent             = "civiq/1.0"
)

// credentialParams are stripped from URLs before they reach errors or logs
var credentialParams = []string{"api_key", "key"}

// HTTPOptions controls timeouts and retries for every upstream client
type HTTPOptions struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
}

// fetcher performs upstream requests with bounded exponential backoff.
// Transport errors, 429 and 5xx are retried; other statuses fail at once.
type fetcher struct {
	source         string
	client         *http.Client
	maxAttempts    int
	initialBackoff time.Duration
}

func newFetcher(source string, opts HTTPOptions) *fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}

	return &fetcher{
		source: source,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		maxAttempts:    opts.MaxAttempts,
		initialBackoff: opts.InitialBackoff,
	}
}

// getJSON issues a GET and decodes the response into out
func (f *fetcher) getJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	body, status, err := f.do(ctx, http.MethodGet, rawURL, header, nil)
	if err != nil {
		return err
	}
	return f.decode(rawURL, status, body, out)
}

// postJSON issues a POST with a JSON body and decodes the response into out
func (f *fetcher) postJSON(ctx context.Context, rawURL string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", f.source, err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	body, status, err := f.do(ctx, http.MethodPost, rawURL, header, data)
	if err != nil {
		return err
	}
	return f.decode(rawURL, status, body, out)
}

// get issues a GET and returns the raw body and status
func (f *fetcher) get(ctx context.Context, rawURL string, header http.Header) ([]byte, int, error) {
	return f.do(ctx, http.MethodGet, rawURL, header, nil)
}

func (f *fetcher) decode(rawURL string, status int, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{
			Source:     f.source,
			StatusCode: status,
			URL:        redactURL(rawURL),
			Err:        fmt.Errorf("failed to parse response: %w", err),
		}
	}
	return nil
}

func (f *fetcher) do(ctx context.Context, method, rawURL string, header http.Header, payload []byte) ([]byte, int, error) {
	var lastErr *UpstreamError
	backoff := f.initialBackoff

	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
			logging.Debug("Retrying upstream request",
				zap.String("source", f.source),
				zap.Int("attempt", attempt+1),
				zap.Error(lastErr))
		}

		body, status, err := f.attempt(ctx, method, rawURL, header, payload)
		if err == nil {
			return body, status, nil
		}

		var upstreamErr *UpstreamError
		if !errors.As(err, &upstreamErr) {
			return nil, 0, err
		}
		lastErr = upstreamErr
		if !upstreamErr.retryable() || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr.StatusCode, lastErr
}

func (f *fetcher) attempt(ctx context.Context, method, rawURL string, header http.Header, payload []byte) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &UpstreamError{Source: f.source, URL: redactURL(rawURL), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &UpstreamError{Source: f.source, URL: redactURL(rawURL), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &UpstreamError{
			Source:     f.source,
			StatusCode: resp.StatusCode,
			URL:        redactURL(rawURL),
		}
	}

	return body, resp.StatusCode, nil
}

// redactURL drops credential query parameters
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	q := u.Query()
	for _, p := range credentialParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// buildURL joins base and path and encodes query
func buildURL(base, path string, query url.Values) string {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
