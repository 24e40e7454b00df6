package service

import (
	"fmt"
	"net/http"
)

// UpstreamError is returned when an upstream API answers with a non-2xx
// status, cannot be reached, or returns a body that does not decode.
type UpstreamError struct {
	Source     string
	StatusCode int
	// URL has credentials removed
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: bad response (HTTP %d) from %s: %v", e.Source, e.StatusCode, e.URL, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: request to %s failed: %v", e.Source, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s: unexpected status code %d from %s", e.Source, e.StatusCode, e.URL)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// RateLimited reports an HTTP 429
func (e *UpstreamError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// NotFound reports an HTTP 404
func (e *UpstreamError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Forbidden reports an HTTP 401 or 403, usually a bad or exhausted API key
func (e *UpstreamError) Forbidden() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// retryable reports whether another attempt may succeed
func (e *UpstreamError) retryable() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.RateLimited() || e.StatusCode >= 500
}

// NormalizationError is returned when a required field is missing or a
// value cannot be mapped to its canonical form.
type NormalizationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *NormalizationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("cannot normalize %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("cannot normalize %s %q: %s", e.Field, e.Value, e.Reason)
}

// ConfigurationError is returned before any network call when a required
// API key is not set.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// NotFoundError means the entity is absent from every source consulted
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
