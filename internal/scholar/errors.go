package scholar

import (
	"errors"
	"fmt"
)

// Common errors returned by the Scholar client.
var (
	// ErrNotFound indicates the profile or publication does not exist.
	ErrNotFound = errors.New("not found on Google Scholar")

	// ErrRateLimited indicates Scholar refused the request (HTTP 429 or a
	// captcha page).
	ErrRateLimited = errors.New("Google Scholar rate limit exceeded")

	// ErrNetworkError indicates a transport failure or timeout.
	ErrNetworkError = errors.New("network error communicating with Google Scholar")

	// ErrInvalidResponse indicates the page lacked the expected markup.
	ErrInvalidResponse = errors.New("invalid response from Google Scholar")
)

// APIError is a non-success HTTP status from Scholar.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Google Scholar returned HTTP %d for %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
