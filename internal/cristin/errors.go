package cristin

import (
	"errors"
	"fmt"
)

// Common errors returned by the Cristin client.
var (
	// ErrNotFound indicates the person or resource was not found.
	ErrNotFound = errors.New("not found in Cristin")

	// ErrInvalidPersonID indicates a person ID that is not numeric.
	ErrInvalidPersonID = errors.New("person ID must be numeric")

	// ErrRateLimited indicates the API rate limit has been exceeded.
	ErrRateLimited = errors.New("Cristin rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with Cristin")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from Cristin")
)

// APIError represents an HTTP-level error from the Cristin API.
type APIError struct {
	StatusCode int
	Message    string
	PersonID   string // For context in person-related errors
}

func (e *APIError) Error() string {
	if e.PersonID != "" {
		return fmt.Sprintf("Cristin API error (status %d): %s (person: %s)", e.StatusCode, e.Message, e.PersonID)
	}
	return fmt.Sprintf("Cristin API error (status %d): %s", e.StatusCode, e.Message)
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
