package factcheck

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable matches any UnavailableError via errors.Is
var ErrUpstreamUnavailable = errors.New("answer provider unavailable")

// UnavailableError is a transport-level failure reaching the answer provider
// (connection refused, DNS, timeout).
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is reports ErrUpstreamUnavailable as a match
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// UpstreamError is a non-2xx reply from the answer provider
type UpstreamError struct {
	Provider string
	Status   int
	Body     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.Status, e.Body)
}

// ResponseFormatError means the provider answered but the content was unusable
type ResponseFormatError struct {
	Provider string
	Err      error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("unusable %s response: %v", e.Provider, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }
