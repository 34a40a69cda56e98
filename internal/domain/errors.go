package domain

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks a request the upstream API answered with a
// non-200 status.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// UpstreamStatusError carries the status code of a non-200 upstream response.
// The response body is kept for logging only.
type UpstreamStatusError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream API error: status %d: %s", e.StatusCode, e.Body)
}

// Is reports ErrUpstreamUnavailable so callers can match the category.
func (e *UpstreamStatusError) Is(target error) bool {
	return target == ErrUpstreamUnavailable
}

// UpstreamStatus returns the status code carried by err, if any.
func UpstreamStatus(err error) (int, bool) {
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
