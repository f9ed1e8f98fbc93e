package catalog

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitedError is returned when the upstream answers 429. RetryAfter is
// zero when the upstream did not send a Retry-After header.
type RateLimitedError struct {
	URL        string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("catalog rate limited: %s (retry after %s)", e.URL, e.RetryAfter)
	}
	return fmt.Sprintf("catalog rate limited: %s", e.URL)
}

// RequestFailedError is returned for any other non-2xx upstream response or
// transport failure.
type RequestFailedError struct {
	URL    string
	Status int
	Err    error
}

func (e *RequestFailedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog request failed: %s (status %d)", e.URL, e.Status)
	}
	return fmt.Sprintf("catalog request failed: %s: %v", e.URL, e.Err)
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is a rate-limit condition.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
