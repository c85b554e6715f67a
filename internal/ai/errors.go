package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey means no credential was injected. There is no embedded
	// fallback key; this is a configuration failure, not a degraded mode.
	ErrMissingAPIKey = errors.New("ai: api key is missing")

	// ErrEmptyCompletion means the upstream returned 2xx but no usable choice.
	ErrEmptyCompletion = errors.New("ai: response missing choices")
)

// RequestError is a non-2xx answer from the upstream provider. It keeps the
// status code and body for logging; callers show the user a generic message.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("ai: upstream returned status %d: %s", e.StatusCode, e.Body)
}

// MalformedResponseError is a 2xx answer whose JSON misses expected fields.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("ai: malformed upstream response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
