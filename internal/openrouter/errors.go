package openrouter

import (
	"errors"
	"fmt"
)

// TransportError wraps a network-level failure (DNS, timeout, connection
// reset). It is the only error class the retry policy acts on.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-200 response from the completions endpoint.
// It is never retried: the server answered, it just said no.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error: status %d: %s", e.StatusCode, e.Body)
}

// ShapeError reports a 200 response whose body lacks the expected
// choices[0].message.content field. Never retried.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Reason)
}

// IsRetryable reports whether err is worth another attempt.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsNoResult reports whether err is a handled, non-retryable failure:
// the server responded with an error status or a body the client cannot
// extract a completion from.
func IsNoResult(err error) bool {
	var re *RemoteError
	var se *ShapeError
	return errors.As(err, &re) || errors.As(err, &se)
}
