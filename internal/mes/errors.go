package mes

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the bearer token was rejected. The client
	// invalidates its TokenSource before returning it.
	ErrUnauthorized = errors.New("mes session expired, log in again")

	// ErrUnavailable indicates the MES backend is unreachable.
	ErrUnavailable = errors.New("mes backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("mes request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("mes retry attempts exhausted")
)

// APIError is a business failure: the response envelope carried a code
// other than 200.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("mes request failed (code %d)", e.Code)
	}
	return fmt.Sprintf("mes: %s (code %d)", e.Msg, e.Code)
}

// Is treats an envelope code of 401 as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == 401
}

// StatusError is a non-2xx HTTP response other than 401.
type StatusError struct {
	Status int
	Msg    string
}

func (e *StatusError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("mes returned status %d", e.Status)
	}
	return fmt.Sprintf("mes returned status %d: %s", e.Status, e.Msg)
}
