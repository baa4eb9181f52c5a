package service

import "errors"

var (
	// ErrNotLoggedIn is returned by operations that need a token when none
	// is stored.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrThrottled is returned when a submission arrives inside the
	// throttle window of the previous one.
	ErrThrottled = errors.New("submission throttled, try again shortly")

	// ErrEmptyBatch is returned when there is nothing to submit.
	ErrEmptyBatch = errors.New("no pending entries to submit")

	// ErrInvalidInterval is returned when an entry's begin/end are missing
	// or not in order.
	ErrInvalidInterval = errors.New("invalid time interval")

	// ErrNoRememberedLogin is returned by LoginRemembered when no
	// credentials were saved.
	ErrNoRememberedLogin = errors.New("no remembered login")
)
