package fetch

import (
	"errors"
	"fmt"

	"portalapi/internal/content/normalize"
)

// ErrNoStaticDefault is the mock-mode outcome of a descriptor without a default.
var ErrNoStaticDefault = errors.New("fetch: mock mode and no static default registered")

type Status int

const (
	StatusSuccess Status = iota
	// StatusNetworkFailure: no response and no default registered.
	StatusNetworkFailure
	// StatusHTTPError: a non-2xx answer that the policy does not absorb.
	StatusHTTPError
	// StatusEmptyFallback: the registered static default is served.
	StatusEmptyFallback
	// StatusFailed: every other terminal failure, such as a malformed body,
	// a pagination bound, or caller cancellation.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNetworkFailure:
		return "network_failure"
	case StatusHTTPError:
		return "http_error"
	case StatusEmptyFallback:
		return "empty_fallback"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the settled result of one descriptor.
type Outcome struct {
	Status Status
	// Record holds a Single resource on success.
	Record normalize.Record
	// Records holds a collection on success.
	Records []normalize.Record
	// Default holds the static default on StatusEmptyFallback.
	Default any
	// HTTPStatus is set for StatusHTTPError, and for a 404 absorbed by a default.
	HTTPStatus int
	// Err is the underlying cause for every status but success. A fallback
	// keeps the error it recovered from.
	Err error
}

// Terminal reports whether the outcome carries no usable data.
func (o Outcome) Terminal() bool {
	switch o.Status {
	case StatusSuccess, StatusEmptyFallback:
		return false
	}
	return true
}

// Error is a terminal outcome surfaced to the caller.
type Error struct {
	Key        string
	Path       string
	Status     Status
	HTTPStatus int
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s (%s): %s: %v", e.Key, e.Path, e.Status, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
