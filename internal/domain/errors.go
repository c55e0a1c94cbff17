package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these onto HTTP status codes; everything else surfaces as 500.
var (
	// ErrNotFound means the referenced id does not exist (or was deleted).
	// Not retryable; indicates a caller error or a stale link.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means a non-owner attempted an owner-only operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput means the request was rejected before any store call
	// was attempted, so nothing was partially applied.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable means the store could not be reached or timed out.
	// Transient; callers may retry.
	ErrUnavailable = errors.New("store unavailable")
)
