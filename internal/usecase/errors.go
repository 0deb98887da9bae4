package usecase

import "errors"

// Sentinel errors the handler layer maps onto HTTP status codes with
// errors.Is. Services wrap them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound means the addressed resource does not exist. Also returned
	// when a booking references an unknown showtime, even if seats were named.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means the request lost a race or repeats a one-shot
	// operation: a seat already held for the showtime, a second payment for
	// the same booking, a taken username or email.
	ErrConflict = errors.New("resource conflict")

	// ErrInvalidArgument means the request is well-formed but semantically
	// rejected: empty seat list, amount mismatch, illegal status transition,
	// inactive showtime.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized means the caller may not act on the resource.
	ErrUnauthorized = errors.New("unauthorized")
)
