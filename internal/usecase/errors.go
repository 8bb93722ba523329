package usecase

import "github.com/cockroachdb/errors"

// Sentinels the HTTP layer maps onto status codes. Wrap them with %w.
var (
	// ErrInvalidInput rejects a request before the cache or upstream is touched.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means a single-entity lookup came back empty.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized guards the internal cache job routes.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDependencyUnavailable covers API-Football failures with no cached fallback.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
