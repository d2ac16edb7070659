package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the catalog has no match for a search or lookup
	ErrNotFound = errors.New("title not found")

	// ErrServerOffline indicates the catalog is unreachable
	ErrServerOffline = errors.New("catalog is unreachable")

	// ErrAuthFailed indicates the catalog rejected the API key
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrRateLimited indicates the catalog request quota is exhausted
	ErrRateLimited = errors.New("catalog request limit reached")

	// ErrEmptyQuery indicates a blank search query that was not sent
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrNotInitialized indicates use of the watchlist before Initialize
	ErrNotInitialized = errors.New("watchlist is not initialized")

	// ErrLoadFailed indicates the persisted watchlist could not be read at startup
	ErrLoadFailed = errors.New("failed to load watchlist")

	// ErrCorruptRecord indicates the persisted watchlist could not be decoded
	ErrCorruptRecord = errors.New("persisted watchlist is corrupt")
)

// CatalogError is a typed catalog failure carrying the reason the remote source gave.
type CatalogError struct {
	Op     string // "search" or "lookup"
	Reason string // Message from the catalog, may be empty
	Err    error  // One of the sentinels above
}

func (e *CatalogError) Error() string {
	if e.Reason != "" {
		return e.Op + ": " + e.Reason
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
