package domain

import "context"

// CatalogRepository performs network operations against the remote movie catalog
type CatalogRepository interface {
	// Search returns one page of titles matching a free-text query
	Search(ctx context.Context, query string) (*SearchPage, error)

	// Lookup returns full metadata for a single title ID
	Lookup(ctx context.Context, id string) (*MovieDetail, error)
}
