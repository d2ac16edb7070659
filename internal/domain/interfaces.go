package domain

import "context"

// WatchlistQueries: Synchronous, in-memory reads. Never block on I/O.
// Safe to call from View().
type WatchlistQueries interface {
	List() []WatchlistEntry
	Contains(id string) bool
	Get(id string) (WatchlistEntry, bool)
	Len() int
}

// WatchlistCommands: Mutations. In-memory state changes immediately,
// persistence happens in the background.
type WatchlistCommands interface {
	Add(movie Movie) bool
	Remove(id string) bool
	Toggle(movie Movie) bool
	Clear()
	Flush(ctx context.Context) error
}

// CatalogQueries: Network reads used by the search and detail views.
type CatalogQueries interface {
	Search(ctx context.Context, query string) (*SearchPage, error)
	Lookup(ctx context.Context, id string) (*MovieDetail, error)
}
