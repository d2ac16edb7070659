package domain

// RecordStore is durable on-device key/value storage for named records.
// Get reports ok=false when the key is absent.
type RecordStore interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// WatchlistObserver receives watchlist state changes and persistence diagnostics.
// Callbacks run outside the store lock and must not block.
type WatchlistObserver interface {
	// OnWatchlistChanged receives the full list after every applied change
	OnWatchlistChanged(entries []WatchlistEntry)

	// OnPersistFailed reports a load or save failure. The in-memory list is unaffected.
	// Load failures wrap ErrLoadFailed.
	OnPersistFailed(err error)

	// OnPersistRecovered reports the first successful save after a failed one
	OnPersistRecovered()
}
