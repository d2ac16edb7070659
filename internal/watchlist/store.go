package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// DefaultKey is the record the watchlist is persisted under
const DefaultKey = "@cinesearch_watchlist"

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to stamp AddedAt
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithKey overrides the record key
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

type subscription struct {
	id  int
	obs domain.WatchlistObserver
}

// Store owns the canonical watchlist: an in-memory list, most recently added
// first, with at most one entry per ID. Every change is applied in memory
// immediately and persisted by a single background writer.
// Implements domain.WatchlistQueries and domain.WatchlistCommands.
type Store struct {
	records domain.RecordStore
	key     string
	logger  *slog.Logger
	now     func() time.Time

	mu          sync.RWMutex
	entries     []domain.WatchlistEntry
	initialized bool
	version     uint64 // Bumped on every applied change
	cleared     bool   // Record should be deleted rather than written
	writer      *writer

	// notifyMu serializes observer callbacks. It is never held together with mu.
	notifyMu        sync.Mutex
	observers       []subscription
	nextSubID       int
	notified        bool
	notifiedVersion uint64
}

// NewStore creates a watchlist backed by records. Call Initialize before use.
func NewStore(records domain.RecordStore, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		records: records,
		key:     DefaultKey,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted list and starts the background writer.
// A missing record yields an empty list. An unreadable or corrupt record is
// reported to observers and also yields an empty list. Only the first call has
// any effect.
func (s *Store) Initialize() {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		s.logger.Debug("watchlist already initialized")
		return
	}

	entries, err := s.load()
	s.entries = entries
	s.initialized = true
	s.writer = newWriter(s)
	go s.writer.run()

	version, snapshot := s.version, s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("failed to load watchlist, starting empty", "error", err)
		s.persistFailed(err)
	} else {
		s.logger.Info("loaded watchlist", "count", len(entries))
	}
	s.notify(version, snapshot)
}

func (s *Store) load() ([]domain.WatchlistEntry, error) {
	data, ok, err := s.records.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	if !ok {
		return nil, nil
	}

	entries, dropped, err := decodeEntries(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLoadFailed, err)
	}
	if dropped > 0 {
		s.logger.Warn("dropped invalid watchlist entries", "count", dropped)
	}
	return entries, nil
}

// List returns a copy of the watchlist, most recently added first
func (s *Store) List() []domain.WatchlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of saved entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Contains reports whether an entry with id is saved
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// Get returns the saved entry for id
func (s *Store) Get(id string) (domain.WatchlistEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.entries[i], true
	}
	return domain.WatchlistEntry{}, false
}

// Add saves movie at the front of the list. It returns false without changing
// anything when the ID is already saved or empty.
func (s *Store) Add(movie domain.Movie) bool {
	return s.mutate("add", func() bool {
		return s.addLocked(movie)
	})
}

// Remove deletes the entry for id. It returns false when id is not saved.
func (s *Store) Remove(id string) bool {
	return s.mutate("remove", func() bool {
		return s.removeLocked(id)
	})
}

// Toggle removes movie when saved and adds it otherwise, as one atomic step.
// It returns whether the movie is saved afterwards.
func (s *Store) Toggle(movie domain.Movie) bool {
	saved := false
	s.mutate("toggle", func() bool {
		if s.removeLocked(movie.ID) {
			return true
		}
		saved = s.addLocked(movie)
		return saved
	})
	return saved
}

// Clear empties the watchlist and deletes the persisted record
func (s *Store) Clear() {
	s.mutate("clear", func() bool {
		s.entries = nil
		s.cleared = true
		return true
	})
}

// Subscribe registers obs for change notifications. The returned function
// removes the subscription. Observers must not mutate or flush the store.
func (s *Store) Subscribe(obs domain.WatchlistObserver) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.observers = append(s.observers, subscription{id: id, obs: obs})

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Flush waits until every change made before the call has been persisted and
// returns the most recent persistence error, if any. Mutations never return
// persistence errors themselves; Flush is how a caller can observe them.
func (s *Store) Flush(ctx context.Context) error {
	w := s.currentWriter()
	if w == nil {
		return nil
	}
	return w.flush(ctx)
}

// Close persists pending changes and stops the background writer.
// Changes made after Close stay in memory only.
func (s *Store) Close(ctx context.Context) error {
	w := s.currentWriter()
	if w == nil {
		return nil
	}
	return w.stop(ctx)
}

func (s *Store) currentWriter() *writer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writer
}

// mutate applies fn under the lock. When fn reports a change the version is
// bumped, the writer is kicked and observers are notified.
func (s *Store) mutate(op string, fn func() bool) bool {
	s.mu.Lock()
	if !s.initialized {
		s.mu.Unlock()
		s.logger.Warn("watchlist change ignored", "op", op, "error", domain.ErrNotInitialized)
		return false
	}

	if !fn() {
		s.mu.Unlock()
		return false
	}

	s.version++
	version, snapshot := s.version, s.snapshotLocked()
	w := s.writer
	s.mu.Unlock()

	w.kick()
	s.logger.Debug("watchlist changed", "op", op, "count", len(snapshot))
	s.notify(version, snapshot)
	return true
}

func (s *Store) addLocked(movie domain.Movie) bool {
	if movie.ID == "" {
		s.logger.Warn("ignoring watchlist entry without id", "title", movie.Title)
		return false
	}
	if s.indexLocked(movie.ID) >= 0 {
		return false
	}

	entry := domain.WatchlistEntry{Movie: movie, AddedAt: s.now().UnixMilli()}
	entries := make([]domain.WatchlistEntry, 0, len(s.entries)+1)
	entries = append(entries, entry)
	s.entries = append(entries, s.entries...)
	s.cleared = false
	return true
}

func (s *Store) removeLocked(id string) bool {
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	entries := make([]domain.WatchlistEntry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:i]...)
	s.entries = append(entries, s.entries[i+1:]...)
	s.cleared = false
	return true
}

func (s *Store) indexLocked(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []domain.WatchlistEntry {
	out := make([]domain.WatchlistEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// pending returns the state the writer should persist
func (s *Store) pending() (version uint64, entries []domain.WatchlistEntry, cleared bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, s.snapshotLocked(), s.cleared
}

// persistFailed reports a load or save failure to observers
func (s *Store) persistFailed(err error) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for _, sub := range s.observers {
		sub.obs.OnPersistFailed(err)
	}
}

// persistRecovered tells observers saving works again
func (s *Store) persistRecovered() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for _, sub := range s.observers {
		sub.obs.OnPersistRecovered()
	}
}

// notify delivers the list at version to observers. A snapshot older than one
// already delivered is dropped, so observers never step back to a stale list.
func (s *Store) notify(version uint64, entries []domain.WatchlistEntry) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if s.notified && version <= s.notifiedVersion {
		return
	}
	s.notified = true
	s.notifiedVersion = version

	for _, sub := range s.observers {
		out := make([]domain.WatchlistEntry, len(entries))
		copy(out, entries)
		sub.obs.OnWatchlistChanged(out)
	}
}
