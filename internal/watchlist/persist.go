package watchlist

import (
	"context"
	"fmt"
	"sync"
)

// writer is the only goroutine that writes the watchlist record. It always
// persists the store's current state at write time, never a captured older
// snapshot, so writes cannot land out of order and the last write reflects the
// final in-memory list.
type writer struct {
	store *Store

	kickCh  chan struct{}   // Coalescing "state changed" signal
	flushCh chan chan error // Flush requests
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once

	// Owned by the run goroutine; readable by others after doneCh is closed
	written uint64 // Last version successfully persisted
	lastErr error
}

func newWriter(s *Store) *writer {
	return &writer{
		store:   s,
		kickCh:  make(chan struct{}, 1),
		flushCh: make(chan chan error),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (w *writer) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.kickCh:
			w.sync()
		case reply := <-w.flushCh:
			w.sync()
			reply <- w.lastErr
		case <-w.stopCh:
			w.sync()
			return
		}
	}
}

// kick schedules a write without blocking. Pending kicks coalesce.
func (w *writer) kick() {
	select {
	case w.kickCh <- struct{}{}:
	default:
	}
}

func (w *writer) flush(ctx context.Context) error {
	reply := make(chan error, 1)
	select {
	case w.flushCh <- reply:
	case <-w.doneCh:
		return w.lastErr
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) stop(ctx context.Context) error {
	w.once.Do(func() { close(w.stopCh) })
	select {
	case <-w.doneCh:
		return w.lastErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sync persists the current state if it changed since the last successful write.
// A failed write is retried on the next kick, flush or stop.
func (w *writer) sync() {
	version, entries, cleared := w.store.pending()
	if version == w.written {
		return
	}

	s := w.store
	var err error
	if cleared {
		err = s.records.Delete(s.key)
	} else {
		var data []byte
		data, err = encodeEntries(entries)
		if err == nil {
			err = s.records.Put(s.key, data)
		}
	}

	if err != nil {
		w.lastErr = fmt.Errorf("failed to save watchlist: %w", err)
		s.logger.Warn("failed to save watchlist", "error", err, "count", len(entries))
		s.persistFailed(w.lastErr)
		return
	}

	recovered := w.lastErr != nil
	w.written = version
	w.lastErr = nil
	s.logger.Debug("saved watchlist", "count", len(entries), "deleted", cleared)
	if recovered {
		s.logger.Info("watchlist saving recovered", "count", len(entries))
		s.persistRecovered()
	}
}
