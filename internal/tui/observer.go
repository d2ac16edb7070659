package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// ChannelObserver adapts domain.WatchlistObserver to Bubble Tea messages.
// Notifications coalesce: a slow reader only ever sees the latest list and the
// latest persistence state.
type ChannelObserver struct {
	mu         sync.Mutex
	latest     []domain.WatchlistEntry
	persistErr error // nil once saving recovered
	changed    chan struct{}
	persisted  chan struct{}
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{
		changed:   make(chan struct{}, 1),
		persisted: make(chan struct{}, 1),
	}
}

// OnWatchlistChanged records the list and wakes the listener (non-blocking).
func (o *ChannelObserver) OnWatchlistChanged(entries []domain.WatchlistEntry) {
	o.mu.Lock()
	o.latest = entries
	o.mu.Unlock()
	wake(o.changed)
}

// OnPersistFailed records the failure and wakes the listener (non-blocking).
func (o *ChannelObserver) OnPersistFailed(err error) {
	o.mu.Lock()
	o.persistErr = err
	o.mu.Unlock()
	wake(o.persisted)
}

// OnPersistRecovered clears the failure and wakes the listener (non-blocking).
func (o *ChannelObserver) OnPersistRecovered() {
	o.mu.Lock()
	o.persistErr = nil
	o.mu.Unlock()
	wake(o.persisted)
}

func wake(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default: // Listener already has a pending wake-up
	}
}

// Listen returns a command that waits for the next watchlist event.
// The model re-issues it after every event.
func (o *ChannelObserver) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-o.changed:
			o.mu.Lock()
			entries := o.latest
			o.mu.Unlock()
			return WatchlistChangedMsg{Entries: entries}
		case <-o.persisted:
			o.mu.Lock()
			err := o.persistErr
			o.mu.Unlock()
			if err == nil {
				return PersistRecoveredMsg{}
			}
			return PersistFailedMsg{Err: err}
		}
	}
}
