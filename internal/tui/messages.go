package tui

import "github.com/mmcdole/cinesearch/internal/domain"

// Message types for the TUI

// SearchResultsMsg carries the outcome of a catalog search
type SearchResultsMsg struct {
	Query string
	Page  *domain.SearchPage
	Err   error
}

// DetailLoadedMsg carries the outcome of a catalog lookup
type DetailLoadedMsg struct {
	ID     string
	Detail *domain.MovieDetail
	Err    error
}

// WatchlistChangedMsg carries the latest watchlist
type WatchlistChangedMsg struct {
	Entries []domain.WatchlistEntry
}

// PersistFailedMsg signals that the watchlist could not be loaded or saved.
// The in-memory list is still current.
type PersistFailedMsg struct {
	Err error
}

// PersistRecoveredMsg signals that saving works again after a failure
type PersistRecoveredMsg struct{}

// URLOpenedMsg signals the result of opening a web page
type URLOpenedMsg struct {
	URL string
	Err error
}

// ClearStatusMsg clears the status message in the footer
type ClearStatusMsg struct {
	Seq int // Only clears the status it was scheduled for
}
