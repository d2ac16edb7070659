package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// Command factories for async operations

const (
	searchTimeout = 20 * time.Second
	lookupTimeout = 20 * time.Second
)

// SearchCmd searches the catalog
func SearchCmd(svc domain.CatalogQueries, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		page, err := svc.Search(ctx, query)
		return SearchResultsMsg{Query: query, Page: page, Err: err}
	}
}

// LookupCmd loads full metadata for one title
func LookupCmd(svc domain.CatalogQueries, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		detail, err := svc.Lookup(ctx, id)
		return DetailLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// OpenURLCmd opens url in the browser
func OpenURLCmd(opener URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		return URLOpenedMsg{URL: url, Err: opener.Open(url)}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
