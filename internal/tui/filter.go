package tui

import (
	"sort"
	"strings"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/search"
	"github.com/mmcdole/cinesearch/internal/tui/components"
)

// watchlistRow is one visible row of the watchlist view
type watchlistRow struct {
	Entry   domain.WatchlistEntry
	Matched []int // Title positions matched by the filter, for highlighting
}

// sortEntries returns a sorted copy of entries. The sort is stable so equal
// keys keep most-recently-added order.
func sortEntries(entries []domain.WatchlistEntry, sel components.SortSelection) []domain.WatchlistEntry {
	out := make([]domain.WatchlistEntry, len(entries))
	copy(out, entries)

	less := func(a, b domain.WatchlistEntry) bool {
		switch sel.Field {
		case components.SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case components.SortYear:
			return a.Year < b.Year
		default:
			return a.AddedAt < b.AddedAt
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if sel.Direction == components.SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// refreshWatchlistRows rebuilds the visible watchlist rows from the current
// entries, sort order and filter query, keeping the selection on the same ID
// when it is still visible.
func (m *Model) refreshWatchlistRows() {
	selectedID := ""
	if row := m.selectedWatchlistRow(); row != nil {
		selectedID = row.Entry.ID
	}

	sorted := sortEntries(m.Entries, m.Sort)
	results := search.FilterEntries(m.FilterBar.Value(), sorted)

	m.rows = make([]watchlistRow, len(results))
	for i, r := range results {
		m.rows[i] = watchlistRow{Entry: r.Entry, Matched: r.MatchedIndexes}
	}

	m.listCursor.SetLen(len(m.rows))
	if selectedID == "" {
		return
	}
	for i, row := range m.rows {
		if row.Entry.ID == selectedID {
			m.listCursor.Top()
			m.listCursor.Move(i)
			return
		}
	}
}

// savedSet returns the IDs currently on the watchlist
func savedSet(entries []domain.WatchlistEntry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		set[e.ID] = true
	}
	return set
}
