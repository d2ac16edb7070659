package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// FilterResult is a watchlist entry matched by a filter query
type FilterResult struct {
	Entry          domain.WatchlistEntry
	MatchedIndexes []int // Matched character positions in the title, for highlighting
	Score          int   // Higher is better
}

// entryIndex implements fuzzy.Source over precomputed lowercase titles
type entryIndex struct {
	entries     []domain.WatchlistEntry
	lowerTitles []string
}

func (idx *entryIndex) String(i int) string { return idx.lowerTitles[i] }

func (idx *entryIndex) Len() int { return len(idx.entries) }

// FilterEntries fuzzy matches query against entry titles, best matches first.
// A blank query returns every entry in its original order.
func FilterEntries(query string, entries []domain.WatchlistEntry) []FilterResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		results := make([]FilterResult, len(entries))
		for i, e := range entries {
			results[i] = FilterResult{Entry: e}
		}
		return results
	}

	idx := &entryIndex{
		entries:     entries,
		lowerTitles: make([]string, len(entries)),
	}
	for i, e := range entries {
		idx.lowerTitles[i] = strings.ToLower(e.Title)
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]FilterResult, len(matches))
	for i, m := range matches {
		results[i] = FilterResult{
			Entry:          entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
