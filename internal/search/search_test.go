package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinesearch/internal/domain"
)

func entries(titles ...string) []domain.WatchlistEntry {
	out := make([]domain.WatchlistEntry, len(titles))
	for i, title := range titles {
		out[i] = domain.WatchlistEntry{Movie: domain.Movie{ID: title, Title: title}}
	}
	return out
}

func resultTitles(results []FilterResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.Title
	}
	return out
}

func TestFilterEntriesBlankQueryKeepsOrder(t *testing.T) {
	list := entries("Beta", "Alpha", "Gamma")
	for _, q := range []string{"", "  "} {
		results := FilterEntries(q, list)
		assert.Equal(t, []string{"Beta", "Alpha", "Gamma"}, resultTitles(results))
		for _, r := range results {
			assert.Empty(t, r.MatchedIndexes)
		}
	}
}

func TestFilterEntriesMatches(t *testing.T) {
	list := entries("The Matrix", "Mad Max: Fury Road", "Alien", "Matrix Reloaded")

	results := FilterEntries("MATRIX", list)
	require.Len(t, results, 2)
	assert.ElementsMatch(t, []string{"The Matrix", "Matrix Reloaded"}, resultTitles(results))
	assert.Len(t, results[0].MatchedIndexes, len("matrix"))

	assert.Empty(t, FilterEntries("zzz", list))
	assert.Equal(t, []string{"Alien"}, resultTitles(FilterEntries("aln", list)))
}

func TestFilterEntriesEmptyList(t *testing.T) {
	assert.Empty(t, FilterEntries("x", nil))
	assert.Empty(t, FilterEntries("", nil))
}
