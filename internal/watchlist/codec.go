package watchlist

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/mmcdole/cinesearch/internal/domain"
)

// recordEntry is the persisted shape of one watchlist entry.
// Field names match the catalog's JSON so records stay readable by other clients.
type recordEntry struct {
	ImdbID  string `json:"imdbID"`
	Title   string `json:"Title"`
	Year    string `json:"Year"`
	Poster  string `json:"Poster"`
	Type    string `json:"Type,omitempty"`
	AddedAt int64  `json:"addedAt"`
}

// encodeEntries serializes the list in order
func encodeEntries(entries []domain.WatchlistEntry) ([]byte, error) {
	records := make([]recordEntry, len(entries))
	for i, e := range entries {
		records[i] = recordEntry{
			ImdbID:  e.ID,
			Title:   e.Title,
			Year:    e.Year,
			Poster:  e.PosterURL,
			Type:    string(e.Kind),
			AddedAt: e.AddedAt,
		}
	}
	return json.Marshal(records)
}

// decodeEntries parses a persisted list. Entries without an ID and repeated IDs
// (first occurrence wins) are dropped and counted so a hand-edited record can
// never break the one-entry-per-ID invariant.
func decodeEntries(data []byte) (entries []domain.WatchlistEntry, dropped int, err error) {
	var records []recordEntry
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	entries = make([]domain.WatchlistEntry, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if r.ImdbID == "" || seen[r.ImdbID] {
			dropped++
			continue
		}
		seen[r.ImdbID] = true
		entries = append(entries, domain.WatchlistEntry{
			Movie: domain.Movie{
				ID:        r.ImdbID,
				Title:     r.Title,
				Year:      r.Year,
				PosterURL: r.Poster,
				Kind:      domain.MovieKind(r.Type),
			},
			AddedAt: r.AddedAt,
		})
	}
	return entries, dropped, nil
}
