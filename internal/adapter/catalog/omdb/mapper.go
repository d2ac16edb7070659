package omdb

import (
	"strconv"
	"strings"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// value normalizes an OMDb field: "N/A" and blanks become ""
func value(s string) string {
	s = strings.TrimSpace(s)
	if s == domain.NotAvailable {
		return ""
	}
	return s
}

// MapSearchItem converts a search hit to a domain Movie.
// Poster keeps the N/A sentinel so the stored record matches what OMDb sent.
func MapSearchItem(item SearchItem) domain.Movie {
	return domain.Movie{
		ID:        strings.TrimSpace(item.ImdbID),
		Title:     strings.TrimSpace(item.Title),
		Year:      value(item.Year),
		PosterURL: strings.TrimSpace(item.Poster),
		Kind:      domain.MovieKind(value(item.Type)),
	}
}

// MapSearchResponse converts a search response, skipping hits without an ID
func MapSearchResponse(resp *SearchResponse) *domain.SearchPage {
	page := &domain.SearchPage{Results: make([]domain.Movie, 0, len(resp.Search))}
	for _, item := range resp.Search {
		m := MapSearchItem(item)
		if m.ID == "" {
			continue
		}
		page.Results = append(page.Results, m)
	}

	page.TotalCount = len(page.Results)
	if n, err := strconv.Atoi(value(resp.TotalResults)); err == nil && n > page.TotalCount {
		page.TotalCount = n
	}
	return page
}

// MapTitle converts a title response to a domain MovieDetail
func MapTitle(resp *TitleResponse) *domain.MovieDetail {
	d := &domain.MovieDetail{
		ID:         strings.TrimSpace(resp.ImdbID),
		Title:      strings.TrimSpace(resp.Title),
		Year:       value(resp.Year),
		Rated:      value(resp.Rated),
		Released:   value(resp.Released),
		Runtime:    value(resp.Runtime),
		Genre:      value(resp.Genre),
		Director:   value(resp.Director),
		Writer:     value(resp.Writer),
		Actors:     value(resp.Actors),
		Plot:       value(resp.Plot),
		Language:   value(resp.Language),
		Country:    value(resp.Country),
		Awards:     value(resp.Awards),
		PosterURL:  value(resp.Poster),
		IMDbRating: value(resp.ImdbRating),
		IMDbVotes:  value(resp.ImdbVotes),
		Metascore:  value(resp.Metascore),
		Kind:       domain.MovieKind(value(resp.Type)),
		BoxOffice:  value(resp.BoxOffice),
	}
	for _, r := range resp.Ratings {
		if src, v := value(r.Source), value(r.Value); src != "" && v != "" {
			d.Ratings = append(d.Ratings, domain.Rating{Source: src, Value: v})
		}
	}
	return d
}
