package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// NotAvailable is the catalog's placeholder for a missing value
const NotAvailable = "N/A"

// MovieKind classifies a catalog title. Unknown kinds pass through unchanged.
type MovieKind string

const (
	KindMovie   MovieKind = "movie"
	KindSeries  MovieKind = "series"
	KindEpisode MovieKind = "episode"
)

// Label returns a display label for the kind ("Movie", "Series", ...)
func (k MovieKind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindSeries:
		return "Series"
	case KindEpisode:
		return "Episode"
	case "":
		return ""
	default:
		r, size := utf8.DecodeRuneInString(string(k))
		return string(unicode.ToUpper(r)) + string(k)[size:]
	}
}

// Movie is the minimal record returned by a catalog search.
// It is also the input to watchlist mutations (an entry without AddedAt).
type Movie struct {
	ID        string    // External catalog key (IMDb ID)
	Title     string    // Display name
	Year      string    // Release year as provided, e.g. "2001–2006" for series
	PosterURL string    // Poster image URL; "" or "N/A" when unavailable
	Kind      MovieKind // Optional classification
}

// HasPoster reports whether the movie carries a usable poster URL
func (m Movie) HasPoster() bool {
	return HasPoster(m.PosterURL)
}

// DisplayTitle returns "Title (Year)" or just the title when the year is unknown
func (m Movie) DisplayTitle() string {
	if m.Year == "" {
		return m.Title
	}
	return m.Title + " (" + m.Year + ")"
}

// HasPoster reports whether url is neither empty nor the N/A sentinel
func HasPoster(url string) bool {
	return url != "" && url != NotAvailable
}

// WatchlistEntry is one saved movie. AddedAt is stamped by the watchlist store.
type WatchlistEntry struct {
	Movie
	AddedAt int64 // Milliseconds since the Unix epoch
}

// AddedTime returns AddedAt as a time.Time
func (e WatchlistEntry) AddedTime() time.Time {
	return time.UnixMilli(e.AddedAt)
}

// SearchPage is a single page of catalog search results
type SearchPage struct {
	Results    []Movie
	TotalCount int
}

// Rating is a third-party score attached to a title ("Rotten Tomatoes", "94%")
type Rating struct {
	Source string
	Value  string
}

// MovieDetail is the full metadata for a single catalog title.
// Fields the catalog reports as N/A are empty.
type MovieDetail struct {
	ID         string
	Title      string
	Year       string
	Rated      string
	Released   string
	Runtime    string
	Genre      string
	Director   string
	Writer     string
	Actors     string
	Plot       string
	Language   string
	Country    string
	Awards     string
	PosterURL  string
	IMDbRating string
	IMDbVotes  string
	Metascore  string
	Kind       MovieKind
	BoxOffice  string
	Ratings    []Rating
}

// Movie projects the detail onto the fields a watchlist entry keeps
func (d MovieDetail) Movie() Movie {
	return Movie{
		ID:        d.ID,
		Title:     d.Title,
		Year:      d.Year,
		PosterURL: d.PosterURL,
		Kind:      d.Kind,
	}
}

// Genres splits the comma separated genre list
func (d MovieDetail) Genres() []string {
	if d.Genre == "" {
		return nil
	}
	parts := strings.Split(d.Genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// StarRating converts the 10-point IMDb rating to 0-5 stars.
// ok is false when the rating is not numeric.
func (d MovieDetail) StarRating() (stars int, ok bool) {
	rating, err := strconv.ParseFloat(d.IMDbRating, 64)
	if err != nil || math.IsNaN(rating) {
		return 0, false
	}
	stars = int(math.Round(rating / 2))
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	return stars, true
}

// IMDbURL returns the public IMDb page for a title ID
func IMDbURL(id string) string {
	return "https://www.imdb.com/title/" + id + "/"
}
