package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/cinesearch/internal/domain"
)

// Failure messages shown to the user
const (
	ReasonEmptyQuery   = "Type a title to search."
	ReasonNoResults    = "No results found."
	ReasonNotFound     = "Movie not found."
	ReasonOffline      = "Network error. Please check your connection."
	ReasonAuthFailed   = "Invalid OMDb API key."
	ReasonRateLimited  = "OMDb request limit reached."
	ReasonUnknownError = "Something went wrong."
)

// Service validates catalog queries and orders results for display.
// Implements domain.CatalogQueries.
type Service struct {
	repo   domain.CatalogRepository
	logger *slog.Logger
}

// NewService creates a new catalog service.
func NewService(repo domain.CatalogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Search returns titles matching query. A blank query fails with
// domain.ErrEmptyQuery without contacting the catalog.
func (s *Service) Search(ctx context.Context, query string) (*domain.SearchPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	page, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Warn("catalog search failed", "query", query, "error", err)
		return nil, err
	}

	page.Results = rankResults(page.Results, query)
	s.logger.Debug("search complete", "query", query, "results", len(page.Results), "total", page.TotalCount)
	return page, nil
}

// Lookup returns full metadata for id
func (s *Service) Lookup(ctx context.Context, id string) (*domain.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}

	detail, err := s.repo.Lookup(ctx, id)
	if err != nil {
		s.logger.Warn("catalog lookup failed", "id", id, "error", err)
		return nil, err
	}
	return detail, nil
}

// rankResults moves titles that match the query closely to the front.
// The sort is stable and keeps every result, so catalog order breaks ties.
func rankResults(movies []domain.Movie, query string) []domain.Movie {
	if len(movies) < 2 {
		return movies
	}

	query = strings.ToLower(query)
	scores := make(map[string]int, len(movies))
	for _, m := range movies {
		scores[m.ID] = matchScore(strings.ToLower(m.Title), query)
	}

	ranked := make([]domain.Movie, len(movies))
	copy(ranked, movies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] < scores[ranked[j].ID]
	})
	return ranked
}

// matchScore ranks title against query; lower is better
func matchScore(title, query string) int {
	switch {
	case title == query:
		return 0
	case strings.HasPrefix(title, query):
		return 10
	case strings.Contains(title, query):
		return 50
	}

	if d := fuzzy.RankMatchFold(query, title); d >= 0 {
		return 100 + d
	}
	return 1000
}

// FailureReason turns an error from op ("search" or "lookup") into a message for the user
func FailureReason(op string, err error) string {
	var ce *domain.CatalogError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyQuery):
		return ReasonEmptyQuery
	case errors.Is(err, domain.ErrNotFound):
		if op == "search" {
			return ReasonNoResults
		}
		if errors.As(err, &ce) && ce.Reason != "" {
			return ce.Reason
		}
		return ReasonNotFound
	case errors.Is(err, domain.ErrServerOffline), errors.Is(err, context.DeadlineExceeded):
		return ReasonOffline
	case errors.Is(err, domain.ErrAuthFailed):
		return ReasonAuthFailed
	case errors.Is(err, domain.ErrRateLimited):
		return ReasonRateLimited
	case errors.As(err, &ce) && ce.Reason != "":
		return ce.Reason
	default:
		return ReasonUnknownError
	}
}
