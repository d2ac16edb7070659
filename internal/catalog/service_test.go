package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinesearch/internal/domain"
)

type fakeRepo struct {
	page     *domain.SearchPage
	detail   *domain.MovieDetail
	err      error
	searches []string
	lookups  []string
}

func (f *fakeRepo) Search(_ context.Context, query string) (*domain.SearchPage, error) {
	f.searches = append(f.searches, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeRepo) Lookup(_ context.Context, id string) (*domain.MovieDetail, error) {
	f.lookups = append(f.lookups, id)
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestSearchEmptyQueryNeverReachesCatalog(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
	assert.Empty(t, repo.searches)
}

func TestSearchTrimsAndRanks(t *testing.T) {
	repo := &fakeRepo{page: &domain.SearchPage{
		Results: []domain.Movie{
			{ID: "tt4", Title: "Lego Batman Movie"},
			{ID: "tt1", Title: "Batman Begins"},
			{ID: "tt5", Title: "Superman"},
			{ID: "tt2", Title: "Batman"},
			{ID: "tt3", Title: "The Batman"},
		},
		TotalCount: 120,
	}}
	svc := NewService(repo, nil)

	page, err := svc.Search(context.Background(), "  batman ")
	require.NoError(t, err)
	assert.Equal(t, []string{"batman"}, repo.searches)

	assert.Equal(t, []string{"Batman", "Batman Begins", "Lego Batman Movie", "The Batman", "Superman"}, titles(page.Results))
	assert.Equal(t, 120, page.TotalCount)
}

func TestRankResultsKeepsEveryResult(t *testing.T) {
	movies := []domain.Movie{
		{ID: "a", Title: "Zzz"},
		{ID: "b", Title: "Yyy"},
		{ID: "c", Title: "Alien"},
	}
	ranked := rankResults(movies, "alien")
	assert.Equal(t, []string{"Alien", "Zzz", "Yyy"}, titles(ranked), "non-matches keep catalog order")
	assert.Equal(t, "Zzz", movies[0].Title, "input is not reordered")

	assert.Len(t, rankResults(nil, "x"), 0)
}

func TestMatchScore(t *testing.T) {
	assert.Equal(t, 0, matchScore("alien", "alien"))
	assert.Equal(t, 10, matchScore("aliens", "alien"))
	assert.Equal(t, 50, matchScore("the alien", "alien"))
	assert.Greater(t, matchScore("all in engine", "alien"), 50)
	assert.Equal(t, 1000, matchScore("batman", "alien"))
}

func TestSearchPropagatesErrors(t *testing.T) {
	repo := &fakeRepo{err: fmt.Errorf("%w: dial tcp", domain.ErrServerOffline)}
	svc := NewService(repo, nil)

	_, err := svc.Search(context.Background(), "alien")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestLookup(t *testing.T) {
	repo := &fakeRepo{detail: &domain.MovieDetail{ID: "tt1", Title: "Alpha"}}
	svc := NewService(repo, nil)

	_, err := svc.Lookup(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, repo.lookups)

	d, err := svc.Lookup(context.Background(), " tt1 ")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", d.Title)
	assert.Equal(t, []string{"tt1"}, repo.lookups)
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		op   string
		err  error
		want string
	}{
		{"nil", "search", nil, ""},
		{"empty query", "search", domain.ErrEmptyQuery, ReasonEmptyQuery},
		{"no results", "search", &domain.CatalogError{Op: "search", Reason: "Movie not found!", Err: domain.ErrNotFound}, ReasonNoResults},
		{"lookup not found", "lookup", domain.ErrNotFound, ReasonNotFound},
		{"lookup catalog reason", "lookup", &domain.CatalogError{Op: "lookup", Reason: "Incorrect IMDb ID.", Err: domain.ErrNotFound}, "Incorrect IMDb ID."},
		{"offline", "lookup", fmt.Errorf("%w: timeout", domain.ErrServerOffline), ReasonOffline},
		{"deadline", "search", context.DeadlineExceeded, ReasonOffline},
		{"auth", "search", &domain.CatalogError{Op: "search", Reason: "Invalid API key!", Err: domain.ErrAuthFailed}, ReasonAuthFailed},
		{"rate limited", "search", domain.ErrRateLimited, ReasonRateLimited},
		{"unknown", "search", errors.New("boom"), ReasonUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FailureReason(tt.op, tt.err))
		})
	}
}
