package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinesearch/internal/catalog"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/store"
	"github.com/mmcdole/cinesearch/internal/tui/components"
	"github.com/mmcdole/cinesearch/internal/watchlist"
)

type fakeCatalog struct {
	page      *domain.SearchPage
	searchErr error
	detail    *domain.MovieDetail
	lookupErr error
	queries   []string
}

func (f *fakeCatalog) Search(_ context.Context, query string) (*domain.SearchPage, error) {
	f.queries = append(f.queries, query)
	return f.page, f.searchErr
}

func (f *fakeCatalog) Lookup(_ context.Context, id string) (*domain.MovieDetail, error) {
	return f.detail, f.lookupErr
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	return f.err
}

var (
	alien  = domain.Movie{ID: "tt0078748", Title: "Alien", Year: "1979", Kind: domain.KindMovie}
	aliens = domain.Movie{ID: "tt0090605", Title: "Aliens", Year: "1986", Kind: domain.KindMovie}
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWatchlist(t *testing.T) *watchlist.Store {
	t.Helper()
	records, err := store.NewRecordStore("")
	require.NoError(t, err)
	wl := watchlist.NewStore(records, quietLogger())
	wl.Initialize()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = wl.Close(ctx)
		_ = records.Close()
	})
	return wl
}

func newTestModel(t *testing.T, cat *fakeCatalog) (Model, *watchlist.Store) {
	t.Helper()
	wl := newTestWatchlist(t)
	m := NewModel(cat, wl, &fakeOpener{}, NewChannelObserver(), quietLogger())
	m.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, wl
}

// send delivers msg and drops the returned command
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// searchFor types query, submits it and feeds back the result
func searchFor(t *testing.T, m Model, query string) Model {
	t.Helper()
	m = send(t, m, runes(query))
	m, cmd := update(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.True(t, m.Searching)
	return send(t, m, cmd())
}

func TestSearchSubmit(t *testing.T) {
	cat := &fakeCatalog{page: &domain.SearchPage{Results: []domain.Movie{alien, aliens}, TotalCount: 12}}
	m, _ := newTestModel(t, cat)

	m = searchFor(t, m, "alien")

	assert.Equal(t, []string{"alien"}, cat.queries)
	assert.False(t, m.Searching)
	assert.Equal(t, "alien", m.Query)
	assert.Len(t, m.Results, 2)
	assert.Equal(t, 12, m.TotalResults)
	assert.False(t, m.SearchBar.Focused())
	assert.Contains(t, m.View(), "Showing 2 of 12 results")
}

func TestSearchBlankQueryNotSubmitted(t *testing.T) {
	cat := &fakeCatalog{}
	m, _ := newTestModel(t, cat)

	m = send(t, m, runes("   "))
	m, cmd := update(t, m, keyOf(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.False(t, m.Searching)
	assert.Empty(t, cat.queries)
}

func TestSearchFailureShowsReason(t *testing.T) {
	cat := &fakeCatalog{searchErr: &domain.CatalogError{Op: "search", Err: domain.ErrServerOffline}}
	m, _ := newTestModel(t, cat)

	m = searchFor(t, m, "alien")

	assert.Equal(t, catalog.ReasonOffline, m.SearchFailure)
	assert.Empty(t, m.Results)
	assert.Contains(t, m.View(), catalog.ReasonOffline)
}

func TestStaleSearchResultsIgnored(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})
	m.Query = "aliens"
	m.Searching = true

	m = send(t, m, SearchResultsMsg{Query: "alien", Page: &domain.SearchPage{Results: []domain.Movie{alien}}})

	assert.True(t, m.Searching)
	assert.Empty(t, m.Results)
}

func TestToggleFromResults(t *testing.T) {
	cat := &fakeCatalog{page: &domain.SearchPage{Results: []domain.Movie{alien, aliens}, TotalCount: 2}}
	m, wl := newTestModel(t, cat)
	m = searchFor(t, m, "alien")

	m = send(t, m, runes("j"))
	m = send(t, m, runes("w"))

	assert.True(t, wl.Contains(aliens.ID))
	assert.False(t, wl.Contains(alien.ID))
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "Saved Aliens (1986)", m.StatusMsg)
	assert.Contains(t, m.View(), "♥")

	m = send(t, m, runes("w"))
	assert.False(t, wl.Contains(aliens.ID))
	assert.Empty(t, m.Entries)
	assert.Equal(t, "Removed Aliens (1986)", m.StatusMsg)
}

func TestStatusClearsBySequence(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})
	m.setStatus("first", false)
	m.setStatus("second", false)

	m = send(t, m, ClearStatusMsg{Seq: 1})
	assert.Equal(t, "second", m.StatusMsg)

	m = send(t, m, ClearStatusMsg{Seq: 2})
	assert.Empty(t, m.StatusMsg)
}

func TestDetailLoad(t *testing.T) {
	detail := &domain.MovieDetail{
		ID: alien.ID, Title: "Alien", Year: "1979", Kind: domain.KindMovie,
		Genre: "Horror, Sci-Fi", IMDbRating: "8.5", Director: "Ridley Scott",
		Plot: "The crew of a commercial spacecraft encounters a deadly lifeform.",
	}
	cat := &fakeCatalog{page: &domain.SearchPage{Results: []domain.Movie{alien}, TotalCount: 1}, detail: detail}
	m, wl := newTestModel(t, cat)
	m = searchFor(t, m, "alien")

	m, cmd := update(t, m, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewDetail, m.Active)
	assert.True(t, m.DetailLoading)

	m = send(t, m, cmd())
	assert.False(t, m.DetailLoading)
	require.NotNil(t, m.Detail)

	view := m.View()
	assert.Contains(t, view, "Ridley Scott")
	assert.Contains(t, view, "IMDb 8.5")
	assert.Contains(t, view, "Horror · Sci-Fi")
	assert.NotContains(t, view, "Awards")

	m = send(t, m, runes("w"))
	assert.True(t, wl.Contains(alien.ID))

	m = send(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, ViewSearch, m.Active)
}

func TestDetailFailureReason(t *testing.T) {
	cat := &fakeCatalog{lookupErr: &domain.CatalogError{Op: "lookup", Reason: "Incorrect IMDb ID.", Err: domain.ErrNotFound}}
	m, _ := newTestModel(t, cat)

	m.openDetail("tt0000000")
	m = send(t, m, DetailLoadedMsg{ID: "tt0000000", Err: cat.lookupErr})

	assert.Equal(t, "Incorrect IMDb ID.", m.DetailFailure)
	assert.Nil(t, m.Detail)
	assert.Contains(t, m.View(), "Incorrect IMDb ID.")
}

func TestStaleDetailIgnored(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})
	m.openDetail(aliens.ID)

	m = send(t, m, DetailLoadedMsg{ID: alien.ID, Detail: &domain.MovieDetail{ID: alien.ID}})

	assert.True(t, m.DetailLoading)
	assert.Nil(t, m.Detail)
}

func TestWatchlistChangedRefreshesRows(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})
	saved := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	entries := []domain.WatchlistEntry{
		{Movie: aliens, AddedAt: saved.UnixMilli()},
		{Movie: alien, AddedAt: saved.Add(-time.Hour).UnixMilli()},
	}

	m, cmd := update(t, m, WatchlistChangedMsg{Entries: entries})

	assert.NotNil(t, cmd, "model keeps listening")
	require.Len(t, m.rows, 2)
	assert.Equal(t, aliens.ID, m.rows[0].Entry.ID)

	m = send(t, m, keyOf(tea.KeyTab))
	assert.Equal(t, ViewWatchlist, m.Active)
	view := m.View()
	assert.Contains(t, view, "2 movies saved")
	assert.Contains(t, view, "added Mar 9, 2024 (1 day ago)")
}

func TestEmptyWatchlistView(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})
	m = send(t, m, keyOf(tea.KeyTab))

	assert.Contains(t, m.View(), "No movies saved yet")
}

func TestConfirmRemove(t *testing.T) {
	m, wl := newTestModel(t, &fakeCatalog{})
	wl.Add(alien)
	wl.Add(aliens)
	m = send(t, m, WatchlistChangedMsg{Entries: wl.List()})
	m = send(t, m, keyOf(tea.KeyTab))

	m = send(t, m, runes("d"))
	require.True(t, m.Confirm.IsVisible())
	assert.Equal(t, `Remove "Aliens" from your watchlist?`, m.Confirm.Prompt())

	// Other keys are swallowed while confirming
	m = send(t, m, runes("j"))
	assert.True(t, m.Confirm.IsVisible())

	m = send(t, m, runes("y"))
	assert.False(t, m.Confirm.IsVisible())
	assert.False(t, wl.Contains(aliens.ID))
	assert.True(t, wl.Contains(alien.ID))
	assert.Len(t, m.rows, 1)
}

func TestConfirmClear(t *testing.T) {
	m, wl := newTestModel(t, &fakeCatalog{})
	wl.Add(alien)
	wl.Add(aliens)
	m = send(t, m, WatchlistChangedMsg{Entries: wl.List()})
	m = send(t, m, keyOf(tea.KeyTab))

	m = send(t, m, runes("C"))
	require.True(t, m.Confirm.IsVisible())
	m = send(t, m, runes("n"))
	assert.False(t, m.Confirm.IsVisible())
	assert.Equal(t, 2, wl.Len())

	m = send(t, m, runes("C"))
	m = send(t, m, runes("y"))
	assert.Equal(t, 0, wl.Len())
	assert.Empty(t, m.rows)
	assert.Equal(t, "Watchlist cleared", m.StatusMsg)

	// Nothing to confirm on an empty list
	m = send(t, m, runes("C"))
	assert.False(t, m.Confirm.IsVisible())
}

func TestWatchlistFilter(t *testing.T) {
	m, wl := newTestModel(t, &fakeCatalog{})
	wl.Add(domain.Movie{ID: "tt0133093", Title: "The Matrix", Year: "1999"})
	wl.Add(alien)
	m = send(t, m, WatchlistChangedMsg{Entries: wl.List()})
	m = send(t, m, keyOf(tea.KeyTab))

	m = send(t, m, runes("/"))
	require.True(t, m.FilterBar.Focused())
	m = send(t, m, runes("matr"))

	require.Len(t, m.rows, 1)
	assert.Equal(t, "The Matrix", m.rows[0].Entry.Title)
	assert.NotEmpty(t, m.rows[0].Matched)

	m = send(t, m, keyOf(tea.KeyEsc))
	assert.False(t, m.FilterBar.Focused())
	assert.Len(t, m.rows, 2)
}

func TestWatchlistSort(t *testing.T) {
	m, wl := newTestModel(t, &fakeCatalog{})
	wl.Add(aliens)
	wl.Add(alien)
	m = send(t, m, WatchlistChangedMsg{Entries: wl.List()})
	m = send(t, m, keyOf(tea.KeyTab))

	m = send(t, m, runes("s"))
	require.True(t, m.SortModal.IsVisible())
	m = send(t, m, runes("j"))
	m = send(t, m, keyOf(tea.KeyEnter))

	assert.False(t, m.SortModal.IsVisible())
	assert.Equal(t, components.SortSelection{Field: components.SortTitle, Direction: components.SortAsc}, m.Sort)
	assert.Equal(t, "Alien", m.rows[0].Entry.Title)
	assert.Equal(t, "Aliens", m.rows[1].Entry.Title)
}

func TestPersistFailedShowsWarning(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})

	m, cmd := update(t, m, PersistFailedMsg{Err: errors.New("disk full")})

	assert.NotNil(t, cmd)
	assert.True(t, m.PersistFailed)
	assert.Contains(t, m.View(), "watchlist not saved")
}

func TestPersistRecoveredClearsWarning(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})

	m = send(t, m, PersistFailedMsg{Err: errors.New("failed to save watchlist: disk full")})
	require.Contains(t, m.View(), "watchlist not saved")

	m, cmd := update(t, m, PersistRecoveredMsg{})
	assert.NotNil(t, cmd, "model keeps listening")
	assert.False(t, m.PersistFailed)
	assert.NotContains(t, m.View(), "watchlist not saved")
}

func TestCorruptRecordIsNotASaveFailure(t *testing.T) {
	records, err := store.NewRecordStore("")
	require.NoError(t, err)
	defer records.Close()
	require.NoError(t, records.Put(watchlist.DefaultKey, []byte(`{not json`)))

	obs := NewChannelObserver()
	wl := watchlist.NewStore(records, quietLogger())
	wl.Subscribe(obs)
	wl.Initialize()
	defer wl.Close(context.Background())

	m := NewModel(&fakeCatalog{}, wl, &fakeOpener{}, obs, quietLogger())
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	// Initialize reported both the empty list and the load failure
	m = send(t, m, obs.Listen()())
	m = send(t, m, obs.Listen()())
	assert.False(t, m.PersistFailed)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, loadFailedText, m.StatusMsg)

	wl.Add(alien)
	require.NoError(t, wl.Flush(context.Background()))
	stored, ok, err := records.Get(watchlist.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(stored), alien.ID)

	m = send(t, m, ClearStatusMsg{Seq: m.statusSeq})
	assert.NotContains(t, m.View(), "watchlist not saved")
}

func TestToggleRejectedReportsUnavailable(t *testing.T) {
	records, err := store.NewRecordStore("")
	require.NoError(t, err)
	defer records.Close()

	// Never initialized, so every change is rejected
	wl := watchlist.NewStore(records, quietLogger())
	m := NewModel(&fakeCatalog{}, wl, &fakeOpener{}, nil, quietLogger())
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(t, m, SearchResultsMsg{Query: "", Page: &domain.SearchPage{Results: []domain.Movie{alien}, TotalCount: 1}})
	m.SearchBar.Blur()

	m = send(t, m, runes("w"))

	assert.False(t, wl.Contains(alien.ID))
	assert.Equal(t, "Watchlist unavailable", m.StatusMsg)
	assert.True(t, m.StatusIsErr)
}

func TestOpenIMDb(t *testing.T) {
	cat := &fakeCatalog{page: &domain.SearchPage{Results: []domain.Movie{alien}, TotalCount: 1}}
	m, _ := newTestModel(t, cat)
	opener := &fakeOpener{}
	m.Opener = opener
	m = searchFor(t, m, "alien")

	m, cmd := update(t, m, runes("o"))
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.Equal(t, []string{"https://www.imdb.com/title/tt0078748/"}, opener.opened)
	assert.Equal(t, "Opened https://www.imdb.com/title/tt0078748/", m.StatusMsg)

	opener.err = fmt.Errorf("no browser")
	m = send(t, m, URLOpenedMsg{URL: "x", Err: opener.err})
	assert.True(t, m.StatusIsErr)
}

func TestHelpToggle(t *testing.T) {
	cat := &fakeCatalog{page: &domain.SearchPage{Results: []domain.Movie{alien}, TotalCount: 1}}
	m, _ := newTestModel(t, cat)
	m = searchFor(t, m, "alien")

	m = send(t, m, runes("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Keys")

	m = send(t, m, runes("?"))
	assert.False(t, m.ShowHelp)
}

func TestTypingQDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t, &fakeCatalog{})

	m = send(t, m, runes("q"))

	assert.Equal(t, "q", m.SearchBar.Value())
	assert.Equal(t, ViewSearch, m.Active)
}

func TestWatchlistSummary(t *testing.T) {
	assert.Equal(t, "No movies saved yet", watchlistSummary(0))
	assert.Equal(t, "1 movie saved", watchlistSummary(1))
	assert.Equal(t, "3 movies saved", watchlistSummary(3))
}

func TestWordWrap(t *testing.T) {
	assert.Equal(t, "one two\nthree", wordWrap("one two three", 8))
	assert.Equal(t, "as is", wordWrap("as is", 0))
}
