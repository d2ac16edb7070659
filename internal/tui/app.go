package tui

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/catalog"
	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/components"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// View identifies the screen being shown
type View int

const (
	ViewSearch View = iota
	ViewDetail
	ViewWatchlist
)

const (
	statusDuration = 3 * time.Second
	loadFailedText = "Saved watchlist could not be read, starting empty"
)

// Watchlist is the store the TUI reads and mutates
type Watchlist interface {
	domain.WatchlistQueries
	domain.WatchlistCommands
}

// URLOpener opens web pages
type URLOpener interface {
	Open(url string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	Active   View
	Previous View // View to return to from the detail screen
	Ready    bool
	ShowHelp bool

	// Services
	Catalog   domain.CatalogQueries
	Watchlist Watchlist
	Opener    URLOpener
	Observer  *ChannelObserver
	logger    *slog.Logger

	// Dimensions
	Width  int
	Height int

	// Search view
	SearchBar     components.InputBar
	Results       []domain.Movie
	TotalResults  int
	Query         string // Last submitted query
	Searching     bool
	SearchFailure string
	resultCursor  components.Cursor

	// Detail view
	DetailID      string
	Detail        *domain.MovieDetail
	DetailLoading bool
	DetailFailure string

	// Watchlist view
	Entries    []domain.WatchlistEntry
	FilterBar  components.InputBar
	Sort       components.SortSelection
	SortModal  components.SortModal
	rows       []watchlistRow
	listCursor components.Cursor

	// Modals and chrome
	Confirm components.ConfirmModal
	spinner spinner.Model
	help    help.Model

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	statusSeq     int
	PersistFailed bool // Watchlist changes are not reaching storage

	now func() time.Time
}

// NewModel creates a new application model
func NewModel(catalogSvc domain.CatalogQueries, watchlist Watchlist, opener URLOpener, observer *ChannelObserver, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.Styles.ShortKey = styles.AccentStyle
	h.Styles.ShortDesc = styles.DimStyle
	h.Styles.FullKey = styles.AccentStyle
	h.Styles.FullDesc = styles.DimStyle

	m := Model{
		Active:    ViewSearch,
		Previous:  ViewSearch,
		Catalog:   catalogSvc,
		Watchlist: watchlist,
		Opener:    opener,
		Observer:  observer,
		logger:    logger,
		SearchBar: components.NewInputBar("Search", "Search for a movie..."),
		FilterBar: components.NewInputBar("Filter", "Type to filter saved movies..."),
		Sort:      components.SortSelection{Field: components.SortDateAdded, Direction: components.SortDesc},
		SortModal: components.NewSortModal(),
		Confirm:   components.NewConfirmModal(),
		spinner:   sp,
		help:      h,
		now:       time.Now,
	}
	m.SearchBar.Focus()
	m.Entries = watchlist.List()
	m.refreshWatchlistRows()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	if m.Observer != nil {
		cmds = append(cmds, m.Observer.Listen())
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SearchResultsMsg:
		if msg.Query != m.Query {
			return m, nil // Superseded by a newer search
		}
		m.Searching = false
		if msg.Err != nil {
			m.Results = nil
			m.TotalResults = 0
			m.SearchFailure = catalog.FailureReason("search", msg.Err)
			m.resultCursor.SetLen(0)
			return m, nil
		}
		m.SearchFailure = ""
		m.Results = msg.Page.Results
		m.TotalResults = msg.Page.TotalCount
		m.resultCursor.SetLen(len(m.Results))
		m.resultCursor.Top()
		return m, nil

	case DetailLoadedMsg:
		if msg.ID != m.DetailID {
			return m, nil // User moved on
		}
		m.DetailLoading = false
		if msg.Err != nil {
			m.Detail = nil
			m.DetailFailure = catalog.FailureReason("lookup", msg.Err)
			return m, nil
		}
		m.DetailFailure = ""
		m.Detail = msg.Detail
		return m, nil

	case WatchlistChangedMsg:
		m.Entries = msg.Entries
		m.refreshWatchlistRows()
		return m, m.listen()

	case PersistFailedMsg:
		if errors.Is(msg.Err, domain.ErrLoadFailed) {
			// Startup only; later saves work independently of this
			m.logger.Warn("watchlist could not be loaded", "error", msg.Err)
			cmd := m.setStatus(loadFailedText, true)
			return m, tea.Batch(cmd, m.listen())
		}
		m.PersistFailed = true
		m.logger.Warn("watchlist persistence failed", "error", msg.Err)
		return m, m.listen()

	case PersistRecoveredMsg:
		m.PersistFailed = false
		return m, m.listen()

	case URLOpenedMsg:
		if msg.Err != nil {
			cmd := m.setStatus("Could not open browser", true)
			return m, cmd
		}
		cmd := m.setStatus("Opened "+msg.URL, false)
		return m, cmd

	case ClearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.StatusMsg = ""
			m.StatusIsErr = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) listen() tea.Cmd {
	if m.Observer == nil {
		return nil
	}
	return m.Observer.Listen()
}

// setStatus shows a transient footer message
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(m.statusSeq, statusDuration)
}

// submitSearch starts a catalog search for the input value.
// Blank input is not submitted.
func (m *Model) submitSearch() tea.Cmd {
	query := strings.TrimSpace(m.SearchBar.Value())
	if query == "" {
		return nil
	}
	m.Query = query
	m.Searching = true
	m.SearchFailure = ""
	m.SearchBar.Blur()
	return SearchCmd(m.Catalog, query)
}

// openDetail switches to the detail view for id and starts loading it
func (m *Model) openDetail(id string) tea.Cmd {
	if id == "" {
		return nil
	}
	if m.Active != ViewDetail {
		m.Previous = m.Active
	}
	m.Active = ViewDetail
	m.DetailID = id
	m.Detail = nil
	m.DetailFailure = ""
	m.DetailLoading = true
	return LookupCmd(m.Catalog, id)
}

// toggleSaved adds or removes movie and reports the outcome in the footer
func (m *Model) toggleSaved(movie domain.Movie) tea.Cmd {
	if movie.ID == "" {
		return nil
	}
	before := m.Watchlist.Contains(movie.ID)
	saved := m.Watchlist.Toggle(movie)
	if saved == before {
		return m.setStatus("Watchlist unavailable", true)
	}
	m.Entries = m.Watchlist.List()
	m.refreshWatchlistRows()

	if saved {
		return m.setStatus("Saved "+movie.DisplayTitle(), false)
	}
	return m.setStatus("Removed "+movie.DisplayTitle(), false)
}

// openIMDb opens the IMDb page for id
func (m *Model) openIMDb(id string) tea.Cmd {
	if id == "" || m.Opener == nil {
		return nil
	}
	return OpenURLCmd(m.Opener, domain.IMDbURL(id))
}

// confirmRemove asks before removing the selected watchlist entry
func (m *Model) confirmRemove() {
	row := m.selectedWatchlistRow()
	if row == nil {
		return
	}
	m.Confirm.Show("Remove Movie",
		`Remove "`+row.Entry.Title+`" from your watchlist?`,
		components.ConfirmRemove, row.Entry.ID)
}

// confirmClear asks before clearing the whole watchlist
func (m *Model) confirmClear() {
	if len(m.Entries) == 0 {
		return
	}
	m.Confirm.Show("Clear Watchlist",
		"Remove all saved movies? This cannot be undone.",
		components.ConfirmClear, "")
}

// runConfirmed performs the confirmed action
func (m *Model) runConfirmed() tea.Cmd {
	action, target := m.Confirm.Action()
	m.Confirm.Hide()

	switch action {
	case components.ConfirmRemove:
		entry, ok := m.Watchlist.Get(target)
		if !m.Watchlist.Remove(target) {
			return nil
		}
		m.Entries = m.Watchlist.List()
		m.refreshWatchlistRows()
		if ok {
			return m.setStatus("Removed "+entry.DisplayTitle(), false)
		}
	case components.ConfirmClear:
		m.Watchlist.Clear()
		m.Entries = m.Watchlist.List()
		m.refreshWatchlistRows()
		return m.setStatus("Watchlist cleared", false)
	}
	return nil
}

// selectedResult returns the highlighted search result
func (m Model) selectedResult() *domain.Movie {
	i := m.resultCursor.Index()
	if i < 0 || i >= len(m.Results) {
		return nil
	}
	return &m.Results[i]
}

// selectedWatchlistRow returns the highlighted watchlist row
func (m Model) selectedWatchlistRow() *watchlistRow {
	i := m.listCursor.Index()
	if i < 0 || i >= len(m.rows) {
		return nil
	}
	return &m.rows[i]
}

// switchView moves between the search and watchlist views
func (m *Model) switchView() tea.Cmd {
	from := m.Active
	if from == ViewDetail {
		from = m.Previous
	}
	if from == ViewWatchlist {
		m.Active = ViewSearch
		if len(m.Results) == 0 {
			return m.SearchBar.Focus()
		}
		return nil
	}
	m.Active = ViewWatchlist
	m.SearchBar.Blur()
	return nil
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	switch m.Active {
	case ViewDetail:
		content = m.renderDetailView()
	case ViewWatchlist:
		content = m.renderWatchlistView()
	default:
		content = m.renderSearchView()
	}

	content = lipgloss.NewStyle().Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)
	screen := lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), content, m.renderFooter())

	// Overlay modals in the center of the screen
	var modal string
	switch {
	case m.Confirm.IsVisible():
		modal = m.Confirm.View()
	case m.SortModal.IsVisible():
		modal = m.SortModal.View()
	}
	if modal != "" {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
	}
	return screen
}
