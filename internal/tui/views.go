package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/mmcdole/cinesearch/internal/domain"
	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// Watchlist summary lines
const (
	emptyWatchlistText = "No movies saved yet"
	persistWarningText = "watchlist not saved"
)

// watchlistSummary returns "N movie(s) saved" or the empty-state text
func watchlistSummary(n int) string {
	switch n {
	case 0:
		return emptyWatchlistText
	case 1:
		return "1 movie saved"
	default:
		return fmt.Sprintf("%d movies saved", n)
	}
}

// renderTabs renders the view switcher
func (m Model) renderTabs() string {
	active := m.Active
	if active == ViewDetail {
		active = m.Previous
	}

	tab := func(label string, v View) string {
		if v == active {
			return styles.ActiveTabStyle.Render(label)
		}
		return styles.InactiveTabStyle.Render(label)
	}

	saved := "Watchlist"
	if n := len(m.Entries); n > 0 {
		saved = fmt.Sprintf("Watchlist (%d)", n)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render("cinesearch "),
		tab("Search", ViewSearch),
		tab(saved, ViewWatchlist),
	) + "\n"
}

// renderFooter renders status on the left and key hints on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.PersistFailed:
		left = styles.DimStyle.Render(persistWarningText)
	}

	right := m.help.ShortHelpView(helpKeys(m.Active).ShortHelp())

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - status wins
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	body := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(helpKeys(m.Active)) + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(body))
}

// renderSearchView renders the search input and result list
func (m Model) renderSearchView() string {
	var b strings.Builder
	b.WriteString(m.SearchBar.View())
	b.WriteString("\n\n")

	switch {
	case m.Searching:
		b.WriteString(m.spinner.View() + styles.DimStyle.Render(" Searching for "+m.Query+"..."))
		return b.String()
	case m.SearchFailure != "":
		b.WriteString(styles.ErrorStyle.Render(m.SearchFailure))
		return b.String()
	case m.Query == "":
		b.WriteString(styles.DimStyle.Render("Type a title and press enter"))
		return b.String()
	}

	summary := fmt.Sprintf("%d results for %q", m.TotalResults, m.Query)
	if m.TotalResults > len(m.Results) {
		summary = fmt.Sprintf("Showing %d of %d results for %q", len(m.Results), m.TotalResults, m.Query)
	}
	b.WriteString(styles.DimStyle.Render(summary))

	saved := savedSet(m.Entries)
	start, end := m.resultCursor.Window()
	for i := start; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(renderResultRow(m.Results[i], saved[m.Results[i].ID], i == m.resultCursor.Index(), m.contentWidth()))
	}
	return b.String()
}

// renderResultRow renders "♥ Title (Year)  Kind"
func renderResultRow(movie domain.Movie, saved, selected bool, width int) string {
	marker := "  "
	if saved {
		marker = styles.SavedChar + " "
	}

	kind := movie.Kind.Label()
	title := styles.Truncate(movie.DisplayTitle(), width-lipgloss.Width(kind)-8)

	pink, dim := styles.Pink, styles.DimGray
	parts := []styles.RowPart{
		{Text: marker, Foreground: &pink},
		{Text: title},
	}
	if kind != "" {
		parts = append(parts, styles.RowPart{Text: "  " + kind, Foreground: &dim})
	}
	return styles.RenderListRow(parts, selected, width)
}

// renderWatchlistView renders the saved list
func (m Model) renderWatchlistView() string {
	var b strings.Builder

	summary := watchlistSummary(len(m.Entries))
	if len(m.Entries) > 0 {
		summary += styles.DimStyle.Render(" · sorted by " + strings.ToLower(m.Sort.Field.String()))
	}
	b.WriteString(styles.SubtitleStyle.Render(summary))
	b.WriteString("\n")
	if m.showFilterBar() {
		b.WriteString(m.FilterBar.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.Entries) > 0 && len(m.rows) == 0 {
		b.WriteString(styles.DimStyle.Render("No saved movies match the filter"))
		return b.String()
	}

	start, end := m.listCursor.Window()
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(m.renderWatchlistRow(m.rows[i], i == m.listCursor.Index()))
	}
	return b.String()
}

// renderWatchlistRow renders "Title (Year)  Kind  added Jan 2, 2006 (3 days ago)"
func (m Model) renderWatchlistRow(row watchlistRow, selected bool) string {
	width := m.contentWidth()
	added := m.addedLabel(row.Entry)
	kind := row.Entry.Kind.Label()

	titleWidth := width - lipgloss.Width(added) - lipgloss.Width(kind) - 8
	title := highlightMatches(styles.Truncate(row.Entry.Title, titleWidth), row.Matched, selected)

	dim := styles.DimGray
	parts := []styles.RowPart{{Text: title}}
	if row.Entry.Year != "" {
		parts = append(parts, styles.RowPart{Text: " (" + row.Entry.Year + ")"})
	}
	if kind != "" {
		parts = append(parts, styles.RowPart{Text: "  " + kind, Foreground: &dim})
	}
	parts = append(parts, styles.RowPart{Text: "  " + added, Foreground: &dim})
	return styles.RenderListRow(parts, selected, width)
}

// addedLabel formats when an entry was saved
func (m Model) addedLabel(e domain.WatchlistEntry) string {
	t := e.AddedTime()
	return fmt.Sprintf("added %s (%s)", t.Format("Jan 2, 2006"), humanize.RelTime(t, m.now(), "ago", "from now"))
}

// highlightMatches emphasizes matched title characters
func highlightMatches(title string, matched []int, selected bool) string {
	if len(matched) == 0 {
		return title
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	style := styles.MatchHighlightStyle
	if selected {
		style = style.Background(styles.SlateLight)
	}

	// sahilm reports byte offsets
	var b strings.Builder
	for i, r := range title {
		if hit[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderDetailView renders the full metadata screen
func (m Model) renderDetailView() string {
	switch {
	case m.DetailLoading:
		return m.spinner.View() + styles.DimStyle.Render(" Loading...")
	case m.DetailFailure != "":
		return styles.ErrorStyle.Render(m.DetailFailure) + "\n\n" + styles.DimStyle.Render("esc to go back")
	case m.Detail == nil:
		return ""
	}
	return renderDetail(m.Detail, m.Watchlist.Contains(m.Detail.ID), m.contentWidth())
}

// renderDetail lays out a title's metadata. Empty fields are omitted.
func renderDetail(d *domain.MovieDetail, saved bool, width int) string {
	var b strings.Builder
	inner := width - 4

	// Title line
	title := styles.TitleStyle.Render(d.Title)
	if d.Year != "" {
		title += styles.SubtitleStyle.Render(" (" + d.Year + ")")
	}
	if saved {
		title += " " + styles.SavedMarker
	}
	b.WriteString(title)
	b.WriteString("\n")

	// Rating badge and stars
	if d.IMDbRating != "" {
		line := styles.BadgeStyle.Render("IMDb " + d.IMDbRating)
		if stars, ok := d.StarRating(); ok {
			line += " " + styles.Stars(stars)
		}
		if d.IMDbVotes != "" {
			line += styles.DimStyle.Render("  " + d.IMDbVotes + " votes")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Meta chips
	var chips []string
	for _, v := range []string{d.Kind.Label(), d.Rated, d.Runtime, d.Released} {
		if v != "" {
			chips = append(chips, styles.ChipStyle.Render(v))
		}
	}
	if len(chips) > 0 {
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}

	if genres := d.Genres(); len(genres) > 0 {
		b.WriteString(styles.AccentStyle.Render(strings.Join(genres, " · ")))
		b.WriteString("\n")
	}

	if d.Plot != "" {
		b.WriteString("\n")
		b.WriteString(wordWrap(d.Plot, inner))
		b.WriteString("\n")
	}

	// Stats
	var stats []string
	if d.Metascore != "" {
		stats = append(stats, "Metascore "+d.Metascore)
	}
	for _, r := range d.Ratings {
		if r.Source != "Internet Movie Database" {
			stats = append(stats, r.Source+" "+r.Value)
		}
	}
	if d.BoxOffice != "" {
		stats = append(stats, "Box office "+d.BoxOffice)
	}
	if len(stats) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(stats, "   ")))
		b.WriteString("\n")
	}

	// Info rows
	rows := []struct{ label, value string }{
		{"Director", d.Director},
		{"Writer", d.Writer},
		{"Cast", d.Actors},
		{"Language", d.Language},
		{"Country", d.Country},
		{"Awards", d.Awards},
	}
	first := true
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		if first {
			b.WriteString("\n")
			first = false
		}
		b.WriteString(styles.LabelStyle.Render(r.label))
		b.WriteString(styles.Truncate(r.value, inner-10))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// wordWrap wraps text to width columns
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
