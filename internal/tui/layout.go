package tui

// Vertical chrome around the active view
const (
	HeaderHeight = 2 // Tabs + spacer
	FooterHeight = 1

	searchChrome    = 3 // Input + spacer + summary
	watchlistChrome = 2 // Summary + spacer
	filterHeight    = 1

	MinContentWidth = 30
)

// contentHeight returns the rows available to the active view
func (m Model) contentHeight() int {
	h := m.Height - HeaderHeight - FooterHeight
	if h < 1 {
		h = 1
	}
	return h
}

// contentWidth returns the columns available to the active view
func (m Model) contentWidth() int {
	if m.Width < MinContentWidth {
		return MinContentWidth
	}
	return m.Width
}

// showFilterBar reports whether the watchlist filter line is visible
func (m Model) showFilterBar() bool {
	return m.FilterBar.Focused() || m.FilterBar.Value() != ""
}

// updateLayout recalculates list heights and input widths after a resize or
// a change in visible chrome
func (m *Model) updateLayout() {
	h := m.contentHeight()

	m.resultCursor.SetHeight(h - searchChrome)

	listHeight := h - watchlistChrome
	if m.showFilterBar() {
		listHeight -= filterHeight
	}
	m.listCursor.SetHeight(listHeight)

	m.SearchBar.SetWidth(m.contentWidth())
	m.FilterBar.SetWidth(m.contentWidth())
	m.help.Width = m.contentWidth()
}
