package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/cinesearch/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Modal states take every key
	if m.Confirm.IsVisible() {
		switch {
		case key.Matches(msg, Keys.Confirm):
			cmd := m.runConfirmed()
			return m, cmd
		case key.Matches(msg, Keys.Deny):
			m.Confirm.Hide()
		}
		return m, nil
	}

	if m.SortModal.IsVisible() {
		if _, sel := m.SortModal.HandleKey(msg.String()); sel != nil {
			m.Sort = *sel
			m.refreshWatchlistRows()
			m.listCursor.Top()
		}
		return m, nil
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Back, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	// Text inputs take every key except view switching
	if m.Active == ViewSearch && m.SearchBar.Focused() {
		return m.handleSearchInput(msg)
	}
	if m.Active == ViewWatchlist && m.FilterBar.Focused() {
		return m.handleFilterInput(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.Tab):
		cmd := m.switchView()
		return m, cmd
	}

	switch m.Active {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewWatchlist:
		return m.handleWatchlistKeys(msg)
	default:
		return m.handleSearchKeys(msg)
	}
}

// handleSearchInput routes keys to the focused search bar
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Tab):
		cmd := m.switchView()
		return m, cmd
	case msg.String() == "down" && len(m.Results) > 0:
		m.SearchBar.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	var event components.InputEvent
	m.SearchBar, cmd, event = m.SearchBar.Update(msg)

	switch event {
	case components.InputSubmitted:
		cmd = m.submitSearch()
		return m, cmd
	case components.InputCancelled:
		if len(m.Results) > 0 {
			m.SearchBar.Blur()
		} else {
			m.SearchBar.SetValue("")
		}
	}
	return m, cmd
}

// handleSearchKeys handles keys on the result list
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveCursor(&m.resultCursor, msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Search):
		cmd := m.SearchBar.Focus()
		return m, cmd
	case key.Matches(msg, Keys.Enter):
		if r := m.selectedResult(); r != nil {
			cmd := m.openDetail(r.ID)
			return m, cmd
		}
	case key.Matches(msg, Keys.Toggle):
		if r := m.selectedResult(); r != nil {
			cmd := m.toggleSaved(*r)
			return m, cmd
		}
	case key.Matches(msg, Keys.OpenIMDb):
		if r := m.selectedResult(); r != nil {
			return m, m.openIMDb(r.ID)
		}
	case key.Matches(msg, Keys.Back):
		cmd := m.SearchBar.Focus()
		return m, cmd
	}
	return m, nil
}

// handleDetailKeys handles keys on the detail screen
func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back):
		m.Active = m.Previous
		return m, nil
	case key.Matches(msg, Keys.Toggle):
		if m.Detail != nil {
			cmd := m.toggleSaved(m.Detail.Movie())
			return m, cmd
		}
	case key.Matches(msg, Keys.OpenIMDb):
		return m, m.openIMDb(m.DetailID)
	}
	return m, nil
}

// handleFilterInput routes keys to the focused filter bar
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Tab) {
		m.FilterBar.Blur()
		m.updateLayout()
		cmd := m.switchView()
		return m, cmd
	}

	var cmd tea.Cmd
	var event components.InputEvent
	m.FilterBar, cmd, event = m.FilterBar.Update(msg)

	switch event {
	case components.InputChanged:
		m.refreshWatchlistRows()
		m.listCursor.Top()
	case components.InputSubmitted:
		// Keep the filter, return to the list
		m.FilterBar.Blur()
		m.updateLayout()
	case components.InputCancelled:
		m.clearFilter()
	}
	return m, cmd
}

func (m *Model) clearFilter() {
	m.FilterBar.SetValue("")
	m.FilterBar.Blur()
	m.refreshWatchlistRows()
	m.updateLayout()
}

// handleWatchlistKeys handles keys on the watchlist
func (m Model) handleWatchlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveCursor(&m.listCursor, msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Filter):
		cmd := m.FilterBar.Focus()
		m.updateLayout()
		return m, cmd
	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(components.WatchlistSortOptions(), m.Sort)
	case key.Matches(msg, Keys.Enter):
		if row := m.selectedWatchlistRow(); row != nil {
			cmd := m.openDetail(row.Entry.ID)
			return m, cmd
		}
	case key.Matches(msg, Keys.Toggle):
		if row := m.selectedWatchlistRow(); row != nil {
			cmd := m.toggleSaved(row.Entry.Movie)
			return m, cmd
		}
	case key.Matches(msg, Keys.Remove):
		m.confirmRemove()
	case key.Matches(msg, Keys.ClearAll):
		m.confirmClear()
	case key.Matches(msg, Keys.OpenIMDb):
		if row := m.selectedWatchlistRow(); row != nil {
			return m, m.openIMDb(row.Entry.ID)
		}
	case key.Matches(msg, Keys.Back):
		if m.FilterBar.Value() != "" {
			m.clearFilter()
		}
	}
	return m, nil
}

// moveCursor applies list navigation keys, reporting whether msg was one
func (m *Model) moveCursor(c *components.Cursor, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, Keys.Up):
		c.Move(-1)
	case key.Matches(msg, Keys.Down):
		c.Move(1)
	case key.Matches(msg, Keys.PageUp):
		c.Move(-c.Page())
	case key.Matches(msg, Keys.PageDown):
		c.Move(c.Page())
	case key.Matches(msg, Keys.Home):
		c.Top()
	case key.Matches(msg, Keys.End):
		c.Bottom()
	default:
		return false
	}
	return true
}
