package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// SortField represents a field the watchlist can be sorted by
type SortField int

const (
	SortDateAdded SortField = iota
	SortTitle
	SortYear
)

// String returns the display name for the sort field
func (f SortField) String() string {
	switch f {
	case SortDateAdded:
		return "Date Added"
	case SortTitle:
		return "Title"
	case SortYear:
		return "Year"
	default:
		return "Unknown"
	}
}

// SortDirection represents sort direction
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// DefaultDirection returns the default sort direction for a field
func DefaultDirection(field SortField) SortDirection {
	if field == SortTitle {
		return SortAsc // A-Z
	}
	return SortDesc // newest first
}

// WatchlistSortOptions returns the available sort options for the watchlist
func WatchlistSortOptions() []SortField {
	return []SortField{SortDateAdded, SortTitle, SortYear}
}

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field     SortField
	Direction SortDirection
}

// SortModal is a small popup for choosing sort order
type SortModal struct {
	visible     bool
	options     []SortField
	cursor      int
	activeField SortField
	activeDir   SortDirection
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the given options and current sort state
func (m *SortModal) Show(options []SortField, active SortSelection) {
	m.visible = true
	m.options = options
	m.activeField = active.Field
	m.activeDir = active.Direction
	m.cursor = 0
	for i, opt := range options {
		if opt == active.Field {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press. A non-nil selection means the user chose.
// Every key is consumed while the modal is visible.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		chosen := m.options[m.cursor]
		dir := DefaultDirection(chosen)
		if chosen == m.activeField {
			// Same field flips direction
			if m.activeDir == SortAsc {
				dir = SortDesc
			} else {
				dir = SortAsc
			}
		}
		m.visible = false
		return true, &SortSelection{Field: chosen, Direction: dir}
	case "esc", "s":
		m.visible = false
	}
	return true, nil
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	const width = 20
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		isActive := opt == m.activeField

		text := "  " + opt.String()
		if isActive {
			arrow := " ↑"
			if m.activeDir == SortDesc {
				arrow = " ↓"
			}
			text = "✓ " + opt.String() + arrow
		}

		style := lipgloss.NewStyle().Width(width).Foreground(styles.LightGray)
		switch {
		case i == m.cursor:
			style = style.Foreground(styles.White).Background(styles.SlateLight)
		case isActive:
			style = style.Foreground(styles.Gold)
		}
		lines = append(lines, style.Render(text))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Gold).
		Background(styles.SlateDark).
		Padding(0, 1).
		Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
