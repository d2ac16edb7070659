package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// ConfirmAction identifies what a confirmation guards
type ConfirmAction int

const (
	ConfirmNone ConfirmAction = iota
	ConfirmRemove
	ConfirmClear
)

// ConfirmModal asks a yes/no question before a destructive action
type ConfirmModal struct {
	visible bool
	title   string
	prompt  string
	action  ConfirmAction
	target  string // ID the action applies to, if any
}

// NewConfirmModal creates a hidden confirm modal
func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal for action on target
func (m *ConfirmModal) Show(title, prompt string, action ConfirmAction, target string) {
	m.visible = true
	m.title = title
	m.prompt = prompt
	m.action = action
	m.target = target
}

// Hide dismisses the modal
func (m *ConfirmModal) Hide() {
	*m = ConfirmModal{}
}

// IsVisible returns whether the modal is shown
func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// Action returns the pending action and its target
func (m ConfirmModal) Action() (ConfirmAction, string) {
	return m.action, m.target
}

// Prompt returns the question being asked
func (m ConfirmModal) Prompt() string {
	return m.prompt
}

// View renders the modal
func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	choices := styles.AccentStyle.Render("[Y]") + styles.SubtitleStyle.Render(" Yes      ") +
		styles.AccentStyle.Render("[N]") + styles.SubtitleStyle.Render(" No")

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render(m.title),
		lipgloss.NewStyle().Foreground(styles.White).Width(44).Align(lipgloss.Center).Render(m.prompt),
		"",
		choices,
	)
	return styles.ModalStyle.Render(content)
}
