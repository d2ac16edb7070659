package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/cinesearch/internal/tui/styles"
)

// InputEvent reports what a key press did to an InputBar
type InputEvent int

const (
	InputNone      InputEvent = iota
	InputChanged              // Value changed
	InputSubmitted            // Enter pressed
	InputCancelled            // Esc pressed
)

// InputBar is a single-line text input with a prompt, used for search and filter
type InputBar struct {
	prompt string
	input  textinput.Model
}

// NewInputBar creates an input bar
func NewInputBar(prompt, placeholder string) InputBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputBar{prompt: prompt, input: ti}
}

// Focus gives the bar keyboard focus
func (b *InputBar) Focus() tea.Cmd {
	return b.input.Focus()
}

// Blur removes keyboard focus
func (b *InputBar) Blur() {
	b.input.Blur()
}

// Focused reports whether the bar has keyboard focus
func (b InputBar) Focused() bool {
	return b.input.Focused()
}

// Value returns the current input value
func (b InputBar) Value() string {
	return b.input.Value()
}

// SetValue replaces the input value
func (b *InputBar) SetValue(v string) {
	b.input.SetValue(v)
}

// SetWidth sets the visible input width
func (b *InputBar) SetWidth(w int) {
	w -= lipgloss.Width(b.prompt) + 3
	if w < 10 {
		w = 10
	}
	b.input.Width = w
}

// Update handles input events while focused
func (b InputBar) Update(msg tea.Msg) (InputBar, tea.Cmd, InputEvent) {
	if !b.input.Focused() {
		return b, nil, InputNone
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return b, nil, InputSubmitted
		case "esc":
			return b, nil, InputCancelled
		}
	}

	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if b.input.Value() != before {
		return b, cmd, InputChanged
	}
	return b, cmd, InputNone
}

// View renders the prompt and input
func (b InputBar) View() string {
	prompt := styles.DimStyle.Render(b.prompt)
	if b.input.Focused() {
		prompt = styles.PromptStyle.Render(b.prompt)
	}
	return prompt + " " + b.input.View()
}
