package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Enter    key.Binding
	Back     key.Binding
	Tab      key.Binding

	// Actions
	Quit     key.Binding
	Help     key.Binding
	Search   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Toggle   key.Binding
	OpenIMDb key.Binding
	Remove   key.Binding
	ClearAll key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "search/watchlist"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save/unsave"),
		),
		OpenIMDb: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open on IMDb"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "remove"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),

		// Confirmations
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// viewKeys adapts the bindings relevant to one view to help.KeyMap
type viewKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k viewKeys) ShortHelp() []key.Binding  { return k.short }
func (k viewKeys) FullHelp() [][]key.Binding { return k.full }

// helpKeys returns the bindings shown in the footer and help screen for v
func helpKeys(v View) viewKeys {
	nav := []key.Binding{Keys.Up, Keys.Down, Keys.PageUp, Keys.PageDown, Keys.Home, Keys.End}
	general := []key.Binding{Keys.Tab, Keys.Help, Keys.Quit}

	switch v {
	case ViewDetail:
		actions := []key.Binding{Keys.Toggle, Keys.OpenIMDb, Keys.Back}
		return viewKeys{
			short: []key.Binding{Keys.Toggle, Keys.OpenIMDb, Keys.Back, Keys.Help},
			full:  [][]key.Binding{actions, general},
		}
	case ViewWatchlist:
		actions := []key.Binding{Keys.Enter, Keys.Filter, Keys.Sort, Keys.Toggle, Keys.Remove, Keys.ClearAll, Keys.OpenIMDb}
		return viewKeys{
			short: []key.Binding{Keys.Enter, Keys.Filter, Keys.Remove, Keys.Tab, Keys.Help},
			full:  [][]key.Binding{nav, actions, general},
		}
	default:
		actions := []key.Binding{Keys.Search, Keys.Enter, Keys.Toggle, Keys.OpenIMDb}
		return viewKeys{
			short: []key.Binding{Keys.Search, Keys.Enter, Keys.Toggle, Keys.Tab, Keys.Help},
			full:  [][]key.Binding{nav, actions, general},
		}
	}
}
