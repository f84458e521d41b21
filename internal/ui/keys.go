package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shown in the help bar
type keyMap struct {
	Filter      key.Binding
	ClearFilter key.Binding
	Reload      key.Binding
	Select      key.Binding
	Back        key.Binding
	Up          key.Binding
	Down        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter by date"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("↑/pgup", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("↓/pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.ClearFilter, k.Reload, k.Up, k.Down, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Filter, k.ClearFilter, k.Reload},
		{k.Up, k.Down},
		{k.Select, k.Back, k.Quit},
	}
}
