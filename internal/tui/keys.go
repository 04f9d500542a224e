package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Match   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Match: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("←↑→↓", "match"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new round"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Match, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
