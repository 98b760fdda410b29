package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the story player.
type KeyMap struct {
	Confirm key.Binding
	Prev    key.Binding
	Next    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings: arrows or vim keys to move
// through choices, enter to pick one.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", " ", "l", "right"),
			key.WithHelp("enter", "choose"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up", "shift+tab"),
			key.WithHelp("k/↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("j", "down", "tab"),
			key.WithHelp("j/↓", "next"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Prev, k.Next, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
