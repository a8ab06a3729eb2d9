package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the briefing screen
type KeyMap struct {
	Generate key.Binding
	Play     key.Binding
	Stop     key.Binding
	Share    key.Binding
	Privacy  key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "summarize & play"),
		),
		Play: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "stop"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "share"),
		),
		Privacy: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "privacy"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Play, k.Stop, k.Share, k.Privacy, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Play, k.Stop},
		{k.Share, k.Privacy, k.Escape, k.Quit},
	}
}
