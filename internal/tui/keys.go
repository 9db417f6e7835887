package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Copy        key.Binding
	Attachments key.Binding
	Sync        key.Binding
	OpenEditor  key.Binding
	Quit        key.Binding
	PreviewUp   key.Binding
	PreviewDn   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy new"),
	),
	Attachments: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("C-a", "copy attachments"),
	),
	Sync: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "mark synced"),
	),
	OpenEditor: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "open export"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
	PreviewUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "preview up"),
	),
	PreviewDn: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "preview down"),
	),
}
