package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket viewer TUI.
type KeyMap struct {
	// Selection movement within the current page.
	Up   key.Binding
	Down key.Binding

	// Pagination.
	PrevPage key.Binding
	NextPage key.Binding

	// Status tab cycling (doctor only).
	NextTab key.Binding
	PrevTab key.Binding

	// Mutations (doctor only, gated by the selected ticket's status).
	Progress key.Binding // open → in-progress.
	Close    key.Binding // open / in-progress → closed.
	Reopen   key.Binding // in-progress / closed → open.
	Delete   key.Binding

	// Compose a new consultation.
	Compose key.Binding
	Submit  key.Binding // Submit the compose field.
	Cancel  key.Binding // Leave the compose field.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "prev tab"),
	),
	Progress: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "in progress"),
	),
	Close: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "close"),
	),
	Reopen: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reopen"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Compose: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new ticket"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("C-d", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
