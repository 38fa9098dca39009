package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	moveUp   key.Binding
	moveDown key.Binding
	save     key.Binding
	remove   key.Binding
	search   key.Binding
	reload   key.Binding
	enter    key.Binding
	add      key.Binding
	addName  key.Binding
	back     key.Binding
	yes      key.Binding
	no       key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		moveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		moveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save order")),
		remove:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		search:   key.NewBinding(key.WithKeys("/", "a"), key.WithHelp("/", "search & add")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		add:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "add selected")),
		addName:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add as new film")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.moveUp, k.moveDown},
		{k.save, k.remove, k.search, k.reload},
		{k.back, k.quit},
	}
}
