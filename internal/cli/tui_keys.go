package cli

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the list-mode bindings. It implements help.KeyMap.
type keyMap struct {
	Tab        key.Binding
	Add        key.Binding
	Up         key.Binding
	Down       key.Binding
	StartPause key.Binding
	Reset      key.Binding
	ToggleDone key.Binding
	Delete     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tab:        key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "todos/completed")),
		Add:        key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		StartPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ToggleDone: key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "done/undo")),
		Delete:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.ToggleDone, k.Add, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab},
		{k.StartPause, k.Reset, k.ToggleDone},
		{k.Add, k.Delete, k.Quit},
	}
}
