package display

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the reader's keybindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Filter key.Binding
	Search key.Binding
	Listen key.Binding
	Replay key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next verse"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous verse"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "difficulty"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Listen: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "listen"),
		),
		Replay: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "splash"),
		),
		Skip: key.NewBinding(
			key.WithKeys(" ", "enter", "esc"),
			key.WithHelp("space", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (s screen) bindings(km KeyMap) []key.Binding {
	switch s {
	case screenSplash:
		return []key.Binding{km.Skip, km.Quit}
	case screenHome:
		return []key.Binding{km.Up, km.Down, km.Enter, km.Filter, km.Search, km.Listen, km.Replay, km.Quit}
	case screenChapter:
		return []key.Binding{km.Up, km.Down, km.Enter, km.Listen, km.Back, km.Quit}
	case screenVerse:
		return []key.Binding{km.Prev, km.Next, km.Up, km.Down, km.Back, km.Quit}
	default:
		return []key.Binding{km.Back, km.Quit}
	}
}
