package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Space     key.Binding
	Tab       key.Binding
	Stopwatch key.Binding
	Pause     key.Binding
	Add       key.Binding
	Delete    key.Binding
	Rename    key.Binding
	Move      key.Binding
	High      key.Binding
	Medium    key.Binding
	Low       key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		Space: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "complete task"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch view"),
		),
		Stopwatch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/stop stopwatch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/resume stopwatch"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit title"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move mode"),
		),
		High: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "set high priority"),
		),
		Medium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "set medium priority"),
		),
		Low: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "set low priority"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  space done  s stopwatch  p pause  a add  e edit  m move  tab view  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"space", "Complete selected task"},
		{"s", "Start/stop stopwatch on selection"},
		{"p", "Pause/resume stopwatch"},
		{"a", "Add task (title, !high/!low, ~minutes)"},
		{"e", "Edit task title"},
		{"d", "Delete task (with confirmation)"},
		{"m", "Enter move mode (reorder)"},
		{"1/2/3", "Set priority: high/medium/low"},
		{"tab", "Switch view (tasks / stats / badges)"},
		{"R", "Reload from disk"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
