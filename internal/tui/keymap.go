package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Tabs
	NextTab key.Binding
	PrevTab key.Binding

	// Date range
	StartEarlier key.Binding
	StartLater   key.Binding
	EndEarlier   key.Binding
	EndLater     key.Binding
	Reset        key.Binding

	// Scrolling
	Up   key.Binding
	Down key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("Tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("Shift+Tab", "previous tab"),
		),

		StartEarlier: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "start -1 day"),
		),
		StartLater: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "start +1 day"),
		),
		EndEarlier: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "end -1 day"),
		),
		EndLater: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "end +1 day"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset range"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.StartEarlier, k.EndLater, k.Reset, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.StartEarlier, k.StartLater, k.EndEarlier, k.EndLater},
		{k.Reset, k.Help, k.Quit, k.ForceQuit},
	}
}
