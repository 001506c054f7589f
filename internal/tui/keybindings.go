package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Heatmap key.Binding
	Weekly  key.Binding
	Raid    key.Binding
	Info    key.Binding
	Timer   key.Binding
	Quit    key.Binding

	// Movement
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Escape key.Binding

	// Actions
	New     key.Binding
	Delete  key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Heatmap: key.NewBinding(
		key.WithKeys("h", "H"),
		key.WithHelp("h", "heatmap"),
	),
	Weekly: key.NewBinding(
		key.WithKeys("w", "W"),
		key.WithHelp("w", "weekly"),
	),
	Raid: key.NewBinding(
		key.WithKeys("r", "R"),
		key.WithHelp("r", "raid"),
	),
	Info: key.NewBinding(
		key.WithKeys("i", "I"),
		key.WithHelp("i", "info"),
	),
	Timer: key.NewBinding(
		key.WithKeys("t", "T"),
		key.WithHelp("t", "timer"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "right"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	New: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "new quest"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "D"),
		key.WithHelp("d", "delete"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "p", "P"),
		key.WithHelp("space/p", "pause"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "N", "esc"),
		key.WithHelp("n", "no"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "Q"),
		key.WithHelp("esc", "back"),
	),
}

// NavHelp lists the global navigation bindings. The timer binding is
// included only while a session is active.
func (k KeyMap) NavHelp(active bool) []key.Binding {
	bindings := []key.Binding{k.Heatmap, k.Weekly, k.Raid, k.Info}
	if active {
		bindings = append(bindings, k.Timer)
	}
	return bindings
}

// HelpLine renders bindings as a one-line footer clipped to width.
func HelpLine(width int, bindings ...key.Binding) string {
	h := help.New()
	h.Width = width
	h.Styles.ShortKey = HelpKeyStyle
	h.Styles.ShortDesc = DimStyle
	h.Styles.ShortSeparator = DimStyle
	return h.ShortHelpView(bindings)
}
