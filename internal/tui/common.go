// Package tui holds the pieces shared by every screen: the router, the
// clipping canvas, key bindings and styles.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key binding constants.
const (
	KeyCtrlC     = "ctrl+c"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyBackspace = "backspace"
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
