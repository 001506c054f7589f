package tui

import (
	"time"

	"github.com/questclock/questclock/internal/session"
	"github.com/questclock/questclock/internal/timefmt"
)

// Timer is the read side of the live session, as drawn by the mini timer.
type Timer interface {
	Active() bool
	State() session.State
	Remaining() time.Duration
}

// PipWidth is the columns taken by the mini timer.
const PipWidth = 14

// StateIcon is the glyph shown for a session state.
func StateIcon(s session.State, nerdFonts bool) string {
	if nerdFonts {
		switch s {
		case session.Running:
			return "\uf04b"
		case session.Paused:
			return "\uf04c"
		case session.Finished:
			return "\uf00c"
		}
		return "\uf04d"
	}
	switch s {
	case session.Running:
		return ">"
	case session.Paused:
		return "="
	case session.Finished:
		return "*"
	}
	return "."
}

// DrawPip draws the picture-in-picture timer in the top right corner. It
// draws nothing when no session is active.
func DrawPip(c *Canvas, t Timer, nerdFonts bool) {
	if t == nil || !t.Active() {
		return
	}
	style := AccentStyle
	if t.State() == session.Paused {
		style = WarningStyle
	}
	text := StateIcon(t.State(), nerdFonts) + " " + timefmt.FormatClock(t.Remaining()) + " [T]"
	c.Put(0, c.Width()-PipWidth, text, style)
}
