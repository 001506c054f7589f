// Package views provides one model per questclock screen.
//
// Views never touch the router directly. A view asks for a transition by
// returning a command that produces tui.NavigateMsg.
package views

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/tui"
)

// Frame is what a view needs to render one frame.
type Frame struct {
	Width     int
	Height    int
	Now       time.Time
	Timer     tui.Timer
	Records   []history.Record
	NerdFonts bool
}

// canvas returns a blank canvas sized to the frame with the mini timer
// already drawn.
func (f Frame) canvas() *tui.Canvas {
	c := tui.NewCanvas(f.Width, f.Height)
	tui.DrawPip(c, f.Timer, f.NerdFonts)
	return c
}

// active reports whether a session is live.
func (f Frame) active() bool {
	return f.Timer != nil && f.Timer.Active()
}

// footer draws the help line on the last row: the screen's own bindings
// followed by the global navigation keys.
func footer(c *tui.Canvas, f Frame, own ...key.Binding) {
	bindings := append(own, tui.DefaultKeyMap.NavHelp(f.active())...)
	c.PutRaw(c.Height()-1, 2, tui.HelpLine(c.Width()-4, bindings...))
}

// scroll keeps cursor inside a window of size visible starting at offset.
func scroll(cursor, offset, visible int) int {
	if visible < 1 {
		visible = 1
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

// clamp bounds i to [0, n-1], or 0 when n is zero.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
