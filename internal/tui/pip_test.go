package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/questclock/questclock/internal/session"
)

type fakeTimer struct {
	active    bool
	state     session.State
	remaining time.Duration
}

func (f fakeTimer) Active() bool             { return f.active }
func (f fakeTimer) State() session.State     { return f.state }
func (f fakeTimer) Remaining() time.Duration { return f.remaining }

func TestDrawPip(t *testing.T) {
	c := NewCanvas(40, 2)
	DrawPip(c, fakeTimer{active: true, state: session.Running, remaining: 83 * time.Second}, false)
	line := c.Lines()[0]
	if !strings.HasSuffix(strings.TrimRight(line, " "), "> 01:23 [T]") {
		t.Errorf("got %q", line)
	}
}

func TestDrawPipInactive(t *testing.T) {
	c := NewCanvas(40, 1)
	DrawPip(c, fakeTimer{}, false)
	DrawPip(c, nil, false)
	if strings.TrimSpace(c.Render()) != "" {
		t.Errorf("expected nothing drawn, got %q", c.Render())
	}
}
