package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/questclock/questclock/internal/session"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/timefmt"
)

// Timer screen buttons.
const (
	ButtonPause   = "PAUSE"
	ButtonStart   = "START"
	ButtonRestart = "RESTART"
	ButtonBack    = "BACK"
	ButtonMenu    = "MENU"
	ButtonQuit    = "QUIT"
)

const maxBarWidth = 60

// LiveSession is the part of the session the timer screen drives.
type LiveSession interface {
	tui.Timer
	Project() string
	Task() string
	Progress() float64
	ColonVisible() bool
	Toggle()
	Restart()
	Abort()
}

// TimerModel is the full-screen countdown.
type TimerModel struct {
	session  LiveSession
	selected int
	bar      progress.Model
}

// NewTimerModel creates the countdown screen for s.
func NewTimerModel(s LiveSession) TimerModel {
	return TimerModel{
		session: s,
		bar: progress.New(
			progress.WithGradient(tui.ProgressStart, tui.ProgressEnd),
			progress.WithoutPercentage(),
		),
	}
}

// Buttons returns the labels for the current session state.
func (m TimerModel) Buttons() []string {
	switch m.session.State() {
	case session.Finished:
		return []string{ButtonMenu, ButtonRestart, ButtonQuit}
	case session.Paused:
		return []string{ButtonStart, ButtonRestart, ButtonBack, ButtonQuit}
	default:
		return []string{ButtonPause, ButtonRestart, ButtonBack, ButtonQuit}
	}
}

// Selected returns the highlighted button index, clamped to the current set.
func (m TimerModel) Selected() int {
	return clamp(m.selected, len(m.Buttons()))
}

// Update handles key presses for the countdown screen.
func (m TimerModel) Update(msg tea.Msg) (TimerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	km := tui.DefaultKeyMap
	buttons := m.Buttons()
	m.selected = m.Selected()

	switch {
	case key.Matches(keyMsg, km.Left):
		m.selected = clamp(m.selected-1, len(buttons))
	case key.Matches(keyMsg, km.Right):
		m.selected = clamp(m.selected+1, len(buttons))
	case key.Matches(keyMsg, km.Toggle):
		m.session.Toggle()
	case key.Matches(keyMsg, km.Enter):
		return m.activate(buttons[m.selected])
	case key.Matches(keyMsg, km.Escape):
		return m, tui.Navigate(tui.ViewHistory)
	}
	return m, nil
}

func (m TimerModel) activate(button string) (TimerModel, tea.Cmd) {
	switch button {
	case ButtonPause, ButtonStart:
		m.session.Toggle()
	case ButtonRestart:
		m.session.Restart()
	case ButtonBack, ButtonMenu:
		return m, tui.Navigate(tui.ViewHistory)
	case ButtonQuit:
		m.session.Abort()
		return m, tui.Navigate(tui.ViewQuit)
	}
	return m, nil
}

// View renders the countdown screen.
func (m TimerModel) View(f Frame) string {
	c := tui.NewCanvas(f.Width, f.Height)
	if !m.session.Active() {
		c.Put(f.Height/2, 2, "No active quest.", tui.DimStyle)
		return c.Render()
	}

	detailsW := max(40, f.Width-35)
	c.Box(1, 2, 6, detailsW, "DETAILS", tui.BoxStyle)
	c.PutText(2, 4, "PROJECT: "+m.session.Project())
	c.PutText(3, 4, "TASK:    "+m.session.Task())
	c.Box(1, detailsW+3, 6, 30, "SYSTEM", tui.BoxStyle)
	c.PutText(3, detailsW+5, f.Now.Format("15:04:05"))

	state := m.session.State()
	clockStyle := tui.AccentStyle
	switch state {
	case session.Paused:
		clockStyle = tui.WarningStyle
	case session.Finished:
		clockStyle = tui.SuccessStyle
	}
	clock := timefmt.FormatClock(m.session.Remaining())
	tui.DrawBig(c, f.Height/2-2, f.Width/2, clock, m.session.ColonVisible(), clockStyle)

	barY := f.Height/2 + 5
	if barW := min(maxBarWidth, f.Width-10); barW > 0 {
		bar := m.bar
		bar.Width = barW
		c.Box(barY-1, f.Width/2-barW/2-2, 3, barW+4, "", tui.BoxStyle)
		c.PutRaw(barY, f.Width/2-barW/2, bar.ViewAs(m.session.Progress()))
	}

	status := "STATUS: " + strings.ToUpper(state.String())
	if state == session.Finished {
		status = "QUEST COMPLETE!"
	}
	c.Put(barY+3, f.Width/2-runewidth.StringWidth(status)/2, status, clockStyle.Bold(true))

	m.drawButtons(c, f.Height-4, f.Width)
	tui.DrawPip(c, f.Timer, f.NerdFonts)
	km := tui.DefaultKeyMap
	footer(c, f, km.Toggle, km.Escape)
	return c.Render()
}

func (m TimerModel) drawButtons(c *tui.Canvas, y, width int) {
	buttons := m.Buttons()
	selected := m.Selected()
	labels := make([]string, len(buttons))
	total := 0
	for i, b := range buttons {
		labels[i] = fmt.Sprintf("[ %s ]", b)
		total += len(labels[i])
	}
	total += (len(buttons) - 1) * 2
	x := width/2 - total/2
	for i, label := range labels {
		style := tui.TextStyle
		if i == selected {
			style = tui.SelectedStyle
		}
		c.Put(y, x, label, style)
		x += len(label) + 2
	}
}
