package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/questclock/questclock/internal/stats"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/timefmt"
)

const (
	barRows   = 10
	barColumn = 7
	crown     = "♛"
)

var dayNames = [7]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// WeeklyModel is the weekly dungeon: per-day bars, level and XP.
type WeeklyModel struct {
	goal  float64
	grown int
	xp    progress.Model
}

// NewWeeklyModel creates the weekly screen working toward goal minutes.
func NewWeeklyModel(goal float64) WeeklyModel {
	return WeeklyModel{
		goal: goal,
		xp: progress.New(
			progress.WithGradient(tui.XPStart, tui.XPEnd),
			progress.WithoutPercentage(),
		),
	}
}

// Reset restarts the bar animation.
func (m *WeeklyModel) Reset() { m.grown = 0 }

// Advance grows the bars by one row. Called once per frame.
func (m *WeeklyModel) Advance() {
	if m.grown < barRows {
		m.grown++
	}
}

// Grown returns how many rows of the bars are revealed.
func (m WeeklyModel) Grown() int { return m.grown }

// Update returns to HISTORY on esc or q.
func (m WeeklyModel) Update(msg tea.Msg) (WeeklyModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, tui.DefaultKeyMap.Back) {
		return m, tui.Navigate(tui.ViewHistory)
	}
	return m, nil
}

// BarHeight scales minutes against the week's busiest day.
func BarHeight(minutes, peak float64) int {
	if minutes <= 0 || peak <= 0 {
		return 0
	}
	h := int(minutes / peak * barRows)
	if h == 0 {
		h = 1
	}
	return min(h, barRows)
}

// View renders the weekly screen.
func (m WeeklyModel) View(f Frame) string {
	c := f.canvas()
	w := stats.BuildWeek(f.Records, f.Now)

	c.Put(1, 2, fmt.Sprintf("CLASS: %s", w.Class()), tui.TitleStyle)
	c.Put(2, 2, fmt.Sprintf("LEVEL %d", w.Level()), tui.AccentStyle)
	if w.Streak > 0 {
		c.Put(2, 12, fmt.Sprintf("x%d COMBO!", w.Streak), tui.WarningStyle)
	}

	xpW := min(40, max(10, f.Width-30))
	xp := m.xp
	xp.Width = xpW
	ratio := 0.0
	if m.goal > 0 {
		ratio = min(1, w.Total/m.goal)
	}
	c.Put(3, 2, "XP ", tui.DimStyle)
	c.PutRaw(3, 5, xp.ViewAs(ratio))
	c.Put(3, 6+xpW, fmt.Sprintf("%s / %s", timefmt.FormatMinutes(w.Total), timefmt.FormatMinutes(m.goal)), tui.DimStyle)

	m.drawBars(c, 5, w)

	side := 2 + barColumn*7 + 4
	c.Put(5, side, "TOP CLASSES", tui.TitleStyle)
	for i, share := range w.TopProjects(2) {
		c.PutText(6+i, side, fmt.Sprintf("%-12s %3d%%", runewidth.Truncate(share.Name, 12, ""), share.Percent))
	}
	c.Put(9, side, "RECENT LOOT", tui.TitleStyle)
	for i, r := range w.Recent {
		c.PutText(10+i, side, fmt.Sprintf("%s  %s", runewidth.Truncate(r.Task, 18, ""), timefmt.FormatMinutes(r.Minutes())))
	}

	footer(c, f, tui.DefaultKeyMap.Back)
	return c.Render()
}

func (m WeeklyModel) drawBars(c *tui.Canvas, top int, w stats.Week) {
	peak := w.MaxDaily()
	base := top + barRows + 1
	for day := 0; day < 7; day++ {
		x := 2 + day*barColumn
		minutes := w.Daily[day]
		height := min(BarHeight(minutes, peak), m.grown)
		style := tui.SuccessStyle
		critical := minutes > stats.CriticalMinutes
		if critical {
			style = tui.ErrorStyle
		}
		for row := 0; row < height; row++ {
			c.Put(base-1-row, x, strings.Repeat("█", barColumn-2), style)
		}
		if critical && m.grown >= barRows {
			c.Put(base-1-height, x+2, crown, tui.WarningStyle)
		}
		c.Put(base, x, dayNames[day], tui.DimStyle)
		c.Put(base+1, x, timefmt.FormatMinutes(minutes), tui.DimStyle)
	}
}
