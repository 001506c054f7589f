package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/questclock/questclock/internal/stats"
	"github.com/questclock/questclock/internal/tui"
)

const (
	heatLeft  = 4 // columns reserved for weekday labels
	heatCellW = 2
)

var weekdayLabels = [7]string{"Mon", "", "Wed", "", "Fri", "", ""}

// HeatmapModel is the yearly contribution grid.
type HeatmapModel struct{}

// NewHeatmapModel creates the heatmap screen.
func NewHeatmapModel() HeatmapModel { return HeatmapModel{} }

// Update returns to HISTORY on esc or q.
func (m HeatmapModel) Update(msg tea.Msg) (HeatmapModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, tui.DefaultKeyMap.Back) {
		return m, tui.Navigate(tui.ViewHistory)
	}
	return m, nil
}

// View renders 53 weeks by 7 days ending this week.
func (m HeatmapModel) View(f Frame) string {
	c := f.canvas()
	h := stats.BuildHeatmap(f.Records, f.Now)

	c.Put(1, 4, fmt.Sprintf("%s contributions in the last year", humanize.Comma(int64(h.Contributions))), tui.TitleStyle)

	top := 3
	for _, ml := range h.MonthLabels() {
		c.Put(top, heatLeft+2+ml.Week*heatCellW, ml.Label, tui.DimStyle)
	}
	today := stats.DaysBetween(h.Start, f.Now)
	for day := 0; day < 7; day++ {
		c.Put(top+1+day, 0, weekdayLabels[day], tui.DimStyle)
		for week := 0; week < stats.HeatmapWeeks; week++ {
			if week*7+day > today {
				continue
			}
			level := stats.HeatLevel(h.Cells[week][day])
			c.Put(top+1+day, heatLeft+2+week*heatCellW, tui.HeatGlyphs[level], tui.HeatStyles[level])
		}
	}

	legendY := top + 9
	c.Put(legendY, heatLeft+2, "Less", tui.DimStyle)
	x := heatLeft + 7
	for level := range tui.HeatGlyphs {
		c.Put(legendY, x, tui.HeatGlyphs[level], tui.HeatStyles[level])
		x += heatCellW
	}
	c.Put(legendY, x, "More", tui.DimStyle)

	footer(c, f, tui.DefaultKeyMap.Back)
	return c.Render()
}
