package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/stats"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/timefmt"
)

// Rows above and below the history table.
const (
	historyTop    = 4
	historyBottom = 3
)

// RecordDeleter removes a record by its position in the history.
type RecordDeleter interface {
	Delete(index int) error
}

// HistoryModel is the home screen: today's totals and the session table.
type HistoryModel struct {
	store      RecordDeleter
	records    []history.Record
	cursor     int
	offset     int
	confirming bool
	status     string
	statusErr  bool
	height     int
}

// NewHistoryModel creates the home screen model.
func NewHistoryModel(store RecordDeleter) HistoryModel {
	return HistoryModel{store: store}
}

// SetRecords replaces the displayed records, keeping the cursor in range.
func (m *HistoryModel) SetRecords(records []history.Record) {
	m.records = records
	m.cursor = clamp(m.cursor, len(records))
	if len(records) == 0 {
		m.confirming = false
	}
}

// SetStatus shows a one-line notice above the footer.
func (m *HistoryModel) SetStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Cursor returns the selected row.
func (m HistoryModel) Cursor() int { return m.cursor }

// Confirming reports whether the delete dialog is open.
func (m HistoryModel) Confirming() bool { return m.confirming }

// Update handles key presses for the home screen.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	km := tui.DefaultKeyMap

	if m.confirming {
		switch {
		case key.Matches(keyMsg, km.Confirm):
			m.confirming = false
			m.deleteSelected()
		case key.Matches(keyMsg, km.Cancel):
			m.confirming = false
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, km.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, km.Down):
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, km.New):
		return m, tui.Navigate(tui.ViewNew)
	case key.Matches(keyMsg, km.Delete):
		if len(m.records) > 0 {
			m.confirming = true
		}
	case key.Matches(keyMsg, km.Quit):
		return m, tui.Navigate(tui.ViewQuit)
	}
	m.offset = scroll(m.cursor, m.offset, m.visibleRows())
	return m, nil
}

func (m *HistoryModel) deleteSelected() {
	if m.store == nil || len(m.records) == 0 {
		return
	}
	if err := m.store.Delete(m.cursor); err != nil {
		m.SetStatus(fmt.Sprintf("delete failed: %v", err), true)
		return
	}
	kept := make([]history.Record, 0, len(m.records)-1)
	kept = append(kept, m.records[:m.cursor]...)
	kept = append(kept, m.records[m.cursor+1:]...)
	m.SetRecords(kept)
	m.SetStatus("session deleted", false)
}

func (m HistoryModel) visibleRows() int {
	if m.height == 0 {
		return 1
	}
	return max(1, m.height-historyTop-historyBottom)
}

// Resize records the terminal height used for scrolling.
func (m *HistoryModel) Resize(height int) {
	m.height = height
	m.offset = scroll(m.cursor, m.offset, m.visibleRows())
}

// historyHeader is the table header, with Nerd Font icons when enabled.
func historyHeader(nerdFonts bool) string {
	if nerdFonts {
		return historyRow("\uf073 DATE", "\uf07c PROJ", "\uf0ae TASK", "\uf017 DUR", "\uf46a STATUS", "\uf0e7 MULT")
	}
	return historyRow("DATE", "PROJECT", "TASK", "DUR", "STATUS", "MULT")
}

// View renders the home screen.
func (m HistoryModel) View(f Frame) string {
	c := f.canvas()

	daily := stats.DailyTotals(m.records, f.Now)
	c.Put(0, 2, fmt.Sprintf("TODAY: %.1fm | YEST: %.1fm | RATIO: %s",
		daily.Today, daily.Yesterday, daily.RatioString()), tui.TitleStyle)

	header := historyHeader(f.NerdFonts)
	c.Put(2, 2, header, tui.BoxStyle)
	c.Put(3, 2, runewidth.FillRight("", min(runewidth.StringWidth(header), max(0, f.Width-4))), tui.BoxStyle.Underline(true))

	if len(m.records) == 0 {
		c.Put(historyTop, 2, "No sessions yet. Press N to start a quest.", tui.DimStyle)
	}
	visible := max(1, f.Height-historyTop-historyBottom)
	offset := scroll(m.cursor, m.offset, visible)
	for i := 0; i < visible; i++ {
		idx := offset + i
		if idx >= len(m.records) {
			break
		}
		r := m.records[idx]
		mult := "-"
		if r.IsCompleted() {
			mult = "1.0x"
		}
		line := historyRow(
			r.Timestamp,
			r.Project,
			r.Task,
			timefmt.FormatMinutes(r.Minutes()),
			tui.StatusLabel(r, f.NerdFonts),
			mult,
		)
		style := tui.TextStyle
		if idx == m.cursor {
			style = tui.SelectedStyle
		}
		c.Put(historyTop+i, 2, line, style)
	}

	if m.status != "" {
		style := tui.SuccessStyle
		if m.statusErr {
			style = tui.ErrorStyle
		}
		c.Put(f.Height-3, 2, m.status, style)
	}
	if len(m.records) > 0 {
		if ts, ok := m.records[0].Time(); ok {
			c.Put(f.Height-2, 2, "last session "+tui.LastSeen(ts, f.Now), tui.DimStyle)
		}
	}

	km := tui.DefaultKeyMap
	footer(c, f, km.New, km.Delete, km.Quit)

	if m.confirming {
		drawModal(c, " DELETE SESSION? (y/n) ")
	}
	return c.Render()
}

func historyRow(date, project, task, dur, status, mult string) string {
	return fmt.Sprintf("%s | %s | %s | %s | %s | %s",
		cut(date, 19), cut(project, 12), cut(task, 20), cut(dur, 5), cut(status, 12), mult)
}

// cut truncates s to n columns and pads it to exactly n.
func cut(s string, n int) string {
	return runewidth.FillRight(runewidth.Truncate(s, n, ""), n)
}

func drawModal(c *tui.Canvas, text string) {
	w := runewidth.StringWidth(text) + 4
	h := 3
	y := c.Height()/2 - h/2
	x := c.Width()/2 - w/2
	c.Fill(y, x, h, w, ' ', tui.TextStyle)
	c.Box(y, x, h, w, "", tui.ModalStyle)
	c.Put(y+1, x+2, text, tui.ModalStyle)
}
