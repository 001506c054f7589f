package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/stats"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/timefmt"
)

const lootPerRow = 20

// RaidModel is today's timeline. The longest session is the boss.
type RaidModel struct {
	selected int
	count    int
}

// NewRaidModel creates the raid screen.
func NewRaidModel() RaidModel { return RaidModel{} }

// Selected returns the highlighted entry.
func (m RaidModel) Selected() int { return m.selected }

// Reset selects the latest of today's entries. Called on entering the screen.
func (m *RaidModel) Reset(records []history.Record, now time.Time) {
	m.count = len(stats.BuildRaid(records, now).Entries)
	m.selected = max(m.count-1, 0)
}

// Sync keeps the selection inside today's entries after the history changes.
func (m *RaidModel) Sync(records []history.Record, now time.Time) {
	m.count = len(stats.BuildRaid(records, now).Entries)
	m.Clamp(m.count)
}

// Update moves the selection and returns to HISTORY on esc or q.
func (m RaidModel) Update(msg tea.Msg) (RaidModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	km := tui.DefaultKeyMap
	switch {
	case key.Matches(keyMsg, km.Back):
		return m, tui.Navigate(tui.ViewHistory)
	case key.Matches(keyMsg, km.Left), key.Matches(keyMsg, km.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, km.Right), key.Matches(keyMsg, km.Down):
		if m.selected < m.count-1 {
			m.selected++
		}
	}
	return m, nil
}

// Clamp keeps the selection inside n entries.
func (m *RaidModel) Clamp(n int) {
	m.selected = clamp(m.selected, n)
}

// View renders today's raid.
func (m RaidModel) View(f Frame) string {
	c := f.canvas()
	raid := stats.BuildRaid(f.Records, f.Now)
	m.Clamp(len(raid.Entries))

	c.Put(1, 2, "DAILY RAID: "+raid.Day.Format("Mon Jan 2"), tui.TitleStyle)
	if len(raid.Entries) == 0 {
		c.Put(3, 2, "No encounters today. Start a quest to begin the raid.", tui.DimStyle)
		footer(c, f, tui.DefaultKeyMap.Back)
		return c.Render()
	}

	x := 2
	for i, r := range raid.Entries {
		label := "[" + clockOf(r.Timestamp) + "]"
		if i == raid.Boss {
			label = "[BOSS " + clockOf(r.Timestamp) + "]"
		}
		style := tui.TextStyle
		if i == raid.Boss {
			style = tui.ErrorStyle
		}
		if i == m.selected {
			style = tui.SelectedStyle
		}
		c.Put(3, x, label, style)
		x += len(label)
		if i < len(raid.Entries)-1 {
			c.Put(3, x, "──", tui.DimStyle)
			x += 2
		}
	}

	sel := raid.Entries[m.selected]
	boss := m.selected == raid.Boss
	c.Box(5, 2, 9, min(60, max(20, f.Width-4)), "ENCOUNTER", tui.BoxStyle)
	c.PutText(6, 4, "PROJECT: "+sel.Project)
	c.PutText(7, 4, "TASK:    "+sel.Task)
	c.PutText(8, 4, fmt.Sprintf("DAMAGE:  %s (%s)", timefmt.FormatMinutes(sel.Minutes()), strings.ToLower(string(sel.Status))))

	loot := stats.LootDrops(sel)
	c.PutText(9, 4, fmt.Sprintf("LOOT:    %d", loot))
	c.Put(10, 4, strings.Repeat("■", min(loot, lootPerRow)), tui.WarningStyle)
	if loot > lootPerRow {
		c.Put(10, 4+lootPerRow+1, fmt.Sprintf("+%d", loot-lootPerRow), tui.WarningStyle)
	}
	if buffs := stats.Buffs(sel, boss); len(buffs) > 0 {
		c.Put(11, 4, "BUFFS:   "+strings.Join(buffs, ", "), tui.SuccessStyle)
	}

	km := tui.DefaultKeyMap
	footer(c, f, km.Left, km.Right, km.Back)
	return c.Render()
}

// clockOf returns HH:MM from a record timestamp.
func clockOf(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return "--:--"
}
