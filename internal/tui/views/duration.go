package views

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/questclock/questclock/internal/session"
	"github.com/questclock/questclock/internal/timefmt"
	"github.com/questclock/questclock/internal/tui"
)

const durationCharLimit = 10

// DurationMode is which half of the duration picker has focus.
type DurationMode int

const (
	ModeMenu DurationMode = iota
	ModeType
)

// DurationResult reports how a duration key press ended, if it did.
type DurationResult struct {
	Done      bool
	Cancelled bool
	Minutes   float64
}

// DurationModel picks a preset or parses a typed duration.
type DurationModel struct {
	presets []float64
	cursor  int // len(presets) is "Manual Input"
	mode    DurationMode
	input   textinput.Model
	invalid bool
}

// NewDurationModel creates a duration picker offering presets.
func NewDurationModel(presets []float64) DurationModel {
	ti := textinput.New()
	ti.Prompt = "QUICK ENTRY: "
	ti.Placeholder = "25, 5:30 or 1:30:00"
	ti.CharLimit = durationCharLimit
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Blur()
	return DurationModel{presets: presets, input: ti}
}

// Mode returns the focused half.
func (m DurationModel) Mode() DurationMode { return m.mode }

// Cursor returns the highlighted menu row.
func (m DurationModel) Cursor() int { return m.cursor }

// Input returns the typed text.
func (m DurationModel) Input() string { return m.input.Value() }

func (m *DurationModel) typing(seed string) {
	m.mode = ModeType
	m.invalid = false
	m.input.SetValue(seed)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *DurationModel) menu() {
	m.mode = ModeMenu
	m.input.Blur()
}

// Update handles one key press.
func (m DurationModel) Update(msg tea.KeyMsg) (DurationModel, DurationResult) {
	if m.mode == ModeType {
		return m.updateType(msg)
	}
	return m.updateMenu(msg)
}

func (m DurationModel) updateMenu(msg tea.KeyMsg) (DurationModel, DurationResult) {
	km := tui.DefaultKeyMap
	switch {
	case key.Matches(msg, km.Escape):
		return m, DurationResult{Cancelled: true}
	case key.Matches(msg, km.Up):
		if m.cursor == 0 {
			m.typing(m.input.Value())
		} else {
			m.cursor--
		}
	case key.Matches(msg, km.Down):
		if m.cursor < len(m.presets) {
			m.cursor++
		}
	case key.Matches(msg, km.Enter):
		if m.cursor < len(m.presets) {
			return m, DurationResult{Done: true, Minutes: m.presets[m.cursor]}
		}
		m.typing("")
	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && isDigit(msg.Runes[0]) {
			m.typing(string(msg.Runes))
		}
	}
	return m, DurationResult{}
}

func (m DurationModel) updateType(msg tea.KeyMsg) (DurationModel, DurationResult) {
	km := tui.DefaultKeyMap
	switch {
	case key.Matches(msg, km.Escape):
		m.input.SetValue("")
		m.invalid = false
		m.menu()
		return m, DurationResult{}
	case key.Matches(msg, km.Down):
		m.menu()
		m.cursor = 0
		return m, DurationResult{}
	case key.Matches(msg, km.Enter):
		if minutes, ok := timefmt.ParseMinutes(m.input.Value()); ok && minutes > 0 && minutes < session.MaxMinutes {
			return m, DurationResult{Done: true, Minutes: minutes}
		}
		m.invalid = true
		return m, DurationResult{}
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if m.input.Value() == "" {
			m.menu()
			return m, DurationResult{}
		}
		m.input, _ = m.input.Update(msg)
		m.invalid = false
		if m.input.Value() == "" {
			m.menu()
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !isDigit(r) && r != ':' {
				return m, DurationResult{}
			}
		}
		m.input, _ = m.input.Update(msg)
		m.invalid = false
	}
	return m, DurationResult{}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Draw renders the picker with its top-left corner at (y, x).
func (m DurationModel) Draw(c *tui.Canvas, y, x, width int) {
	c.Put(y, x, "DURATION", tui.TitleStyle)
	input := m.input
	input.Width = max(1, width-len(input.Prompt)-2)
	style := tui.DimStyle
	if m.mode == ModeType {
		style = tui.AccentStyle
	}
	c.Box(y+1, x, 3, width, "", style)
	c.PutRaw(y+2, x+2, input.View())
	if m.invalid {
		c.Put(y+4, x+2, "enter minutes, M:S or H:M:S", tui.ErrorStyle)
	}

	c.Put(y+5, x, "PRESETS", tui.TitleStyle)
	for i := 0; i <= len(m.presets); i++ {
		label := "Manual Input"
		if i < len(m.presets) {
			label = timefmt.FormatMinutes(m.presets[i])
		}
		rowStyle := tui.TextStyle
		prefix := "  "
		if m.mode == ModeMenu && i == m.cursor {
			rowStyle = tui.SelectedStyle
			prefix = "> "
		}
		c.Put(y+6+i, x, prefix+label, rowStyle)
	}
}
