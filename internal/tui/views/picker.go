package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/questclock/questclock/internal/fuzzy"
	"github.com/questclock/questclock/internal/tui"
)

const (
	pickerCharLimit  = 30
	pickerMaxVisible = 8
)

// PickResult reports how a picker key press ended, if it did.
type PickResult struct {
	Done      bool
	Cancelled bool
	Value     string
}

// PickerModel selects an existing label by fuzzy match or accepts a new one.
type PickerModel struct {
	title    string
	input    textinput.Model
	options  []string
	filtered []string
	selected int
	offset   int
}

// NewPickerModel creates a picker over options.
func NewPickerModel(title string, options []string) PickerModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to search or create"
	ti.CharLimit = pickerCharLimit
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := PickerModel{
		title:   title,
		input:   ti,
		options: options,
	}
	m.refilter()
	return m
}

// Value returns the current input text.
func (m PickerModel) Value() string { return m.input.Value() }

// Filtered returns the options matching the input.
func (m PickerModel) Filtered() []string { return m.filtered }

// Selection returns the highlighted option, or "" when nothing matches.
func (m PickerModel) Selection() string {
	if len(m.filtered) == 0 {
		return ""
	}
	return m.filtered[m.selected]
}

func (m *PickerModel) refilter() {
	m.filtered = fuzzy.Filter(m.input.Value(), m.options)
	m.selected = 0
	m.offset = 0
}

// Update handles one key press.
func (m PickerModel) Update(msg tea.KeyMsg) (PickerModel, PickResult) {
	km := tui.DefaultKeyMap
	switch {
	case key.Matches(msg, km.Escape):
		return m, PickResult{Cancelled: true}
	case key.Matches(msg, km.Up):
		if m.selected > 0 {
			m.selected--
		}
		m.offset = scroll(m.selected, m.offset, pickerMaxVisible)
		return m, PickResult{}
	case key.Matches(msg, km.Down):
		if m.selected < len(m.filtered)-1 {
			m.selected++
		}
		m.offset = scroll(m.selected, m.offset, pickerMaxVisible)
		return m, PickResult{}
	case key.Matches(msg, km.Enter):
		return m.enter()
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace:
		m.input, _ = m.input.Update(msg)
		m.refilter()
	}
	return m, PickResult{}
}

// enter completes the input to the selected option first and confirms on
// the second press. With no match, non-blank input becomes a new label.
func (m PickerModel) enter() (PickerModel, PickResult) {
	if opt := m.Selection(); opt != "" {
		if m.input.Value() == opt {
			return m, PickResult{Done: true, Value: opt}
		}
		m.input.SetValue(opt)
		m.input.CursorEnd()
		m.refilter()
		for i, f := range m.filtered {
			if f == opt {
				m.selected = i
				break
			}
		}
		m.offset = scroll(m.selected, m.offset, pickerMaxVisible)
		return m, PickResult{}
	}
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return m, PickResult{Done: true, Value: v}
	}
	return m, PickResult{}
}

// Draw renders the picker with its top-left corner at (y, x).
func (m PickerModel) Draw(c *tui.Canvas, y, x, width int) {
	c.Put(y, x, m.title, tui.TitleStyle)
	input := m.input
	input.Width = max(1, width-4)
	c.PutRaw(y+2, x, input.View())

	if len(m.filtered) == 0 {
		if strings.TrimSpace(m.input.Value()) != "" {
			c.Put(y+4, x+2, "enter: create \""+strings.TrimSpace(m.input.Value())+"\"", tui.DimStyle)
		}
		return
	}
	for i := 0; i < pickerMaxVisible; i++ {
		idx := m.offset + i
		if idx >= len(m.filtered) {
			break
		}
		style := tui.TextStyle
		prefix := "  "
		if idx == m.selected {
			style = tui.SelectedStyle
			prefix = "> "
		}
		c.Put(y+4+i, x, prefix+m.filtered[idx], style)
	}
}
