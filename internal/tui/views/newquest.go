package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/questclock/questclock/internal/tui"
)

// LabelSource lists the labels already used in the history.
type LabelSource interface {
	Projects() []string
	Tasks(project string) []string
}

// Step is the position within the NEW flow.
type Step int

const (
	StepProject Step = iota
	StepTask
	StepDuration
)

// NewQuestModel walks through project, task and duration. It never touches
// the session; completion is reported with tui.StartSessionMsg.
type NewQuestModel struct {
	labels   LabelSource
	presets  []float64
	step     Step
	project  string
	task     string
	picker   PickerModel
	duration DurationModel
}

// NewNewQuestModel creates the NEW flow.
func NewNewQuestModel(labels LabelSource, presets []float64) NewQuestModel {
	m := NewQuestModel{labels: labels, presets: presets}
	m.Begin()
	return m
}

// Begin resets the flow to the project step with fresh labels.
func (m *NewQuestModel) Begin() {
	var projects []string
	if m.labels != nil {
		projects = m.labels.Projects()
	}
	m.step = StepProject
	m.project = ""
	m.task = ""
	m.picker = NewPickerModel("SELECT PROJECT", projects)
	m.duration = NewDurationModel(m.presets)
}

// Step returns the current step.
func (m NewQuestModel) Step() Step { return m.step }

// Picker returns the active label picker.
func (m NewQuestModel) Picker() PickerModel { return m.picker }

// Update handles key presses inside the NEW flow.
func (m NewQuestModel) Update(msg tea.Msg) (NewQuestModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.step {
	case StepProject, StepTask:
		var res PickResult
		m.picker, res = m.picker.Update(keyMsg)
		switch {
		case res.Cancelled:
			return m, tui.Navigate(tui.ViewHistory)
		case res.Done && m.step == StepProject:
			m.project = res.Value
			var tasks []string
			if m.labels != nil {
				tasks = m.labels.Tasks(m.project)
			}
			m.step = StepTask
			m.picker = NewPickerModel("SELECT TASK FOR "+m.project, tasks)
		case res.Done:
			m.task = res.Value
			m.step = StepDuration
		}
	case StepDuration:
		var res DurationResult
		m.duration, res = m.duration.Update(keyMsg)
		switch {
		case res.Cancelled:
			return m, tui.Navigate(tui.ViewHistory)
		case res.Done:
			project, task, minutes := m.project, m.task, res.Minutes
			return m, func() tea.Msg {
				return tui.StartSessionMsg{Project: project, Task: task, Minutes: minutes}
			}
		}
	}
	return m, nil
}

// View renders the current step.
func (m NewQuestModel) View(f Frame) string {
	c := f.canvas()
	c.Put(0, 2, "NEW QUEST", tui.TitleStyle)
	width := min(60, max(20, f.Width-4))
	y := 2
	if m.project != "" {
		c.Put(y, 4, "PROJECT: "+m.project, tui.DimStyle)
		y++
	}
	if m.task != "" {
		c.Put(y, 4, "TASK:    "+m.task, tui.DimStyle)
		y++
	}
	y++

	km := tui.DefaultKeyMap
	if m.step == StepDuration {
		m.duration.Draw(c, y, 4, width)
	} else {
		m.picker.Draw(c, y, 4, width)
	}
	c.PutRaw(f.Height-1, 2, tui.HelpLine(f.Width-4, km.Up, km.Down, km.Enter, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	)))
	return c.Render()
}
