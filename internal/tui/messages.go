package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is delivered once per poll interval and drives the view loop.
type FrameMsg time.Time

// FrameCmd schedules the next frame.
func FrameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// NavigateMsg asks the router to switch views.
type NavigateMsg struct {
	To View
}

// Navigate returns a command producing NavigateMsg.
func Navigate(to View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// StartSessionMsg is sent when the NEW flow completes.
type StartSessionMsg struct {
	Project string
	Task    string
	Minutes float64
}

// StatusMsg shows a one-line notice on the HISTORY screen.
type StatusMsg struct {
	Text  string
	Error bool
}
