// Package app provides the main TUI application that wires all views together.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/questclock/questclock/internal/config"
	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/log"
	"github.com/questclock/questclock/internal/session"
	"github.com/questclock/questclock/internal/tui"
	"github.com/questclock/questclock/internal/tui/views"
)

// reloadInterval is how often the history file is re-read.
const reloadInterval = time.Second

// App is the main TUI application. Every message it receives is one loop
// iteration: the session is ticked first, then the message is routed.
type App struct {
	cfg     *config.Config
	clock   session.Clock
	session *session.Session
	store   *history.Store
	events  log.Sink

	view       tui.View
	width      int
	height     int
	records    []history.Record
	lastLoad   time.Time
	readFailed bool
	quitting   bool

	// View models
	historyView views.HistoryModel
	timerView   views.TimerModel
	newView     views.NewQuestModel
	heatmapView views.HeatmapModel
	weeklyView  views.WeeklyModel
	raidView    views.RaidModel
	infoView    views.InfoModel
}

// New creates the application. The session must record into store.
func New(cfg *config.Config, clock session.Clock, sess *session.Session, store *history.Store, events log.Sink) *App {
	return &App{
		cfg:     cfg,
		clock:   clock,
		session: sess,
		store:   store,
		events:  events,
		view:    tui.ViewHistory,
		width:   80,
		height:  24,

		historyView: views.NewHistoryModel(store),
		timerView:   views.NewTimerModel(sess),
		newView:     views.NewNewQuestModel(store, cfg.Presets),
		heatmapView: views.NewHeatmapModel(),
		weeklyView:  views.NewWeeklyModel(cfg.WeeklyGoal),
		raidView:    views.NewRaidModel(),
		infoView:    views.NewInfoModel(),
	}
}

// Current returns the active screen.
func (a *App) Current() tui.View { return a.view }

// Records returns the history as last loaded.
func (a *App) Records() []history.Record { return a.records }

// Init loads the history and starts the frame loop.
func (a *App) Init() tea.Cmd {
	log.Emit(a.events, log.LogEvent{Event: log.EventAppStarted, Path: a.store.Path()})
	a.reload()
	return tui.FrameCmd(a.cfg.PollInterval())
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.quitting {
		return a, nil
	}
	if a.session.Tick() == session.EventFinished {
		a.setView(tui.Route(a.view, tui.Event{Kind: tui.EventFinished}, true))
		a.reload()
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tui.FrameMsg:
		if a.clock.Now().Sub(a.lastLoad) >= reloadInterval {
			a.reload()
		}
		if a.view == tui.ViewWeekly {
			a.weeklyView.Advance()
		}
		cmd = tui.FrameCmd(a.cfg.PollInterval())

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.historyView.Resize(msg.Height)

	case tea.KeyMsg:
		k := msg.String()
		if a.modalOpen() && k != tui.KeyCtrlC {
			cmd = a.updateView(msg)
		} else if tui.IsNavigation(a.view, k, a.session.Active()) {
			a.setView(tui.Route(a.view, tui.KeyEvent(k), a.session.Active()))
		} else {
			cmd = a.updateView(msg)
		}

	case tui.NavigateMsg:
		a.setView(tui.Route(a.view, tui.Request(msg.To), a.session.Active()))

	case tui.StartSessionMsg:
		a.session.Start(msg.Project, msg.Task, msg.Minutes)
		if a.session.Active() {
			a.setView(tui.Route(a.view, tui.Request(tui.ViewTimer), true))
		} else {
			a.setView(tui.ViewHistory)
		}
		a.reload()

	case tui.StatusMsg:
		a.historyView.SetStatus(msg.Text, msg.Error)
	}

	if !a.session.Active() {
		a.setView(tui.Route(a.view, tui.Event{Kind: tui.EventNoSession}, false))
	}
	if a.view == tui.ViewQuit {
		return a, a.quit()
	}
	return a, cmd
}

func (a *App) updateView(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.view {
	case tui.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case tui.ViewTimer:
		a.timerView, cmd = a.timerView.Update(msg)
	case tui.ViewNew:
		a.newView, cmd = a.newView.Update(msg)
	case tui.ViewHeatmap:
		a.heatmapView, cmd = a.heatmapView.Update(msg)
	case tui.ViewWeekly:
		a.weeklyView, cmd = a.weeklyView.Update(msg)
	case tui.ViewRaid:
		a.raidView, cmd = a.raidView.Update(msg)
	case tui.ViewInfo:
		a.infoView, cmd = a.infoView.Update(msg)
	}
	return cmd
}

// modalOpen reports whether the delete confirmation holds every key but ctrl+c.
func (a *App) modalOpen() bool {
	return a.view == tui.ViewHistory && a.historyView.Confirming()
}

// setView switches screens, resetting per-visit state on entry.
func (a *App) setView(next tui.View) {
	if next == a.view {
		return
	}
	switch next {
	case tui.ViewNew:
		a.newView.Begin()
	case tui.ViewWeekly:
		a.weeklyView.Reset()
	case tui.ViewRaid:
		a.raidView.Reset(a.records, a.clock.Now())
	case tui.ViewHistory:
		a.reload()
	}
	a.view = next
}

// reload re-reads the history file. A failed read shows an empty history
// and is logged once until a read succeeds again.
func (a *App) reload() {
	a.lastLoad = a.clock.Now()
	records, err := a.store.Read()
	if err != nil {
		if !a.readFailed {
			log.Emit(a.events, log.LogEvent{Event: log.EventStoreReadFailed, Path: a.store.Path(), Error: err.Error()})
			a.historyView.SetStatus("history unreadable: "+err.Error(), true)
		}
		a.readFailed = true
		records = nil
	} else if a.readFailed {
		a.readFailed = false
		a.historyView.SetStatus("", false)
	}
	a.records = records
	a.historyView.SetRecords(records)
	a.raidView.Sync(records, a.lastLoad)
}

// quit aborts a live session so it is recorded, then stops the program.
func (a *App) quit() tea.Cmd {
	a.quitting = true
	if a.session.Active() {
		a.session.Abort()
	}
	log.Emit(a.events, log.LogEvent{Event: log.EventAppQuit})
	return tea.Quit
}

// View renders the current screen.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	f := views.Frame{
		Width:     a.width,
		Height:    a.height,
		Now:       a.clock.Now(),
		Timer:     a.session,
		Records:   a.records,
		NerdFonts: a.cfg.NerdFonts,
	}
	switch a.view {
	case tui.ViewHistory:
		return a.historyView.View(f)
	case tui.ViewTimer:
		return a.timerView.View(f)
	case tui.ViewNew:
		return a.newView.View(f)
	case tui.ViewHeatmap:
		return a.heatmapView.View(f)
	case tui.ViewWeekly:
		return a.weeklyView.View(f)
	case tui.ViewRaid:
		return a.raidView.View(f)
	case tui.ViewInfo:
		return a.infoView.View(f)
	}
	return ""
}
