// Package session implements the countdown timer shared by every screen.
//
// Time is never counted down. Each call samples the clock and recomputes
// elapsed time from absolute instants, so a late or skipped Tick only
// delays the display and never loses time.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/log"
)

// State is the lifecycle position of the live session.
type State int

const (
	Stopped State = iota
	Running
	Paused
	Finished
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "stopped"
	}
}

// Event reports what a Tick changed.
type Event int

const (
	EventNone Event = iota
	EventFinished
)

// BlinkInterval is how often the clock colon toggles while running.
const BlinkInterval = 500 * time.Millisecond

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now, which carries a monotonic reading.
var SystemClock Clock = ClockFunc(time.Now)

// Recorder persists finalized sessions.
type Recorder interface {
	Append(r history.Record) error
}

// Session is the live timer. It is not safe for concurrent use; the view
// loop is its only writer.
type Session struct {
	clock    Clock
	recorder Recorder
	events   log.Sink

	id                 string
	active             bool
	state              State
	project            string
	task               string
	duration           time.Duration
	startTime          time.Time
	elapsedBeforePause time.Duration
	lastBlink          time.Time
	showColon          bool
}

// New creates a stopped session. events may be nil.
func New(clock Clock, recorder Recorder, events log.Sink) *Session {
	if clock == nil {
		clock = SystemClock
	}
	return &Session{
		clock:     clock,
		recorder:  recorder,
		events:    events,
		showColon: true,
	}
}

// MaxMinutes is the longest duration a session can hold.
var MaxMinutes = float64(math.MaxInt64) / float64(time.Minute)

// Start begins a new running session. It does nothing unless minutes is a
// positive number below MaxMinutes. A running or paused session is aborted
// first so it still leaves its record.
func (s *Session) Start(project, task string, minutes float64) {
	if !(minutes > 0) || minutes >= MaxMinutes {
		return
	}
	s.start(project, task, time.Duration(minutes*float64(time.Minute)))
}

func (s *Session) start(project, task string, duration time.Duration) {
	if duration <= 0 {
		return
	}
	if s.active && s.state != Finished {
		s.Abort()
	}

	now := s.clock.Now()
	s.id = uuid.New().String()
	s.active = true
	s.state = Running
	s.project = project
	s.task = task
	s.duration = duration
	s.startTime = now
	s.elapsedBeforePause = 0
	s.lastBlink = now
	s.showColon = true

	s.emit(log.EventSessionStarted, 0)
}

// Tick advances the session. It is a no-op unless a session is running.
// It returns EventFinished exactly once, on the tick where the remaining
// time reaches zero, after the completed record has been appended.
func (s *Session) Tick() Event {
	if !s.active || s.state != Running {
		return EventNone
	}

	now := s.clock.Now()
	if now.Sub(s.lastBlink) >= BlinkInterval {
		s.showColon = !s.showColon
		s.lastBlink = now
	}

	elapsed := s.elapsedBeforePause + now.Sub(s.startTime)
	if s.duration-elapsed > 0 {
		return EventNone
	}

	s.state = Finished
	s.elapsedBeforePause = s.duration
	s.showColon = true
	s.record(history.Completed(s.project, s.task, s.duration, now))
	s.emit(log.EventSessionFinished, s.duration)
	return EventFinished
}

// Pause stops the clock. Only valid while running.
func (s *Session) Pause() {
	if !s.active || s.state != Running {
		return
	}
	s.elapsedBeforePause += s.clock.Now().Sub(s.startTime)
	s.state = Paused
	s.emit(log.EventSessionPaused, s.elapsedBeforePause)
}

// Resume restarts the clock. Only valid while paused.
func (s *Session) Resume() {
	if !s.active || s.state != Paused {
		return
	}
	s.state = Running
	s.startTime = s.clock.Now()
	s.emit(log.EventSessionResumed, s.elapsedBeforePause)
}

// Toggle pauses a running session or resumes a paused one.
func (s *Session) Toggle() {
	switch s.state {
	case Running:
		s.Pause()
	case Paused:
		s.Resume()
	}
}

// Abort ends the session. A session that has not finished is recorded as
// aborted with its elapsed whole seconds; a finished one was already
// recorded and is only dismissed.
func (s *Session) Abort() {
	if !s.active {
		return
	}
	now := s.clock.Now()
	elapsed := s.elapsedAt(now)
	if s.state != Finished {
		s.record(history.Aborted(s.project, s.task, s.duration, elapsed, now))
		s.emit(log.EventSessionAborted, elapsed)
	}
	s.active = false
	s.state = Stopped
	s.showColon = true
}

// Restart aborts the session and starts a fresh one with the same
// project, task and duration.
func (s *Session) Restart() {
	if !s.active {
		return
	}
	project, task, duration := s.project, s.task, s.duration
	s.Abort()
	s.start(project, task, duration)
}

// Active reports whether a session exists.
func (s *Session) Active() bool { return s.active }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// ID identifies the current session in the event log.
func (s *Session) ID() string { return s.id }

// Project returns the project label.
func (s *Session) Project() string { return s.project }

// Task returns the task label.
func (s *Session) Task() string { return s.task }

// Duration returns the planned length.
func (s *Session) Duration() time.Duration { return s.duration }

// ColonVisible reports the blink phase of the clock colon.
func (s *Session) ColonVisible() bool { return s.showColon }

// Elapsed returns the time counted so far.
func (s *Session) Elapsed() time.Duration {
	return s.elapsedAt(s.clock.Now())
}

// Remaining returns the planned duration minus elapsed, never negative.
func (s *Session) Remaining() time.Duration {
	rem := s.duration - s.Elapsed()
	if rem < 0 {
		return 0
	}
	return rem
}

// Progress returns the completed fraction in [0, 1].
func (s *Session) Progress() float64 {
	if s.state == Finished || s.duration <= 0 {
		return 1
	}
	p := 1 - float64(s.Remaining())/float64(s.duration)
	return math.Max(0, math.Min(1, p))
}

func (s *Session) elapsedAt(now time.Time) time.Duration {
	if s.state == Running {
		return s.elapsedBeforePause + now.Sub(s.startTime)
	}
	return s.elapsedBeforePause
}

func (s *Session) record(r history.Record) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Append(r); err != nil {
		log.Emit(s.events, log.LogEvent{
			Event:     log.EventStoreWriteFailed,
			SessionID: s.id,
			Project:   s.project,
			Task:      s.task,
			State:     string(r.Status),
			Error:     err.Error(),
		})
	}
}

func (s *Session) emit(event string, elapsed time.Duration) {
	log.Emit(s.events, log.LogEvent{
		Event:      event,
		SessionID:  s.id,
		Project:    s.project,
		Task:       s.task,
		State:      s.state.String(),
		PlannedSec: s.duration.Seconds(),
		ElapsedSec: elapsed.Seconds(),
	})
}
