package session

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/log"
	"github.com/questclock/questclock/internal/testutil"
)

type memoryRecorder struct {
	records []history.Record
	err     error
}

func (m *memoryRecorder) Append(r history.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, r)
	return nil
}

func newTestSession() (*Session, *testutil.Clock, *memoryRecorder, *testutil.Sink) {
	clock := testutil.NewClock(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	rec := &memoryRecorder{}
	sink := &testutil.Sink{}
	return New(clock, rec, sink), clock, rec, sink
}

func TestStartThenTickKeepsFullDuration(t *testing.T) {
	for _, minutes := range []float64{0.5, 1, 5.5, 25, 90} {
		s, _, _, _ := newTestSession()
		s.Start("p", "t", minutes)
		require.Equal(t, EventNone, s.Tick())

		require.True(t, s.Active())
		require.Equal(t, Running, s.State())
		require.Equal(t, time.Duration(minutes*float64(time.Minute)), s.Remaining())
		require.Zero(t, s.Elapsed())
	}
}

func TestStartRejectsInvalidDuration(t *testing.T) {
	for _, minutes := range []float64{0, -5, math.NaN(), math.Inf(1), MaxMinutes, 999999999999} {
		s, _, rec, _ := newTestSession()
		s.Start("p", "t", minutes)
		require.False(t, s.Active(), "minutes=%v", minutes)
		require.Equal(t, Stopped, s.State())
		require.Empty(t, rec.records)
	}
}

func TestStartAcceptsVeryLongDuration(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Start("p", "t", 100000000)
	require.True(t, s.Active())
	require.Equal(t, time.Duration(100000000)*time.Minute, s.Remaining())
}

func TestElapsedAdvancesWithClock(t *testing.T) {
	s, clock, _, _ := newTestSession()
	s.Start("p", "t", 10)

	clock.Advance(90 * time.Second)
	s.Tick()

	require.Equal(t, 90*time.Second, s.Elapsed())
	require.Equal(t, 8*time.Minute+30*time.Second, s.Remaining())
	require.InDelta(t, 0.15, s.Progress(), 1e-9)
}

func TestPauseResumePreservesElapsed(t *testing.T) {
	s, clock, _, _ := newTestSession()
	s.Start("p", "t", 10)
	clock.Advance(2 * time.Minute)

	s.Pause()
	require.Equal(t, Paused, s.State())
	before := s.Elapsed()

	s.Resume()
	require.Equal(t, Running, s.State())
	require.Equal(t, before, s.Elapsed())
}

func TestPausedTimeIsNotCounted(t *testing.T) {
	s, clock, _, _ := newTestSession()
	s.Start("p", "t", 10)
	clock.Advance(time.Minute)
	s.Pause()

	clock.Advance(time.Hour)
	s.Tick()
	require.Equal(t, time.Minute, s.Elapsed())
	require.Equal(t, Paused, s.State())

	s.Resume()
	clock.Advance(30 * time.Second)
	require.Equal(t, 90*time.Second, s.Elapsed())
}

func TestPauseAndResumeOnlyFromValidStates(t *testing.T) {
	s, clock, _, _ := newTestSession()

	s.Pause()
	s.Resume()
	require.Equal(t, Stopped, s.State())

	s.Start("p", "t", 10)
	s.Resume()
	require.Equal(t, Running, s.State())

	clock.Advance(time.Minute)
	s.Pause()
	s.Pause()
	require.Equal(t, time.Minute, s.Elapsed())
}

func TestToggle(t *testing.T) {
	s, _, _, _ := newTestSession()
	s.Start("p", "t", 1)
	s.Toggle()
	require.Equal(t, Paused, s.State())
	s.Toggle()
	require.Equal(t, Running, s.State())
}

func TestFinishRecordsExactlyOnce(t *testing.T) {
	s, clock, rec, sink := newTestSession()
	s.Start("deep work", "chapter 3", 25)

	clock.Advance(25 * time.Minute)
	require.Equal(t, EventFinished, s.Tick())
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		require.Equal(t, EventNone, s.Tick())
	}

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	require.Equal(t, history.StatusCompleted, r.Status)
	require.Equal(t, "deep work", r.Project)
	require.Equal(t, "chapter 3", r.Task)
	require.Equal(t, 25.0, r.DurationMinutes)
	require.Nil(t, r.ActualDurationSeconds)
	require.Equal(t, "2026-10-14T09:25:00Z", r.Timestamp)

	require.Equal(t, Finished, s.State())
	require.True(t, s.Active())
	require.Zero(t, s.Remaining())
	require.Equal(t, 1.0, s.Progress())
	require.True(t, s.ColonVisible())
	require.Contains(t, sink.Names(), log.EventSessionFinished)
}

func TestFinishTruncatesFractionalMinutes(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 5.5)
	clock.Advance(6 * time.Minute)
	s.Tick()

	require.Len(t, rec.records, 1)
	require.Equal(t, 5.0, rec.records[0].DurationMinutes)
}

func TestAbortAfterFinishDoesNotRecordAgain(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 1)
	clock.Advance(time.Minute)
	s.Tick()

	s.Abort()
	require.Len(t, rec.records, 1)
	require.False(t, s.Active())
	require.Equal(t, Stopped, s.State())
}

func TestAbortWithNoElapsedTime(t *testing.T) {
	s, _, rec, _ := newTestSession()
	s.Start("p", "t", 10)
	s.Abort()

	require.Len(t, rec.records, 1)
	r := rec.records[0]
	require.Equal(t, history.StatusAborted, r.Status)
	require.NotNil(t, r.ActualDurationSeconds)
	require.Equal(t, 0, *r.ActualDurationSeconds)
	require.Equal(t, 10.0, r.DurationMinutes)
}

func TestAbortWhileRunningCountsCurrentInterval(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 10)
	clock.Advance(30 * time.Second)
	s.Pause()
	clock.Advance(time.Hour)
	s.Resume()
	clock.Advance(12*time.Second + 900*time.Millisecond)

	s.Abort()
	require.Len(t, rec.records, 1)
	require.Equal(t, 42, *rec.records[0].ActualDurationSeconds)
}

func TestAbortWhilePaused(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 10)
	clock.Advance(20 * time.Second)
	s.Pause()
	clock.Advance(time.Minute)

	s.Abort()
	require.Equal(t, 20, *rec.records[0].ActualDurationSeconds)
}

func TestAbortWhenInactiveIsNoop(t *testing.T) {
	s, _, rec, sink := newTestSession()
	s.Abort()
	require.Empty(t, rec.records)
	require.Empty(t, sink.Events)
}

func TestRestart(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 2.5)
	firstID := s.ID()
	clock.Advance(time.Minute)

	s.Restart()

	require.Len(t, rec.records, 1)
	require.Equal(t, history.StatusAborted, rec.records[0].Status)
	require.Equal(t, 60, *rec.records[0].ActualDurationSeconds)

	require.Equal(t, Running, s.State())
	require.Equal(t, "p", s.Project())
	require.Equal(t, "t", s.Task())
	require.Equal(t, 150*time.Second, s.Duration())
	require.Equal(t, 150*time.Second, s.Remaining())
	require.NotEqual(t, firstID, s.ID())
}

func TestRestartAfterFinishDoesNotRecordAbort(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("p", "t", 1)
	clock.Advance(time.Minute)
	s.Tick()

	s.Restart()
	require.Len(t, rec.records, 1)
	require.Equal(t, Running, s.State())
}

func TestStartReplacesRunningSessionWithAbortRecord(t *testing.T) {
	s, clock, rec, _ := newTestSession()
	s.Start("old", "t", 10)
	clock.Advance(5 * time.Second)

	s.Start("new", "t", 5)

	require.Len(t, rec.records, 1)
	require.Equal(t, "old", rec.records[0].Project)
	require.Equal(t, history.StatusAborted, rec.records[0].Status)
	require.Equal(t, "new", s.Project())
}

func TestBlinkTogglesEveryHalfSecond(t *testing.T) {
	s, clock, _, _ := newTestSession()
	s.Start("p", "t", 10)
	require.True(t, s.ColonVisible())

	clock.Advance(400 * time.Millisecond)
	s.Tick()
	require.True(t, s.ColonVisible())

	clock.Advance(100 * time.Millisecond)
	s.Tick()
	require.False(t, s.ColonVisible())

	clock.Advance(100 * time.Millisecond)
	s.Tick()
	require.False(t, s.ColonVisible())

	clock.Advance(400 * time.Millisecond)
	s.Tick()
	require.True(t, s.ColonVisible())
}

func TestWriteFailureIsLoggedAndTransitionCompletes(t *testing.T) {
	s, clock, rec, sink := newTestSession()
	rec.err = errors.New("disk full")
	s.Start("p", "t", 1)
	clock.Advance(2 * time.Minute)

	require.Equal(t, EventFinished, s.Tick())
	require.Equal(t, Finished, s.State())
	require.Contains(t, sink.Names(), log.EventStoreWriteFailed)
}

func TestEventsCarrySessionID(t *testing.T) {
	s, clock, _, sink := newTestSession()
	s.Start("p", "t", 1)
	clock.Advance(10 * time.Second)
	s.Pause()
	s.Resume()
	s.Abort()

	require.Equal(t, []string{
		log.EventSessionStarted,
		log.EventSessionPaused,
		log.EventSessionResumed,
		log.EventSessionAborted,
	}, sink.Names())
	for _, e := range sink.Events {
		require.Equal(t, s.ID(), e.SessionID)
	}
}
