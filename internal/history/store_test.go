package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/questclock/questclock/internal/log"
)

type memorySink struct {
	events []log.LogEvent
}

func (m *memorySink) Append(e log.LogEvent) error {
	m.events = append(m.events, e)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memorySink) {
	t.Helper()
	sink := &memorySink{}
	return NewStore(filepath.Join(t.TempDir(), "timer_history.json"), sink), sink
}

func record(project, task string) Record {
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local)
	return Completed(project, task, 25*time.Minute, at)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, sink := newTestStore(t)
	require.Empty(t, s.Load())
	require.Empty(t, sink.events)
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	s, sink := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	require.Empty(t, s.Load())
	require.Len(t, sink.events, 1)
	require.Equal(t, log.EventStoreReadFailed, sink.events[0].Event)
}

func TestLoadLogsEachFailureOnce(t *testing.T) {
	s, sink := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	s.Load()
	s.Projects()
	s.Tasks("p")
	require.Len(t, sink.events, 1)

	require.NoError(t, os.WriteFile(s.Path(), []byte("[]"), 0644))
	require.Empty(t, s.Load())
	require.NoError(t, os.WriteFile(s.Path(), []byte("[oops"), 0644))
	s.Load()
	require.Len(t, sink.events, 2)
}

func TestAppendIsMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Append(record("p", "first")))
	require.NoError(t, s.Append(record("p", "second")))

	got := s.Load()
	require.Len(t, got, 2)
	require.Equal(t, "second", got[0].Task)
	require.Equal(t, "first", got[1].Task)
}

func TestAppendCapsAtMaxRecords(t *testing.T) {
	s, _ := newTestStore(t)

	seed := make([]Record, MaxRecords)
	for i := range seed {
		// seed[0] is newest, seed[MaxRecords-1] is oldest.
		seed[i] = record("p", fmt.Sprintf("task-%d", i))
	}
	data, err := json.Marshal(seed)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), data, 0644))

	require.NoError(t, s.Append(record("p", "newest")))

	got := s.Load()
	require.Len(t, got, MaxRecords)
	require.Equal(t, "newest", got[0].Task)
	require.Equal(t, "task-0", got[1].Task)
	require.Equal(t, fmt.Sprintf("task-%d", MaxRecords-2), got[MaxRecords-1].Task)
}

func TestDeleteRemovesOnlyThatIndex(t *testing.T) {
	s, sink := newTestStore(t)
	for _, task := range []string{"c", "b", "a"} {
		require.NoError(t, s.Append(record("p", task)))
	}
	// History is now a, b, c.

	require.NoError(t, s.Delete(1))

	got := s.Load()
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Task)
	require.Equal(t, "c", got[1].Task)
	require.Equal(t, log.EventHistoryDeleted, sink.events[len(sink.events)-1].Event)
}

func TestDeleteOutOfRangeIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Append(record("p", "only")))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.ErrorIs(t, s.Delete(1), ErrIndexOutOfRange)
	require.ErrorIs(t, s.Delete(-1), ErrIndexOutOfRange)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestAppendWriteFailureIsReportedAndLogged(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	sink := &memorySink{}
	s := NewStore(filepath.Join(blocker, "history.json"), sink)

	require.Error(t, s.Append(record("p", "t")))
	require.Equal(t, log.EventStoreWriteFailed, sink.events[len(sink.events)-1].Event)
}

func TestProjectsAndTasks(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Append(record("writing", "essay")))
	require.NoError(t, s.Append(record("code", "parser")))
	require.NoError(t, s.Append(record("code", "lexer")))
	require.NoError(t, s.Append(record("code", "parser")))
	require.NoError(t, s.Append(record("", "orphan")))

	require.Equal(t, []string{"code", "writing"}, s.Projects())
	require.Equal(t, []string{"lexer", "parser"}, s.Tasks("code"))
	require.Empty(t, s.Tasks("missing"))
}

func TestFileFormat(t *testing.T) {
	s, _ := newTestStore(t)
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Append(Aborted("p", "t", 90*time.Second, 0, at)))
	require.NoError(t, s.Append(Completed("p", "t", 330*time.Second, at)))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)

	require.Equal(t, "completed", raw[0]["status"])
	require.EqualValues(t, 5, raw[0]["duration_minutes"])
	require.NotContains(t, raw[0], "actual_duration_seconds")

	require.Equal(t, "aborted", raw[1]["status"])
	require.EqualValues(t, 1, raw[1]["duration_minutes"])
	require.EqualValues(t, 0, raw[1]["actual_duration_seconds"])
	require.Equal(t, "2026-05-04T10:00:00Z", raw[1]["timestamp"])
}

func TestReadsNaiveTimestampsAndFractionalMinutes(t *testing.T) {
	s, _ := newTestStore(t)
	legacy := `[
  {"project": "p", "task": "t", "duration_minutes": 5.0, "timestamp": "2026-05-04T10:15:30.123456", "status": "completed"},
  {"project": "p", "task": "t", "duration_minutes": 25, "timestamp": "2026-05-04T09:00:00", "status": "aborted", "actual_duration_seconds": 90}
]`
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0644))

	got := s.Load()
	require.Len(t, got, 2)

	ts, ok := got[0].Time()
	require.True(t, ok)
	require.Equal(t, 15, ts.Minute())
	require.Equal(t, 5.0, got[0].Minutes())
	require.Equal(t, 1.5, got[1].Minutes())
}
