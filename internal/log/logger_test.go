package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewLoggerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state", "questclock")

	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if l.Path() != filepath.Join(dir, "log.jsonl") {
		t.Errorf("Path: got %q", l.Path())
	}
}

func TestAppendAndReadAll(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventSessionStarted, SessionID: "abc", Project: "p", Task: "t", PlannedSec: 1500},
		{Event: EventSessionAborted, SessionID: "abc", ElapsedSec: 12},
	}
	for _, e := range events {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Event != EventSessionStarted || got[0].PlannedSec != 1500 {
		t.Errorf("first event: got %+v", got[0])
	}
	if got[1].ElapsedSec != 12 {
		t.Errorf("second event elapsed: got %v, want 12", got[1].ElapsedSec)
	}
	if got[0].Time.IsZero() {
		t.Error("Append should stamp a zero Time")
	}
}

func TestAppendKeepsExplicitTime(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := l.Append(LogEvent{Time: at, Event: EventAppStarted}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !got[0].Time.Equal(at) {
		t.Errorf("Time: got %v, want %v", got[0].Time, at)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	l := &Logger{path: filepath.Join(t.TempDir(), "missing.jsonl")}
	got, err := l.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file should not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}

func TestReadAllRejectsCorruptLine(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if err := os.WriteFile(l.Path(), []byte("{\"event\":\"app_started\"}\nnot json\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := l.ReadAll(); err == nil {
		t.Fatal("expected parse error for corrupt line")
	}
}

type failingSink struct{ calls int }

func (f *failingSink) Append(LogEvent) error {
	f.calls++
	return os.ErrPermission
}

func TestEmitSwallowsErrorsAndNilSink(t *testing.T) {
	Emit(nil, LogEvent{Event: EventAppQuit})

	sink := &failingSink{}
	Emit(sink, LogEvent{Event: EventAppQuit})
	if sink.calls != 1 {
		t.Fatalf("expected sink to be called once, got %d", sink.calls)
	}
}
