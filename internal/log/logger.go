// Package log provides structured event logging.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventAppStarted       = "app_started"
	EventAppQuit          = "app_quit"
	EventSessionStarted   = "session_started"
	EventSessionPaused    = "session_paused"
	EventSessionResumed   = "session_resumed"
	EventSessionFinished  = "session_finished"
	EventSessionAborted   = "session_aborted"
	EventHistoryDeleted   = "history_deleted"
	EventStoreReadFailed  = "store_read_failed"
	EventStoreWriteFailed = "store_write_failed"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time       time.Time              `json:"time"`
	Event      string                 `json:"event"`
	SessionID  string                 `json:"session,omitempty"`
	Project    string                 `json:"project,omitempty"`
	Task       string                 `json:"task,omitempty"`
	State      string                 `json:"state,omitempty"`
	PlannedSec float64                `json:"planned_sec,omitempty"`
	ElapsedSec float64                `json:"elapsed_sec,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Index      int                    `json:"index,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside dir.
// Creates dir if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(dir, "log.jsonl"),
	}, nil
}

// Path returns the file the logger appends to.
func (l *Logger) Path() string {
	return l.path
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex. A nil Logger discards the event.
func (l *Logger) Append(event LogEvent) error {
	if l == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}

// Sink is anything that accepts events. *Logger satisfies it; tests use
// in-memory recorders.
type Sink interface {
	Append(event LogEvent) error
}

// Emit appends event to sink, ignoring a nil sink and any write error.
// Logging must never interrupt the caller.
func Emit(sink Sink, event LogEvent) {
	if sink == nil {
		return
	}
	_ = sink.Append(event)
}
