// Package history persists finished timer sessions to a single JSON file.
package history

import (
	"time"
)

// Status is the terminal outcome of a session.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusAborted   Status = "aborted"
)

// MaxRecords caps the history log. Older records beyond the cap are
// dropped on write.
const MaxRecords = 1000

// TimestampLayout is the layout used when writing Record.Timestamp.
const TimestampLayout = time.RFC3339

// readLayouts lists the timestamp shapes accepted on read. The naive
// forms carry no offset and are interpreted in local time.
var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Record is one finalized session. Field names are part of the file format.
type Record struct {
	Project               string  `json:"project"`
	Task                  string  `json:"task"`
	DurationMinutes       float64 `json:"duration_minutes"`
	Timestamp             string  `json:"timestamp"`
	Status                Status  `json:"status"`
	ActualDurationSeconds *int    `json:"actual_duration_seconds,omitempty"`
}

// Completed builds a record for a session that ran to zero.
func Completed(project, task string, planned time.Duration, at time.Time) Record {
	return Record{
		Project:         project,
		Task:            task,
		DurationMinutes: float64(int64(planned / time.Minute)),
		Timestamp:       at.Format(TimestampLayout),
		Status:          StatusCompleted,
	}
}

// Aborted builds a record for a session abandoned after elapsed time.
func Aborted(project, task string, planned, elapsed time.Duration, at time.Time) Record {
	secs := int(elapsed / time.Second)
	if secs < 0 {
		secs = 0
	}
	return Record{
		Project:               project,
		Task:                  task,
		DurationMinutes:       float64(int64(planned / time.Minute)),
		Timestamp:             at.Format(TimestampLayout),
		Status:                StatusAborted,
		ActualDurationSeconds: &secs,
	}
}

// Time parses the record timestamp. ok is false when it cannot be parsed.
func (r Record) Time() (t time.Time, ok bool) {
	for _, layout := range readLayouts {
		parsed, err := time.ParseInLocation(layout, r.Timestamp, time.Local)
		if err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Minutes is the amount of work the record represents: the planned
// minutes when completed, otherwise the elapsed seconds as minutes.
func (r Record) Minutes() float64 {
	if r.Status == StatusCompleted {
		return r.DurationMinutes
	}
	if r.ActualDurationSeconds == nil {
		return 0
	}
	return float64(*r.ActualDurationSeconds) / 60
}

// IsCompleted reports whether the session ran to zero.
func (r Record) IsCompleted() bool {
	return r.Status == StatusCompleted
}
