// Package testutil provides test helper utilities for questclock tests.
package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/questclock/questclock/internal/log"
)

// TempFiles creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock stopped at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current fake instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sink records events in memory.
type Sink struct {
	Events []log.LogEvent
}

// Append stores e.
func (s *Sink) Append(e log.LogEvent) error {
	s.Events = append(s.Events, e)
	return nil
}

// Names returns the event names in order.
func (s *Sink) Names() []string {
	var out []string
	for _, e := range s.Events {
		out = append(out, e.Event)
	}
	return out
}

// Count returns how many events named name were recorded.
func (s *Sink) Count(name string) int {
	n := 0
	for _, e := range s.Events {
		if e.Event == name {
			n++
		}
	}
	return n
}
