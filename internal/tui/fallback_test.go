package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/questclock/questclock/internal/history"
)

func TestWriteSummary(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.Local)
	records := []history.Record{
		history.Completed("questclock", "router", 25*time.Minute, now.Add(-2*time.Hour)),
		history.Aborted("questclock", "canvas", 25*time.Minute, 90*time.Second, now.Add(-26*time.Hour)),
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, records, now); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"2 sessions recorded",
		"today 25m",
		"yesterday 1m",
		"last session 2 hours ago",
		"SUCCESS",
		"TERM",
		"router",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, nil, time.Now()); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	if !strings.Contains(buf.String(), "0 sessions recorded") {
		t.Errorf("got %q", buf.String())
	}
	if strings.Contains(buf.String(), "last session") {
		t.Error("empty history has no last session")
	}
}

func TestStatusLabel(t *testing.T) {
	done := history.Record{Status: history.StatusCompleted}
	quit := history.Record{Status: history.StatusAborted}
	if StatusLabel(done, false) != "SUCCESS" || StatusLabel(quit, false) != "TERM" {
		t.Error("plain labels")
	}
	if !strings.HasSuffix(StatusLabel(done, true), "SUCCESS") || StatusLabel(done, true) == "SUCCESS" {
		t.Error("nerd font label should carry a glyph")
	}
}
