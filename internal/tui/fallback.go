package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/questclock/questclock/internal/history"
	"github.com/questclock/questclock/internal/stats"
	"github.com/questclock/questclock/internal/timefmt"
)

// summaryRows is how many records the plain summary lists.
const summaryRows = 5

// WriteSummary prints a plain-text history overview. It is used instead of
// the full-screen program when stdout is not a terminal.
func WriteSummary(w io.Writer, records []history.Record, now time.Time) error {
	daily := stats.DailyTotals(records, now)
	week := stats.BuildWeek(records, now)

	lines := []string{
		fmt.Sprintf("questclock: %s sessions recorded", humanize.Comma(int64(len(records)))),
		fmt.Sprintf("today %s  yesterday %s  ratio %s",
			timefmt.FormatMinutes(daily.Today), timefmt.FormatMinutes(daily.Yesterday), daily.RatioString()),
		fmt.Sprintf("this week %s  streak %d days", timefmt.FormatMinutes(week.Total), week.Streak),
	}
	if len(records) > 0 {
		if ts, ok := records[0].Time(); ok {
			lines = append(lines, "last session "+LastSeen(ts, now))
		}
	}
	for i, r := range records {
		if i == summaryRows {
			break
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s  %6s  %s",
			leftCol(r.Timestamp, 19),
			runewidth.FillRight(runewidth.Truncate(r.Project, 12, ""), 12),
			runewidth.FillRight(runewidth.Truncate(r.Task, 20, ""), 20),
			timefmt.FormatMinutes(r.Minutes()),
			StatusLabel(r, false),
		))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// LastSeen renders t relative to now, e.g. "3 minutes ago".
func LastSeen(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// StatusLabel is the status column text for a record.
func StatusLabel(r history.Record, nerdFonts bool) string {
	switch {
	case r.IsCompleted() && nerdFonts:
		return "\uf058 SUCCESS"
	case r.IsCompleted():
		return "SUCCESS"
	case nerdFonts:
		return "\uf057 TERM"
	default:
		return "TERM"
	}
}

// leftCol returns the first n runes of s padded to n columns.
func leftCol(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return runewidth.FillRight(string(r), n)
}
