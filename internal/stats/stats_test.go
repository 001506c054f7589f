package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/questclock/questclock/internal/history"
)

// now is a Wednesday afternoon.
var now = time.Date(2026, 10, 14, 15, 0, 0, 0, time.Local)

func done(project string, minutes int, at time.Time) history.Record {
	return history.Completed(project, "task", time.Duration(minutes)*time.Minute, at)
}

func aborted(project string, elapsed time.Duration, at time.Time) history.Record {
	return history.Aborted(project, "task", time.Hour, elapsed, at)
}

func TestWeekdayIsMondayFirst(t *testing.T) {
	require.Equal(t, 2, Weekday(now))
	require.Equal(t, 0, Weekday(time.Date(2026, 10, 12, 8, 0, 0, 0, time.Local)))
	require.Equal(t, 6, Weekday(time.Date(2026, 10, 18, 8, 0, 0, 0, time.Local)))
	require.True(t, WeekStart(now).Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local)))
}

func TestDailyTotals(t *testing.T) {
	records := []history.Record{
		done("a", 25, now.Add(-time.Hour)),
		aborted("a", 90*time.Second, now.Add(-2*time.Hour)),
		done("a", 10, now.AddDate(0, 0, -1)),
		done("a", 60, now.AddDate(0, 0, -2)),
	}

	d := DailyTotals(records, now)
	require.InDelta(t, 26.5, d.Today, 1e-9)
	require.InDelta(t, 10, d.Yesterday, 1e-9)
	require.Equal(t, "2.65x", d.RatioString())
}

func TestRatioEdgeCases(t *testing.T) {
	require.Equal(t, "INF", Daily{Today: 5}.RatioString())
	require.Equal(t, "0.00x", Daily{}.RatioString())
}

func TestHeatmapBuckets(t *testing.T) {
	records := []history.Record{
		done("a", 20, now),
		done("a", 15, now.Add(-time.Hour)),
		done("a", 10, now.AddDate(-2, 0, 0)),
	}

	h := BuildHeatmap(records, now)
	require.Equal(t, time.Monday, h.Start.Weekday())
	require.Equal(t, 2, h.Contributions)

	week := DaysBetween(h.Start, now) / 7
	require.Equal(t, HeatmapWeeks-1, week)
	require.InDelta(t, 35, h.Cells[week][Weekday(now)], 1e-9)
}

func TestHeatLevel(t *testing.T) {
	cases := map[float64]int{0: 0, 1: 1, 15: 1, 16: 2, 30: 2, 45: 3, 60: 3, 61: 4}
	for minutes, want := range cases {
		require.Equalf(t, want, HeatLevel(minutes), "HeatLevel(%v)", minutes)
	}
}

func TestMonthLabelsStartAtColumnZero(t *testing.T) {
	h := BuildHeatmap(nil, now)
	labels := h.MonthLabels()
	require.NotEmpty(t, labels)
	require.Equal(t, 0, labels[0].Week)
	require.GreaterOrEqual(t, len(labels), 12)
}

func TestStreak(t *testing.T) {
	records := []history.Record{
		done("a", 5, now),
		done("a", 5, now.AddDate(0, 0, -1)),
		done("a", 5, now.AddDate(0, 0, -2)),
		done("a", 5, now.AddDate(0, 0, -4)),
	}
	require.Equal(t, 3, Streak(records, now))
	require.Equal(t, 0, Streak(records[1:], now))
}

func TestBuildWeek(t *testing.T) {
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.Local)
	records := []history.Record{
		done("python tools", 130, now),
		done("web", 30, monday),
		done("web", 20, monday.Add(time.Hour)),
		done("old", 500, monday.AddDate(0, 0, -1)),
	}

	w := BuildWeek(records, now)
	require.InDelta(t, 180, w.Total, 1e-9)
	require.InDelta(t, 50, w.Daily[0], 1e-9)
	require.InDelta(t, 130, w.Daily[2], 1e-9)
	require.Equal(t, 3, w.Level())
	require.InDelta(t, 130, w.MaxDaily(), 1e-9)
	require.Equal(t, "Code Wizard", w.Class())
	require.Len(t, w.Recent, 3)

	top := w.TopProjects(2)
	require.Len(t, top, 2)
	require.Equal(t, "python tools", top[0].Name)
	require.Equal(t, 72, top[0].Percent)
	require.Equal(t, "web", top[1].Name)
}

func TestWeekClassFallbacks(t *testing.T) {
	require.Equal(t, "Novice Mancer", BuildWeek(nil, now).Class())
	w := BuildWeek([]history.Record{done("garden", 10, now)}, now)
	require.Equal(t, "garden Mancer", w.Class())
	require.Equal(t, 1.0, BuildWeek(nil, now).MaxDaily())
}

func TestBuildRaid(t *testing.T) {
	early := time.Date(2026, 10, 14, 8, 30, 0, 0, time.Local)
	records := []history.Record{
		done("a", 10, now),
		done("a", 45, now.Add(-2*time.Hour)),
		done("a", 45, now.Add(-time.Hour)),
		done("a", 5, early),
		done("a", 90, now.AddDate(0, 0, -1)),
	}

	raid := BuildRaid(records, now)
	require.Len(t, raid.Entries, 4)
	ts, ok := raid.Entries[0].Time()
	require.True(t, ok)
	require.True(t, ts.Equal(early))
	require.Equal(t, 1, raid.Boss)

	require.Equal(t, []string{"EARLY BIRD"}, Buffs(raid.Entries[0], false))
	require.Equal(t, []string{"BOSS SLAYER"}, Buffs(raid.Entries[1], true))
	require.Equal(t, 9, LootDrops(raid.Entries[1]))
}

func TestBuildRaidEmpty(t *testing.T) {
	raid := BuildRaid(nil, now)
	require.Empty(t, raid.Entries)
	require.Equal(t, -1, raid.Boss)
}
