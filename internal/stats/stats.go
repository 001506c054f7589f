// Package stats derives the numbers shown on the history, heatmap, weekly
// and raid screens from the history log.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/questclock/questclock/internal/history"
)

// Day truncates t to midnight in the local time zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// DaysBetween counts calendar days from a to b. DST shifts are absorbed by
// rounding.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Day(b).Sub(Day(a)).Hours() / 24))
}

// Weekday returns 0 for Monday through 6 for Sunday.
func Weekday(t time.Time) int {
	return (int(t.Local().Weekday()) + 6) % 7
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, -Weekday(t))
}

// Daily holds today's and yesterday's minutes.
type Daily struct {
	Today     float64
	Yesterday float64
}

// DailyTotals sums the minutes recorded today and yesterday.
func DailyTotals(records []history.Record, now time.Time) Daily {
	var d Daily
	today := Day(now)
	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		switch DaysBetween(ts, today) {
		case 0:
			d.Today += r.Minutes()
		case 1:
			d.Yesterday += r.Minutes()
		}
	}
	return d
}

// Ratio returns today/yesterday. ok is false when the ratio is infinite.
func (d Daily) Ratio() (ratio float64, ok bool) {
	if d.Yesterday != 0 {
		return d.Today / d.Yesterday, true
	}
	if d.Today != 0 {
		return 0, false
	}
	return 0, true
}

// RatioString formats Ratio as "1.50x" or "INF".
func (d Daily) RatioString() string {
	r, ok := d.Ratio()
	if !ok {
		return "INF"
	}
	return fmt.Sprintf("%.2fx", r)
}

// HeatmapWeeks is the number of week columns on the yearly heatmap.
const HeatmapWeeks = 53

// Heatmap buckets minutes by week column and weekday row.
type Heatmap struct {
	Start         time.Time
	Cells         [HeatmapWeeks][7]float64
	Contributions int
}

// BuildHeatmap covers the 53 weeks ending with the current one. The first
// column starts on the Monday on or before 52 weeks ago.
func BuildHeatmap(records []history.Record, now time.Time) Heatmap {
	start := WeekStart(Day(now).AddDate(0, 0, -52*7))
	h := Heatmap{Start: start}
	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		days := DaysBetween(start, ts)
		if days < 0 || days >= HeatmapWeeks*7 {
			continue
		}
		h.Cells[days/7][Weekday(ts)] += r.Minutes()
		h.Contributions++
	}
	return h
}

// HeatLevel maps minutes to an intensity from 0 (none) to 4 (over an hour).
func HeatLevel(minutes float64) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= 15:
		return 1
	case minutes <= 30:
		return 2
	case minutes <= 60:
		return 3
	default:
		return 4
	}
}

// MonthLabel marks the first week column of a month.
type MonthLabel struct {
	Week  int
	Label string
}

// MonthLabels lists where each month begins along the heatmap.
func (h Heatmap) MonthLabels() []MonthLabel {
	var labels []MonthLabel
	current := time.Month(0)
	for wk := 0; wk < HeatmapWeeks; wk++ {
		d := h.Start.AddDate(0, 0, wk*7)
		if d.Month() != current {
			labels = append(labels, MonthLabel{Week: wk, Label: d.Format("Jan")})
			current = d.Month()
		}
	}
	return labels
}

// Streak counts consecutive days with at least one record, ending today.
func Streak(records []history.Record, now time.Time) int {
	days := make(map[int]bool)
	today := Day(now)
	for _, r := range records {
		if ts, ok := r.Time(); ok {
			days[DaysBetween(ts, today)] = true
		}
	}
	streak := 0
	for days[streak] {
		streak++
	}
	return streak
}

// ProjectShare is a project's portion of the week's minutes.
type ProjectShare struct {
	Name    string
	Minutes float64
	Percent int
}

// Week summarizes the current Monday-to-Sunday week.
type Week struct {
	Start    time.Time
	Daily    [7]float64
	Projects map[string]float64
	Total    float64
	Streak   int
	Recent   []history.Record
}

// BuildWeek aggregates the week containing now.
func BuildWeek(records []history.Record, now time.Time) Week {
	w := Week{
		Start:    WeekStart(now),
		Projects: make(map[string]float64),
		Streak:   Streak(records, now),
	}
	for _, r := range records {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		days := DaysBetween(w.Start, ts)
		if days < 0 || days >= 7 {
			continue
		}
		m := r.Minutes()
		w.Daily[days] += m
		w.Total += m
		name := r.Project
		if name == "" {
			name = "Unknown"
		}
		w.Projects[name] += m
	}
	if len(records) > 3 {
		w.Recent = records[:3]
	} else {
		w.Recent = records
	}
	return w
}

// Level is one per hour of work this week.
func (w Week) Level() int {
	return int(w.Total / 60)
}

// MaxDaily returns the largest per-day total, or 1 when the week is empty
// so it can be used as a divisor.
func (w Week) MaxDaily() float64 {
	peak := 0.0
	for _, v := range w.Daily {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		return 1
	}
	return peak
}

// TopProjects returns up to n projects by minutes, ties broken by name.
func (w Week) TopProjects(n int) []ProjectShare {
	shares := make([]ProjectShare, 0, len(w.Projects))
	for name, m := range w.Projects {
		pct := 0
		if w.Total > 0 {
			pct = int(m / w.Total * 100)
		}
		shares = append(shares, ProjectShare{Name: name, Minutes: m, Percent: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Minutes != shares[j].Minutes {
			return shares[i].Minutes > shares[j].Minutes
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	return shares
}

// Class names the player after the week's top project.
func (w Week) Class() string {
	top := "Novice"
	if shares := w.TopProjects(1); len(shares) > 0 {
		top = shares[0].Name
	}
	lower := strings.ToLower(top)
	switch {
	case strings.Contains(lower, "code") || strings.Contains(lower, "py"):
		return "Code Wizard"
	case strings.Contains(lower, "data"):
		return "Data Ronin"
	case strings.Contains(lower, "sys"):
		return "SysAdmin Paladin"
	case strings.Contains(lower, "web"):
		return "Web Weaver"
	}
	return top + " Mancer"
}

// CriticalMinutes is the per-day total above which a bar counts as a crit.
const CriticalMinutes = 120

// Raid lists today's records oldest first.
type Raid struct {
	Day     time.Time
	Entries []history.Record
	Boss    int
}

// BuildRaid collects today's records. Boss is the index of the longest
// entry (first one wins ties), or -1 when no entry has any minutes.
func BuildRaid(records []history.Record, now time.Time) Raid {
	raid := Raid{Day: Day(now), Boss: -1}
	type stamped struct {
		r  history.Record
		ts time.Time
	}
	var today []stamped
	for _, r := range records {
		ts, ok := r.Time()
		if !ok || DaysBetween(ts, now) != 0 {
			continue
		}
		today = append(today, stamped{r: r, ts: ts})
	}
	sort.SliceStable(today, func(i, j int) bool { return today[i].ts.Before(today[j].ts) })

	best := 0.0
	for i, s := range today {
		raid.Entries = append(raid.Entries, s.r)
		if m := s.r.Minutes(); m > best {
			best = m
			raid.Boss = i
		}
	}
	return raid
}

// Buffs lists the bonus labels earned by an entry.
func Buffs(r history.Record, boss bool) []string {
	var buffs []string
	if ts, ok := r.Time(); ok {
		if ts.Hour() < 9 {
			buffs = append(buffs, "EARLY BIRD")
		}
		if ts.Hour() >= 23 {
			buffs = append(buffs, "MIDNIGHT OIL")
		}
	}
	if boss {
		buffs = append(buffs, "BOSS SLAYER")
	}
	return buffs
}

// LootDrops is one block per five minutes of work.
func LootDrops(r history.Record) int {
	return int(r.Minutes() / 5)
}
