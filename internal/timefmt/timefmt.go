// Package timefmt parses and formats timer durations.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseMinutes converts user input into a number of minutes.
// Accepted shapes are H:M:S, M:S (integer parts) and a bare, possibly
// fractional, number of minutes. Anything else reports ok == false.
func ParseMinutes(input string) (minutes float64, ok bool) {
	parts := strings.Split(strings.TrimSpace(input), ":")

	switch len(parts) {
	case 3:
		h, okH := parseInt(parts[0])
		m, okM := parseInt(parts[1])
		s, okS := parseInt(parts[2])
		if !okH || !okM || !okS {
			return 0, false
		}
		return float64(h*60+m) + float64(s)/60, true
	case 2:
		m, okM := parseInt(parts[0])
		s, okS := parseInt(parts[1])
		if !okM || !okS {
			return 0, false
		}
		return float64(m) + float64(s)/60, true
	case 1:
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatClock renders a duration as MM:SS. Minutes grow past 99 rather
// than rolling into hours; negative durations render as 00:00.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// MinutesToDuration converts a fractional minute count to a duration.
func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(minutes * float64(time.Minute))
}

// FormatMinutes renders a minute count the way the history table does:
// whole minutes followed by "m".
func FormatMinutes(minutes float64) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dm", int(math.Floor(minutes)))
}
