package tui

import "testing"

func TestRouteNavigationKeys(t *testing.T) {
	tests := []struct {
		name    string
		current View
		key     string
		active  bool
		want    View
	}{
		{"heatmap", ViewHistory, "h", false, ViewHeatmap},
		{"heatmap uppercase", ViewHistory, "H", false, ViewHeatmap},
		{"weekly", ViewRaid, "w", false, ViewWeekly},
		{"raid", ViewWeekly, "R", false, ViewRaid},
		{"info", ViewTimer, "i", true, ViewInfo},
		{"info toggles home", ViewInfo, "i", false, ViewHistory},
		{"timer when active", ViewHeatmap, "t", true, ViewTimer},
		{"timer stays timer", ViewTimer, "t", true, ViewTimer},
		{"timer needs session", ViewHeatmap, "t", false, ViewHeatmap},
		{"quit anywhere", ViewWeekly, "ctrl+c", false, ViewQuit},
		{"quit inside new", ViewNew, "ctrl+c", true, ViewQuit},
		{"letters are text inside new", ViewNew, "h", true, ViewNew},
		{"other keys ignored", ViewHistory, "x", true, ViewHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(tt.current, KeyEvent(tt.key), tt.active)
			if got != tt.want {
				t.Errorf("Route(%v, %q, %v) = %v, want %v", tt.current, tt.key, tt.active, got, tt.want)
			}
		})
	}
}

func TestRouteRequests(t *testing.T) {
	if got := Route(ViewHistory, Request(ViewNew), false); got != ViewNew {
		t.Errorf("got %v, want NEW", got)
	}
	if got := Route(ViewNew, Request(ViewHistory), false); got != ViewHistory {
		t.Errorf("got %v, want HISTORY", got)
	}
}

func TestRouteSessionEvents(t *testing.T) {
	if got := Route(ViewTimer, Event{Kind: EventNoSession}, false); got != ViewHistory {
		t.Errorf("no session on timer: got %v, want HISTORY", got)
	}
	if got := Route(ViewWeekly, Event{Kind: EventNoSession}, false); got != ViewWeekly {
		t.Errorf("no session elsewhere: got %v, want WEEKLY", got)
	}
	if got := Route(ViewTimer, Event{Kind: EventFinished}, true); got != ViewTimer {
		t.Errorf("finished: got %v, want TIMER", got)
	}
}

func TestIsNavigation(t *testing.T) {
	if IsNavigation(ViewHistory, "t", false) {
		t.Error("t without a session should reach the view")
	}
	if !IsNavigation(ViewHistory, "t", true) {
		t.Error("t with a session is navigation")
	}
	if IsNavigation(ViewNew, "w", true) {
		t.Error("w inside NEW is text")
	}
}

func TestViewString(t *testing.T) {
	if ViewHistory.String() != "HISTORY" || ViewQuit.String() != "QUIT" {
		t.Error("unexpected view names")
	}
	if View(99).String() != "UNKNOWN" {
		t.Error("unknown view should say so")
	}
}
