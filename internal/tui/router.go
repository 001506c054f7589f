package tui

import "strings"

// View names a full-screen view.
type View int

const (
	ViewHistory View = iota // home
	ViewTimer
	ViewHeatmap
	ViewWeekly
	ViewRaid
	ViewInfo
	ViewNew
	ViewQuit
)

// String returns the uppercase view name.
func (v View) String() string {
	switch v {
	case ViewHistory:
		return "HISTORY"
	case ViewTimer:
		return "TIMER"
	case ViewHeatmap:
		return "HEATMAP"
	case ViewWeekly:
		return "WEEKLY"
	case ViewRaid:
		return "RAID"
	case ViewInfo:
		return "INFO"
	case ViewNew:
		return "NEW"
	case ViewQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// EventKind classifies router input.
type EventKind int

const (
	// EventKey is a key press; Key holds its string form.
	EventKey EventKind = iota
	// EventRequest is a transition asked for by a view handler; Target
	// holds the destination.
	EventRequest
	// EventNoSession reports that no session is active.
	EventNoSession
	// EventFinished reports that the session just finished.
	EventFinished
)

// Event is one router input.
type Event struct {
	Kind   EventKind
	Key    string
	Target View
}

// KeyEvent wraps a key string.
func KeyEvent(key string) Event { return Event{Kind: EventKey, Key: key} }

// Request wraps a handler-requested destination.
func Request(target View) Event { return Event{Kind: EventRequest, Target: target} }

// Route is the navigation transition function. It has no side effects.
func Route(current View, ev Event, active bool) View {
	switch ev.Kind {
	case EventKey:
		if next, ok := navigate(current, ev.Key, active); ok {
			return next
		}
		return current
	case EventRequest:
		return ev.Target
	case EventNoSession:
		if current == ViewTimer {
			return ViewHistory
		}
		return current
	default:
		return current
	}
}

// IsNavigation reports whether key is consumed by the router at current.
// Keys that are not navigation belong to the view handler.
func IsNavigation(current View, key string, active bool) bool {
	_, ok := navigate(current, key, active)
	return ok
}

func navigate(current View, key string, active bool) (View, bool) {
	if key == KeyCtrlC {
		return ViewQuit, true
	}
	// Letters are text inside the NEW flow.
	if current == ViewNew {
		return current, false
	}
	switch strings.ToLower(key) {
	case "h":
		return ViewHeatmap, true
	case "w":
		return ViewWeekly, true
	case "r":
		return ViewRaid, true
	case "i":
		if current == ViewInfo {
			return ViewHistory, true
		}
		return ViewInfo, true
	case "t":
		if active {
			return ViewTimer, true
		}
	}
	return current, false
}
