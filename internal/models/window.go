package models

import "time"

// Window is a trailing time range bounding time-scoped queries.
type Window string

const (
	WindowHour        Window = "HOUR"
	WindowSixHours    Window = "SIX_HOURS"
	WindowTwelveHours Window = "TWELVE_HOURS"
	WindowDay         Window = "DAY"
	WindowWeek        Window = "WEEK"
)

// ParseWindow maps free-form input onto a Window. Unrecognized input
// silently falls back to HOUR; the caller owns that leniency policy.
func ParseWindow(s string) Window {
	switch Window(s) {
	case WindowHour, WindowSixHours, WindowTwelveHours, WindowDay, WindowWeek:
		return Window(s)
	default:
		return WindowHour
	}
}

// ParseTagWindow is ParseWindow restricted to the subset tag popularity
// supports.
func ParseTagWindow(s string) Window {
	switch Window(s) {
	case WindowHour, WindowDay, WindowWeek:
		return Window(s)
	default:
		return WindowHour
	}
}

// Duration returns the length of the trailing range.
func (w Window) Duration() time.Duration {
	switch w {
	case WindowSixHours:
		return 6 * time.Hour
	case WindowTwelveHours:
		return 12 * time.Hour
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	default:
		return time.Hour
	}
}

// Since returns the lower bound of the window ending at now.
func (w Window) Since(now time.Time) time.Time {
	return now.Add(-w.Duration())
}
