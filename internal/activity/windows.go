package activity

import "time"

// Window is a half-open time range [From, To).
type Window struct {
	From, To time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TodayWindow covers the calendar day containing now. Calendar math keeps
// the window correct across DST changes where a day is not 24h long.
func TodayWindow(now time.Time) Window {
	y, m, d := now.Date()
	loc := now.Location()
	return Window{
		From: time.Date(y, m, d, 0, 0, 0, 0, loc),
		To:   time.Date(y, m, d+1, 0, 0, 0, 0, loc),
	}
}

// YesterdayWindow covers the calendar day before now.
func YesterdayWindow(now time.Time) Window {
	y, m, d := now.Date()
	loc := now.Location()
	return Window{
		From: time.Date(y, m, d-1, 0, 0, 0, 0, loc),
		To:   time.Date(y, m, d, 0, 0, 0, 0, loc),
	}
}

// QueryWindow is the window the next pedometer query should cover:
// yesterday until it is known, then today.
func (t *Tracker) QueryWindow(now time.Time) Window {
	if !t.YesterdaySet() {
		return YesterdayWindow(now)
	}
	return TodayWindow(now)
}
