package activity

import "math"

// UnsetSteps marks a step count that has not been reported yet.
const UnsetSteps = -1.0

// Tracker holds the dashboard's step state. It is not safe for concurrent
// use; sensor results are handed to the owning goroutine first.
type Tracker struct {
	goal      float64
	today     float64
	yesterday float64
}

// NewTracker starts a session with the given goal (clamped to MinGoal), no
// steps today and yesterday unset.
func NewTracker(goal float64) *Tracker {
	return &Tracker{goal: ClampGoal(goal), yesterday: UnsetSteps}
}

// Goal returns the current goal.
func (t *Tracker) Goal() float64 { return t.goal }

// SetGoal changes the goal, clamped to MinGoal, and returns the value kept.
func (t *Tracker) SetGoal(g float64) float64 {
	t.goal = ClampGoal(g)
	return t.goal
}

// Today returns today's step count.
func (t *Tracker) Today() float64 { return t.today }

// Yesterday returns yesterday's count or UnsetSteps.
func (t *Tracker) Yesterday() float64 { return t.yesterday }

// YesterdaySet reports whether yesterday's count has been received.
func (t *Tracker) YesterdaySet() bool { return t.yesterday != UnsetSteps }

// HandleSteps applies one successful pedometer result. The first result of
// a session becomes yesterday's count and is never overwritten; every later
// one replaces today's count. Negative or non-finite counts are dropped.
// It returns true when state changed.
func (t *Tracker) HandleSteps(steps float64) bool {
	if math.IsNaN(steps) || math.IsInf(steps, 0) || steps < 0 {
		return false
	}
	if !t.YesterdaySet() {
		t.yesterday = steps
		return true
	}
	t.today = steps
	return true
}

// Unlocked reports whether yesterday's steps beat the goal. Equal is not
// enough, and an unset yesterday never unlocks.
func (t *Tracker) Unlocked() bool {
	return t.YesterdaySet() && t.yesterday > t.goal
}

// StepsLeft is how many steps remain to reach the goal today.
func (t *Tracker) StepsLeft() int {
	left := int(t.goal - t.today)
	if left < 0 {
		return 0
	}
	return left
}

// Progress is today's fraction of the goal in [0, 1].
func (t *Tracker) Progress() float64 {
	if t.goal <= 0 {
		return 0
	}
	p := t.today / t.goal
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
