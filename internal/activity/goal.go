// Package activity tracks the daily step goal: today's and yesterday's counts,
// whether the game is unlocked, progress toward the goal and the activity
// label shown on the dashboard.
package activity

import "math"

// MinGoal is the smallest goal the dashboard accepts.
const MinGoal = 100.0

// SliderToGoal maps a slider position to a goal in whole hundreds:
// 3.7 becomes 300.
func SliderToGoal(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinGoal
	}
	return 100 * math.Floor(v)
}

// GoalToSlider is the slider position showing goal g.
func GoalToSlider(g float64) float64 {
	return g / 100
}

// ClampGoal applies the minimum to a loaded or entered goal.
func ClampGoal(g float64) float64 {
	if math.IsNaN(g) || g < MinGoal {
		return MinGoal
	}
	return g
}
