package activity

import "time"

// Confidence is the motion coprocessor's certainty about an Activity.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "low"
	}
}

// Activity is one motion-activity update. Several flags may be set at once.
type Activity struct {
	Stationary bool
	Walking    bool
	Running    bool
	Cycling    bool
	Automotive bool
	Unknown    bool
	Confidence Confidence
	Start      time.Time
}

// Label returns the dashboard text for an activity. When several flags are
// set the most specific movement wins: driving, cycling, running, walking,
// then still. ok is false when no flag is set and the label should stay as
// it was.
func Label(a Activity) (string, bool) {
	switch {
	case a.Automotive:
		return "You are driving", true
	case a.Cycling:
		return "You are cycling", true
	case a.Running:
		return "You are running", true
	case a.Walking:
		return "You are walking", true
	case a.Stationary:
		return "You are still", true
	case a.Unknown:
		return "Activity is unknown", true
	}
	return "", false
}
