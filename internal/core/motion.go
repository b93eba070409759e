package core

import (
	"math"
	"time"
)

// Attitude is the device orientation in radians.
type Attitude struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// Vec3 is a raw three-axis reading, in g for gravity samples.
type Vec3 struct {
	X, Y, Z float64
}

// MotionSample is one device-motion reading. A sample may carry attitude,
// gravity or both; the Has flags say which parts are meaningful.
type MotionSample struct {
	Attitude    Attitude
	Gravity     Vec3
	HasAttitude bool
	HasGravity  bool
	At          time.Time
}

// Finite reports whether every populated field holds a finite number.
func (s MotionSample) Finite() bool {
	if s.HasAttitude && !(finite(s.Attitude.Roll) && finite(s.Attitude.Pitch) && finite(s.Attitude.Yaw)) {
		return false
	}
	if s.HasGravity && !(finite(s.Gravity.X) && finite(s.Gravity.Y) && finite(s.Gravity.Z)) {
		return false
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
