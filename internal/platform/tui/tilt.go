package tui

import (
	"math"
	"time"

	"github.com/vovakirdan/commotion/internal/core"
)

// Keyboard tilt defaults.
const (
	DefaultTiltStep  = 0.15
	DefaultTiltLimit = math.Pi / 2
)

// KeyTilt turns arrow keys into a virtual device attitude, so the scenes can
// be played without a phone on the feed. Each sample carries both the
// attitude and the gravity it implies, so either tilt source can read it.
type KeyTilt struct {
	Roll  float64
	Pitch float64
	Step  float64
	Limit float64
}

// NewKeyTilt returns a level tilt with the default step and limit.
func NewKeyTilt() KeyTilt {
	return KeyTilt{Step: DefaultTiltStep, Limit: DefaultTiltLimit}
}

// Apply nudges the attitude for one tilt action and reports whether the
// action was a tilt action at all.
func (t *KeyTilt) Apply(a core.Action) bool {
	switch a {
	case core.ActionTiltLeft:
		t.Roll -= t.Step
	case core.ActionTiltRight:
		t.Roll += t.Step
	case core.ActionTiltUp:
		t.Pitch += t.Step
	case core.ActionTiltDown:
		t.Pitch -= t.Step
	case core.ActionLevel:
		t.Roll, t.Pitch = 0, 0
	default:
		return false
	}
	t.Roll = core.ClampF(t.Roll, -t.Limit, t.Limit)
	t.Pitch = core.ClampF(t.Pitch, -t.Limit, t.Limit)
	return true
}

// ApplyFrame applies every tilt action set in the frame.
func (t *KeyTilt) ApplyFrame(f core.InputFrame) {
	for _, a := range []core.Action{
		core.ActionLevel,
		core.ActionTiltLeft, core.ActionTiltRight,
		core.ActionTiltUp, core.ActionTiltDown,
	} {
		if f.Has(a) {
			t.Apply(a)
		}
	}
}

// Sample reports the current virtual attitude.
func (t KeyTilt) Sample(now time.Time) core.MotionSample {
	return core.MotionSample{
		Attitude: core.Attitude{Roll: t.Roll, Pitch: t.Pitch},
		Gravity: core.Vec3{
			X: math.Sin(t.Roll),
			Y: math.Sin(t.Pitch),
			Z: -math.Cos(t.Roll) * math.Cos(t.Pitch),
		},
		HasAttitude: true,
		HasGravity:  true,
		At:          now,
	}
}
