package core

import (
	"math"
	"testing"
)

func TestInputFrameClearDropsMotion(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionTiltLeft)
	f.SetMotion(MotionSample{HasAttitude: true, Attitude: Attitude{Roll: 0.3}})

	if !f.Has(ActionTiltLeft) {
		t.Fatal("expected TiltLeft to be set")
	}
	if f.Motion == nil || f.Motion.Attitude.Roll != 0.3 {
		t.Fatalf("expected motion sample to be attached, got %+v", f.Motion)
	}

	f.Clear()
	if f.Has(ActionTiltLeft) {
		t.Error("Clear should reset actions")
	}
	if f.Motion != nil {
		t.Error("Clear should drop the motion sample")
	}
}

func TestZeroInputFrameHas(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate and record")
	}
}

func TestMotionSampleFinite(t *testing.T) {
	tests := []struct {
		name   string
		sample MotionSample
		want   bool
	}{
		{"empty", MotionSample{}, true},
		{"attitude", MotionSample{HasAttitude: true, Attitude: Attitude{Roll: 1, Pitch: -1}}, true},
		{"nan roll", MotionSample{HasAttitude: true, Attitude: Attitude{Roll: math.NaN()}}, false},
		{"inf gravity", MotionSample{HasGravity: true, Gravity: Vec3{X: math.Inf(1)}}, false},
		{"nan ignored when absent", MotionSample{Gravity: Vec3{X: math.NaN()}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sample.Finite(); got != tc.want {
				t.Errorf("Finite() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if ClampF(1.5, 0, 1) != 1 {
		t.Error("ClampF(1.5, 0, 1) should be 1")
	}
}
