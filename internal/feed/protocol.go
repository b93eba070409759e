// Package feed ingests live phone sensor data over WebSocket. A companion
// app streams device motion, step batches and activity updates; the hub fans
// them out to the running dashboard and scenes, and step batches are stored.
package feed

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/core"
)

// ProtocolVersion is the hello version this server speaks.
const ProtocolVersion = 1

// Message types.
const (
	MsgHello    = "hello"
	MsgMotion   = "motion"
	MsgSteps    = "steps"
	MsgActivity = "activity"
	MsgWelcome  = "welcome"
	MsgError    = "error"
)

// Envelope wraps every message on the wire.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello is the first message a client sends.
type Hello struct {
	V      int    `json:"v"`
	Name   string `json:"name,omitempty"`
	Device string `json:"device,omitempty"`
}

// Motion is one device-motion reading. Attitude and Gravity say which
// groups of fields are present. Ts is milliseconds since the Unix epoch.
type Motion struct {
	Roll     float64 `json:"roll"`
	Pitch    float64 `json:"pitch"`
	Yaw      float64 `json:"yaw"`
	Gx       float64 `json:"gx"`
	Gy       float64 `json:"gy"`
	Gz       float64 `json:"gz"`
	Attitude bool    `json:"attitude"`
	Gravity  bool    `json:"gravity"`
	Ts       int64   `json:"ts,omitempty"`
}

// Steps reports steps counted since the previous batch.
type Steps struct {
	Steps float64 `json:"steps"`
	At    int64   `json:"at,omitempty"` // ms since epoch, 0 means now
}

// Activity is one motion-activity update.
type Activity struct {
	Stationary bool   `json:"stationary,omitempty"`
	Walking    bool   `json:"walking,omitempty"`
	Running    bool   `json:"running,omitempty"`
	Cycling    bool   `json:"cycling,omitempty"`
	Automotive bool   `json:"automotive,omitempty"`
	Unknown    bool   `json:"unknown,omitempty"`
	Confidence string `json:"confidence,omitempty"` // low, medium, high
	Start      int64  `json:"start,omitempty"`
}

// Welcome answers a hello.
type Welcome struct {
	SessionID string `json:"sessionId"`
	TickHz    int    `json:"tickHz"`
}

// Error tells the client a message was rejected.
type Error struct {
	Message string `json:"message"`
}

func msTime(ms int64, now time.Time) time.Time {
	if ms <= 0 {
		return now
	}
	return time.UnixMilli(ms)
}

// Sample converts the wire reading into a motion sample.
func (m Motion) Sample(now time.Time) (core.MotionSample, error) {
	if !m.Attitude && !m.Gravity {
		return core.MotionSample{}, fmt.Errorf("feed: motion carries neither attitude nor gravity")
	}
	s := core.MotionSample{
		Attitude:    core.Attitude{Roll: m.Roll, Pitch: m.Pitch, Yaw: m.Yaw},
		Gravity:     core.Vec3{X: m.Gx, Y: m.Gy, Z: m.Gz},
		HasAttitude: m.Attitude,
		HasGravity:  m.Gravity,
		At:          msTime(m.Ts, now),
	}
	if !s.Finite() {
		return core.MotionSample{}, fmt.Errorf("feed: motion has non-finite values")
	}
	return s, nil
}

// Validate checks a step batch.
func (s Steps) Validate() error {
	if math.IsNaN(s.Steps) || math.IsInf(s.Steps, 0) || s.Steps < 0 {
		return fmt.Errorf("feed: invalid step count %v", s.Steps)
	}
	return nil
}

// Time returns when the batch was counted.
func (s Steps) Time(now time.Time) time.Time { return msTime(s.At, now) }

// Activity converts the wire update.
func (a Activity) Activity(now time.Time) activity.Activity {
	out := activity.Activity{
		Stationary: a.Stationary,
		Walking:    a.Walking,
		Running:    a.Running,
		Cycling:    a.Cycling,
		Automotive: a.Automotive,
		Unknown:    a.Unknown,
		Start:      msTime(a.Start, now),
	}
	switch a.Confidence {
	case "high":
		out.Confidence = activity.ConfidenceHigh
	case "medium":
		out.Confidence = activity.ConfidenceMedium
	}
	return out
}
