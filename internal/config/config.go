// Package config provides YAML-based tuning for the scenes, the step dashboard
// and the motion feed, plus the named scene variants.
package config

import (
	"fmt"
	"math"
	"time"
)

// TiltSource selects which part of a motion sample drives world gravity.
type TiltSource string

const (
	TiltAttitude TiltSource = "attitude" // roll/pitch
	TiltGravity  TiltSource = "gravity"  // raw gravity vector x/y
)

// Precedence decides which rule wins when one tick reports both a finish
// contact and a wall contact for the player.
type Precedence string

const (
	FinishFirst  Precedence = "finish-first"
	ContactFirst Precedence = "contact-first"
)

// SceneConfig sizes a scene in points. Zero width or height derives the size
// from the terminal using the cell dimensions.
type SceneConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// InnerWall is one partial horizontal wall inside the boundary.
type InnerWall struct {
	YFrac      float64 `yaml:"y_frac"`      // center height as a fraction of scene height
	LengthFrac float64 `yaml:"length_frac"` // length as a fraction of scene width
	Thickness  float64 `yaml:"thickness"`   // points
	Anchor     string  `yaml:"anchor"`      // "left" or "right"
}

// WallsConfig describes the boundary and the three inner walls.
type WallsConfig struct {
	Thickness float64   `yaml:"thickness"`
	Bottom    InnerWall `yaml:"bottom"`
	Middle    InnerWall `yaml:"middle"`
	Top       InnerWall `yaml:"top"`
}

// FracRect is a rectangle whose center and size are fractions of the scene.
type FracRect struct {
	XFrac float64 `yaml:"x_frac"`
	YFrac float64 `yaml:"y_frac"`
	WFrac float64 `yaml:"w_frac"`
	HFrac float64 `yaml:"h_frac"`
}

// PlayerConfig places and tunes the player body. The player is square, HFrac
// is measured against the scene width like WFrac.
type PlayerConfig struct {
	Spawn       FracRect `yaml:"spawn"`
	Damping     float64  `yaml:"damping"`
	Restitution float64  `yaml:"restitution"`
	Mass        float64  `yaml:"mass"`
}

// TiltConfig maps motion samples to gravity.
type TiltConfig struct {
	Source TiltSource `yaml:"source"`
	Scale  float64    `yaml:"scale"`
}

// MazeConfig contains all configuration for the tilt maze.
type MazeConfig struct {
	Scene      SceneConfig  `yaml:"scene"`
	Walls      WallsConfig  `yaml:"walls"`
	Finish     FracRect     `yaml:"finish"`
	Player     PlayerConfig `yaml:"player"`
	Tilt       TiltConfig   `yaml:"tilt"`
	Precedence Precedence   `yaml:"precedence"`
	ParSeconds float64      `yaml:"par_seconds"`
}

// BottleConfig tunes the droppable bottles.
type BottleConfig struct {
	WFrac          float64 `yaml:"w_frac"`
	HFrac          float64 `yaml:"h_frac"`
	SpawnYFrac     float64 `yaml:"spawn_y_frac"`
	MinXFrac       float64 `yaml:"min_x_frac"`
	MaxXFrac       float64 `yaml:"max_x_frac"`
	RestitutionMin float64 `yaml:"restitution_min"`
	RestitutionMax float64 `yaml:"restitution_max"`
	MaxLive        int     `yaml:"max_live"`
}

// SpinnerConfig places the pinned scoring block.
type SpinnerConfig struct {
	Rect            FracRect `yaml:"rect"`
	AngularVelocity float64  `yaml:"angular_velocity"`
}

// BottlesConfig contains all configuration for the bottle drop scene.
type BottlesConfig struct {
	Scene        SceneConfig   `yaml:"scene"`
	Walls        WallsConfig   `yaml:"walls"`
	Bottle       BottleConfig  `yaml:"bottle"`
	Spinner      SpinnerConfig `yaml:"spinner"`
	Tilt         TiltConfig    `yaml:"tilt"`
	RoundSeconds float64       `yaml:"round_seconds"`
}

// DashboardConfig tunes the step dashboard.
type DashboardConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MinGoal      float64       `yaml:"min_goal"`
	SliderMin    float64       `yaml:"slider_min"`
	SliderMax    float64       `yaml:"slider_max"`
	SliderStep   float64       `yaml:"slider_step"`
	Pedometer    string        `yaml:"pedometer"` // "sim", "store" or "none"
	Activity     string        `yaml:"activity"`  // "sim", "feed" or "none"
	Sim          SimConfig     `yaml:"sim"`
}

// SimConfig drives the simulated sensors.
type SimConfig struct {
	StepsPerHour     float64       `yaml:"steps_per_hour"`
	Seed             int64         `yaml:"seed"`
	ActivityInterval time.Duration `yaml:"activity_interval"`
}

// FeedConfig tunes the WebSocket motion feed server.
type FeedConfig struct {
	Address      string        `yaml:"address"`
	Path         string        `yaml:"path"`
	ReadLimit    int64         `yaml:"read_limit"`
	PingInterval time.Duration `yaml:"ping_interval"`
	PongWait     time.Duration `yaml:"pong_wait"`
	WriteWait    time.Duration `yaml:"write_wait"`
	RatePerSec   float64       `yaml:"rate_per_sec"`
	Burst        int           `yaml:"burst"`
	TickHz       int           `yaml:"tick_hz"`
	Buffer       int           `yaml:"buffer"`
}

// Validate checks a tilt mapping.
func (t TiltConfig) Validate() error {
	if t.Source != TiltAttitude && t.Source != TiltGravity {
		return fmt.Errorf("config: unknown tilt source %q", t.Source)
	}
	if math.IsNaN(t.Scale) || math.IsInf(t.Scale, 0) {
		return fmt.Errorf("config: tilt scale must be finite")
	}
	return nil
}

// Validate checks the maze configuration for values the scene cannot use.
func (c MazeConfig) Validate() error {
	if err := c.Tilt.Validate(); err != nil {
		return err
	}
	if c.Precedence != FinishFirst && c.Precedence != ContactFirst {
		return fmt.Errorf("config: unknown precedence %q", c.Precedence)
	}
	for name, w := range map[string]InnerWall{"bottom": c.Walls.Bottom, "middle": c.Walls.Middle, "top": c.Walls.Top} {
		if w.Anchor != "left" && w.Anchor != "right" {
			return fmt.Errorf("config: %s inner wall anchor must be left or right, got %q", name, w.Anchor)
		}
	}
	if c.Player.Damping < 0 {
		return fmt.Errorf("config: player damping must be >= 0")
	}
	return nil
}

// Validate checks the bottles configuration.
func (c BottlesConfig) Validate() error {
	if err := c.Tilt.Validate(); err != nil {
		return err
	}
	if c.Bottle.RestitutionMax < c.Bottle.RestitutionMin {
		return fmt.Errorf("config: bottle restitution_max below restitution_min")
	}
	if c.Bottle.MaxLive <= 0 {
		return fmt.Errorf("config: bottle max_live must be positive")
	}
	return nil
}
