package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

//go:embed defaults/bottles.yaml
var defaultBottlesYAML []byte

//go:embed defaults/dashboard.yaml
var defaultDashboardYAML []byte

//go:embed defaults/feed.yaml
var defaultFeedYAML []byte

// defaultWalls is the wall set shared by both scenes.
func defaultWalls() WallsConfig {
	return WallsConfig{
		Thickness: 80,
		Bottom:    InnerWall{YFrac: 0.25, LengthFrac: 0.4, Thickness: 60, Anchor: "left"},
		Middle:    InnerWall{YFrac: 0.5, LengthFrac: 0.5, Thickness: 20, Anchor: "right"},
		Top:       InnerWall{YFrac: 0.75, LengthFrac: 0.6, Thickness: 60, Anchor: "left"},
	}
}

func defaultScene() SceneConfig {
	return SceneConfig{Width: 390, Height: 844, CellWidth: 10, CellHeight: 20}
}

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Scene:  defaultScene(),
		Walls:  defaultWalls(),
		Finish: FracRect{XFrac: 0.25, YFrac: 0.85, WFrac: 0.05, HFrac: 0.11},
		Player: PlayerConfig{
			Spawn:       FracRect{XFrac: 0.30, YFrac: 0.15, WFrac: 0.1, HFrac: 0.1},
			Damping:     20,
			Restitution: 0.01,
			Mass:        1,
		},
		Tilt:       TiltConfig{Source: TiltAttitude, Scale: 5},
		Precedence: FinishFirst,
		ParSeconds: 60,
	}
}

// DefaultBottlesConfig returns the default bottle drop configuration.
func DefaultBottlesConfig() BottlesConfig {
	return BottlesConfig{
		Scene: defaultScene(),
		Walls: defaultWalls(),
		Bottle: BottleConfig{
			WFrac:          0.1,
			HFrac:          0.1,
			SpawnYFrac:     0.75,
			MinXFrac:       0.1,
			MaxXFrac:       0.9,
			RestitutionMin: 1.0,
			RestitutionMax: 1.5,
			MaxLive:        24,
		},
		Spinner: SpinnerConfig{
			Rect:            FracRect{XFrac: 0.5, YFrac: 0.62, WFrac: 0.15, HFrac: 0.05},
			AngularVelocity: 2,
		},
		Tilt:         TiltConfig{Source: TiltGravity, Scale: 6},
		RoundSeconds: 60,
	}
}

// DefaultDashboardConfig returns the default dashboard configuration.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		PollInterval: 500 * time.Millisecond,
		MinGoal:      100,
		SliderMin:    1,
		SliderMax:    100,
		SliderStep:   1,
		Pedometer:    "sim",
		Activity:     "sim",
		Sim: SimConfig{
			StepsPerHour:     450,
			ActivityInterval: 5 * time.Second,
		},
	}
}

// DefaultFeedConfig returns the default feed server configuration.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		Address:      ":8090",
		Path:         "/ws",
		ReadLimit:    1 << 16,
		PingInterval: 25 * time.Second,
		PongWait:     60 * time.Second,
		WriteWait:    10 * time.Second,
		RatePerSec:   60,
		Burst:        120,
		TickHz:       10,
		Buffer:       64,
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "maze":
		return defaultMazeYAML
	case "bottles":
		return defaultBottlesYAML
	case "dashboard":
		return defaultDashboardYAML
	case "feed":
		return defaultFeedYAML
	default:
		return nil
	}
}
