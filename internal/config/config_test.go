package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	// Run from a temp dir so ./configs cannot shadow the embedded files.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	maze, err := LoadMaze("")
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if maze != DefaultMazeConfig() {
		t.Errorf("embedded maze.yaml differs from DefaultMazeConfig:\n%+v\n%+v", maze, DefaultMazeConfig())
	}

	bottles, err := LoadBottles("")
	if err != nil {
		t.Fatalf("LoadBottles() failed: %v", err)
	}
	if bottles != DefaultBottlesConfig() {
		t.Errorf("embedded bottles.yaml differs from DefaultBottlesConfig")
	}

	dash, err := LoadDashboard("")
	if err != nil {
		t.Fatalf("LoadDashboard() failed: %v", err)
	}
	if dash.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, expected 500ms", dash.PollInterval)
	}

	feed, err := LoadFeed("")
	if err != nil {
		t.Fatalf("LoadFeed() failed: %v", err)
	}
	if feed != DefaultFeedConfig() {
		t.Errorf("embedded feed.yaml differs from DefaultFeedConfig")
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	data := []byte("tilt:\n  source: gravity\n  scale: 9.8\nprecedence: contact-first\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() failed: %v", err)
	}
	if cfg.Tilt.Source != TiltGravity || cfg.Tilt.Scale != 9.8 {
		t.Errorf("tilt override not applied: %+v", cfg.Tilt)
	}
	if cfg.Precedence != ContactFirst {
		t.Errorf("Precedence = %q, expected contact-first", cfg.Precedence)
	}
	// Untouched keys keep their defaults.
	if cfg.Walls.Thickness != 80 {
		t.Errorf("Walls.Thickness = %v, expected default 80", cfg.Walls.Thickness)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadMaze(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("tilt: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMaze(path); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("tilt:\n  source: compass\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMaze(invalid); err == nil {
		t.Error("expected validation error for unknown tilt source")
	}
}

func TestMazeValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MazeConfig)
		wantErr bool
	}{
		{"defaults", func(*MazeConfig) {}, false},
		{"nan scale", func(c *MazeConfig) { c.Tilt.Scale = math.NaN() }, true},
		{"bad precedence", func(c *MazeConfig) { c.Precedence = "random" }, true},
		{"bad anchor", func(c *MazeConfig) { c.Walls.Middle.Anchor = "center" }, true},
		{"negative damping", func(c *MazeConfig) { c.Player.Damping = -1 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMazeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestVariants(t *testing.T) {
	tests := []struct {
		variant Variant
		source  TiltSource
		scale   float64
	}{
		{VariantClassic, TiltAttitude, 5},
		{VariantGravity, TiltGravity, 6},
		{VariantEarth, TiltGravity, 9.8},
		{VariantGentle, TiltAttitude, 1},
		{VariantMicro, TiltAttitude, 0.001},
	}

	for _, tc := range tests {
		cfg := DefaultMazeConfig()
		if err := ApplyMazeVariant(&cfg, tc.variant); err != nil {
			t.Fatalf("ApplyMazeVariant(%q) failed: %v", tc.variant, err)
		}
		if cfg.Tilt.Source != tc.source || cfg.Tilt.Scale != tc.scale {
			t.Errorf("variant %q = %+v, expected %s x%v", tc.variant, cfg.Tilt, tc.source, tc.scale)
		}
	}

	cfg := DefaultMazeConfig()
	if err := ApplyMazeVariant(&cfg, "warp"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if err := ApplyMazeVariant(&cfg, ""); err != nil {
		t.Errorf("empty variant should be a no-op, got %v", err)
	}
	if len(Variants()) != 5 {
		t.Errorf("Variants() = %v, expected 5 entries", Variants())
	}
}
