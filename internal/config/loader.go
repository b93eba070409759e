package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMaze loads the maze configuration.
// Search order: customPath -> ~/.commotion/configs/maze.yaml -> ./configs/maze.yaml -> embedded default
func LoadMaze(customPath string) (MazeConfig, error) {
	cfg, err := load("maze", customPath, DefaultMazeConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadBottles loads the bottle drop configuration.
// Search order: customPath -> ~/.commotion/configs/bottles.yaml -> ./configs/bottles.yaml -> embedded default
func LoadBottles(customPath string) (BottlesConfig, error) {
	cfg, err := load("bottles", customPath, DefaultBottlesConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDashboard loads the dashboard configuration.
func LoadDashboard(customPath string) (DashboardConfig, error) {
	return load("dashboard", customPath, DefaultDashboardConfig)
}

// LoadFeed loads the feed server configuration.
func LoadFeed(customPath string) (FeedConfig, error) {
	return load("feed", customPath, DefaultFeedConfig)
}

// load resolves one named config. Files are decoded over the hardcoded
// defaults, so a partial YAML only overrides the keys it names.
func load[T any](name, customPath string, defaults func() T) (T, error) {
	cfg := defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	file := name + ".yaml"
	for _, path := range []string{userConfigPath(file), filepath.Join("configs", file)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := defaults()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".commotion", "configs", filename)
}
