package maze

import (
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/scene"
)

// Layout is the static geometry of one maze scene.
type Layout struct {
	Size   scene.Size
	Walls  []scene.Wall
	Finish scene.Box
	Spawn  scene.Box
}

// NewLayout computes the maze for a scene size. It is pure and
// deterministic: the same size and config always give the same layout.
func NewLayout(size scene.Size, cfg config.MazeConfig) Layout {
	return Layout{
		Size:   size,
		Walls:  scene.BuildWalls(size, cfg.Walls),
		Finish: scene.FracBox(size, cfg.Finish),
		Spawn:  scene.SquareBox(size, cfg.Player.Spawn),
	}
}
