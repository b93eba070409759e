package scene

import "github.com/vovakirdan/commotion/internal/config"

// WallID names one of the seven maze walls.
type WallID int

const (
	WallTop WallID = iota
	WallBottom
	WallLeft
	WallRight
	WallInnerBottom
	WallInnerMiddle
	WallInnerTop
)

// WallCount is the number of walls every layout produces.
const WallCount = 7

var wallNames = [...]string{"top", "bottom", "left", "right", "inner-bottom", "inner-middle", "inner-top"}

func (id WallID) String() string {
	if id < 0 || int(id) >= len(wallNames) {
		return "unknown"
	}
	return wallNames[id]
}

// Wall is one immovable rectangle of the maze.
type Wall struct {
	ID  WallID
	Box Box
}

// BuildWalls lays out the four boundary walls and the three inner partial
// walls for a scene. The result is deterministic for a given size; sizes that
// are zero or negative produce degenerate rectangles rather than an error.
func BuildWalls(s Size, cfg config.WallsConfig) []Wall {
	t := cfg.Thickness
	walls := make([]Wall, 0, WallCount)
	walls = append(walls,
		Wall{WallTop, Box{Vec{s.W / 2, s.H - t/2}, Size{s.W, t}}},
		Wall{WallBottom, Box{Vec{s.W / 2, t / 2}, Size{s.W, t}}},
		Wall{WallLeft, Box{Vec{t / 2, s.H / 2}, Size{t, s.H}}},
		Wall{WallRight, Box{Vec{s.W - t/2, s.H / 2}, Size{t, s.H}}},
		Wall{WallInnerBottom, innerWall(s, cfg.Bottom)},
		Wall{WallInnerMiddle, innerWall(s, cfg.Middle)},
		Wall{WallInnerTop, innerWall(s, cfg.Top)},
	)
	return walls
}

// innerWall anchors a partial wall against the left or right scene edge.
func innerWall(s Size, w config.InnerWall) Box {
	length := s.W * w.LengthFrac
	x := length / 2
	if w.Anchor == "right" {
		x = s.W - length/2
	}
	return Box{Vec{x, s.H * w.YFrac}, Size{length, w.Thickness}}
}
