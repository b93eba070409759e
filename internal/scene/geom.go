// Package scene holds what both physics scenes share: point-space geometry,
// the seven-wall layout, the tilt-to-gravity mapping, a Chipmunk2D world
// wrapper and the projection from points onto terminal cells.
//
// Scene coordinates are in points, y-up, origin at the bottom-left corner.
package scene

import (
	"github.com/vovakirdan/commotion/internal/config"
)

// Vec is a 2D vector in points (or m/s² for gravity).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }

// Size is a width/height pair in points.
type Size struct {
	W, H float64
}

// Box is an axis-aligned rectangle given by its center and size, the way
// sprites are positioned.
type Box struct {
	Center Vec
	Size   Size
}

// Min returns the bottom-left corner.
func (b Box) Min() Vec {
	return Vec{b.Center.X - b.Size.W/2, b.Center.Y - b.Size.H/2}
}

// Max returns the top-right corner.
func (b Box) Max() Vec {
	return Vec{b.Center.X + b.Size.W/2, b.Center.Y + b.Size.H/2}
}

// Contains reports whether p lies inside the box (edges inclusive).
func (b Box) Contains(p Vec) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// Bounds returns the box covering a whole scene.
func (s Size) Bounds() Box {
	return Box{Center: Vec{s.W / 2, s.H / 2}, Size: s}
}

// FracBox places a rectangle whose center and size are fractions of the scene.
func FracBox(s Size, r config.FracRect) Box {
	return Box{
		Center: Vec{s.W * r.XFrac, s.H * r.YFrac},
		Size:   Size{s.W * r.WFrac, s.H * r.HFrac},
	}
}

// SquareBox is FracBox with both sides measured against the scene width.
func SquareBox(s Size, r config.FracRect) Box {
	return Box{
		Center: Vec{s.W * r.XFrac, s.H * r.YFrac},
		Size:   Size{s.W * r.WFrac, s.W * r.HFrac},
	}
}

// ResolveSize returns the scene size for a terminal of cols x rows cells.
// A configured width and height win; otherwise the terminal is scaled by the
// configured cell dimensions.
func ResolveSize(cfg config.SceneConfig, cols, rows int) Size {
	if cfg.Width > 0 && cfg.Height > 0 {
		return Size{cfg.Width, cfg.Height}
	}
	cw, ch := cfg.CellWidth, cfg.CellHeight
	if cw <= 0 {
		cw = 10
	}
	if ch <= 0 {
		ch = 20
	}
	return Size{float64(cols) * cw, float64(rows) * ch}
}
