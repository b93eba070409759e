package scene

import (
	"math"

	"github.com/vovakirdan/commotion/internal/core"
)

const eps = 1e-9

// Projector maps scene points onto a block of terminal cells. Scene y grows
// upward, screen rows grow downward.
type Projector struct {
	Scene Size
	Area  core.Rect
}

// NewProjector projects a scene onto the given screen area.
func NewProjector(s Size, area core.Rect) Projector {
	return Projector{Scene: s, Area: area}
}

// Cell returns the screen cell holding point p.
func (p Projector) Cell(pt Vec) (int, int) {
	if p.Scene.W <= 0 || p.Scene.H <= 0 {
		return p.Area.X, p.Area.Y
	}
	x := p.Area.X + int(math.Floor(pt.X/p.Scene.W*float64(p.Area.W)))
	y := p.Area.Y + int(math.Floor((p.Scene.H-pt.Y)/p.Scene.H*float64(p.Area.H)))
	return x, y
}

// Rect returns the cells covered by a box, at least one cell for any box
// with positive size, clipped to the area.
func (p Projector) Rect(b Box) core.Rect {
	if p.Scene.W <= 0 || p.Scene.H <= 0 || b.Size.W <= 0 || b.Size.H <= 0 {
		return core.Rect{}
	}
	lo, hi := b.Min(), b.Max()
	fx := func(x float64) float64 { return x / p.Scene.W * float64(p.Area.W) }
	fy := func(y float64) float64 { return (p.Scene.H - y) / p.Scene.H * float64(p.Area.H) }
	x0 := int(math.Floor(fx(lo.X) + eps))
	x1 := int(math.Ceil(fx(hi.X) - eps))
	y0 := int(math.Floor(fy(hi.Y) + eps))
	y1 := int(math.Ceil(fy(lo.Y) - eps))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	x0, x1 = core.Clamp(x0, 0, p.Area.W), core.Clamp(x1, 0, p.Area.W)
	y0, y1 = core.Clamp(y0, 0, p.Area.H), core.Clamp(y1, 0, p.Area.H)
	return core.NewRect(p.Area.X+x0, p.Area.Y+y0, x1-x0, y1-y0)
}

// Fill draws a box onto the screen.
func (p Projector) Fill(dst *core.Screen, b Box, ch rune, c core.Color) {
	r := p.Rect(b)
	if r.W <= 0 || r.H <= 0 {
		return
	}
	dst.FillRect(r, ch, c)
}

// FitArea returns the largest block of cells inside avail that shows a scene
// of size s without distortion, given the point size of one cell, centered
// horizontally and vertically.
func FitArea(s Size, cellW, cellH float64, avail core.Rect) core.Rect {
	if s.W <= 0 || s.H <= 0 || cellW <= 0 || cellH <= 0 || avail.W <= 0 || avail.H <= 0 {
		return avail
	}
	rows := avail.H
	cols := int(math.Round(float64(rows) * cellH / cellW * s.W / s.H))
	if cols > avail.W {
		cols = avail.W
		rows = int(math.Round(float64(cols) * cellW / cellH * s.H / s.W))
	}
	cols = core.Clamp(cols, 1, avail.W)
	rows = core.Clamp(rows, 1, avail.H)
	return core.NewRect(avail.X+(avail.W-cols)/2, avail.Y+(avail.H-rows)/2, cols, rows)
}
