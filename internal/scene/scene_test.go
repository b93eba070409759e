package scene

import (
	"math"
	"testing"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
)

func TestBuildWallsProducesSevenWalls(t *testing.T) {
	cfg := config.DefaultMazeConfig().Walls
	for _, s := range []Size{{390, 844}, {800, 600}, {0, 0}, {-10, 5}} {
		walls := BuildWalls(s, cfg)
		if len(walls) != WallCount {
			t.Fatalf("size %v: got %d walls, want %d", s, len(walls), WallCount)
		}
		seen := map[WallID]bool{}
		for _, w := range walls {
			seen[w.ID] = true
		}
		if len(seen) != WallCount {
			t.Errorf("size %v: wall ids not unique: %v", s, seen)
		}
	}
}

func TestBuildWallsGeometry(t *testing.T) {
	cfg := config.DefaultMazeConfig().Walls
	s := Size{400, 800}
	walls := BuildWalls(s, cfg)
	byID := map[WallID]Box{}
	for _, w := range walls {
		byID[w.ID] = w.Box
	}

	tests := []struct {
		id   WallID
		want Box
	}{
		{WallTop, Box{Vec{200, 760}, Size{400, 80}}},
		{WallBottom, Box{Vec{200, 40}, Size{400, 80}}},
		{WallLeft, Box{Vec{40, 400}, Size{80, 800}}},
		{WallRight, Box{Vec{360, 400}, Size{80, 800}}},
		{WallInnerBottom, Box{Vec{80, 200}, Size{160, 60}}},
		{WallInnerMiddle, Box{Vec{300, 400}, Size{200, 20}}},
		{WallInnerTop, Box{Vec{120, 600}, Size{240, 60}}},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if got := byID[tt.id]; !boxNear(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildWallsScalesLinearly(t *testing.T) {
	cfg := config.DefaultMazeConfig().Walls
	a := BuildWalls(Size{300, 600}, cfg)
	b := BuildWalls(Size{600, 1200}, cfg)
	for i := range a {
		if a[i].ID < WallInnerBottom {
			continue
		}
		if !near(b[i].Box.Center.X, 2*a[i].Box.Center.X) || !near(b[i].Box.Center.Y, 2*a[i].Box.Center.Y) {
			t.Errorf("%s: center %v does not scale from %v", a[i].ID, b[i].Box.Center, a[i].Box.Center)
		}
		if !near(b[i].Box.Size.W, 2*a[i].Box.Size.W) {
			t.Errorf("%s: length %v does not scale from %v", a[i].ID, b[i].Box.Size.W, a[i].Box.Size.W)
		}
		if b[i].Box.Size.H != a[i].Box.Size.H {
			t.Errorf("%s: thickness changed with scene size", a[i].ID)
		}
	}
}

func TestFracAndSquareBox(t *testing.T) {
	s := Size{400, 800}
	finish := FracBox(s, config.FracRect{XFrac: 0.25, YFrac: 0.85, WFrac: 0.05, HFrac: 0.11})
	if !boxNear(finish, Box{Vec{100, 680}, Size{20, 88}}) {
		t.Errorf("finish = %+v", finish)
	}
	player := SquareBox(s, config.FracRect{XFrac: 0.3, YFrac: 0.15, WFrac: 0.1, HFrac: 0.1})
	if !boxNear(player, Box{Vec{120, 120}, Size{40, 40}}) {
		t.Errorf("player = %+v", player)
	}
}

func TestGravityMapper(t *testing.T) {
	att := core.MotionSample{Attitude: core.Attitude{Roll: 0.2, Pitch: -0.1}, HasAttitude: true}
	grav := core.MotionSample{Gravity: core.Vec3{X: 0.5, Y: -1}, HasGravity: true}
	bad := core.MotionSample{Attitude: core.Attitude{Roll: math.NaN()}, HasAttitude: true}

	tests := []struct {
		name   string
		mapper GravityMapper
		in     core.MotionSample
		want   Vec
		ok     bool
	}{
		{"attitude", GravityMapper{config.TiltAttitude, 5}, att, Vec{1, -0.5}, true},
		{"gravity", GravityMapper{config.TiltGravity, 6}, grav, Vec{3, -6}, true},
		{"attitude missing", GravityMapper{config.TiltAttitude, 5}, grav, Vec{}, false},
		{"gravity missing", GravityMapper{config.TiltGravity, 6}, att, Vec{}, false},
		{"nan ignored", GravityMapper{config.TiltAttitude, 5}, bad, Vec{}, false},
		{"zero scale", GravityMapper{config.TiltAttitude, 0}, att, Vec{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.mapper.Map(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectorFlipsY(t *testing.T) {
	p := NewProjector(Size{100, 100}, core.NewRect(0, 1, 10, 10))
	x, y := p.Cell(Vec{5, 95})
	if x != 0 || y != 1 {
		t.Errorf("top-left point -> (%d,%d), want (0,1)", x, y)
	}
	r := p.Rect(Box{Vec{50, 5}, Size{20, 10}})
	if r != core.NewRect(4, 10, 2, 1) {
		t.Errorf("bottom box -> %+v", r)
	}
}

func TestProjectorRectSmallBoxes(t *testing.T) {
	p := NewProjector(Size{100, 100}, core.NewRect(0, 1, 10, 10))
	tests := []struct {
		name string
		box  Box
		want core.Rect
	}{
		{"inside one cell", Box{Vec{52, 52}, Size{0.5, 0.5}}, core.NewRect(5, 5, 1, 1)},
		{"straddles a cell corner", Box{Vec{50, 50}, Size{0.5, 0.5}}, core.NewRect(4, 5, 2, 2)},
		{"zero width", Box{Vec{52, 52}, Size{0, 5}}, core.Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Rect(tt.box); got != tt.want {
				t.Errorf("Rect(%+v) = %+v, want %+v", tt.box, got, tt.want)
			}
		})
	}
}

func TestWorldDropsBodyOntoWall(t *testing.T) {
	w := NewWorld()
	w.Watch(KindPlayer, KindWall)
	w.SetGravity(Vec{0, -9.8})
	floor := w.AddStatic(KindWall, Box{Vec{195, 40}, Size{390, 80}}, 0)
	player := w.AddDynamic(KindPlayer, Box{Vec{195, 200}, Size{20, 20}}, DynamicOptions{Mass: 1, FixedAngle: true})

	var hit *Contact
	for i := 0; i < 120 && hit == nil; i++ {
		for _, c := range w.Step(1.0 / 60) {
			hit = &c
		}
	}
	if hit == nil {
		t.Fatal("no contact reported")
	}
	if hit.A != player || hit.B != floor {
		t.Errorf("contact order = (%v,%v), want player first", hit.A.Kind, hit.B.Kind)
	}
	if player.Position().Y >= 200 {
		t.Errorf("player did not fall: y=%v", player.Position().Y)
	}
}

func TestWorldRemoveAndTeleport(t *testing.T) {
	w := NewWorld()
	w.SetGravity(Vec{0, -9.8})
	b := w.AddDynamic(KindBottle, Box{Vec{50, 50}, Size{10, 10}}, DynamicOptions{Mass: 1})
	w.Step(0.1)
	w.Teleport(b, Vec{10, 20})
	if got := b.Position(); !near(got.X, 10) || !near(got.Y, 20) {
		t.Errorf("teleport position = %v", got)
	}
	if v := b.Velocity(); v.X != 0 || v.Y != 0 {
		t.Errorf("teleport velocity = %v", v)
	}
	if w.Count(KindBottle) != 1 {
		t.Fatalf("count = %d", w.Count(KindBottle))
	}
	w.Remove(b)
	w.Remove(b)
	if w.Contains(b) || w.Count(KindBottle) != 0 {
		t.Error("body still present after remove")
	}
}

func TestWorldGravityUnits(t *testing.T) {
	w := NewWorld()
	w.SetGravity(Vec{1, -2})
	if g := w.Gravity(); g != (Vec{1, -2}) {
		t.Errorf("gravity = %v", g)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func boxNear(a, b Box) bool {
	return near(a.Center.X, b.Center.X) && near(a.Center.Y, b.Center.Y) &&
		near(a.Size.W, b.Size.W) && near(a.Size.H, b.Size.H)
}

func TestFitAreaKeepsAspect(t *testing.T) {
	avail := core.NewRect(0, 1, 80, 23)
	got := FitArea(Size{390, 844}, 10, 20, avail)
	// 23 rows * 2 * 390/844 = 21.25 cols
	if got.H != 23 || got.W != 21 {
		t.Fatalf("FitArea = %+v, want 21x23", got)
	}
	if got.X != (80-21)/2 || got.Y != 1 {
		t.Errorf("FitArea not centered: %+v", got)
	}

	wide := FitArea(Size{1000, 100}, 10, 20, avail)
	if wide.W != 80 || wide.H > 23 {
		t.Errorf("wide scene = %+v", wide)
	}
}
