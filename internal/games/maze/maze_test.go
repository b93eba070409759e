package maze

import (
	"math"
	"testing"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/scene"
)

func newTestGame(t *testing.T, cfg config.MazeConfig) *Game {
	t.Helper()
	g := New(cfg, "classic")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func tilt(roll, pitch float64) core.InputFrame {
	in := core.NewInputFrame()
	in.SetMotion(core.MotionSample{Attitude: core.Attitude{Roll: roll, Pitch: pitch}, HasAttitude: true})
	return in
}

func hasCue(cues []core.Cue, c core.Cue) bool {
	for _, x := range cues {
		if x == c {
			return true
		}
	}
	return false
}

func TestNewLayout(t *testing.T) {
	cfg := config.DefaultMazeConfig()
	l := NewLayout(scene.Size{W: 390, H: 844}, cfg)

	if len(l.Walls) != scene.WallCount {
		t.Fatalf("got %d walls, want %d", len(l.Walls), scene.WallCount)
	}
	if got := l.Finish.Center; math.Abs(got.X-97.5) > 1e-9 || math.Abs(got.Y-717.4) > 1e-9 {
		t.Errorf("finish center = %v", got)
	}
	if got := l.Spawn.Size; math.Abs(got.W-39) > 1e-9 || math.Abs(got.H-39) > 1e-9 {
		t.Errorf("spawn size = %v, want 39x39", got)
	}

	again := NewLayout(scene.Size{W: 390, H: 844}, cfg)
	for i := range l.Walls {
		if l.Walls[i] != again.Walls[i] {
			t.Fatalf("layout not deterministic at wall %d", i)
		}
	}
}

func TestDetectorResolve(t *testing.T) {
	player := &scene.Body{Kind: scene.KindPlayer}
	wall := &scene.Body{Kind: scene.KindWall}
	finish := &scene.Body{Kind: scene.KindFinish}
	bottle := &scene.Body{Kind: scene.KindBottle}

	tests := []struct {
		name       string
		precedence config.Precedence
		contacts   []scene.Contact
		want       Event
		state      State
	}{
		{"nothing", config.FinishFirst, nil, EventNone, StateActive},
		{"wall", config.FinishFirst, []scene.Contact{{A: player, B: wall}}, EventRespawn, StateActive},
		{"finish", config.FinishFirst, []scene.Contact{{A: player, B: finish}}, EventWin, StateWon},
		{"finish reversed", config.FinishFirst, []scene.Contact{{A: finish, B: player}}, EventWin, StateWon},
		{"both finish-first", config.FinishFirst, []scene.Contact{{A: player, B: wall}, {A: player, B: finish}}, EventWin, StateWon},
		{"both contact-first", config.ContactFirst, []scene.Contact{{A: player, B: finish}, {A: player, B: wall}}, EventRespawn, StateActive},
		{"finish alone contact-first", config.ContactFirst, []scene.Contact{{A: player, B: finish}}, EventWin, StateWon},
		{"no player involved", config.FinishFirst, []scene.Contact{{A: bottle, B: finish}, {A: bottle, B: wall}}, EventNone, StateActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(tt.precedence)
			if got := d.Resolve(tt.contacts); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
			if d.State() != tt.state {
				t.Errorf("state = %v, want %v", d.State(), tt.state)
			}
		})
	}
}

func TestDetectorWinsExactlyOnce(t *testing.T) {
	player := &scene.Body{Kind: scene.KindPlayer}
	finish := &scene.Body{Kind: scene.KindFinish}
	wall := &scene.Body{Kind: scene.KindWall}

	d := NewDetector(config.FinishFirst)
	wins := 0
	for i := 0; i < 10; i++ {
		switch d.Resolve([]scene.Contact{{A: player, B: finish}, {A: player, B: wall}}) {
		case EventWin:
			wins++
		case EventRespawn:
			t.Fatal("respawn after win")
		}
	}
	if wins != 1 {
		t.Errorf("win fired %d times, want 1", wins)
	}

	d.BeginRespawn()
	if d.State() != StateWon {
		t.Error("respawn must not leave the won state")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		elapsed, par float64
		want         int
	}{
		{10, 60, 600},
		{59.95, 60, 100},
		{60, 60, 100},
		{120, 60, 100},
		{0, 0, 100},
	}
	for _, tt := range tests {
		if got := Score(tt.elapsed, tt.par); got != tt.want {
			t.Errorf("Score(%v, %v) = %d, want %d", tt.elapsed, tt.par, got, tt.want)
		}
	}
}

func TestGameRespawnsOnWallContact(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	spawn := g.Layout().Spawn.Center

	var respawned bool
	for i := 0; i < 600 && !respawned; i++ {
		res := g.Step(tilt(0, -1.5))
		respawned = hasCue(res.Cues, core.CueRespawn)
	}
	if !respawned || g.Respawns() == 0 {
		t.Fatal("player never hit the floor")
	}
	if got := g.player.Position(); got != spawn {
		t.Errorf("player at %v after respawn, want spawn %v", got, spawn)
	}
	if g.World().Gravity() != (scene.Vec{}) {
		t.Errorf("gravity not zeroed on respawn: %v", g.World().Gravity())
	}
	if g.Detector().State() != StateActive {
		t.Errorf("state = %v after respawn", g.Detector().State())
	}
}

func TestGameRespawnsOutOfBounds(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	g.World().Teleport(g.player, scene.Vec{X: -500, Y: -500})

	res := g.Step(core.NewInputFrame())
	if !hasCue(res.Cues, core.CueRespawn) || g.Respawns() != 1 {
		t.Fatalf("out-of-bounds player not respawned (cues %v)", res.Cues)
	}
	if g.player.Position() != g.Layout().Spawn.Center {
		t.Errorf("player at %v", g.player.Position())
	}
}

func TestGameWinSequence(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	f := g.Layout().Finish.Center
	g.World().Teleport(g.player, scene.Vec{X: f.X + 10, Y: f.Y})

	res := g.Step(core.NewInputFrame())
	if !hasCue(res.Cues, core.CueWin) || !hasCue(res.Cues, core.CueMusicOff) {
		t.Fatalf("win cues missing: %v", res.Cues)
	}
	if !res.State.Won || !res.State.GameOver {
		t.Fatalf("state = %+v", res.State)
	}
	if g.World().Contains(g.player) || g.World().Count(scene.KindWall) != 0 || g.World().Count(scene.KindFinish) != 0 {
		t.Error("scene not cleared after win")
	}
	if res.State.Score < 100 {
		t.Errorf("score = %d", res.State.Score)
	}
	if g.BannerScale() != 4 {
		t.Errorf("banner scale at win = %v, want 4", g.BannerScale())
	}

	score := res.State.Score
	for i := 0; i < 120; i++ {
		res = g.Step(tilt(1, 1))
		if len(res.Cues) != 0 {
			t.Fatalf("cues after win: %v", res.Cues)
		}
	}
	if res.State.Score != score {
		t.Error("score changed after win")
	}
	if g.BannerScale() != 2 {
		t.Errorf("banner scale after animation = %v, want 2", g.BannerScale())
	}

	sum := g.Summary()
	if !sum.Won || sum.Variant != "classic" || sum.Ticks != 1 {
		t.Errorf("Summary() = %+v", sum)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
}

func TestGameIgnoresBadMotion(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	g.Step(tilt(0.2, 0.1))
	before := g.World().Gravity()

	g.Step(tilt(math.NaN(), 0))
	if g.World().Gravity() != before {
		t.Errorf("NaN sample changed gravity to %v", g.World().Gravity())
	}

	in := core.NewInputFrame()
	in.SetMotion(core.MotionSample{Gravity: core.Vec3{X: 1}, HasGravity: true})
	g.Step(in)
	if g.World().Gravity() != before {
		t.Errorf("sample without attitude changed gravity to %v", g.World().Gravity())
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	g.Step(in)
	pos := g.player.Position()
	for i := 0; i < 30; i++ {
		g.Step(tilt(1, -1))
	}
	if !g.State().Paused || g.player.Position() != pos {
		t.Error("paused game moved")
	}
}

func TestGameRenders(t *testing.T) {
	g := newTestGame(t, config.DefaultMazeConfig())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	var walls, players int
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			switch screen.Get(x, y) {
			case WallChar:
				walls++
			case PlayerChar:
				players++
			}
		}
	}
	if walls == 0 || players == 0 {
		t.Errorf("render drew %d wall cells and %d player cells", walls, players)
	}
}

func TestRegisteredFactory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	g, err := registry.Create(GameID, registry.Options{Variant: "gravity"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	m := g.(*Game)
	if m.cfg.Tilt.Source != config.TiltGravity || m.cfg.Tilt.Scale != 6 {
		t.Errorf("variant not applied: %+v", m.cfg.Tilt)
	}
	if _, err := registry.Create(GameID, registry.Options{Variant: "sideways"}); err == nil {
		t.Error("expected error for unknown variant")
	}
}
