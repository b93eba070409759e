// Package maze implements the tilt maze: a square player rolls under
// device-tilt gravity through three partial walls to a finish pad. Touching
// anything but the finish sends the player back to the start.
package maze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/scene"
)

// GameID is the registry and score-table key.
const GameID = "maze"

// Visual characters for rendering
const (
	WallChar   = '█'
	FinishChar = '▒'
	PlayerChar = '■'
)

// WallElasticity is the bounce of every wall.
const WallElasticity = 0.2

// bannerSeconds is how long the win banner takes to shrink into place.
const bannerSeconds = 1.0

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Tilt Maze"}, func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadMaze(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := config.ApplyMazeVariant(&cfg, config.Variant(opts.Variant)); err != nil {
			return nil, err
		}
		return New(cfg, opts.Variant), nil
	})
}

// Game implements the maze scene.
type Game struct {
	cfg     config.MazeConfig
	variant string
	rt      core.RuntimeConfig

	layout   Layout
	world    *scene.World
	player   *scene.Body
	finish   *scene.Body
	walls    []*scene.Body
	mapper   scene.GravityMapper
	detector *Detector

	ticks     int
	respawns  int
	score     int
	paused    bool
	wonAtTick int
}

// New creates a maze with the given tuning. variant only labels the run.
func New(cfg config.MazeConfig, variant string) *Game {
	if variant == "" {
		variant = "default"
	}
	return &Game{cfg: cfg, variant: variant}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tilt Maze"
}

// Reset builds a fresh scene: walls, finish pad and player at the spawn
// point with zero gravity.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	size := scene.ResolveSize(g.cfg.Scene, rt.ScreenW, rt.ScreenH)
	g.layout = NewLayout(size, g.cfg)
	g.mapper = scene.NewGravityMapper(g.cfg.Tilt)
	g.detector = NewDetector(g.cfg.Precedence)
	g.ticks, g.respawns, g.score, g.wonAtTick = 0, 0, 0, 0
	g.paused = false

	g.world = scene.NewWorld()
	g.world.Watch(scene.KindPlayer, scene.KindWall)
	g.world.Watch(scene.KindPlayer, scene.KindFinish)

	g.walls = g.walls[:0]
	for _, w := range g.layout.Walls {
		g.walls = append(g.walls, g.world.AddStatic(scene.KindWall, w.Box, WallElasticity))
	}
	g.finish = g.world.AddSensor(scene.KindFinish, g.layout.Finish)
	g.player = g.world.AddDynamic(scene.KindPlayer, g.layout.Spawn, scene.DynamicOptions{
		Mass:       g.cfg.Player.Mass,
		Elasticity: g.cfg.Player.Restitution,
		Damping:    g.cfg.Player.Damping,
		FixedAngle: true,
	})
}

// Step advances the scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(g.rt)
	}
	if g.detector.State() == StateWon {
		g.ticks++
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.ticks++

	if in.Motion != nil {
		if grav, ok := g.mapper.Map(*in.Motion); ok {
			g.world.SetGravity(grav)
		}
	}

	var cues []core.Cue
	switch g.detector.Resolve(g.world.Step(g.rt.DT())) {
	case EventWin:
		g.win()
		cues = append(cues, core.CueWin, core.CueMusicOff)
	case EventRespawn:
		g.respawn()
		cues = append(cues, core.CueRespawn)
	default:
		if !g.layout.Size.Bounds().Contains(g.player.Position()) {
			g.respawn()
			cues = append(cues, core.CueRespawn)
		}
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

// respawn puts the player back at the spawn point, stops it and levels the
// world until the next motion sample arrives.
func (g *Game) respawn() {
	g.detector.BeginRespawn()
	g.world.Teleport(g.player, g.layout.Spawn.Center)
	g.world.SetGravity(scene.Vec{})
	g.respawns++
	g.detector.EndRespawn()
}

// win clears the scene and freezes the simulation.
func (g *Game) win() {
	g.world.Remove(g.player)
	g.world.Remove(g.finish)
	for _, w := range g.walls {
		g.world.Remove(w)
	}
	g.world.SetGravity(scene.Vec{})
	g.wonAtTick = g.ticks
	g.score = Score(g.elapsedAt(g.ticks), g.cfg.ParSeconds)
}

// Score rewards a win: 100 points plus 10 for every second under par.
func Score(elapsedSeconds, parSeconds float64) int {
	bonus := math.Max(0, parSeconds-elapsedSeconds)
	return 100 + int(10*bonus)
}

func (g *Game) elapsedAt(ticks int) float64 {
	return float64(ticks) * g.rt.DT()
}

// Elapsed returns play time in seconds, frozen at the win.
func (g *Game) Elapsed() float64 {
	if g.detector != nil && g.detector.State() == StateWon {
		return g.elapsedAt(g.wonAtTick)
	}
	return g.elapsedAt(g.ticks)
}

// BannerScale is the win banner's scale: 4 at the win, easing to 2.
func (g *Game) BannerScale() float64 {
	if g.detector == nil || g.detector.State() != StateWon {
		return 0
	}
	t := float64(g.ticks-g.wonAtTick) * g.rt.DT() / bannerSeconds
	return 4 - 2*math.Min(1, t)
}

// Detector exposes the contact state machine.
func (g *Game) Detector() *Detector { return g.detector }

// Respawns returns how many times the player was sent back this run.
func (g *Game) Respawns() int { return g.respawns }

// Layout returns the current scene geometry.
func (g *Game) Layout() Layout { return g.layout }

// World returns the physics world.
func (g *Game) World() *scene.World { return g.world }

// State returns the current game state.
func (g *Game) State() core.GameState {
	won := g.detector != nil && g.detector.State() == StateWon
	return core.GameState{
		Score:    g.score,
		GameOver: won,
		Paused:   g.paused,
		Won:      won,
	}
}

// Summary describes this run for the history table.
func (g *Game) Summary() core.RunSummary {
	end := g.ticks
	if g.State().Won {
		end = g.wonAtTick
	}
	return core.RunSummary{
		Variant:  g.variant,
		Ticks:    end,
		Respawns: g.respawns,
		Won:      g.State().Won,
	}
}

// Render draws the maze scaled into the screen below a one-line HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	avail := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	area := scene.FitArea(g.layout.Size, g.cfg.Scene.CellWidth, g.cfg.Scene.CellHeight, avail)
	proj := scene.NewProjector(g.layout.Size, area)

	won := g.detector.State() == StateWon
	if !won {
		for _, w := range g.layout.Walls {
			proj.Fill(dst, w.Box, WallChar, core.ColorWall)
		}
		proj.Fill(dst, g.layout.Finish, FinishChar, core.ColorGoal)
		proj.Fill(dst, g.player.Box(), PlayerChar, core.ColorPlayer)
	}

	grav := g.world.Gravity()
	hud := fmt.Sprintf(" %s [%s]  %.1fs  respawns %d  g(%.1f, %.1f)",
		g.Title(), g.variant, g.Elapsed(), g.respawns, grav.X, grav.Y)
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume", core.ColorNotice)
	}
	if won {
		g.drawBanner(dst)
	}
}

// drawBanner draws "YOU WIN" with letter spacing that follows the banner
// scale, then the score line.
func (g *Game) drawBanner(dst *core.Screen) {
	gap := int(math.Round(g.BannerScale())) - 1
	text := spaced("YOU WIN", gap)
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, text, core.ColorGoal)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Score: %d  |  %.1fs  |  R to play again", g.score, g.Elapsed()), core.ColorHUD)
}

func spaced(s string, gap int) string {
	if gap <= 0 {
		return s
	}
	out := make([]rune, 0, len(s)*(gap+1))
	for i, r := range s {
		if i > 0 {
			for j := 0; j < gap; j++ {
				out = append(out, ' ')
			}
		}
		out = append(out, r)
	}
	return string(out)
}
