// Package bottles implements the bottle drop: each tap drops a bouncy
// bottle into the seven-wall box, and every time a bottle strikes the
// spinning block in the middle the score goes up by one.
package bottles

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/scene"
)

// GameID is the registry and score-table key.
const GameID = "bottles"

// Visual characters for rendering
const (
	WallChar    = '█'
	BottleChar  = '▮'
	SpinnerChar = '═'
)

const wallElasticity = 0.5

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Bottle Drop"}, func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadBottles(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := config.ApplyBottlesVariant(&cfg, config.Variant(opts.Variant)); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// Game implements the bottle drop scene.
type Game struct {
	cfg config.BottlesConfig
	rt  core.RuntimeConfig
	rng *rand.Rand

	size    scene.Size
	walls   []scene.Wall
	world   *scene.World
	spinner *scene.Body
	bottles []*scene.Body // oldest first
	mapper  scene.GravityMapper

	ticks    int
	score    int
	dropped  int
	paused   bool
	gameOver bool
}

// New creates a bottle drop with the given tuning.
func New(cfg config.BottlesConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Bottle Drop"
}

// Reset builds the walls and the spinner and clears all bottles.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.size = scene.ResolveSize(g.cfg.Scene, rt.ScreenW, rt.ScreenH)
	g.mapper = scene.NewGravityMapper(g.cfg.Tilt)
	g.ticks, g.score, g.dropped = 0, 0, 0
	g.paused, g.gameOver = false, false
	g.bottles = nil

	g.world = scene.NewWorld()
	g.world.Watch(scene.KindBottle, scene.KindSpinner)
	g.walls = scene.BuildWalls(g.size, g.cfg.Walls)
	for _, w := range g.walls {
		g.world.AddStatic(scene.KindWall, w.Box, wallElasticity)
	}
	g.spinner = g.world.AddKinematic(scene.KindSpinner, scene.FracBox(g.size, g.cfg.Spinner.Rect), g.cfg.Spinner.AngularVelocity, 1)
}

// Step advances the scene by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(g.rt)
	}
	if g.gameOver {
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
	if in.Has(core.ActionDrop) {
		g.Drop()
	}

	var cues []core.Cue
	for range g.world.Step(g.rt.DT()) {
		g.score++
		cues = append(cues, core.CueScore)
	}
	g.removeEscaped()

	if g.cfg.RoundSeconds > 0 && g.Elapsed() >= g.cfg.RoundSeconds {
		g.gameOver = true
	}

	return core.StepResult{State: g.State(), Cues: cues}
}

// Drop releases one bottle at a random x with a random bounce. The oldest
// bottle is removed when the live limit is reached.
func (g *Game) Drop() {
	b := g.cfg.Bottle
	if b.MaxLive > 0 && len(g.bottles) >= b.MaxLive {
		g.world.Remove(g.bottles[0])
		g.bottles = g.bottles[1:]
	}
	x := b.MinXFrac + g.rng.Float64()*(b.MaxXFrac-b.MinXFrac)
	restitution := b.RestitutionMin + g.rng.Float64()*(b.RestitutionMax-b.RestitutionMin)
	box := scene.Box{
		Center: scene.Vec{X: g.size.W * x, Y: g.size.H * b.SpawnYFrac},
		Size:   scene.Size{W: g.size.W * b.WFrac, H: g.size.H * b.HFrac},
	}
	body := g.world.AddDynamic(scene.KindBottle, box, scene.DynamicOptions{
		Mass:       1,
		Elasticity: restitution,
		Friction:   0.2,
	})
	g.bottles = append(g.bottles, body)
	g.dropped++
}

// removeEscaped drops bottles that tunneled out of the box.
func (g *Game) removeEscaped() {
	bounds := g.size.Bounds()
	kept := g.bottles[:0]
	for _, b := range g.bottles {
		if bounds.Contains(b.Position()) {
			kept = append(kept, b)
			continue
		}
		g.world.Remove(b)
	}
	g.bottles = kept
}

// Live returns the number of bottles in play.
func (g *Game) Live() int { return len(g.bottles) }

// Elapsed returns round time in seconds.
func (g *Game) Elapsed() float64 {
	return float64(g.ticks) * g.rt.DT()
}

// World returns the physics world.
func (g *Game) World() *scene.World { return g.world }

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Render draws the box, the spinner and the bottles.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	avail := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	area := scene.FitArea(g.size, g.cfg.Scene.CellWidth, g.cfg.Scene.CellHeight, avail)
	proj := scene.NewProjector(g.size, area)

	for _, w := range g.walls {
		proj.Fill(dst, w.Box, WallChar, core.ColorWall)
	}
	g.drawSpinner(dst, proj)
	for _, b := range g.bottles {
		proj.Fill(dst, b.Box(), BottleChar, core.ColorBottle)
	}

	remaining := math.Max(0, g.cfg.RoundSeconds-g.Elapsed())
	hud := fmt.Sprintf(" %s  score %d  bottles %d/%d  %.0fs left  [space] drop",
		g.Title(), g.score, len(g.bottles), g.cfg.Bottle.MaxLive, remaining)
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)

	if g.paused {
		dst.DrawMessage("PAUSED", "Press P to resume", core.ColorNotice)
	}
	if g.gameOver {
		dst.DrawMessage("TIME", fmt.Sprintf("Score: %d  |  Press R to restart", g.score), core.ColorAlert)
	}
}

// drawSpinner traces the spinner's long axis at its current angle.
func (g *Game) drawSpinner(dst *core.Screen, proj scene.Projector) {
	c := g.spinner.Position()
	half := g.spinner.Box().Size.W / 2
	cos, sin := math.Cos(g.spinner.Angle()), math.Sin(g.spinner.Angle())
	const samples = 24
	for i := 0; i <= samples; i++ {
		d := -half + 2*half*float64(i)/samples
		x, y := proj.Cell(scene.Vec{X: c.X + d*cos, Y: c.Y + d*sin})
		dst.SetColor(x, y, SpinnerChar, core.ColorPlayer)
	}
}
