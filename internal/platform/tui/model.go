package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/storage"
)

// feedHold is how long a phone sample keeps the keyboard tilt silent.
const feedHold = time.Second

// ScoreStore is the part of the store a running scene writes to.
type ScoreStore interface {
	SaveScore(gameID string, score int) (int64, error)
	SaveMazeRun(run storage.MazeRun) (int64, error)
}

// GameModel runs one scene: it turns keys and feed samples into input
// frames, steps the scene once per tick and records the result.
type GameModel struct {
	ctx        context.Context
	gen        uint64
	game       registry.Game
	screen     *core.Screen
	store      ScoreStore
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	tilt       KeyTilt
	motion     <-chan core.MotionSample
	feedSample *core.MotionSample
	feedAt     time.Time
	logger     *log.Logger
	now        func() time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool
	runSaved   bool
}

var runGen atomic.Uint64

// NewGameModel creates a runner for game. store and motion may be nil.
func NewGameModel(ctx context.Context, game registry.Game, store ScoreStore, cfg core.RuntimeConfig, motion <-chan core.MotionSample, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return GameModel{
		ctx:        ctx,
		gen:        runGen.Add(1),
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		tilt:       NewKeyTilt(),
		motion:     motion,
		logger:     logger.With("game", game.ID()),
		now:        time.Now,
	}
}

// Init resets the scene and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.gen)}
	if m.motion != nil {
		cmds = append(cmds, waitForMotion(m.ctx, m.motion))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (GameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Scenes are sized in points, so a resize only changes the projection.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case motionMsg:
		s := core.MotionSample(msg)
		m.feedSample = &s
		m.feedAt = m.now()
		return m, waitForMotion(m.ctx, m.motion)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := sceneAction(msg)
	switch {
	case isQuit:
		m.recordRun()
		m.quitting = true
		return m, nil
	case action == core.ActionBack:
		m.recordRun()
		m.backToMenu = true
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (GameModel, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.runSaved = false
		m.tilt = NewKeyTilt()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	m.tilt.ApplyFrame(m.inputFrame)
	now := m.now()
	switch {
	case m.feedSample != nil:
		m.inputFrame.SetMotion(*m.feedSample)
		m.feedSample = nil
	case now.Sub(m.feedAt) > feedHold:
		m.inputFrame.SetMotion(m.tilt.Sample(now))
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, cue := range result.Cues {
		m.logger.Debug("cue", "cue", cue, "score", result.State.Score)
	}

	if m.gameState.GameOver {
		m.saveScore()
		m.recordRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScore stores the score once per run.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		m.logger.Warn("could not save score", "error", err)
	}
}

// recordRun writes the run history once per run, for scenes that keep one.
// Runs abandoned before the first tick are not recorded.
func (m *GameModel) recordRun() {
	if m.runSaved {
		return
	}
	reporter, ok := m.game.(registry.RunReporter)
	if !ok {
		return
	}
	sum := reporter.Summary()
	if sum.Ticks == 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	run := storage.MazeRun{
		Variant:  sum.Variant,
		Ticks:    sum.Ticks,
		Respawns: sum.Respawns,
		Won:      sum.Won,
	}
	if _, err := m.store.SaveMazeRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run recorded", "variant", sum.Variant, "ticks", sum.Ticks, "won", sum.Won)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".commotion", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to the dashboard.
func (m GameModel) BackToMenu() bool { return m.backToMenu }
