package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/sensor"
	"github.com/vovakirdan/commotion/internal/storage"
)

// Deps are the collaborators shared by every screen of the app.
type Deps struct {
	Store     *storage.Store // nil runs without persistence
	Pedometer sensor.Pedometer
	Activity  sensor.ActivityMonitor
	Motion    sensor.MotionSource // nil for keyboard tilt only
	Dashboard config.DashboardConfig
	Options   registry.Options
	Logger    *log.Logger
}

// AppModel is the top-level model: dashboard -> scene or scores -> dashboard.
// Sensor messages always go to the dashboard so tracking continues while a
// scene is running.
type AppModel struct {
	ctx        context.Context
	cancel     context.CancelFunc
	deps       Deps
	config     core.RuntimeConfig
	screen     screenID
	dashboard  DashboardModel
	scores     ScoreboardModel
	game       *GameModel
	gameCancel context.CancelFunc
	standalone bool
	startGame  string
	quitting   bool
}

// NewAppModel creates the app starting on the dashboard.
func NewAppModel(ctx context.Context, deps Deps, cfg core.RuntimeConfig) AppModel {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)

	dd := DashboardDeps{
		Config:    deps.Dashboard,
		Pedometer: deps.Pedometer,
		Activity:  deps.Activity,
		Logger:    deps.Logger.WithPrefix("dashboard"),
	}
	if deps.Store != nil {
		dd.Goals = deps.Store
	}

	return AppModel{
		ctx:       ctx,
		cancel:    cancel,
		deps:      deps,
		config:    cfg,
		screen:    screenDashboard,
		dashboard: NewDashboardModel(ctx, dd, cfg.ScreenW, cfg.ScreenH),
	}
}

// NewGameApp creates an app that opens gameID directly and exits when the
// player leaves the scene.
func NewGameApp(ctx context.Context, deps Deps, cfg core.RuntimeConfig, gameID string) AppModel {
	m := NewAppModel(ctx, deps, cfg)
	m.standalone = true
	m.startGame = gameID
	return m
}

// Init starts the dashboard sensors, or the scene for a standalone app.
func (m AppModel) Init() tea.Cmd {
	if m.startGame != "" {
		return func() tea.Msg { return startGameMsg(m.startGame) }
	}
	return m.dashboard.Init()
}

// startGameMsg opens a scene on the next turn of the event loop.
type startGameMsg string

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		var cmds [2]tea.Cmd
		m.dashboard, cmds[0] = m.dashboard.Update(msg)
		if m.screen == screenScores {
			m.scores, cmds[1] = m.scores.Update(msg)
		}
		if m.game != nil {
			g, _ := m.game.Update(msg)
			m.game = &g
		}
		return m, tea.Batch(cmds[:]...)

	case startGameMsg:
		return m.openGame(string(msg))

	case pollMsg, stepsMsg, activityMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	case TickMsg, motionMsg:
		if m.game == nil {
			return m, nil
		}
		return m.updateGame(msg)
	}

	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.updateGame(msg)
		}
	case screenScores:
		var cmd tea.Cmd
		m.scores, cmd = m.scores.Update(msg)
		return m.navigate(m.scores.nav, cmd)
	default:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		nav := m.dashboard.nav
		m.dashboard.nav = navigation{}
		return m.navigate(nav, cmd)
	}
	return m, nil
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, cmd := m.game.Update(msg)
	m.game = &g

	switch {
	case g.IsQuitting():
		return m.quit()
	case g.BackToMenu():
		m.closeGame()
		if m.standalone {
			return m.quit()
		}
		m.screen = screenDashboard
		return m, nil
	}
	return m, cmd
}

// navigate applies a screen switch requested by the dashboard or scoreboard.
func (m AppModel) navigate(nav navigation, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch nav.screen {
	case screenQuit:
		return m.quit()
	case screenDashboard:
		m.screen = screenDashboard
	case screenScores:
		var source ScoreSource
		if m.deps.Store != nil {
			source = m.deps.Store
		}
		m.scores = NewScoreboardModel(source, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
	case screenGame:
		return m.openGame(nav.gameID)
	}
	return m, cmd
}

func (m AppModel) openGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id, m.deps.Options)
	if err != nil {
		m.deps.Logger.Error("cannot start scene", "game", id, "error", err)
		m.dashboard.notice = "Cannot start " + id + "."
		if m.standalone {
			return m.quit()
		}
		m.screen = screenDashboard
		return m, nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	var motion <-chan core.MotionSample
	if m.deps.Motion != nil {
		motion = m.deps.Motion.Motion(ctx)
	}
	var store ScoreStore
	if m.deps.Store != nil {
		store = m.deps.Store
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	g := NewGameModel(ctx, game, store, cfg, motion, m.deps.Logger)
	m.game = &g
	m.gameCancel = cancel
	m.screen = screenGame
	m.deps.Logger.Info("scene started", "game", id, "variant", m.deps.Options.Variant)
	return m, g.Init()
}

func (m *AppModel) closeGame() {
	if m.gameCancel != nil {
		m.gameCancel()
		m.gameCancel = nil
	}
	m.game = nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.closeGame()
	m.cancel()
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	case screenScores:
		return m.scores.View()
	}
	return m.dashboard.View()
}

// Dashboard exposes the dashboard model.
func (m AppModel) Dashboard() DashboardModel { return m.dashboard }

// Run starts the app on the local terminal and blocks until it exits.
func Run(ctx context.Context, deps Deps, cfg core.RuntimeConfig) error {
	return runProgram(ctx, NewAppModel(ctx, deps, cfg))
}

// RunGame opens one scene on the local terminal and blocks until the player
// leaves it.
func RunGame(ctx context.Context, deps Deps, cfg core.RuntimeConfig, gameID string) error {
	return runProgram(ctx, NewGameApp(ctx, deps, cfg, gameID))
}

func runProgram(ctx context.Context, m AppModel) error {
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
