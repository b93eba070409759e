package tui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/games/bottles"
	"github.com/vovakirdan/commotion/internal/games/maze"
	"github.com/vovakirdan/commotion/internal/sensor"
)

const activityBuffer = 8

// GoalStore persists the daily step goal.
type GoalStore interface {
	LoadGoal() (float64, error)
	SaveGoal(goal float64) error
}

// DashboardKeyMap defines the key bindings for the dashboard.
type DashboardKeyMap struct {
	GoalDown key.Binding
	GoalUp   key.Binding
	Play     key.Binding
	Bottles  key.Binding
	Scores   key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.GoalDown, k.GoalUp, k.Play, k.Bottles, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k DashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.GoalDown, k.GoalUp},
		{k.Play, k.Bottles, k.Scores, k.Quit},
	}
}

// DefaultDashboardKeyMap returns default key bindings.
func DefaultDashboardKeyMap() DashboardKeyMap {
	return DashboardKeyMap{
		GoalDown: key.NewBinding(
			key.WithKeys("left", "h", "-"),
			key.WithHelp("left/h", "goal -"),
		),
		GoalUp: key.NewBinding(
			key.WithKeys("right", "l", "+", "="),
			key.WithHelp("right/l", "goal +"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", "1"),
			key.WithHelp("enter", "maze"),
		),
		Bottles: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "bottles"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab", "s"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// screenID names the top-level screens of the app.
type screenID int

const (
	screenNone screenID = iota
	screenDashboard
	screenGame
	screenScores
	screenQuit
)

// navigation is a request from one screen to switch to another.
type navigation struct {
	screen screenID
	gameID string
}

// DashboardModel shows the step goal, today's progress, the current
// activity and whether the maze is unlocked.
type DashboardModel struct {
	ctx        context.Context
	cfg        config.DashboardConfig
	tracker    *activity.Tracker
	slider     float64
	goals      GoalStore
	pedometer  sensor.Pedometer
	monitor    sensor.ActivityMonitor
	activities chan activity.Activity
	label      string
	confidence string
	querying   bool
	notice     string
	logger     *log.Logger
	now        func() time.Time

	bar   progress.Model
	help  help.Model
	keys  DashboardKeyMap
	theme Theme

	width  int
	height int
	nav    navigation
}

// DashboardDeps are the collaborators of a dashboard.
type DashboardDeps struct {
	Config    config.DashboardConfig
	Goals     GoalStore // nil keeps the goal in memory only
	Pedometer sensor.Pedometer
	Activity  sensor.ActivityMonitor
	Logger    *log.Logger
	Now       func() time.Time
}

// NewDashboardModel loads the goal and prepares the tracker. Sensors are not
// touched until Init.
func NewDashboardModel(ctx context.Context, deps DashboardDeps, width, height int) DashboardModel {
	if deps.Pedometer == nil {
		deps.Pedometer = sensor.Unavailable{}
	}
	if deps.Activity == nil {
		deps.Activity = sensor.Unavailable{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	goal := activity.MinGoal
	if deps.Goals != nil {
		stored, err := deps.Goals.LoadGoal()
		if err != nil {
			deps.Logger.Warn("could not load goal", "error", err)
		}
		goal = activity.ClampGoal(stored)
	}
	goal = math.Max(goal, deps.Config.MinGoal)

	h := help.New()
	h.Width = width

	m := DashboardModel{
		ctx:        ctx,
		cfg:        deps.Config,
		tracker:    activity.NewTracker(goal),
		goals:      deps.Goals,
		pedometer:  deps.Pedometer,
		monitor:    deps.Activity,
		activities: make(chan activity.Activity, activityBuffer),
		logger:     deps.Logger,
		now:        deps.Now,
		bar:        progress.New(progress.WithDefaultGradient()),
		help:       h,
		keys:       DefaultDashboardKeyMap(),
		theme:      DefaultTheme(),
		width:      width,
		height:     height,
	}
	m.slider = m.clampSlider(activity.GoalToSlider(goal))
	m.resizeBar()
	return m
}

// Init starts step polling and activity updates for whichever sensors are
// available. An unavailable sensor is never started.
func (m DashboardModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.pedometer.Available() {
		cmds = append(cmds, func() tea.Msg { return pollMsg(m.now()) })
	}
	if m.monitor.Available() {
		ch := m.activities
		handler := func(a activity.Activity) {
			select {
			case ch <- a:
			default:
			}
		}
		if err := m.monitor.Start(m.ctx, handler); err != nil {
			m.logger.Debug("activity monitor not started", "error", err)
		} else {
			cmds = append(cmds, waitForActivity(m.ctx, ch))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages for the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeBar()
		return m, nil

	case pollMsg:
		next := pollCmd(m.cfg.PollInterval)
		if m.querying {
			return m, next
		}
		m.querying = true
		w := m.tracker.QueryWindow(m.now())
		return m, tea.Batch(queryStepsCmd(m.ctx, m.pedometer, w), next)

	case stepsMsg:
		m.querying = false
		if msg.err != nil {
			m.logger.Debug("step query failed", "error", msg.err)
			return m, nil
		}
		m.tracker.HandleSteps(msg.steps)
		return m, nil

	case activityMsg:
		a := activity.Activity(msg)
		if label, ok := activity.Label(a); ok {
			m.label = label
			m.confidence = a.Confidence.String()
		}
		return m, waitForActivity(m.ctx, m.activities)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.nav = navigation{screen: screenQuit}
	case key.Matches(msg, m.keys.GoalDown):
		m.setSlider(m.slider - m.sliderStep())
	case key.Matches(msg, m.keys.GoalUp):
		m.setSlider(m.slider + m.sliderStep())
	case key.Matches(msg, m.keys.Play):
		if !m.tracker.Unlocked() {
			m.notice = "The maze opens once yesterday beats your goal."
			return m, nil
		}
		m.nav = navigation{screen: screenGame, gameID: maze.GameID}
	case key.Matches(msg, m.keys.Bottles):
		m.nav = navigation{screen: screenGame, gameID: bottles.GameID}
	case key.Matches(msg, m.keys.Scores):
		m.nav = navigation{screen: screenScores}
	}
	return m, nil
}

// setSlider moves the goal slider, updates the goal and persists it.
func (m *DashboardModel) setSlider(v float64) {
	v = m.clampSlider(v)
	if v == m.slider {
		return
	}
	m.slider = v
	goal := m.tracker.SetGoal(math.Max(activity.SliderToGoal(v), m.cfg.MinGoal))
	if m.goals == nil {
		return
	}
	if err := m.goals.SaveGoal(goal); err != nil {
		m.logger.Warn("could not save goal", "goal", goal, "error", err)
	}
}

func (m DashboardModel) clampSlider(v float64) float64 {
	lo, hi := m.cfg.SliderMin, m.cfg.SliderMax
	if hi <= lo {
		return v
	}
	return math.Max(lo, math.Min(hi, v))
}

func (m DashboardModel) sliderStep() float64 {
	if m.cfg.SliderStep <= 0 {
		return 1
	}
	return m.cfg.SliderStep
}

func (m *DashboardModel) resizeBar() {
	w := m.width - 20
	if w > 50 {
		w = 50
	}
	if w < 10 {
		w = 10
	}
	m.bar.Width = w
}

// Tracker exposes the goal tracker.
func (m DashboardModel) Tracker() *activity.Tracker { return m.tracker }

// Slider returns the current slider value.
func (m DashboardModel) Slider() float64 { return m.slider }

// Label returns the current activity label, empty until the first update.
func (m DashboardModel) Label() string { return m.label }

// View renders the dashboard.
func (m DashboardModel) View() string {
	t := m.theme
	tr := m.tracker

	var body strings.Builder
	row := func(label, value string) {
		body.WriteString(t.Label.Render(fmt.Sprintf("%-11s", label)))
		body.WriteString(t.Value.Render(value))
		body.WriteString("\n")
	}

	yesterday := 0.0
	if tr.YesterdaySet() {
		yesterday = tr.Yesterday()
	}
	row("Yesterday", steps(yesterday))
	row("Today", steps(tr.Today()))
	row("Goal", fmt.Sprintf("%s  %s", steps(tr.Goal()), t.Dim.Render(m.sliderView())))
	body.WriteString("\n")
	body.WriteString(m.bar.ViewAs(tr.Progress()))
	body.WriteString("\n")
	if left := tr.StepsLeft(); left > 0 {
		body.WriteString(t.Subtitle.Render(humanize.Comma(int64(left)) + " steps to go"))
	} else {
		body.WriteString(t.Unlocked.Render("Goal reached for today"))
	}
	body.WriteString("\n\n")

	if m.label != "" {
		body.WriteString(t.Activity.Render(m.label))
		body.WriteString(t.Dim.Render(" (" + m.confidence + ")"))
		body.WriteString("\n\n")
	}

	if tr.Unlocked() {
		body.WriteString(t.Unlocked.Render("Maze unlocked! Press enter to play."))
	} else {
		body.WriteString(t.Locked.Render("Beat your goal for a day to unlock the maze."))
	}
	if m.notice != "" {
		body.WriteString("\n")
		body.WriteString(t.Dim.Render(m.notice))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(t.Title.Render(centerText("COMMOTION", m.width)))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render(centerText("daily steps", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, t.Panel.Render(body.String())))
	b.WriteString("\n\n")
	b.WriteString(t.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m DashboardModel) sliderView() string {
	const width = 12
	lo, hi := m.cfg.SliderMin, m.cfg.SliderMax
	pos := 0
	if hi > lo {
		pos = int(math.Round((m.slider - lo) / (hi - lo) * (width - 1)))
	}
	return "[" + strings.Repeat("-", pos) + "o" + strings.Repeat("-", width-1-pos) + "]"
}

func steps(v float64) string {
	return humanize.Comma(int64(v)) + " steps"
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
