package tui

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/games/bottles"
	"github.com/vovakirdan/commotion/internal/games/maze"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/sensor"
	"github.com/vovakirdan/commotion/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSceneAction(t *testing.T) {
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Action
		isQuit bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTiltLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionTiltRight, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionTiltUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionTiltDown, false},
		{runeKey('l'), core.ActionLevel, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionDrop, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, quit := sceneAction(tt.msg)
			if got != tt.want || quit != tt.isQuit {
				t.Errorf("sceneAction(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), got, quit, tt.want, tt.isQuit)
			}
		})
	}
}

func TestKeyTilt(t *testing.T) {
	tilt := NewKeyTilt()
	tilt.Apply(core.ActionTiltRight)
	tilt.Apply(core.ActionTiltUp)
	tilt.Apply(core.ActionTiltUp)

	if math.Abs(tilt.Roll-DefaultTiltStep) > 1e-12 {
		t.Errorf("Roll = %v, want %v", tilt.Roll, DefaultTiltStep)
	}
	if math.Abs(tilt.Pitch-2*DefaultTiltStep) > 1e-12 {
		t.Errorf("Pitch = %v, want %v", tilt.Pitch, 2*DefaultTiltStep)
	}

	s := tilt.Sample(time.Unix(10, 0))
	if !s.HasAttitude || !s.HasGravity {
		t.Fatal("keyboard samples should carry attitude and gravity")
	}
	if math.Abs(s.Gravity.X-math.Sin(tilt.Roll)) > 1e-12 {
		t.Errorf("Gravity.X = %v, want sin(roll)", s.Gravity.X)
	}

	for range 100 {
		tilt.Apply(core.ActionTiltLeft)
	}
	if tilt.Roll != -DefaultTiltLimit {
		t.Errorf("Roll = %v, want clamped to %v", tilt.Roll, -DefaultTiltLimit)
	}

	if tilt.Apply(core.ActionDrop) {
		t.Error("Drop is not a tilt action")
	}
	tilt.Apply(core.ActionLevel)
	if tilt.Roll != 0 || tilt.Pitch != 0 {
		t.Errorf("Level left (%v, %v)", tilt.Roll, tilt.Pitch)
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorGoal)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "xyz") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

type fakeGoals struct {
	goal  float64
	saved []float64
}

func (f *fakeGoals) LoadGoal() (float64, error) { return f.goal, nil }

func (f *fakeGoals) SaveGoal(g float64) error {
	f.goal = g
	f.saved = append(f.saved, g)
	return nil
}

type fakePedometer struct {
	steps   float64
	windows []activity.Window
}

func (p *fakePedometer) Available() bool { return true }

func (p *fakePedometer) QuerySteps(_ context.Context, from, to time.Time) (float64, error) {
	p.windows = append(p.windows, activity.Window{From: from, To: to})
	return p.steps, nil
}

type fakeMonitor struct {
	first   activity.Activity
	started int
}

func (m *fakeMonitor) Available() bool { return true }

func (m *fakeMonitor) Start(_ context.Context, handler func(activity.Activity)) error {
	m.started++
	handler(m.first)
	return nil
}

func testDashboardConfig() config.DashboardConfig {
	return config.DashboardConfig{
		PollInterval: 500 * time.Millisecond,
		MinGoal:      100,
		SliderMin:    1,
		SliderMax:    100,
		SliderStep:   1,
	}
}

func newTestDashboard(t *testing.T, goals GoalStore, ped sensor.Pedometer, mon sensor.ActivityMonitor) DashboardModel {
	t.Helper()
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	return NewDashboardModel(context.Background(), DashboardDeps{
		Config:    testDashboardConfig(),
		Goals:     goals,
		Pedometer: ped,
		Activity:  mon,
		Now:       func() time.Time { return now },
	}, 80, 24)
}

func TestDashboardLoadsGoal(t *testing.T) {
	tests := []struct {
		stored     float64
		wantGoal   float64
		wantSlider float64
	}{
		{0, 100, 1},
		{50, 100, 1},
		{300, 300, 3},
		{4200, 4200, 42},
	}

	for _, tt := range tests {
		m := newTestDashboard(t, &fakeGoals{goal: tt.stored}, nil, nil)
		if got := m.Tracker().Goal(); got != tt.wantGoal {
			t.Errorf("stored %v: goal = %v, want %v", tt.stored, got, tt.wantGoal)
		}
		if got := m.Slider(); got != tt.wantSlider {
			t.Errorf("stored %v: slider = %v, want %v", tt.stored, got, tt.wantSlider)
		}
	}
}

func TestDashboardSliderPersistsGoal(t *testing.T) {
	goals := &fakeGoals{goal: 300}
	m := newTestDashboard(t, goals, nil, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Tracker().Goal() != 400 {
		t.Errorf("goal = %v, want 400", m.Tracker().Goal())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Tracker().Goal() != 200 {
		t.Errorf("goal = %v, want 200", m.Tracker().Goal())
	}

	want := []float64{400, 300, 200}
	if len(goals.saved) != len(want) {
		t.Fatalf("saved %v, want %v", goals.saved, want)
	}
	for i := range want {
		if goals.saved[i] != want[i] {
			t.Errorf("saved[%d] = %v, want %v", i, goals.saved[i], want[i])
		}
	}

	// The slider stops at its minimum and does not save again.
	for range 10 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.Slider() != 1 || m.Tracker().Goal() != 100 {
		t.Errorf("slider %v goal %v, want 1 and 100", m.Slider(), m.Tracker().Goal())
	}
	if n := len(goals.saved); n != 4 {
		t.Errorf("saved %d times, want 4", n)
	}
}

func TestDashboardPolling(t *testing.T) {
	ped := &fakePedometer{}
	m := newTestDashboard(t, nil, ped, nil)
	now := m.now()

	m, _ = m.Update(pollMsg(now))
	if !m.querying {
		t.Fatal("poll should start a query")
	}
	// A second poll while the first is in flight does not start another.
	m, _ = m.Update(pollMsg(now))
	if !m.querying {
		t.Fatal("query should still be in flight")
	}

	m, _ = m.Update(stepsMsg{steps: 5000})
	if m.querying {
		t.Error("answer should clear the in-flight flag")
	}
	if !m.Tracker().YesterdaySet() || m.Tracker().Yesterday() != 5000 {
		t.Fatalf("yesterday = %v, want 5000", m.Tracker().Yesterday())
	}

	m, _ = m.Update(stepsMsg{err: errors.New("boom")})
	m, _ = m.Update(stepsMsg{steps: 1200})
	m, _ = m.Update(stepsMsg{steps: 1300})
	if m.Tracker().Yesterday() != 5000 {
		t.Errorf("yesterday overwritten: %v", m.Tracker().Yesterday())
	}
	if m.Tracker().Today() != 1300 {
		t.Errorf("today = %v, want 1300", m.Tracker().Today())
	}
}

func TestQueryStepsCmdUsesTrackerWindow(t *testing.T) {
	ped := &fakePedometer{steps: 42}
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	tr := activity.NewTracker(100)

	msg := queryStepsCmd(context.Background(), ped, tr.QueryWindow(now))()
	sm, ok := msg.(stepsMsg)
	if !ok || sm.steps != 42 || sm.err != nil {
		t.Fatalf("msg = %#v", msg)
	}
	if want := activity.YesterdayWindow(now); ped.windows[0] != want {
		t.Errorf("first query window = %v, want yesterday %v", ped.windows[0], want)
	}

	tr.HandleSteps(42)
	queryStepsCmd(context.Background(), ped, tr.QueryWindow(now))()
	if want := activity.TodayWindow(now); ped.windows[1] != want {
		t.Errorf("second query window = %v, want today %v", ped.windows[1], want)
	}
}

func TestDashboardUnavailableSensorsStayIdle(t *testing.T) {
	m := newTestDashboard(t, nil, sensor.Unavailable{}, sensor.Unavailable{})
	if cmd := m.Init(); cmd != nil {
		t.Error("unavailable sensors should not start anything")
	}
	if m.Tracker().Today() != 0 {
		t.Errorf("today = %v, want 0", m.Tracker().Today())
	}
}

func TestDashboardActivityBridge(t *testing.T) {
	mon := &fakeMonitor{first: activity.Activity{Walking: true, Confidence: activity.ConfidenceHigh}}
	m := newTestDashboard(t, nil, sensor.Unavailable{}, mon)

	cmd := m.Init()
	if cmd == nil || mon.started != 1 {
		t.Fatalf("monitor started %d times, cmd %v", mon.started, cmd)
	}
	msg := cmd()
	if _, ok := msg.(activityMsg); !ok {
		t.Fatalf("msg = %#v, want activityMsg", msg)
	}

	m, _ = m.Update(msg)
	if m.Label() != "You are walking" {
		t.Errorf("label = %q", m.Label())
	}

	// An update with no flags leaves the label alone.
	m, _ = m.Update(activityMsg(activity.Activity{}))
	if m.Label() != "You are walking" {
		t.Errorf("label = %q after empty update", m.Label())
	}

	m, _ = m.Update(activityMsg(activity.Activity{Walking: true, Automotive: true}))
	if m.Label() != "You are driving" {
		t.Errorf("label = %q", m.Label())
	}
}

func TestDashboardPlayNeedsUnlock(t *testing.T) {
	m := newTestDashboard(t, &fakeGoals{goal: 300}, nil, nil)

	m, _ = m.Update(stepsMsg{steps: 300})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.nav.screen != screenNone {
		t.Fatalf("nav = %+v, want none while locked", m.nav)
	}
	if !strings.Contains(m.View(), "Beat your goal") {
		t.Error("locked dashboard should explain the unlock")
	}

	m = newTestDashboard(t, &fakeGoals{goal: 300}, nil, nil)
	m, _ = m.Update(stepsMsg{steps: 301})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.nav.screen != screenGame || m.nav.gameID != maze.GameID {
		t.Fatalf("nav = %+v, want maze", m.nav)
	}
	if !strings.Contains(m.View(), "Maze unlocked") {
		t.Error("unlocked dashboard should say so")
	}
}

func TestDashboardNavigation(t *testing.T) {
	tests := []struct {
		msg    tea.KeyMsg
		screen screenID
		gameID string
	}{
		{runeKey('2'), screenGame, bottles.GameID},
		{tea.KeyMsg{Type: tea.KeyTab}, screenScores, ""},
		{runeKey('q'), screenQuit, ""},
	}
	for _, tt := range tests {
		m := newTestDashboard(t, nil, nil, nil)
		m, _ = m.Update(tt.msg)
		if m.nav.screen != tt.screen || m.nav.gameID != tt.gameID {
			t.Errorf("%q: nav = %+v", tt.msg.String(), m.nav)
		}
	}
}

// stubGame ends after three ticks with a score of 10.
type stubGame struct {
	ticks   int
	motions []core.MotionSample
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.ticks = 0 }
func (g *stubGame) Render(dst *core.Screen)  { dst.Clear() }
func (g *stubGame) State() core.GameState    { return core.GameState{Score: 10, GameOver: g.ticks >= 3} }
func (g *stubGame) Summary() core.RunSummary { return core.RunSummary{Variant: "v", Ticks: g.ticks} }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.ticks++
	if in.Motion != nil {
		g.motions = append(g.motions, *in.Motion)
	}
	return core.StepResult{State: g.State()}
}

type fakeScores struct {
	scores []int
	runs   []storage.MazeRun
}

func (f *fakeScores) SaveScore(_ string, score int) (int64, error) {
	f.scores = append(f.scores, score)
	return int64(len(f.scores)), nil
}

func (f *fakeScores) SaveMazeRun(run storage.MazeRun) (int64, error) {
	f.runs = append(f.runs, run)
	return int64(len(f.runs)), nil
}

func newTestGameModel(game registry.Game, store ScoreStore) GameModel {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1}
	m := NewGameModel(context.Background(), game, store, cfg, nil, nil)
	m.Init()
	return m
}

func TestGameModelSavesOnce(t *testing.T) {
	game := &stubGame{}
	store := &fakeScores{}
	m := newTestGameModel(game, store)

	for range 6 {
		m, _ = m.Update(TickMsg{Gen: m.gen})
	}
	if !m.State().GameOver {
		t.Fatal("stub should be over")
	}
	if len(store.scores) != 1 || store.scores[0] != 10 {
		t.Errorf("scores = %v, want [10]", store.scores)
	}
	if len(store.runs) != 1 || store.runs[0].Ticks != 3 {
		t.Errorf("runs = %+v, want one run of 3 ticks", store.runs)
	}

	// Leaving afterwards does not record the run again.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || len(store.runs) != 1 {
		t.Errorf("back=%v runs=%d", m.BackToMenu(), len(store.runs))
	}
}

func TestGameModelRecordsAbandonedRun(t *testing.T) {
	game := &stubGame{}
	store := &fakeScores{}
	m := newTestGameModel(game, store)

	m, _ = m.Update(TickMsg{Gen: m.gen})
	m, _ = m.Update(runeKey('q'))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if len(store.runs) != 1 || store.runs[0].Ticks != 1 || store.runs[0].Won {
		t.Errorf("runs = %+v, want one abandoned run", store.runs)
	}
	if len(store.scores) != 0 {
		t.Errorf("abandoned run saved a score: %v", store.scores)
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game, nil)

	m, _ = m.Update(TickMsg{Gen: m.gen + 1000})
	if game.ticks != 0 {
		t.Errorf("stale tick stepped the scene")
	}
}

func TestGameModelMotionSources(t *testing.T) {
	game := &stubGame{}
	m := newTestGameModel(game, nil)
	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }

	// Keyboard tilt reaches the scene.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(TickMsg{Gen: m.gen})
	if len(game.motions) != 1 || math.Abs(game.motions[0].Attitude.Roll-DefaultTiltStep) > 1e-12 {
		t.Fatalf("motions = %+v", game.motions)
	}

	// A feed sample replaces the keyboard and silences it for a while.
	feed := core.MotionSample{Gravity: core.Vec3{X: 0.5}, HasGravity: true}
	m, _ = m.Update(motionMsg(feed))
	m, _ = m.Update(TickMsg{Gen: m.gen})
	if len(game.motions) != 2 || game.motions[1].Gravity.X != 0.5 || game.motions[1].HasAttitude {
		t.Fatalf("feed sample not delivered: %+v", game.motions)
	}

	clock = clock.Add(500 * time.Millisecond)
	m, _ = m.Update(TickMsg{Gen: m.gen})
	if len(game.motions) != 2 {
		t.Errorf("keyboard tilt should stay silent while the feed is live")
	}

	clock = clock.Add(2 * time.Second)
	m, _ = m.Update(TickMsg{Gen: m.gen})
	if len(game.motions) != 3 || !game.motions[2].HasAttitude {
		t.Errorf("keyboard tilt should resume once the feed goes quiet")
	}
}

func TestAppOpensAndClosesScene(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	app := NewAppModel(context.Background(), Deps{Dashboard: testDashboardConfig()}, cfg)

	model, _ := app.Update(runeKey('2'))
	app = model.(AppModel)
	if app.screen != screenGame || app.game == nil || app.game.game.ID() != bottles.GameID {
		t.Fatalf("screen = %v, want bottles scene", app.screen)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(AppModel)
	if app.screen != screenDashboard || app.game != nil {
		t.Fatalf("screen = %v, want dashboard", app.screen)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(AppModel)
	if app.screen != screenScores {
		t.Fatalf("screen = %v, want scores", app.screen)
	}
	if !strings.Contains(app.View(), "No scores recorded yet.") {
		t.Error("empty scoreboard should say so")
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(AppModel)
	if app.screen != screenDashboard {
		t.Fatalf("screen = %v, want dashboard", app.screen)
	}
}

func TestScoreboardShowsMazeStats(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore(maze.GameID, 140); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMazeRun(storage.MazeRun{Variant: "classic", Ticks: 300, Won: true}); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, 80, 30)
	for m.Selected() != maze.GameID {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	view := m.View()
	if !strings.Contains(view, "140") {
		t.Error("view should list the maze score")
	}
	if !strings.Contains(view, "1 runs  1 wins") {
		t.Error("view should show the maze run stats")
	}
}
