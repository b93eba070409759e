package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/games/maze"
	"github.com/vovakirdan/commotion/internal/platform/tui"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/sensor"
	"github.com/vovakirdan/commotion/internal/storage"
)

var (
	flagConfig  string
	flagVariant string
	flagForce   bool
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Start the specified scene directly. The maze stays locked until
yesterday's steps beat the daily goal, the same rule the dashboard applies;
--force skips the check.

Controls:
  Arrows/WASD - Tilt
  L           - Level the tilt
  Space       - Drop a bottle (bottles)
  P           - Pause
  R           - Restart (after the round ends)
  Esc/B       - Leave
  Q/Ctrl+C    - Quit

Tilt variants:
  classic  - attitude x5
  gravity  - gravity vector x6
  earth    - gravity vector x9.8
  gentle   - attitude x1
  micro    - attitude x0.001

Examples:
  commotion play maze
  commotion play maze --variant gravity
  commotion play maze --force
  commotion play bottles --feed :8090
  commotion play maze --config ./my-maze.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Tilt variant: classic, gravity, earth, gentle, micro")
	playCmd.Flags().BoolVar(&flagForce, "force", false, "Play the maze even while it is locked")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown scene %q (run 'commotion list' to see available scenes)", gameID)
	}

	opts := registry.Options{Variant: flagVariant, ConfigPath: flagConfig}
	// Surface config and variant errors before taking over the terminal.
	if _, err := registry.Create(gameID, opts); err != nil {
		return err
	}

	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if gameID == maze.GameID && !flagForce {
		if err := checkMazeUnlocked(ctx, store); err != nil {
			return err
		}
	}

	runner, err := startFeed(ctx, viper.GetString(keyFeed), store, logger)
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Store:   store,
		Options: opts,
		Logger:  logger,
	}
	if hub := runner.Hub(); hub != nil {
		deps.Motion = hub
	}

	runErr := tui.RunGame(ctx, deps, runtimeConfig(), gameID)
	cancel()
	if err := runner.Wait(5 * time.Second); err != nil {
		logger.Warn("feed shutdown", "error", err)
	}
	return runErr
}

// checkMazeUnlocked applies the dashboard's unlock rule using the configured
// pedometer and the stored goal.
func checkMazeUnlocked(ctx context.Context, store *storage.Store) error {
	dcfg, err := config.LoadDashboard(viper.GetString(keyDashboardConfig))
	if err != nil {
		return err
	}
	ped, _, err := buildSensors(dcfg, store, nil)
	if err != nil {
		return err
	}
	goal := activity.MinGoal
	if store != nil {
		stored, err := store.LoadGoal()
		if err != nil {
			return err
		}
		goal = activity.ClampGoal(stored)
	}
	goal = math.Max(goal, dcfg.MinGoal)
	return mazeLock(yesterdayTracker(ctx, ped, goal, time.Now()))
}

// yesterdayTracker asks ped for yesterday's steps the way the dashboard's
// first poll does. An unavailable or failing pedometer leaves yesterday unset.
func yesterdayTracker(ctx context.Context, ped sensor.Pedometer, goal float64, now time.Time) *activity.Tracker {
	t := activity.NewTracker(goal)
	if !ped.Available() {
		return t
	}
	w := t.QueryWindow(now)
	if steps, err := ped.QuerySteps(ctx, w.From, w.To); err == nil {
		t.HandleSteps(steps)
	}
	return t
}

// mazeLock returns nil when t unlocks the maze and a descriptive error
// otherwise.
func mazeLock(t *activity.Tracker) error {
	switch {
	case t.Unlocked():
		return nil
	case !t.YesterdaySet():
		return fmt.Errorf("the maze is locked: no step count for yesterday (use --force to play anyway)")
	default:
		return fmt.Errorf("the maze is locked: yesterday %s steps, goal %s (use --force to play anyway)",
			humanize.Comma(int64(t.Yesterday())), humanize.Comma(int64(t.Goal())))
	}
}
