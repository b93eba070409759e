package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/platform/tui"
	"github.com/vovakirdan/commotion/internal/registry"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the step dashboard",
	Long: `Show today's steps, yesterday's steps and the daily goal.

The maze unlocks when yesterday's steps beat the goal.

Controls:
  Left/Right  - Change the goal (hundreds of steps)
  Enter       - Play the maze (when unlocked)
  2           - Play Bottle Drop
  Tab         - High scores
  Q/Ctrl+C    - Quit`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func runDashboard(_ *cobra.Command, _ []string) error {
	logger, closer, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	dcfg, err := config.LoadDashboard(viper.GetString(keyDashboardConfig))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runner, err := startFeed(ctx, viper.GetString(keyFeed), store, logger)
	if err != nil {
		return err
	}

	ped, mon, err := buildSensors(dcfg, store, runner.Hub())
	if err != nil {
		return err
	}

	deps := tui.Deps{
		Store:     store,
		Pedometer: ped,
		Activity:  mon,
		Dashboard: dcfg,
		Options:   registry.Options{},
		Logger:    logger,
	}
	if hub := runner.Hub(); hub != nil {
		deps.Motion = hub
	}

	logger.Info("dashboard started", "pedometer", dcfg.Pedometer, "activity", dcfg.Activity)
	runErr := tui.Run(ctx, deps, runtimeConfig())
	cancel()
	if err := runner.Wait(5 * time.Second); err != nil {
		logger.Warn("feed shutdown", "error", err)
	}
	return runErr
}
