package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/feed"
)

var flagFeedAddr string

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Run the phone motion feed",
	Long: `Run the WebSocket motion feed without a UI. A phone connects to it and
streams motion, step and activity messages. Steps are written to the
database so the "store" pedometer picks them up.

Examples:
  commotion feed
  commotion feed --address :9000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&flagFeedAddr, "address", "", "Listen address (default from the feed config)")
}

func runFeed(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "feed")
	if err != nil {
		return err
	}

	cfg, err := config.LoadFeed(viper.GetString(keyFeedConfig))
	if err != nil {
		return err
	}
	if flagFeedAddr != "" {
		cfg.Address = flagFeedAddr
	}

	ctx, stop := signalContext()
	defer stop()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	var steps feed.StepRecorder
	if store != nil {
		steps = store
	}

	hub := feed.NewHub(cfg.Buffer)
	srv := feed.NewServer(cfg, hub, steps, logger)

	fmt.Printf("Motion feed listening on %s%s\n", cfg.Address, cfg.Path)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	st := hub.Stats()
	logger.Info("feed stopped", "sessions", st.Sessions, "motion", st.Motion, "activities", st.Activities)
	return nil
}
