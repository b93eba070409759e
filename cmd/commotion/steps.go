package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/storage"
)

// cliSource tags samples entered by hand.
const cliSource = "cli"

var (
	flagStepsAt    string
	flagStepsLimit int
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Record or list step samples",
	Long: `Step samples feed the "store" pedometer. The phone feed records them
automatically; these commands add and inspect them by hand.

Examples:
  commotion steps add 1200
  commotion steps add 3000 --at 2026-01-02T18:00:00Z
  commotion steps history --limit 5`,
}

var stepsAddCmd = &cobra.Command{
	Use:   "add <steps>",
	Short: "Record a step sample",
	Args:  cobra.ExactArgs(1),
	RunE:  runStepsAdd,
}

var stepsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List the latest step samples",
	Args:  cobra.NoArgs,
	RunE:  runStepsHistory,
}

func init() {
	stepsAddCmd.Flags().StringVar(&flagStepsAt, "at", "", "When the steps were taken (RFC 3339, default now)")
	stepsHistoryCmd.Flags().IntVar(&flagStepsLimit, "limit", 20, "Number of samples to show")
	stepsCmd.AddCommand(stepsAddCmd)
	stepsCmd.AddCommand(stepsHistoryCmd)
}

func runStepsAdd(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid step count %q: %w", args[0], err)
	}
	at := time.Now()
	if flagStepsAt != "" {
		if at, err = time.Parse(time.RFC3339, flagStepsAt); err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
	}

	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordSteps(commandContext(cmd), at, n, cliSource); err != nil {
		return err
	}
	fmt.Printf("Recorded %s steps at %s.\n", humanize.Comma(int64(n)), at.Format("2006-01-02 15:04"))
	return nil
}

func runStepsHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return err
	}
	defer store.Close()

	samples, err := store.RecentSteps(commandContext(cmd), flagStepsLimit)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		fmt.Println("No step samples recorded yet.")
		return nil
	}

	today := activity.TodayWindow(time.Now())
	fmt.Printf("  %-16s  %-8s  %s\n", "When", "Steps", "Source")
	fmt.Printf("  %-16s  %-8s  %s\n", "----", "-----", "------")
	for _, s := range samples {
		mark := " "
		if today.Contains(s.RecordedAt) {
			mark = "*"
		}
		fmt.Printf("%s %-16s  %-8s  %s\n",
			mark, s.RecordedAt.Format("2006-01-02 15:04"), humanize.Comma(int64(s.Steps)), s.Source)
	}
	fmt.Println()
	fmt.Printf("* today: %s steps in the samples shown\n", humanize.Comma(int64(sumWithin(samples, today))))
	return nil
}

// sumWithin adds up the samples recorded inside w.
func sumWithin(samples []storage.StepSample, w activity.Window) float64 {
	var total float64
	for _, s := range samples {
		if w.Contains(s.RecordedAt) {
			total += s.Steps
		}
	}
	return total
}

// commandContext returns the command's context, or Background when run
// without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
