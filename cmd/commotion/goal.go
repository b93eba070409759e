package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/activity"
	"github.com/vovakirdan/commotion/internal/storage"
)

var flagGoalSlider bool

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the daily step goal",
	Args:  cobra.NoArgs,
	RunE:  runGoal,
}

var goalSetCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Change the daily step goal",
	Long: `Change the daily step goal. The value is a step count, or a slider
position (1 to 100, one notch per 100 steps) with --slider. Goals below
the minimum are raised to it.

Examples:
  commotion goal set 8000
  commotion goal set 42 --slider`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalSet,
}

func init() {
	goalSetCmd.Flags().BoolVar(&flagGoalSlider, "slider", false, "Treat the value as a slider position")
	goalCmd.AddCommand(goalSetCmd)
}

func runGoal(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return err
	}
	defer store.Close()

	goal, err := store.LoadGoal()
	if err != nil {
		return err
	}
	goal = activity.ClampGoal(goal)
	fmt.Printf("Daily goal: %s steps (slider %d)\n",
		humanize.Comma(int64(goal)), int(activity.GoalToSlider(goal)))
	return nil
}

func runGoalSet(_ *cobra.Command, args []string) error {
	goal, err := parseGoal(args[0], flagGoalSlider)
	if err != nil {
		return err
	}

	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveGoal(goal); err != nil {
		return err
	}
	fmt.Printf("Daily goal set to %s steps.\n", humanize.Comma(int64(goal)))
	return nil
}

// parseGoal reads a goal argument as steps or, with slider, as a slider
// position. The result is never below the minimum goal.
func parseGoal(arg string, slider bool) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid goal %q: %w", arg, err)
	}
	if slider {
		v = activity.SliderToGoal(v)
	}
	return activity.ClampGoal(v), nil
}
