package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/games/maze"
	"github.com/vovakirdan/commotion/internal/registry"
	"github.com/vovakirdan/commotion/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <scene>",
	Short: "Show high scores for a scene",
	Long: `Display the top high scores for the specified scene. For the maze the
run history summary and the latest runs are shown too.

Examples:
  commotion scores maze
  commotion scores bottles --limit 20
  commotion scores bottles --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the scene")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown scene %q (run 'commotion list' to see available scenes)", gameID)
	}

	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Scores for %s cleared.\n", gameID)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'commotion play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), entry.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		if best, err := store.HighScore(gameID); err == nil {
			fmt.Printf("Best: %s\n", humanize.Comma(int64(best)))
		}
	}

	if gameID == maze.GameID {
		return printMazeRuns(store)
	}
	return nil
}

func printMazeRuns(store *storage.Store) error {
	stats, err := store.GetMazeStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d", stats.Runs, stats.Wins)
	if stats.BestTicks > 0 {
		fmt.Printf("  Fastest win: %d ticks", stats.BestTicks)
	}
	fmt.Println()

	runs, err := store.RecentMazeRuns(5)
	if err != nil {
		return err
	}
	for _, r := range runs {
		result := "gave up"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %s  %-8s  %-7s  %5d ticks  %d respawns\n",
			humanize.Time(r.CreatedAt), r.Variant, result, r.Ticks, r.Respawns)
	}
	return nil
}
