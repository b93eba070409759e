// commotion is a step-goal dashboard with tilt-controlled mini games, played
// in the terminal or over SSH.
//
// Usage:
//
//	commotion                      - Open the step dashboard
//	commotion play <scene>         - Play a scene directly
//	commotion list                 - List scenes and tilt variants
//	commotion scores <scene>       - Show high scores
//	commotion goal [set <value>]   - Show or change the daily goal
//	commotion steps add|history    - Record or list step samples
//	commotion feed                 - Run the phone motion feed on its own
//	commotion serve                - Start the SSH server
//
// Global flags (also read from COMMOTION_* environment variables):
//
//	--db <path>          - Database path (default: ~/.commotion/commotion.db)
//	--log-level <level>  - debug, info, warn or error
//	--tick-rate <hz>     - Scene simulation rate (default: 60)
//	--seed <value>       - RNG seed for reproducible scenes
//	--feed <addr>        - Also run the motion feed on this address
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Import scenes to register them
	_ "github.com/vovakirdan/commotion/internal/games/bottles"
	_ "github.com/vovakirdan/commotion/internal/games/maze"
	"github.com/vovakirdan/commotion/internal/storage"
)

// Setting keys shared by cobra flags, viper and the environment.
const (
	keyDB              = "db"
	keyLogLevel        = "log-level"
	keyTickRate        = "tick-rate"
	keySeed            = "seed"
	keyFeed            = "feed"
	keyDashboardConfig = "dashboard-config"
	keyFeedConfig      = "feed-config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "commotion",
	Short: "Commotion - walk to unlock the maze",
	Long: `Commotion tracks your daily steps against a goal. Beat the goal for a
day and the tilt maze unlocks the next day.

Steps come from a simulator, from recorded samples, or from a phone
streaming over the motion feed. Scenes are tilted with the arrow keys or
with the phone itself.

Examples:
  commotion
  commotion play maze --variant gravity
  commotion goal set 8000
  commotion feed --address :8090
  commotion serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

func init() {
	cobra.OnInitialize(initSettings)

	pf := rootCmd.PersistentFlags()
	pf.String(keyDB, storage.DefaultPath, "Path to the database")
	pf.String(keyLogLevel, "info", "Log level: debug, info, warn, error")
	pf.Int(keyTickRate, 60, "Scene tick rate (ticks per second)")
	pf.Int64(keySeed, 0, "RNG seed (0 = random based on time)")
	pf.String(keyFeed, "", "Run the motion feed on this address while the UI is open (e.g. :8090)")
	pf.String(keyDashboardConfig, "", "Path to a dashboard YAML config")
	pf.String(keyFeedConfig, "", "Path to a feed YAML config")
	if err := viper.BindPFlags(pf); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(serveCmd)
}

// initSettings lets COMMOTION_DB, COMMOTION_LOG_LEVEL and friends override
// flag defaults.
func initSettings() {
	viper.SetEnvPrefix("COMMOTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
