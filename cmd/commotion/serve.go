package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/platform/tui"
	"github.com/vovakirdan/commotion/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the commotion SSH server",
	Long: `Start an SSH server that serves the step dashboard and scenes.

Each SSH connection gets its own dashboard. The goal, step samples and
scores live in one database shared by every user.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.commotion/host_key

With --feed, a phone connected to the motion feed tilts every running
scene and, with the "feed" activity source, labels every dashboard.

Examples:
  commotion serve                           # Listen on :23234 with auto-generated key
  commotion serve --ssh :2222               # Listen on port 2222
  commotion serve --host-key ./my_host_key  # Use specific host key
  commotion serve --feed :8090              # Also accept a phone

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "commotion-ssh")
	if err != nil {
		return err
	}
	dash, err := config.LoadDashboard(viper.GetString(keyDashboardConfig))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}

	runner, err := startFeed(ctx, viper.GetString(keyFeed), store, logger.WithPrefix("feed"))
	if err != nil {
		store.Close()
		return err
	}
	ped, mon, err := buildSensors(dash, store, runner.Hub())
	if err != nil {
		store.Close()
		return err
	}

	deps := tui.Deps{
		Store:     store,
		Pedometer: ped,
		Activity:  mon,
		Dashboard: dash,
		Logger:    logger,
	}
	if hub := runner.Hub(); hub != nil {
		deps.Motion = hub
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = viper.GetInt(keyTickRate)

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		return err
	}

	fmt.Printf("Starting commotion SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe(ctx)
	stop()
	if err := runner.Wait(5 * time.Second); err != nil {
		logger.Warn("feed shutdown", "error", err)
	}
	return serveErr
}

// port returns the port part of a listen address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
