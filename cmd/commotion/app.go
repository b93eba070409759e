package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/commotion/internal/config"
	"github.com/vovakirdan/commotion/internal/core"
	"github.com/vovakirdan/commotion/internal/feed"
	"github.com/vovakirdan/commotion/internal/sensor"
	"github.com/vovakirdan/commotion/internal/storage"
)

// logFileName is where TUI commands log, so output does not corrupt the
// alternate screen.
const logFileName = "commotion.log"

// newLogger builds a logger at the configured level writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// newFileLogger logs to ~/.commotion/commotion.log. The returned closer must
// be called when the UI exits.
func newFileLogger() (*log.Logger, io.Closer, error) {
	path, err := storage.ExpandPath(filepath.Join("~", ".commotion", logFileName))
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "commotion")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// openStore opens the database. Failures are logged and the caller carries on
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(viper.GetString(keyDB))
	if err != nil {
		logger.Warn("could not open database, running without storage", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig sizes scenes to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = viper.GetInt(keyTickRate)
	cfg.Seed = viper.GetInt64(keySeed)
	return cfg
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// buildSensors picks the step and activity providers named in the dashboard
// config. hub may be nil when no feed is running.
func buildSensors(cfg config.DashboardConfig, store *storage.Store, hub *feed.Hub) (sensor.Pedometer, sensor.ActivityMonitor, error) {
	var ped sensor.Pedometer
	switch cfg.Pedometer {
	case "sim", "":
		ped = sensor.SimPedometer{StepsPerHour: cfg.Sim.StepsPerHour, Seed: cfg.Sim.Seed}
	case "store":
		if store == nil {
			ped = sensor.Unavailable{}
		} else {
			ped = sensor.StorePedometer{History: store}
		}
	case "none":
		ped = sensor.Unavailable{}
	default:
		return nil, nil, fmt.Errorf("unknown pedometer %q (want sim, store or none)", cfg.Pedometer)
	}

	var mon sensor.ActivityMonitor
	switch cfg.Activity {
	case "sim", "":
		mon = sensor.SimActivityMonitor{Interval: cfg.Sim.ActivityInterval, Seed: cfg.Sim.Seed}
	case "feed":
		if hub == nil {
			mon = sensor.Unavailable{}
		} else {
			mon = sensor.FeedActivityMonitor{Feed: hub}
		}
	case "none":
		mon = sensor.Unavailable{}
	default:
		return nil, nil, fmt.Errorf("unknown activity source %q (want sim, feed or none)", cfg.Activity)
	}
	return ped, mon, nil
}

// feedRunner is a motion feed started next to a UI or the SSH server.
type feedRunner struct {
	hub  *feed.Hub
	done chan error
}

// startFeed runs the feed on addr in the background until ctx is done.
// An empty addr starts nothing and returns nil.
func startFeed(ctx context.Context, addr string, store *storage.Store, logger *log.Logger) (*feedRunner, error) {
	if addr == "" {
		return nil, nil
	}
	cfg, err := config.LoadFeed(viper.GetString(keyFeedConfig))
	if err != nil {
		return nil, err
	}
	cfg.Address = addr

	hub := feed.NewHub(cfg.Buffer)
	var steps feed.StepRecorder
	if store != nil {
		steps = store
	}
	srv := feed.NewServer(cfg, hub, steps, logger)

	r := &feedRunner{hub: hub, done: make(chan error, 1)}
	go func() {
		r.done <- srv.ListenAndServe(ctx)
	}()
	return r, nil
}

// Hub returns the runner's hub, nil for a nil runner.
func (r *feedRunner) Hub() *feed.Hub {
	if r == nil {
		return nil
	}
	return r.hub
}

// Wait blocks until the feed has shut down, at most timeout.
func (r *feedRunner) Wait(timeout time.Duration) error {
	if r == nil {
		return nil
	}
	select {
	case err := <-r.done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("feed did not stop within %s", timeout)
	}
}
