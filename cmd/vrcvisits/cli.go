package main

import (
	"io"
	"log/slog"

	"github.com/graaaaa/vrcvisits/internal/app"
	"github.com/graaaaa/vrcvisits/internal/config"
	"github.com/graaaaa/vrcvisits/internal/launch"
	"github.com/graaaaa/vrcvisits/internal/notify"
	"github.com/graaaaa/vrcvisits/internal/visit"
)

// cli holds the process-level dependencies shared by all commands.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	loadConfig  func() config.Config
	clock       visit.Clock
	newLauncher func(logger *slog.Logger) app.Launcher
	// terminal overrides terminal detection for the bell (for testing).
	terminal    func() bool
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: loadConfig,
		clock:      visit.DefaultClock,
		newLauncher: func(logger *slog.Logger) app.Launcher {
			return launch.New(launch.WithLogger(logger))
		},
	}
}

// loadConfig reads the config file and applies environment overrides.
// A missing or corrupt file falls back to defaults with a warning.
func loadConfig() config.Config {
	cfg, _ := config.LoadConfig()
	return config.ApplyEnvOverrides(cfg)
}

func (c *cli) logger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level}))
}

func (c *cli) reporter(quiet bool, logger *slog.Logger) *notify.Reporter {
	opts := []notify.Option{notify.WithQuiet(quiet), notify.WithLogger(logger)}
	if c.terminal != nil {
		opts = append(opts, notify.WithTerminalCheck(c.terminal))
	}
	return notify.NewReporter(c.stderr, opts...)
}

// report shows err to the user and passes it through. Nil is a no-op.
func (c *cli) report(err error) error {
	if err != nil {
		c.reporter(false, c.logger(false)).Show(describe(err))
	}
	return err
}
