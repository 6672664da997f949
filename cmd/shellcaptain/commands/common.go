package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ecairns22/ShellCaptain/internal/config"
	"github.com/ecairns22/ShellCaptain/internal/history"
	"github.com/ecairns22/ShellCaptain/internal/proc"
)

const varDir = "/var/lib/shellcaptain"

// app bundles the wired-up executor and settings every command needs.
// The caller is responsible for calling cleanup.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	exec    proc.Executor
	stream  proc.Settings
	capture proc.Settings
	cleanup func()
}

// buildApp loads config and wires the executor, settings, logger, and
// invocation history. History being unavailable degrades to a warning;
// the tool still works without it.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	var ex proc.Executor = proc.NewLocal()
	cleanup := func() {}
	if !cfg.History.Disabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("invocation history unavailable", "path", cfg.History.Path, "err", err)
		} else {
			ex = history.NewRecorder(ex, store)
			cleanup = func() { store.Close() }
		}
	}

	stream := proc.StreamSettings(logger)
	stream.MaxBufferSize = cfg.Exec.StreamBufferSize
	capture := proc.CaptureSettings(logger)
	capture.MaxBufferSize = cfg.Exec.CaptureMaxBytes

	return &app{
		cfg:     cfg,
		logger:  logger,
		exec:    ex,
		stream:  stream,
		capture: capture,
		cleanup: cleanup,
	}, nil
}

// openHistory opens just the history store for read-only commands.
func openHistory() (*history.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history db: %w", err)
	}
	return store, cfg, nil
}
