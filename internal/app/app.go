// Package app wires one dispatch invocation together: configuration,
// logging, the window directory backend and the mode-specific flows.
// All state is constructed per invocation and threaded by ownership;
// nothing survives the process.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"winleap/internal/wm"
	"winleap/pkg/config"
	"winleap/pkg/logger"
	"winleap/pkg/notify"
)

// Options is the dispatch invocation surface shared by both modes.
type Options struct {
	ConfigPath       string // explicit config override, empty for search order
	CurrentWorkspace bool   // restrict candidates to the current workspace
	Debug            bool   // force debug logging regardless of config
	Cycle            bool   // mark mode: cycle-next instead of explicit selection
}

// App holds the per-invocation collaborators.
type App struct {
	opts     Options
	cfg      *config.Config
	log      *logger.Logger
	notifier *notify.NotifyService
}

// New loads configuration and builds the logger for one invocation.
// The debug log file is only opened when debug is enabled by flag or
// config.
func New(opts Options) (*App, error) {
	bootLog, err := logger.NewLogger(
		logger.WithConsole(),
		logger.WithLevel(bootLevel(opts)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	path := config.ResolvePath(opts.ConfigPath)
	cfg, err := config.Load(path, bootLog)
	if err != nil {
		bootLog.Error("Failed to load configuration", err, "path", path)
		return nil, err
	}

	log := bootLog
	if opts.Debug || cfg.Debug() {
		fileLog, err := logger.NewLogger(
			logger.WithFile(logger.DebugLogPath()),
			logger.WithLevel(zerolog.DebugLevel),
		)
		if err != nil {
			bootLog.Warn("Debug log unavailable, logging to console only", "error", err)
		} else {
			bootLog.Close()
			log = fileLog
		}
	}

	log.Debug("Dispatch invocation",
		"config_path", cfg.Path(),
		"marks", cfg.Marks(),
		"current_workspace", opts.CurrentWorkspace,
		"cycle", opts.Cycle)

	return &App{
		opts:     opts,
		cfg:      cfg,
		log:      log,
		notifier: notify.NewNotifyService(log),
	}, nil
}

func bootLevel(opts Options) zerolog.Level {
	if opts.Debug {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}

// Close releases the invocation's logger.
func (a *App) Close() {
	a.log.Close()
}

// scopeFilter drops windows outside the current workspace when the
// invocation is scope-restricted. Windows with an unknown workspace
// are excluded from a restricted scope.
func (a *App) scopeFilter(dir wm.Directory, candidates []wm.Window) ([]wm.Window, error) {
	if !a.opts.CurrentWorkspace {
		return candidates, nil
	}

	current, err := dir.CurrentDesktop()
	if err != nil {
		return nil, fmt.Errorf("cannot determine current workspace: %w", err)
	}
	a.log.Debug("Restricting to current workspace", "desktop", current)

	scoped := candidates[:0:0]
	for _, w := range candidates {
		if w.Desktop == current {
			scoped = append(scoped, w)
		}
	}
	return scoped, nil
}
