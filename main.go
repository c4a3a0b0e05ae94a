// Package main starts doTile on $DISPLAY.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/joho/godotenv"
	"github.com/phsym/console-slog"

	"github.com/BobdaProgrammer/doTile/config"
	"github.com/BobdaProgrammer/doTile/wm"
	"github.com/BobdaProgrammer/doTile/x11"
)

// restartEnv is set on the re-executed process so the startup command only
// runs once per session.
const restartEnv = "DOTILE_RESTARTED"

type Options struct {
	Debug  bool   `doc:"enable debug logging"`
	Config string `doc:"config file (default $XDG_CONFIG_HOME/dotile/config.yaml)"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		level := slog.LevelInfo
		if options.Debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
			Level: level,
		})))

		run(hooks, options.Config)
	})

	cli.Run()
}

// run manages the display from the start hook until the manager quits or the
// stop hook cancels it, then exits or re-executes.
func run(hooks humacli.Hooks, path string) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	hooks.OnStart(func() {
		defer close(done)

		restart, err := serve(ctx, path)
		switch {
		case err != nil && !errors.Is(err, context.Canceled):
			slog.Error("window manager stopped", "error", err)
			os.Exit(1)
		case restart:
			if err := reexec(); err != nil {
				slog.Error("couldn't restart", "error", err)
				os.Exit(1)
			}
		}
	})
	hooks.OnStop(func() {
		cancel()
		<-done
	})
}

// serve runs one window manager session and reports whether a restart was
// requested.
func serve(ctx context.Context, path string) (bool, error) {
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return false, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("configuration has errors, using defaults for them", "error", err)
	}
	if os.Getenv(restartEnv) != "" {
		cfg.OnStartup = ""
	}

	backend, err := x11.New(cfg.Theme)
	if err != nil {
		return false, fmt.Errorf("couldn't initialise window manager: %w", err)
	}

	manager, err := wm.New(backend, cfg)
	if err != nil {
		backend.Close()
		return false, fmt.Errorf("couldn't initialise window manager: %w", err)
	}

	runErr := manager.Run(ctx)
	if err := manager.Close(); err != nil {
		slog.Error("couldn't shut down cleanly", "error", err)
	}
	if runErr != nil {
		return false, runErr
	}
	return manager.RestartRequested(), nil
}

// reexec replaces the process with a fresh copy of itself.
func reexec() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("couldn't locate executable: %w", err)
	}
	slog.Info("restarting", "executable", exe)
	os.Setenv(restartEnv, "1")
	return syscall.Exec(exe, os.Args, os.Environ())
}
