package main

import (
	"log/slog"
	"os"

	"github.com/kilnhq/kilnd/internal"
	"github.com/kilnhq/kilnd/internal/cli"
	"github.com/kilnhq/kilnd/internal/logging"
	"github.com/kilnhq/kilnd/internal/runner"
)

// The entry point for the kilnd daemon.
//
// Initializes logging, displays startup information, and executes the root
// command with the exec-backed operation. If any error occurs during
// execution, it exits with a non-zero code.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("kilnd is starting",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(runner.New()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates the daemon logger seeded from build-time linker flags.
//
// The logger is reconfigured after flag parsing via cli.Execute.
func logger() *slog.Logger {
	handler := logging.NewHandler(os.Stderr)
	handler.SetLevel(logLevel())
	return slog.New(handler)
}

// Returns the log level derived from build-time linker flags.
func logLevel() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsVerbose() {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
