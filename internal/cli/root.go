package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/kilnhq/kilnd/internal"
	"github.com/kilnhq/kilnd/internal/daemon"
	"github.com/kilnhq/kilnd/internal/logging"
)

// Represents the kilnd command line.
type rootCmd struct {
	Verbose bool `short:"v" help:"Log each request and its result."`
	Port    int  `arg:"" help:"TCP port to listen on."`
}

// Holds the parsed command line for the daemon.
var RootCmd rootCmd

// Parses arguments, configures logging, and serves the given operation.
func Execute(op daemon.Operation) error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("The kiln build daemon.\n\nServes a single build operation over TCP: each connection carries one NUL-separated argument vector and receives the operation's integer status in reply."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.BindTo(op, (*daemon.Operation)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Executes the daemon.
//
// Starts the server on the requested port and blocks until the context
// is cancelled (e.g. via SIGINT or SIGTERM). A shutdown request
// arriving on the wire exits the process directly and never returns
// here.
func (c *rootCmd) Run(ctx context.Context, op daemon.Operation) error {
	srv := daemon.New(daemon.Config{Port: c.Port}, op)

	if err := srv.Start(); err != nil {
		return err
	}

	slog.Info("kilnd is running")

	<-ctx.Done()

	slog.Info("shutting down")
	return srv.Close()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*logging.Handler)
	if !ok {
		return // Not the daemon's handler, nothing to configure
	}

	if RootCmd.Verbose {
		internal.SetVerbose(true)
	}

	if internal.IsDebug() {
		handler.SetLevel(slog.LevelDebug)
	} else if internal.IsVerbose() {
		handler.SetLevel(slog.LevelInfo)
	} else {
		handler.SetLevel(slog.LevelWarn)
	}
}
