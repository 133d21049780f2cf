package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kilnhq/kilnd/internal"
	"github.com/kilnhq/kilnd/internal/client"
)

// Represents the kilnc command line.
var rootCmd struct {
	Port     int              `short:"p" required:"" help:"Port the daemon listens on."`
	Host     string           `default:"127.0.0.1" help:"Host the daemon listens on."`
	Shutdown bool             `help:"Send the shutdown sentinel instead of a command."`
	Version  kong.VersionFlag `help:"Show version information."`
	Args     []string         `arg:"" optional:"" passthrough:"" help:"Argument vector to send to the daemon."`
}

// The entry point for kilnc, the short-lived counterpart of kilnd.
//
// kilnc connects to a running daemon, sends one argument vector or the
// shutdown sentinel, and exits with the status the daemon reported.
func main() {
	kong.Parse(&rootCmd,
		kong.Name("kilnc"),
		kong.Description("Client for a running kilnd daemon.\n\nSends one argument vector and exits with the status the daemon reports for it."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
	)

	ctx := context.Background()
	addr := fmt.Sprintf("%s:%d", rootCmd.Host, rootCmd.Port)

	if rootCmd.Shutdown {
		if err := client.Shutdown(ctx, addr); err != nil {
			fatal(err)
		}
		return
	}

	if len(rootCmd.Args) == 0 {
		fatal(errors.New("nothing to send: give a command or --shutdown"))
	}

	status, err := client.Run(ctx, addr, rootCmd.Args)
	if err != nil {
		fatal(err)
	}
	os.Exit(status)
}

// Reports a client-side failure and exits.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "kilnc: %v\n", err)
	os.Exit(1)
}
