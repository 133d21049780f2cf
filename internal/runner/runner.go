package runner

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Runs argument vectors as child processes of the daemon.
//
// A non-zero exit code is not treated as an error; it is the result
// the client asked for. Errors are reserved for work that never
// produced an exit code at all: an empty vector, a binary that does
// not exist, or a process that could not be started.
type Runner struct {
	Stdout io.Writer // Destination for child stdout. Nil uses the daemon's stdout.
	Stderr io.Writer // Destination for child stderr. Nil uses the daemon's stderr.
}

// Creates a runner wired to the daemon's standard streams.
func New() *Runner {
	return &Runner{}
}

// Runs the vector and returns the child's exit code.
//
// The child inherits the daemon's environment and working directory.
// Cancelling the context kills the child.
func (r *Runner) Execute(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}

	return 0, errors.Wrapf(err, "failed to run %s", args[0])
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
