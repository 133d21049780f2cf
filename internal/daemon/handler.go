package daemon

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/kilnhq/kilnd/internal/protocol"
)

// Terminates the process at the end of the shutdown sequence. A
// variable so tests can intercept the exit.
var exit = os.Exit

// Processes a single connection.
//
// Reads one request line, then either executes the operation and
// writes the status back, or runs the shutdown sequence if the line is
// the sentinel. Every failure ends the exchange the same way: logged,
// connection closed, no response. The closed connection is the only
// failure signal the client gets.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handler panic", "panic", r)
		}
	}()

	// A line that ran into EOF with content is still a request; only a
	// stream that ends before any content is a failed read.
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		slog.Error("read error", "error", err)
		return
	}

	cmd := protocol.Parse(protocol.TrimTerminator(line))
	if cmd.Shutdown {
		s.shutdown()
		return
	}

	slog.Info("executing", "argv", strings.Join(cmd.Args, " "))

	status, err := s.op.Execute(context.Background(), cmd.Args)
	if err != nil {
		slog.Error("operation failed", "error", err)
		return
	}

	slog.Info("finished", "status", status)

	if _, err := io.WriteString(conn, protocol.FormatResult(status)); err != nil {
		slog.Error("write error", "error", err)
	}
}

// Runs the shutdown sequence for the sentinel request.
//
// New connections stop being taken, every other in-flight request is
// allowed to finish, the PID file is removed, and the process exits.
// The exit tears the process down without unwinding, so the sentinel
// connection closes by process death, never by response. Work still
// sitting in the queue is abandoned.
func (s *Server) shutdown() {
	slog.Info("shutting down")

	s.running.Store(false)
	s.pool.Quiesce(1)
	os.Remove(s.pidfile)

	exit(0)
}
