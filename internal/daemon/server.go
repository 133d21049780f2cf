package daemon

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/kilnhq/kilnd/internal/paths"
	"github.com/kilnhq/kilnd/internal/worker"
)

// Holds server configuration.
type Config struct {
	Port    int    // TCP port to listen on. Zero lets the kernel pick one.
	Workers int    // Worker slot count. Zero uses the processor core count.
	PIDFile string // Override for the PID file path. Empty uses the default.
}

// Serves one operation over a TCP port.
//
// The server is the shared handle between the accept loop, the worker
// slots, and the shutdown sequence: the accept loop consults its
// running flag between accepts, and the sentinel handler clears that
// flag before draining the pool.
type Server struct {
	op      Operation
	port    int
	pidfile string

	pool      *worker.Pool
	listener  net.Listener
	running   atomic.Bool // Whether new connections may be taken.
	closeOnce sync.Once   // Guards the done channel.
	done      chan struct{}
}

// Creates a new server instance.
//
// The socket is not opened until [Server.Start] is called.
func New(cfg Config, op Operation) *Server {
	pidfile := cfg.PIDFile
	if pidfile == "" {
		pidfile = paths.PIDFile()
	}

	return &Server{
		op:      op,
		port:    cfg.Port,
		pidfile: pidfile,
		pool:    worker.NewPool(cfg.Workers),
		done:    make(chan struct{}),
	}
}

// Opens the listening socket and begins accepting connections.
//
// Failure to bind is returned to the caller and is the only fatal
// startup condition; everything after the socket is up is logged and
// survived.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", s.port)
	}

	s.listener = listener
	s.running.Store(true)

	if err := s.writePID(); err != nil {
		slog.Warn("failed to write PID file", "error", err)
	}

	slog.Info("started server", "addr", listener.Addr())

	go s.accept()
	return nil
}

// Returns the address the listening socket is bound to.
//
// Useful when the configured port was zero and the kernel picked one.
// Only valid after [Server.Start] succeeds.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stops accepting connections, drains in-flight requests, and removes
// the PID file.
//
// Close is the operator path, reached when a signal interrupts the
// daemon. A shutdown request arriving on the wire takes the process
// down without ever returning here. Close is idempotent.
func (s *Server) Close() error {
	s.running.Store(false)

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}

	s.pool.Quiesce(0)
	os.Remove(s.pidfile)

	s.closeOnce.Do(func() { close(s.done) })
	return err
}

// Blocks until the server stops.
func (s *Server) Wait() {
	<-s.done
}

// Accepts connections in a loop and hands them to the pool.
//
// The running flag is consulted between accepts only: a connection the
// kernel has already delivered when shutdown begins may still be
// submitted, and is finished or abandoned by the process exit. Accept
// errors while running are logged and the loop continues; the error
// produced by closing the listener ends the loop silently.
func (s *Server) accept() {
	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() {
				return
			}
			slog.Error("accept error", "error", err)
			continue
		}

		s.pool.Submit(func() { s.handle(conn) })
	}
}

// Writes the daemon PID to the PID file so operators can detect a
// running daemon and send it signals.
func (s *Server) writePID() error {
	if err := os.MkdirAll(filepath.Dir(s.pidfile), paths.DefaultDirMode); err != nil {
		return err
	}
	return os.WriteFile(s.pidfile, []byte(fmt.Sprintf("%d", os.Getpid())), paths.DefaultFileMode)
}
