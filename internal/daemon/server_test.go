package daemon

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/kilnhq/kilnd/internal/logging"
)

func TestStartWritesPIDFile(t *testing.T) {
	pidfile := filepath.Join(t.TempDir(), "kilnd.pid")
	srv := startServer(t, Config{PIDFile: pidfile}, opReturning(0))

	data, err := os.ReadFile(pidfile)
	if err != nil {
		t.Fatalf("PID file not written: %v", err)
	}
	if got, want := string(data), strconv.Itoa(os.Getpid()); got != want {
		t.Fatalf("PID file = %q, want %q", got, want)
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(pidfile); !os.IsNotExist(err) {
		t.Fatalf("PID file still present after Close: %v", err)
	}
}

func TestStartFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := New(Config{Port: port, PIDFile: filepath.Join(t.TempDir(), "kilnd.pid")}, opReturning(0))

	if err := srv.Start(); err == nil {
		srv.Close()
		t.Fatal("Start succeeded on a port already in use")
	}
}

func TestWaitUnblocksOnClose(t *testing.T) {
	srv := startServer(t, Config{}, opReturning(0))

	waited := make(chan struct{})
	go func() {
		srv.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait returned before Close")
	case <-time.After(50 * time.Millisecond):
	}

	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-waited:
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return after Close")
	}

	// A second Close must be a no-op.
	srv.Close()
}

func TestNoConnectionsAfterClose(t *testing.T) {
	srv := startServer(t, Config{}, opReturning(0))
	addr := srv.Addr().String()

	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if conn, err := net.Dial("tcp", addr); err == nil {
		conn.Close()
		t.Fatal("dial succeeded after Close")
	}
}

// Starts a server on an ephemeral port with a throwaway PID file and
// registers its teardown.
func startServer(t *testing.T, cfg Config, op Operation) *Server {
	t.Helper()

	if cfg.PIDFile == "" {
		cfg.PIDFile = filepath.Join(t.TempDir(), "kilnd.pid")
	}

	srv := New(cfg, op)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func opReturning(status int) Operation {
	return OperationFunc(func(context.Context, []string) (int, error) {
		return status, nil
	})
}

// Connects to the server with a test deadline applied.
func dial(t *testing.T, srv *Server) net.Conn {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	conn.SetDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// Sends one raw payload and returns everything the server wrote back
// before closing the connection.
func exchange(t *testing.T, srv *Server, payload string) string {
	t.Helper()

	conn := dial(t, srv)
	if _, err := io.WriteString(conn, payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(resp)
}

// Replaces the process exit with a capture channel for the duration of
// the test.
func interceptExit(t *testing.T) <-chan int {
	t.Helper()

	codes := make(chan int, 1)
	prev := exit
	exit = func(code int) { codes <- code }
	t.Cleanup(func() { exit = prev })
	return codes
}

// Swaps the default logger for one writing to the returned buffer.
func captureLogs(t *testing.T, level slog.Level) *syncBuffer {
	t.Helper()

	buf := &syncBuffer{}
	handler := logging.NewHandler(buf)
	handler.SetLevel(level)

	prev := slog.Default()
	slog.SetDefault(slog.New(handler))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

// A buffer safe to write from worker slots and read from the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
