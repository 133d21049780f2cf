package client

import (
	"bufio"
	"context"
	"io"
	"net"
	"strconv"

	"github.com/pkg/errors"

	"github.com/kilnhq/kilnd/internal/protocol"
)

// Runs one argument vector on the daemon at addr and returns the
// status it reported.
//
// The vector is sent as a single request line and the response is one
// decimal line. A connection that closes before any response byte
// arrives yields [ErrNoResponse]: the daemon logged the failure on its
// side and has nothing more to say.
func Run(ctx context.Context, addr string, args []string) (int, error) {
	conn, err := dial(ctx, addr)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, protocol.Encode(args)); err != nil {
		return 0, errors.Wrap(err, "failed to send command")
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return 0, ErrNoResponse
		}
		return 0, errors.Wrap(err, "failed to read response")
	}

	status, err := strconv.Atoi(protocol.TrimTerminator(line))
	if err != nil {
		return 0, errors.Wrapf(err, "malformed response %q", line)
	}
	return status, nil
}

// Sends the shutdown sentinel to the daemon at addr.
//
// The daemon never answers the sentinel; its exit closes the
// connection, and that close is awaited here so a caller returning
// from Shutdown can assume the port is free or about to be.
func Shutdown(ctx context.Context, addr string) error {
	conn, err := dial(ctx, addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := io.WriteString(conn, protocol.Encode(nil)); err != nil {
		return errors.Wrap(err, "failed to send shutdown")
	}

	// Block until the daemon's exit closes the connection. Nothing it
	// could send back would mean anything.
	conn.Read(make([]byte, 1))
	return nil
}

func dial(ctx context.Context, addr string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", addr)
	}
	return conn, nil
}
