package client

import "errors"

var (
	// The daemon closed the connection without writing a response,
	// which is how it reports a failed request.
	ErrNoResponse = errors.New("no response from daemon")
)
