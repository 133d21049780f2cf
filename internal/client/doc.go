// Package client implements the kilnc side of the daemon protocol.
//
// A client connects, sends exactly one request line, and reads exactly
// one response line before the daemon closes the connection. There is
// no session to manage: every call dials fresh.
//
// Example usage:
//
//	status, err := client.Run(ctx, "127.0.0.1:7777", []string{"build", "main.c"})
//	if errors.Is(err, client.ErrNoResponse) {
//	    // the daemon failed the request and said nothing
//	}
package client
