// Package runner executes argument vectors as local processes.
//
// The runner is the operation kilnd serves by default: the first token
// of the request vector names the binary, the remaining tokens are its
// arguments, and the child's exit code becomes the status sent back to
// the client. Child output is not captured or relayed; it goes to the
// daemon's own streams, so compiler diagnostics show up in the console
// the daemon was started from.
package runner
