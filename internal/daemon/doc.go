// Package daemon implements the kilnd server.
//
// The daemon listens on a TCP port for argument vectors from build
// clients. Each connection carries a single request-response exchange:
// the client sends one NUL-separated command line, a worker slot
// executes the daemon's operation with that vector, and the integer
// status is written back before the connection closes. A request that
// fails produces no response at all.
//
// Connections are handled on a fixed pool of slots, one per processor
// core by default, with excess connections queueing unboundedly. An
// empty request line is the shutdown sentinel: the daemon stops taking
// new work, drains the slots, and terminates the process.
//
// Example usage:
//
//	srv := daemon.New(daemon.Config{Port: 7777}, runner.New())
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Close()
//
//	srv.Wait()
package daemon
