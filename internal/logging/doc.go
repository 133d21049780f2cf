// Package logging implements the daemon's slog handler.
//
// The handler renders each record as a single line on a stream,
// colorizing the level tag when the stream is an interactive terminal.
// Its minimum level can be swapped after creation, which lets the CLI
// re-level the process-wide logger once flags are parsed: the daemon
// starts at warning level and is raised to info by the verbose flag,
// so without it a healthy daemon prints nothing at all.
//
// Example usage:
//
//	handler := logging.NewHandler(os.Stderr)
//	handler.SetLevel(slog.LevelInfo)
//	slog.SetDefault(slog.New(handler))
package logging
