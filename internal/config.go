package internal

import (
	"os"
	"strconv"
	"sync/atomic"
)

var (
	debugMode   atomic.Bool // Indicates whether debug logging is enabled.
	verboseMode atomic.Bool // Indicates whether verbose logging is enabled.
)

// Parses the linker flags into usable runtime variables.
//
// The rawDebug and rawVerbose variables should be set via ldflags during
// the build process. If not set, they default to "false". The KILND_DEBUG
// environment variable overrides the built-in debug default at startup,
// since the daemon's fixed CLI grammar leaves no room for a debug flag.
func init() {
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode.Store(v)
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode.Store(v)
	}
	if v, err := strconv.ParseBool(os.Getenv("KILND_DEBUG")); err == nil {
		debugMode.Store(v)
	}
}

// Enables or disables debug mode.
func SetDebug(enabled bool) {
	debugMode.Store(enabled)
}

// Returns true if debug mode is enabled.
func IsDebug() bool {
	return debugMode.Load()
}

// Enables or disables verbose logging.
func SetVerbose(enabled bool) {
	verboseMode.Store(enabled)
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode.Load()
}
