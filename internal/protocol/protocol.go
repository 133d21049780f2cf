package protocol

import (
	"strconv"
	"strings"
)

const (
	// Separator sits between tokens of an encoded argument vector.
	Separator = "\x00"

	// Terminator ends every request and response line.
	Terminator = "\n"
)

// A single decoded request.
type Command struct {
	Args     []string // Argument vector. Empty when Shutdown is set.
	Shutdown bool     // Whether the request is the shutdown sentinel.
}

// Parses one request line into a command.
//
// The line must already be stripped of its terminator. An empty line
// is the shutdown sentinel; anything else is split on the separator.
// Trailing empty tokens are dropped, so "a\x00b\x00" and "a\x00b"
// decode to the same vector, while interior empty tokens survive.
func Parse(line string) Command {
	if line == "" {
		return Command{Shutdown: true}
	}

	args := strings.Split(line, Separator)
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	return Command{Args: args}
}

// Strips a single trailing line break, LF or CRLF, from a raw line.
//
// Only the final terminator is removed; a carriage return that is part
// of the payload stays put.
func TrimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Encodes an argument vector as a request line, terminator included.
//
// An empty vector encodes as the shutdown sentinel.
func Encode(args []string) string {
	return strings.Join(args, Separator) + Terminator
}

// Formats an operation status as a response line, terminator included.
func FormatResult(status int) string {
	return strconv.Itoa(status) + Terminator
}
