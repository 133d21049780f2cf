// Package protocol implements the wire format between kilnc and kilnd.
//
// A request is a single line of UTF-8 text: tokens of the argument
// vector separated by NUL bytes, terminated by a line break. An empty
// line is the shutdown sentinel. A response is a single line holding
// the decimal form of the operation's integer status. Each connection
// carries exactly one exchange; a failed request produces no response
// at all, only the connection closing.
package protocol
