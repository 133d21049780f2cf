// Parses flags and configures logging for the kilnd daemon.
//
// The daemon accepts a single optional flag and one positional
// argument:
//
//	-v, --verbose   Log each request and its result.
//	<port>          TCP port to listen on.
//
// Anything else is a usage error. Flags override build-time defaults set
// via linker flags. After parsing, the global logger is reconfigured to
// reflect the final level before the server starts.
package cli
