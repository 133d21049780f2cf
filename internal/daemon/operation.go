package daemon

import "context"

// Executes one request's argument vector and yields an integer status.
//
// The daemon treats the operation as opaque: the vector passes through
// untouched and the status is relayed to the client verbatim, whatever
// it means to the two of them. Implementations are called concurrently,
// one call per connection, and must be safe for that.
//
// A returned error means the operation produced no status at all; the
// daemon logs it and closes the connection without a response.
type Operation interface {
	Execute(ctx context.Context, args []string) (int, error)
}

// Adapts a plain function to the [Operation] interface.
type OperationFunc func(ctx context.Context, args []string) (int, error)

// Calls the function itself.
func (f OperationFunc) Execute(ctx context.Context, args []string) (int, error) {
	return f(ctx, args)
}
