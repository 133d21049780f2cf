// Package worker implements the daemon's execution slots.
//
// A pool owns a fixed number of worker goroutines fed from an
// unbounded FIFO queue. Submissions never block and are never
// rejected; work beyond the slot count waits its turn. The pool keeps
// an exact count of running tasks and can block a caller until the
// pool drains, which is how the daemon waits out in-flight requests
// before a shutdown.
//
// Example usage:
//
//	pool := worker.NewPool(0) // one slot per processor core
//	pool.Submit(func() { handle(conn) })
//	...
//	pool.Quiesce(0) // wait for every task to finish
//
// Pools are never torn down. The daemon's pool lives exactly as long
// as the process, so there is no Stop and no way to interrupt a
// running task.
package worker
