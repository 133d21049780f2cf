package worker

import (
	"runtime"
	"sync"
)

// A unit of work executed on one pool slot.
type Task func()

// A fixed set of worker goroutines fed from an unbounded task queue.
//
// The zero value is not usable; create pools with [NewPool].
type Pool struct {
	mu      sync.Mutex
	hasWork *sync.Cond // Signaled when the queue gains a task.
	idle    *sync.Cond // Broadcast when a task finishes.
	queue   []Task     // Pending tasks in submission order.
	workers int        // Slot count, fixed at creation.
	active  int        // Tasks currently executing.
}

// Creates a pool with the given number of slots and starts its workers.
//
// A count of zero or less uses the number of processor cores, which is
// the daemon's default degree of parallelism.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{workers: workers}
	p.hasWork = sync.NewCond(&p.mu)
	p.idle = sync.NewCond(&p.mu)

	for i := 0; i < workers; i++ {
		go p.work()
	}
	return p
}

// Enqueues a task for execution on the next free slot.
//
// Submit never blocks: the queue grows without bound and tasks run in
// submission order as slots free up.
func (p *Pool) Submit(t Task) {
	p.mu.Lock()
	p.queue = append(p.queue, t)
	p.mu.Unlock()
	p.hasWork.Signal()
}

// Blocks until at most max tasks are executing.
//
// The count covers executing tasks only, not queued ones. A task may
// quiesce the pool it runs on by passing its own slot as max: the
// daemon's shutdown handler passes 1 to wait for every request but the
// one that asked.
func (p *Pool) Quiesce(max int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.active > max {
		p.idle.Wait()
	}
}

// Returns the number of tasks currently executing.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Returns the number of queued tasks that have not started.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Returns the slot count.
func (p *Pool) Workers() int {
	return p.workers
}

// Runs one slot: dequeue a task, execute it, repeat forever.
//
// A task is counted as active before the slot releases the lock, so at
// no point is work in flight but invisible to Quiesce.
func (p *Pool) work() {
	p.mu.Lock()
	for {
		for len(p.queue) == 0 {
			p.hasWork.Wait()
		}

		t := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.active++
		p.mu.Unlock()

		t()

		p.mu.Lock()
		p.active--
		p.idle.Broadcast()
	}
}
