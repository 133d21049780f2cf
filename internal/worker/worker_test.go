package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolSlotCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit count", workers: 3, want: 3},
		{name: "zero uses processor cores", workers: 0, want: runtime.NumCPU()},
		{name: "negative uses processor cores", workers: -1, want: runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPool(tt.workers).Workers(); got != tt.want {
				t.Fatalf("Workers() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSubmitRunsEveryTask(t *testing.T) {
	pool := NewPool(4)

	var done atomic.Int64
	for i := 0; i < 100; i++ {
		pool.Submit(func() { done.Add(1) })
	}

	waitFor(t, func() bool { return done.Load() == 100 }, "not all tasks ran")
	pool.Quiesce(0)

	if n := pool.Pending(); n != 0 {
		t.Fatalf("Pending() = %d after drain, want 0", n)
	}
}

func TestConcurrencyBoundedBySlots(t *testing.T) {
	pool := NewPool(2)

	gate := make(chan struct{})
	started := make(chan struct{}, 5)
	for i := 0; i < 5; i++ {
		pool.Submit(func() {
			started <- struct{}{}
			<-gate
		})
	}

	<-started
	<-started

	if got := pool.Active(); got != 2 {
		t.Fatalf("Active() = %d, want 2", got)
	}
	if got := pool.Pending(); got != 3 {
		t.Fatalf("Pending() = %d, want 3", got)
	}

	// No third task may start while both slots are held.
	select {
	case <-started:
		t.Fatal("task started beyond the slot count")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	pool.Quiesce(0)

	if got := pool.Active(); got != 0 {
		t.Fatalf("Active() = %d after quiesce, want 0", got)
	}
	if got := pool.Pending(); got != 0 {
		t.Fatalf("Pending() = %d after quiesce, want 0", got)
	}
}

func TestTasksRunInSubmissionOrder(t *testing.T) {
	pool := NewPool(1)

	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		pool.Submit(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 5
	}, "not all tasks ran")

	mu.Lock()
	defer mu.Unlock()
	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want submission order", order)
		}
	}
}

func TestQuiesceWaitsForActiveTasks(t *testing.T) {
	pool := NewPool(2)

	gate := make(chan struct{})
	started := make(chan struct{})
	pool.Submit(func() {
		close(started)
		<-gate
	})
	<-started

	quiesced := make(chan struct{})
	go func() {
		pool.Quiesce(0)
		close(quiesced)
	}()

	select {
	case <-quiesced:
		t.Fatal("Quiesce returned while a task was executing")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)

	select {
	case <-quiesced:
	case <-time.After(5 * time.Second):
		t.Fatal("Quiesce did not return after the task finished")
	}
}

func TestQuiesceFromInsideTask(t *testing.T) {
	pool := NewPool(2)

	gate := make(chan struct{})
	blockerUp := make(chan struct{})
	pool.Submit(func() {
		close(blockerUp)
		<-gate
	})
	<-blockerUp

	// A task may wait out every slot but its own, which is how the
	// shutdown request waits for the rest of the pool.
	waiterDone := make(chan struct{})
	waiterUp := make(chan struct{})
	pool.Submit(func() {
		close(waiterUp)
		pool.Quiesce(1)
		close(waiterDone)
	})
	<-waiterUp

	select {
	case <-waiterDone:
		t.Fatal("Quiesce(1) returned while another task was executing")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)

	select {
	case <-waiterDone:
	case <-time.After(5 * time.Second):
		t.Fatal("Quiesce(1) did not return after the other task finished")
	}
}

func TestQueueIsUnbounded(t *testing.T) {
	pool := NewPool(1)

	gate := make(chan struct{})
	started := make(chan struct{})
	pool.Submit(func() {
		close(started)
		<-gate
	})
	<-started

	var done atomic.Int64
	for i := 0; i < 1000; i++ {
		pool.Submit(func() { done.Add(1) })
	}

	if got := pool.Pending(); got != 1000 {
		t.Fatalf("Pending() = %d, want 1000", got)
	}

	close(gate)
	waitFor(t, func() bool { return done.Load() == 1000 }, "queued tasks did not drain")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}
