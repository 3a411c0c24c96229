package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countTask struct {
	counter *atomic.Int64
	fail    bool
}

type countOutcome struct{ err error }

func (o countOutcome) Err() error { return o.err }

func (t countTask) Run(ctx context.Context) Outcome {
	t.counter.Add(1)
	if t.fail {
		return countOutcome{err: errors.New("task failed")}
	}
	return countOutcome{}
}

func TestPool_RunsEverySubmittedTask(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(context.Background(), 4)
	pool.Start()

	const submitted = 50
	for i := 0; i < submitted; i++ {
		pool.Submit(countTask{counter: &counter, fail: i%5 == 0})
	}
	outcomes := pool.Drain()

	if counter.Load() != submitted {
		t.Errorf("expected %d tasks run, got %d", submitted, counter.Load())
	}
	if len(outcomes) != submitted {
		t.Fatalf("expected %d outcomes, got %d", submitted, len(outcomes))
	}
	failed := 0
	for _, o := range outcomes {
		if o.Err() != nil {
			failed++
		}
	}
	if failed != 10 {
		t.Errorf("expected 10 failed outcomes, got %d", failed)
	}
}

func TestPool_SubmitNeverBlocksOnOutcomeBacklog(t *testing.T) {
	// Far more tasks than the task and outcome buffers hold combined;
	// the caller submits everything before draining, like the fetch
	// fan-out does.
	var counter atomic.Int64
	pool := NewPool(context.Background(), 1)
	pool.Start()

	const submitted = 200
	done := make(chan []Outcome)
	go func() {
		for i := 0; i < submitted; i++ {
			pool.Submit(countTask{counter: &counter})
		}
		done <- pool.Drain()
	}()

	select {
	case outcomes := <-done:
		if len(outcomes) != submitted {
			t.Errorf("expected %d outcomes, got %d", submitted, len(outcomes))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("submit-all-then-drain deadlocked")
	}
}

func TestPool_ZeroSizeGetsOneWorker(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(context.Background(), 0)
	pool.Start()
	pool.Submit(countTask{counter: &counter})
	outcomes := pool.Drain()

	if len(outcomes) != 1 || counter.Load() != 1 {
		t.Errorf("expected single task to run, got %d outcomes", len(outcomes))
	}
}

type blockTask struct{ started chan struct{} }

func (t blockTask) Run(ctx context.Context) Outcome {
	close(t.started)
	<-ctx.Done()
	return countOutcome{err: ctx.Err()}
}

func TestPool_StopCancelsInFlightTasks(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(blockTask{started: started})
	<-started

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not release the workers")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	// One request per minute with the burst spent: the second Wait can
	// only end via context cancellation.
	l := NewLimiter(1.0/60, 1)
	if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://example.com/b"); err == nil {
		t.Error("expected context error on exhausted budget")
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	l := NewLimiter(1.0/60, 1)
	if err := l.Wait(context.Background(), "https://one.example/a"); err != nil {
		t.Fatalf("first host: %v", err)
	}
	// A different host has its own untouched budget.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "https://two.example/a"); err != nil {
		t.Errorf("second host should not be throttled: %v", err)
	}
}

func TestLimiter_SetHostRateOverrides(t *testing.T) {
	l := NewLimiter(1.0/60, 1)
	l.SetHostRate("slow.example", 1000, 10)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "https://slow.example/p"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}
