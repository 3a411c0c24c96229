// Package worker provides bounded-concurrency primitives shared by
// the fetch and evidence layers.
package worker

import (
	"context"
	"sync"
)

// Task is a unit of work. Implementations must be safe to run from
// any goroutine.
type Task interface {
	Run(ctx context.Context) Outcome
}

// Outcome is what a task produces.
type Outcome interface {
	Err() error
}

// Pool runs tasks on a fixed number of goroutines. A collector drains
// outcomes while submissions are still in flight, so Submit never
// blocks on a full outcome buffer no matter how many tasks are
// queued. Submit then Drain; a pool is single-use.
type Pool struct {
	size      int
	tasks     chan Task
	outcomes  chan Outcome
	collected []Outcome
	done      chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Pool{
		size:     size,
		tasks:    make(chan Task, size*2),
		outcomes: make(chan Outcome, size*2),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the workers and the outcome collector.
func (p *Pool) Start() {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run()
	}
	go func() {
		for outcome := range p.outcomes {
			p.collected = append(p.collected, outcome)
		}
		close(p.done)
	}()
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			outcome := task.Run(p.ctx)
			select {
			case p.outcomes <- outcome:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a task. It is a no-op once the pool is cancelled.
func (p *Pool) Submit(task Task) {
	select {
	case <-p.ctx.Done():
	case p.tasks <- task:
	}
}

// Drain signals no more tasks, waits for completion and returns every
// outcome produced.
func (p *Pool) Drain() []Outcome {
	close(p.tasks)
	p.wg.Wait()
	p.closeOutcomes()
	<-p.done
	return p.collected
}

// Stop cancels in-flight tasks and releases the workers.
func (p *Pool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.closeOutcomes()
	<-p.done
}

func (p *Pool) closeOutcomes() {
	p.closeOnce.Do(func() {
		close(p.outcomes)
	})
}
