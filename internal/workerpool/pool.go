// Package workerpool runs CPU-bound work on a fixed set of goroutines fed by
// a bounded queue.
package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/Skotchmaster/shop_catalog/internal/logging"
)

// ErrUnavailable means the task finished without a result: the pool was
// closed or the task panicked.
var ErrUnavailable = errors.New("worker pool unavailable")

type task struct {
	ctx  context.Context
	fn   func()
	done chan bool
}

type Pool struct {
	queue chan task
	quit  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

func New(workers, queue int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &Pool{
		queue: make(chan task, queue),
		quit:  make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			p.loop(id)
		}(i)
	}
	return p
}

func (p *Pool) loop(id int) {
	for {
		select {
		case <-p.quit:
			return
		case t := <-p.queue:
			p.run(id, t)
		}
	}
}

func (p *Pool) run(id int, t task) {
	// A caller that gave up before the task started is not worth the CPU.
	if t.ctx.Err() != nil {
		close(t.done)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(t.ctx).Error("worker_task_panicked", "worker", id, "panic", r)
			close(t.done)
		}
	}()
	t.fn()
	t.done <- true
}

// Do enqueues fn and blocks until it has run. If ctx is done first the caller
// gets ctx.Err(); a task that already started still runs to completion.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	t := task{ctx: ctx, fn: fn, done: make(chan bool, 1)}

	select {
	case p.queue <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrUnavailable
	}

	select {
	case ok := <-t.done:
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return ErrUnavailable
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrUnavailable
	}
}

// Close stops the workers and waits for running tasks to return.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.quit)
	})
	p.wg.Wait()
}
