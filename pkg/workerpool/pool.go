// Package workerpool runs background jobs on a fixed number of goroutines.
//
// When every worker is busy and the queue is full, Submit returns
// ErrPoolFull immediately so the caller can run the job inline or drop it.
//
//	pool := workerpool.New(2)
//	defer pool.Shutdown(ctx)
//
//	err := pool.Submit("receipt.archive", func(ctx context.Context) error {
//	    return disk.Put(ctx, path, pdf)
//	})
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/ventas/pkg/logger"
)

// ErrPoolFull is returned by Submit when the queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is one unit of background work. ctx is cancelled when a shutdown
// deadline passes.
type Task func(ctx context.Context) error

type job struct {
	name string
	run  Task
}

// Pool is a bounded goroutine pool.
type Pool struct {
	jobs    chan job
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}

	mu     sync.RWMutex
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
}

// New starts a pool with size workers and a queue of twice that.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan job, size*2),
		closeCh: make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(name string, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job{name: name, run: task}:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued, the pool closes or ctx ends.
func (p *Pool) SubmitWait(ctx context.Context, name string, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job{name: name, run: task}:
		return nil
	case <-p.closeCh:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting tasks and waits for queued ones to finish. If ctx
// ends first, running tasks see their context cancelled and ctx.Err() is
// returned. Safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.once.Do(func() {
		close(p.closeCh)
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if err := p.safeRun(j); err != nil {
			logger.Error("workerpool: task failed", "task", j.name, "error", err)
		}
	}
}

// safeRun turns a panicking task into an error so the worker survives.
func (p *Pool) safeRun(j job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return j.run(p.ctx)
}
