package workerpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/ventas/pkg/workerpool"
)

func noop(context.Context) error { return nil }

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)

	const n = 100
	var count atomic.Int64

	for i := 0; i < n; i++ {
		err := pool.SubmitWait(context.Background(), "count", func(context.Context) error {
			count.Add(1)
			return nil
		})
		if err != nil {
			t.Fatalf("SubmitWait returned unexpected error: %v", err)
		}
	}

	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if got := count.Load(); got != n {
		t.Errorf("expected %d tasks to run, got %d", n, got)
	}
}

func TestPool_ErrPoolFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown(context.Background())

	blocker := make(chan struct{})
	started := make(chan struct{})

	_ = pool.SubmitWait(context.Background(), "block", func(context.Context) error {
		close(started)
		<-blocker
		return nil
	})
	<-started

	// Fill the 2-slot queue.
	_ = pool.Submit("fill", noop)
	_ = pool.Submit("fill", noop)

	err := pool.Submit("overflow", noop)
	if !errors.Is(err, workerpool.ErrPoolFull) {
		t.Errorf("expected ErrPoolFull, got %v", err)
	}

	close(blocker)
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	if err := pool.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if err := pool.Submit("late", noop); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed after Shutdown, got %v", err)
	}
	if err := pool.SubmitWait(context.Background(), "late", noop); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed from SubmitWait, got %v", err)
	}
}

func TestPool_FailingTasksDoNotStopWorkers(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown(context.Background())

	_ = pool.SubmitWait(context.Background(), "panic", func(context.Context) error {
		panic("boom")
	})
	_ = pool.SubmitWait(context.Background(), "error", func(context.Context) error {
		return errors.New("disk full")
	})

	normal := make(chan struct{})
	_ = pool.SubmitWait(context.Background(), "ok", func(context.Context) error {
		close(normal)
		return nil
	})

	select {
	case <-normal:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a failing task")
	}
}

func TestPool_ShutdownDeadlineCancelsTasks(t *testing.T) {
	pool := workerpool.New(1)

	started := make(chan struct{})
	var cancelled atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	_ = pool.Submit("slow", func(ctx context.Context) error {
		defer wg.Done()
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := pool.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	wg.Wait()
	if !cancelled.Load() {
		t.Error("running task was not cancelled")
	}
}
