package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

type job[T any] struct {
	ctx    context.Context
	future *Future[T]
}

// Pool is a fixed set of worker goroutines executing tasks handed to Submit.
type Pool[T any] struct {
	size   int
	jobs   chan job[T]
	wg     sync.WaitGroup
	active atomic.Int32
	log    *zap.SugaredLogger

	// submitMu guards closed and the send on jobs.
	submitMu sync.RWMutex
	closed   bool

	changedMu sync.Mutex
	changed   chan struct{}
}

func NewPool[T any](size int, opts ...Option) *Pool[T] {
	if size <= 0 {
		size = 1
	}
	o := newOptions(opts)
	p := &Pool[T]{
		size:    size,
		jobs:    make(chan job[T], size),
		log:     o.logger.Named("pool"),
		changed: make(chan struct{}),
	}
	for range size {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit hands the task to a worker and returns its completion handle.
// It blocks only when more than Size tasks are outstanding.
func (p *Pool[T]) Submit(ctx context.Context, t *Task[T]) (*Future[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed {
		return nil, srvErrors.NewSchedulerClosedError("pool")
	}

	f := newFuture(t)
	p.jobs <- job[T]{ctx: ctx, future: f}
	return f, nil
}

// Changed returns a channel closed the next time any future of this pool
// resolves. Fetch it before checking futures to avoid missing a wake-up.
func (p *Pool[T]) Changed() <-chan struct{} {
	p.changedMu.Lock()
	defer p.changedMu.Unlock()
	return p.changed
}

func (p *Pool[T]) broadcast() {
	p.changedMu.Lock()
	close(p.changed)
	p.changed = make(chan struct{})
	p.changedMu.Unlock()
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		p.execute(j)
		p.broadcast()
	}
}

func (p *Pool[T]) execute(j job[T]) {
	p.active.Add(1)
	defer p.active.Add(-1)

	task := j.future.task
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Errorw("task panicked", "task_id", task.ID, "panic", rec)
			j.future.resolve(Result[T]{Err: fmt.Errorf("task %d panicked: %v", task.ID, rec)})
		}
	}()

	v, err := task.Invoke(j.ctx)
	j.future.resolve(Result[T]{Data: v, Err: err})
}

// Close stops accepting tasks. Queued and running tasks still complete.
func (p *Pool[T]) Close() {
	p.submitMu.Lock()
	defer p.submitMu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.jobs)
}

// Shutdown closes the pool and waits for the workers to exit.
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	p.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.wg.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool[T]) Size() int            { return p.size }
func (p *Pool[T]) ActiveWorkers() int32 { return p.active.Load() }
