package scheduler

import (
	"context"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

// Manager admits tasks into a Pool of maxWorkers workers in FIFO order,
// tracks the in-flight futures and holds failures until a caller
// synchronizes through WaitForAny or WaitForAll.
//
// WaitForAny and WaitForAll assume a single waiting goroutine per Manager.
type Manager[T any] struct {
	id         uuid.UUID
	ctx        context.Context
	maxWorkers int
	pool       *Pool[T]
	callback   func(T)
	log        *zap.SugaredLogger
	verbose    bool

	pending   *syncQueue[*Task[T]]
	deferred  *syncQueue[*Future[T]]
	cancelled atomic.Bool

	// mu guards inFlight, units, closed and callbacks.
	mu        sync.Mutex
	inFlight  []*Future[T]
	units     map[*Future[T]]*Task[T]
	closed    bool
	callbacks int
	idle      *sync.Cond

	closeOnce sync.Once
	closeCh   chan struct{}
	stopped   chan struct{}
}

var _ Controller = (*Manager[any])(nil)

// NewManager starts a manager running at most maxWorkers tasks at a time.
// ctx is handed to every task. callback, when not nil, receives the value
// of each successful task as it is reconciled; it may run on the manager's
// own goroutine or on a caller's goroutine and must be safe for concurrent use.
func NewManager[T any](ctx context.Context, maxWorkers int, callback func(T), opts ...Option) *Manager[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	o := newOptions(opts)

	id := uuid.New()
	log := o.logger.Named("task_manager").With("manager_id", id.String())
	if o.name != "" {
		log = log.With("name", o.name)
	}

	m := &Manager[T]{
		id:         id,
		ctx:        ctx,
		maxWorkers: maxWorkers,
		pool:       NewPool[T](maxWorkers, WithLogger(log)),
		callback:   callback,
		log:        log,
		verbose:    o.verbose,
		pending:    newSyncQueue[*Task[T]](),
		deferred:   newSyncQueue[*Future[T]](),
		units:      make(map[*Future[T]]*Task[T]),
		closeCh:    make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	m.idle = sync.NewCond(&m.mu)
	go m.run()
	return m
}

// run re-runs admission every time a worker finishes, which keeps the pool
// saturated while pending is not empty.
func (m *Manager[T]) run() {
	defer close(m.stopped)
	for {
		changed := m.pool.Changed()
		if err := m.admit(); err != nil && m.verbose {
			m.log.Debugw("admission stopped", "error", err)
		}
		select {
		case <-changed:
		case <-m.closeCh:
			return
		}
	}
}

// Submit appends the task to the pending queue and runs one admission pass.
func (m *Manager[T]) Submit(t *Task[T]) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return srvErrors.NewSchedulerClosedError("task manager")
	}

	m.pending.Push(t)
	return m.admit()
}

// admit moves tasks from pending into the pool while a worker is idle.
func (m *Manager[T]) admit() error {
	var (
		succeeded []*Task[T]
		err       error
	)

	m.mu.Lock()
	for !m.pending.IsEmpty() && m.hasIdleWorkerLocked(&succeeded) {
		if m.cancelled.Load() {
			err = srvErrors.NewCancelledError()
			break
		}
		if m.closed {
			err = srvErrors.NewSchedulerClosedError("task manager")
			break
		}
		task, ok := m.pending.Pop()
		if !ok {
			break
		}
		f, submitErr := m.pool.Submit(m.ctx, task)
		if submitErr != nil {
			err = submitErr
			break
		}
		m.inFlight = append(m.inFlight, f)
		m.units[f] = task
	}
	m.mu.Unlock()

	m.notify(succeeded)
	return err
}

// HasIdleWorker reconciles resolved futures, then reports whether fewer
// than maxWorkers tasks are in flight.
func (m *Manager[T]) HasIdleWorker() bool {
	var succeeded []*Task[T]

	m.mu.Lock()
	idle := m.hasIdleWorkerLocked(&succeeded)
	m.mu.Unlock()

	m.notify(succeeded)
	return idle
}

func (m *Manager[T]) hasIdleWorkerLocked(succeeded *[]*Task[T]) bool {
	*succeeded = append(*succeeded, m.reconcileLocked()...)
	return len(m.inFlight) < m.maxWorkers
}

// Reconcile harvests every resolved in-flight future. Successful values are
// recorded on their task and passed to the callback; failures are queued
// for PropagateDeferredFailures instead of being returned here.
func (m *Manager[T]) Reconcile() {
	m.mu.Lock()
	succeeded := m.reconcileLocked()
	m.mu.Unlock()

	m.notify(succeeded)
}

func (m *Manager[T]) reconcileLocked() []*Task[T] {
	var succeeded []*Task[T]

	remaining := m.inFlight[:0]
	for _, f := range m.inFlight {
		if !f.IsDone() {
			remaining = append(remaining, f)
			continue
		}

		task := m.units[f]
		delete(m.units, f)

		if r := f.Result(); r.Err != nil {
			m.deferred.Push(f)
		} else {
			task.setResult(r.Data)
			succeeded = append(succeeded, task)
		}
		task.Close()
	}
	clear(m.inFlight[len(remaining):])
	m.inFlight = remaining

	if m.callback != nil {
		m.callbacks += len(succeeded)
	}
	return succeeded
}

func (m *Manager[T]) notify(succeeded []*Task[T]) {
	if m.callback == nil {
		return
	}
	for _, t := range succeeded {
		v, _ := t.Result()
		m.callback(v)

		m.mu.Lock()
		m.callbacks--
		if m.callbacks == 0 {
			m.idle.Broadcast()
		}
		m.mu.Unlock()
	}
}

// waitCallbacks blocks until callbacks of reconciled tasks have returned.
func (m *Manager[T]) waitCallbacks() {
	m.mu.Lock()
	for m.callbacks > 0 {
		m.idle.Wait()
	}
	m.mu.Unlock()
}

// PropagateDeferredFailures returns the oldest queued failure unchanged.
// Later failures stay queued for the next call.
func (m *Manager[T]) PropagateDeferredFailures() error {
	f, ok := m.deferred.Pop()
	if !ok {
		return nil
	}
	return f.Result().Err
}

// WaitForAny blocks until one of the currently in-flight tasks finishes or
// ctx ends, then reconciles and returns the oldest deferred failure, if any.
// It reports whether tasks are still in flight.
func (m *Manager[T]) WaitForAny(ctx context.Context) (bool, error) {
	m.mu.Lock()
	snapshot := slices.Clone(m.inFlight)
	m.mu.Unlock()

	if len(snapshot) > 0 {
		if err := m.awaitAny(ctx, snapshot); err != nil {
			return true, err
		}
	}

	m.Reconcile()
	running := m.RunningCount() > 0
	if err := m.PropagateDeferredFailures(); err != nil {
		return running, err
	}
	return running, nil
}

func (m *Manager[T]) awaitAny(ctx context.Context, futures []*Future[T]) error {
	for {
		changed := m.pool.Changed()
		for _, f := range futures {
			if f.IsDone() {
				return nil
			}
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// WaitForAll returns once pending and in-flight are both empty and every
// callback has returned, or with the first failure observed. Tasks still
// running when it fails keep running. The callback must not call WaitForAll.
func (m *Manager[T]) WaitForAll(ctx context.Context) error {
	for {
		if err := m.admit(); err != nil {
			return err
		}

		hasPending := !m.pending.IsEmpty()
		running, err := m.WaitForAny(ctx)
		if err != nil {
			return err
		}

		switch {
		case !running && m.pending.IsEmpty():
			m.waitCallbacks()
			return nil
		case hasPending && !running:
			runtime.Gosched()
		}
	}
}

// Drain waits for the tasks already in flight without admitting new ones,
// which lets a caller collect their results after WaitForAll stopped on a
// cancellation or a failure. It returns once nothing is in flight and every
// callback has returned, with the first failure seen while draining, or
// with the ctx error if ctx ends first.
func (m *Manager[T]) Drain(ctx context.Context) error {
	var first error
	for {
		running, err := m.WaitForAny(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil && first == nil {
			first = err
		}
		if !running {
			break
		}
	}
	m.waitCallbacks()

	if first == nil {
		first = m.PropagateDeferredFailures()
	}
	return first
}

// Cancel stops admission of pending tasks. Running tasks are not interrupted.
func (m *Manager[T]) Cancel() {
	m.log.Info("called to cancel all tasks")
	m.cancelled.Store(true)
}

func (m *Manager[T]) CheckCancelled() error {
	if m.cancelled.Load() {
		return srvErrors.NewCancelledError()
	}
	return nil
}

func (m *Manager[T]) IsCancelled() bool {
	return m.cancelled.Load()
}

// RunningCount is the number of tasks in flight that have not been reconciled.
func (m *Manager[T]) RunningCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inFlight)
}

func (m *Manager[T]) PendingCount() int {
	return m.pending.Len()
}

func (m *Manager[T]) MaxWorkers() int {
	return m.maxWorkers
}

func (m *Manager[T]) ID() uuid.UUID {
	return m.id
}

// Close stops admission and the manager loop without waiting for running
// tasks. Pending tasks are dropped.
func (m *Manager[T]) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.pool.Close()
		m.mu.Unlock()
		close(m.closeCh)
	})
}

// Shutdown closes the manager and waits for running tasks to finish.
func (m *Manager[T]) Shutdown(ctx context.Context) error {
	m.Close()
	select {
	case <-m.stopped:
	case <-ctx.Done():
		return ctx.Err()
	}
	return m.pool.Shutdown(ctx)
}
