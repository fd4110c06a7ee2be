package scheduler

import (
	"context"
	"reflect"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
)

const maxDescriptionLen = 300

// Task wraps one Work with an identity, timing instrumentation and a
// result slot. The ID is used to place results in submission order.
type Task[T any] struct {
	ID int

	work        Work[T]
	description string
	log         *zap.SugaredLogger
	verbose     bool

	mu         sync.Mutex
	createdAt  time.Time
	startedAt  time.Time
	finishedAt time.Time
	closedAt   time.Time
	result     T
	hasResult  bool
	closeOnce  sync.Once
}

func NewTask[T any](id int, work Work[T], opts ...Option) *Task[T] {
	o := newOptions(opts)
	t := &Task[T]{
		ID:          id,
		work:        work,
		description: describe(o.name, work),
		log:         o.logger.Named("task").With("task_id", id),
		verbose:     o.verbose,
		createdAt:   time.Now(),
	}
	if t.verbose {
		t.log.Debugw("generate task", "task", t.String())
	}
	return t
}

// Invoke runs the wrapped work exactly once. The queue wait ends when
// Invoke is entered; errors and panics propagate unchanged.
func (t *Task[T]) Invoke(ctx context.Context) (T, error) {
	t.mu.Lock()
	t.startedAt = time.Now()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.finishedAt = time.Now()
		t.mu.Unlock()
	}()

	return t.work(ctx)
}

// Close finalizes the lifecycle measurement. Only the first call counts.
func (t *Task[T]) Close() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closedAt = time.Now()
		t.mu.Unlock()

		if !t.verbose {
			return
		}
		lifecycle := t.LifecycleDuration()
		wait := t.WaitDuration()
		call := t.CallDuration()
		t.log.Debugw("task finished",
			"lifecycle", lifecycle,
			"wait_before_call", wait,
			"call", call,
			"wait_after_call", lifecycle-wait-call,
		)
	})
}

// Result returns the recorded value and whether the task succeeded.
func (t *Task[T]) Result() (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, t.hasResult
}

func (t *Task[T]) setResult(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hasResult {
		return
	}
	t.result = v
	t.hasResult = true
}

// WaitDuration is the time spent queued before Invoke.
func (t *Task[T]) WaitDuration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.startedAt.IsZero() {
		return time.Since(t.createdAt)
	}
	return t.startedAt.Sub(t.createdAt)
}

// CallDuration is the time spent inside the wrapped work.
func (t *Task[T]) CallDuration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case t.startedAt.IsZero():
		return 0
	case t.finishedAt.IsZero():
		return time.Since(t.startedAt)
	default:
		return t.finishedAt.Sub(t.startedAt)
	}
}

// LifecycleDuration is the time from creation to Close.
func (t *Task[T]) LifecycleDuration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closedAt.IsZero() {
		return time.Since(t.createdAt)
	}
	return t.closedAt.Sub(t.createdAt)
}

func (t *Task[T]) String() string {
	return t.description
}

func describe[T any](name string, work Work[T]) string {
	if name == "" && work != nil {
		if fn := runtime.FuncForPC(reflect.ValueOf(work).Pointer()); fn != nil {
			name = fn.Name()
		}
	}
	if len(name) >= maxDescriptionLen {
		return name[:maxDescriptionLen] + "..."
	}
	return name
}
