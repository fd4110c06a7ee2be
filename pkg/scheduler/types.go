package scheduler

import (
	"context"
	"sync"
)

// Work is a unit of caller code run by the scheduler. The context is the
// caller's cancellation token; the scheduler passes it through untouched.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the completion handle of a dispatched task.
// It resolves exactly once, either with a value or with an error.
type Future[T any] struct {
	task   *Task[T]
	result Result[T]
	c      chan Result[T]
	done   chan struct{}
	once   sync.Once
}

func newFuture[T any](task *Task[T]) *Future[T] {
	return &Future[T]{
		task: task,
		c:    make(chan Result[T], 1),
		done: make(chan struct{}),
	}
}

func (f *Future[T]) resolve(r Result[T]) {
	f.once.Do(func() {
		f.result = r
		f.c <- r
		close(f.done)
	})
}

// C returns a channel receiving the result once. Only one consumer should
// read from it; use Result or Done for shared access.
func (f *Future[T]) C() <-chan Result[T] {
	return f.c
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result blocks until the future resolves.
func (f *Future[T]) Result() Result[T] {
	<-f.done
	return f.result
}

func (f *Future[T]) Task() *Task[T] {
	return f.task
}
