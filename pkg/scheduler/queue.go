package scheduler

import "sync"

type queue[T any] []T

func (wq *queue[T]) Len() int { return len(*wq) }

func (wq *queue[T]) Pop() T {
	old := *wq
	x := old[0]
	var zero T
	old[0] = zero
	*wq = old[1:]
	return x
}

func (wq *queue[T]) Push(t T) {
	*wq = append(*wq, t)
}

// syncQueue is an unbounded FIFO safe for concurrent producers and consumers.
type syncQueue[T any] struct {
	mu sync.Mutex
	q  queue[T]
}

func newSyncQueue[T any]() *syncQueue[T] {
	return &syncQueue[T]{}
}

func (s *syncQueue[T]) Push(t T) {
	s.mu.Lock()
	s.q.Push(t)
	s.mu.Unlock()
}

func (s *syncQueue[T]) Pop() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Len() == 0 {
		var zero T
		return zero, false
	}
	return s.q.Pop(), true
}

func (s *syncQueue[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q.Len()
}

func (s *syncQueue[T]) IsEmpty() bool {
	return s.Len() == 0
}
