package scheduler

import "context"

// RunInParallelAsync submits every work to a fresh manager sized to
// len(works) and returns it without waiting. onResult receives each
// successful value in completion order. The caller must WaitForAll to
// observe failures and Close the manager when done.
func RunInParallelAsync[T any](ctx context.Context, works []Work[T], onResult func(T), opts ...Option) *Manager[T] {
	m := NewManager(ctx, len(works), onResult, opts...)
	for i, w := range works {
		if err := m.Submit(NewTask(i, w, WithLogger(m.log), WithVerbose(m.verbose))); err != nil {
			m.log.Errorw("failed to submit task", "task_id", i, "error", err)
		}
	}
	return m
}

// RunInParallel runs every work concurrently and returns the results in
// input order. The first failure is returned as-is; works still running at
// that point are left to finish on their own.
func RunInParallel[T any](ctx context.Context, works []Work[T], opts ...Option) ([]T, error) {
	results := make([]T, len(works))
	if len(works) == 0 {
		return results, nil
	}

	m := NewManager[T](ctx, len(works), nil, opts...)
	defer m.Close()

	tasks := make([]*Task[T], 0, len(works))
	for i, w := range works {
		t := NewTask(i, w, WithLogger(m.log), WithVerbose(m.verbose))
		tasks = append(tasks, t)
		if err := m.Submit(t); err != nil {
			return nil, err
		}
	}

	if err := m.WaitForAll(ctx); err != nil {
		return nil, err
	}

	for _, t := range tasks {
		v, _ := t.Result()
		results[t.ID] = v
	}
	return results, nil
}
