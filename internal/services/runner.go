package services

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kubev2v/taskpool/internal/batch"
	"github.com/kubev2v/taskpool/internal/models"
	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
	"github.com/kubev2v/taskpool/pkg/scheduler"
)

// History keeps finished batches.
type History interface {
	Save(ctx context.Context, status models.BatchStatus, outputs []models.CommandOutput) error
}

type RunnerOption func(*Runner)

// WithHistory saves every finished batch, successful or not, to h.
func WithHistory(h History) RunnerOption {
	return func(r *Runner) {
		r.history = h
	}
}

// Runner runs one batch at a time through the scheduler and keeps its status.
// It implements scheduler.Controller so it can be registered as the
// process-wide controller.
type Runner struct {
	defaultWorkers int
	retry          scheduler.RetryPolicy
	verbose        bool
	history        History

	mu        sync.Mutex
	status    models.BatchStatus
	current   *scheduler.Manager[models.CommandOutput]
	cancelled bool
}

var _ scheduler.Controller = (*Runner)(nil)

func NewRunner(defaultWorkers int, retry scheduler.RetryPolicy, verbose bool, opts ...RunnerOption) *Runner {
	r := &Runner{
		defaultWorkers: defaultWorkers,
		retry:          retry,
		verbose:        verbose,
		status:         models.BatchStatus{State: models.BatchStateReady},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the batch and blocks until every task has finished or the
// first failure is observed. Outputs are returned in batch order. In
// streaming mode onResult is called for each output as it completes. On
// cancellation Run still waits for the tasks already running and records
// their outputs before returning the CancelledError.
func (r *Runner) Run(ctx context.Context, b models.Batch, onResult func(models.CommandOutput)) ([]models.CommandOutput, error) {
	works := batch.Works(b, r.retry)

	workers := b.Workers
	if workers <= 0 {
		workers = r.defaultWorkers
	}
	if workers <= 0 || workers > len(works) {
		workers = len(works)
	}

	r.mu.Lock()
	if r.status.State == models.BatchStateRunning {
		r.mu.Unlock()
		return nil, srvErrors.NewBatchInProgressError()
	}
	r.cancelled = false
	r.status = models.BatchStatus{
		ID:        uuid.NewString(),
		Name:      b.Name,
		State:     models.BatchStateRunning,
		Total:     len(works),
		Pending:   len(works),
		StartedAt: time.Now(),
	}
	batchID := r.status.ID
	r.mu.Unlock()

	log := zap.S().Named("runner").With("batch_id", batchID)
	log.Infow("starting batch", "name", b.Name, "mode", b.Mode, "tasks", len(works), "workers", workers)

	outputs := make([]models.CommandOutput, len(works))
	var completed []models.CommandOutput
	record := func(out models.CommandOutput) {
		r.mu.Lock()
		outputs[out.Index] = out
		completed = append(completed, out)
		r.status.Succeeded++
		r.mu.Unlock()

		if b.Mode == models.BatchModeStreaming && onResult != nil {
			onResult(out)
		}
	}

	opts := []scheduler.Option{
		scheduler.WithLogger(log),
		scheduler.WithVerbose(r.verbose),
		scheduler.WithName(b.Name),
	}

	var (
		m   *scheduler.Manager[models.CommandOutput]
		err error
	)
	if b.Mode == models.BatchModeStreaming && workers == len(works) {
		m = scheduler.RunInParallelAsync(ctx, works, record, opts...)
	} else {
		m = scheduler.NewManager(ctx, workers, record, opts...)
		for i, w := range works {
			task := scheduler.NewTask(i, w,
				scheduler.WithLogger(log),
				scheduler.WithVerbose(r.verbose),
				scheduler.WithName(b.Tasks[i].Name),
			)
			if err = m.Submit(task); err != nil {
				break
			}
		}
	}
	defer m.Close()

	r.mu.Lock()
	r.current = m
	if r.cancelled {
		m.Cancel()
	}
	r.mu.Unlock()

	if err == nil {
		err = m.WaitForAll(ctx)
	}
	if srvErrors.IsCancelledError(err) {
		// Tasks already running finish; only ctx can stop them.
		if drainErr := m.Drain(ctx); drainErr != nil {
			log.Warnw("task failed after cancellation", "error", drainErr)
		}
	}
	r.finish(m, err)

	if r.history != nil {
		r.mu.Lock()
		status, saved := r.status, slices.Clone(completed)
		r.mu.Unlock()
		if saveErr := r.history.Save(context.WithoutCancel(ctx), status, saved); saveErr != nil {
			log.Warnw("failed to save batch to history", "error", saveErr)
		}
	}

	if err != nil {
		log.Errorw("batch failed", "error", err)
		return nil, err
	}

	log.Infow("batch completed", "duration", time.Since(r.Status().StartedAt))
	return outputs, nil
}

func (r *Runner) finish(m *scheduler.Manager[models.CommandOutput], err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.status.Running = m.RunningCount()
	r.status.Pending = m.PendingCount()
	r.status.FinishedAt = time.Now()
	r.status.Error = err

	switch {
	case err == nil:
		r.status.State = models.BatchStateCompleted
	case srvErrors.IsCancelledError(err):
		r.status.State = models.BatchStateCancelled
	default:
		r.status.State = models.BatchStateError
	}
	r.current = nil
}

// Status returns a snapshot of the current or last batch.
func (r *Runner) Status() models.BatchStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.status
	if r.current != nil {
		s.Running = r.current.RunningCount()
		s.Pending = r.current.PendingCount()
	}
	return s
}

// Cancel stops admission of the remaining tasks of the running batch.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelled = true
	if r.current != nil {
		r.current.Cancel()
	}
}

// CancelRunning cancels the batch only if one is running and reports
// whether it did. The check and the cancellation happen under one lock.
func (r *Runner) CancelRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.State != models.BatchStateRunning {
		return false
	}
	r.cancelled = true
	if r.current != nil {
		r.current.Cancel()
	}
	return true
}

func (r *Runner) CheckCancelled() error {
	if r.IsCancelled() {
		return srvErrors.NewCancelledError()
	}
	return nil
}

func (r *Runner) IsCancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelled
}
