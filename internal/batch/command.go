package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kubev2v/taskpool/internal/models"
	"github.com/kubev2v/taskpool/pkg/scheduler"
)

// waitDelay bounds how long a killed command may hold its output pipes.
const waitDelay = 500 * time.Millisecond

// Works turns every command of the batch into a scheduler work, keeping
// the batch order.
func Works(b models.Batch, retry scheduler.RetryPolicy) []scheduler.Work[models.CommandOutput] {
	works := make([]scheduler.Work[models.CommandOutput], 0, len(b.Tasks))
	for i, spec := range b.Tasks {
		works = append(works, NewCommandWork(i, spec, retry))
	}
	return works
}

// NewCommandWork builds a work running spec as a local process. The task
// timeout applies to each attempt; retries use the given policy.
func NewCommandWork(index int, spec models.CommandSpec, retry scheduler.RetryPolicy) scheduler.Work[models.CommandOutput] {
	work := func(ctx context.Context) (models.CommandOutput, error) {
		if err := scheduler.CheckCancelled(); err != nil {
			return models.CommandOutput{}, scheduler.Permanent(err)
		}
		return runCommand(ctx, index, spec)
	}

	if spec.Retries == 0 {
		return work
	}
	retry.Attempts = spec.Retries + 1
	return scheduler.Retry(work, retry)
}

func runCommand(ctx context.Context, index int, spec models.CommandSpec) (models.CommandOutput, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	log := zap.S().Named("command").With("task", spec.Name)

	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Dir = spec.Dir
	cmd.WaitDelay = waitDelay
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugw("starting command", "command", strings.Join(spec.Command, " "))
	start := time.Now()
	err := cmd.Run()
	out := models.CommandOutput{
		Index:    index,
		Name:     spec.Name,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if err != nil {
		log.Errorw("command failed", "error", err, "stderr", strings.TrimSpace(out.Stderr))
		return out, fmt.Errorf("task %q failed: %w", spec.Name, err)
	}

	log.Debugw("command finished", "duration", out.Duration)
	return out, nil
}
