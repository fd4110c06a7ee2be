package models

import (
	"fmt"
	"time"
)

type BatchMode string

const (
	// BatchModeOrdered waits for every task and reports results in input order.
	BatchModeOrdered BatchMode = "ordered"
	// BatchModeStreaming reports each result as soon as its task succeeds.
	BatchModeStreaming BatchMode = "streaming"
)

func ParseBatchMode(s string) (BatchMode, error) {
	switch s {
	case "", "ordered":
		return BatchModeOrdered, nil
	case "streaming":
		return BatchModeStreaming, nil
	default:
		return "", fmt.Errorf("invalid batch mode: %s", s)
	}
}

// Batch is a named list of commands run concurrently by the scheduler.
type Batch struct {
	Name    string
	Mode    BatchMode
	Workers int // 0 means one worker per task
	Tasks   []CommandSpec
}

type CommandSpec struct {
	Name    string
	Command []string
	Dir     string
	Env     []string
	Timeout time.Duration
	Retries uint
}

// CommandOutput is the result of one successful command.
type CommandOutput struct {
	Index    int
	Name     string
	Stdout   string
	Stderr   string
	Duration time.Duration
}
