package models

import "time"

type BatchState string

const (
	BatchStateReady     BatchState = "ready"
	BatchStateRunning   BatchState = "running"
	BatchStateCompleted BatchState = "completed"
	BatchStateCancelled BatchState = "cancelled"
	BatchStateError     BatchState = "error"
)

// BatchStatus holds the progress of the current or last batch.
type BatchStatus struct {
	ID         string
	Name       string
	State      BatchState
	Total      int
	Succeeded  int
	Running    int
	Pending    int
	Error      error
	StartedAt  time.Time
	FinishedAt time.Time
}

// BatchRecord is a finished batch as kept in the history.
type BatchRecord struct {
	Status  BatchStatus
	Outputs []CommandOutput
}
