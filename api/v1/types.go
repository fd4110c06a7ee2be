package v1

import "time"

// BatchStatusState is the lifecycle state of a batch.
type BatchStatusState string

const (
	BatchStatusStateReady     BatchStatusState = "ready"
	BatchStatusStateRunning   BatchStatusState = "running"
	BatchStatusStateCompleted BatchStatusState = "completed"
	BatchStatusStateCancelled BatchStatusState = "cancelled"
	BatchStatusStateError     BatchStatusState = "error"
)

// BatchStatus is the response of GET /status and POST /cancel.
type BatchStatus struct {
	Id         *string          `json:"id,omitempty"`
	Name       *string          `json:"name,omitempty"`
	State      BatchStatusState `json:"state"`
	Total      int              `json:"total"`
	Succeeded  int              `json:"succeeded"`
	Running    int              `json:"running"`
	Pending    int              `json:"pending"`
	Error      *string          `json:"error,omitempty"`
	StartedAt  *time.Time       `json:"startedAt,omitempty"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}

// TaskOutput is the captured output of one successful task.
type TaskOutput struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMs int64  `json:"durationMs"`
}

// BatchDetails is the response of GET /batches/{id}.
type BatchDetails struct {
	BatchStatus
	Outputs []TaskOutput `json:"outputs"`
}

// BatchListResponse is the response of GET /batches.
type BatchListResponse struct {
	Page      int           `json:"page"`
	PageCount int           `json:"pageCount"`
	Total     int           `json:"total"`
	Batches   []BatchStatus `json:"batches"`
}

// ListBatchesParams defines parameters for ListBatches.
type ListBatchesParams struct {
	State    *[]BatchStatusState `form:"state,omitempty" json:"state,omitempty"`
	Name     *string             `form:"name,omitempty" json:"name,omitempty"`
	Page     *int                `form:"page,omitempty" json:"page,omitempty"`
	PageSize *int                `form:"pageSize,omitempty" json:"pageSize,omitempty"`
}
