package v1

import (
	"fmt"

	"github.com/kubev2v/taskpool/internal/models"
)

func (s *BatchStatus) FromModel(m models.BatchStatus) {
	s.State = newBatchStatusState(m.State)
	s.Total = m.Total
	s.Succeeded = m.Succeeded
	s.Running = m.Running
	s.Pending = m.Pending

	if m.ID != "" {
		s.Id = &m.ID
	}
	if m.Name != "" {
		s.Name = &m.Name
	}
	if m.Error != nil {
		msg := m.Error.Error()
		s.Error = &msg
	}
	if !m.StartedAt.IsZero() {
		s.StartedAt = &m.StartedAt
	}
	if !m.FinishedAt.IsZero() {
		s.FinishedAt = &m.FinishedAt
	}
}

// NewBatchStatusFromModel converts a models.BatchStatus to an API BatchStatus.
func NewBatchStatusFromModel(m models.BatchStatus) BatchStatus {
	var s BatchStatus
	s.FromModel(m)
	return s
}

func newBatchStatusState(state models.BatchState) BatchStatusState {
	switch state {
	case models.BatchStateRunning:
		return BatchStatusStateRunning
	case models.BatchStateCompleted:
		return BatchStatusStateCompleted
	case models.BatchStateCancelled:
		return BatchStatusStateCancelled
	case models.BatchStateError:
		return BatchStatusStateError
	default:
		return BatchStatusStateReady
	}
}

// NewBatchDetailsFromModel converts a models.BatchRecord to an API BatchDetails.
func NewBatchDetailsFromModel(r models.BatchRecord) BatchDetails {
	d := BatchDetails{
		BatchStatus: NewBatchStatusFromModel(r.Status),
		Outputs:     make([]TaskOutput, 0, len(r.Outputs)),
	}
	for _, o := range r.Outputs {
		d.Outputs = append(d.Outputs, TaskOutput{
			Index:      o.Index,
			Name:       o.Name,
			Stdout:     o.Stdout,
			Stderr:     o.Stderr,
			DurationMs: o.Duration.Milliseconds(),
		})
	}
	return d
}

// ParseBatchStates converts API states to model states, rejecting unknown ones.
func ParseBatchStates(states []BatchStatusState) ([]models.BatchState, error) {
	result := make([]models.BatchState, 0, len(states))
	for _, s := range states {
		switch s {
		case BatchStatusStateReady, BatchStatusStateRunning, BatchStatusStateCompleted,
			BatchStatusStateCancelled, BatchStatusStateError:
			result = append(result, models.BatchState(s))
		default:
			return nil, fmt.Errorf("invalid state %q", s)
		}
	}
	return result, nil
}
