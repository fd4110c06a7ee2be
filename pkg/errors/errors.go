package errors

import (
	"errors"
	"fmt"
)

// CancelledError is returned by the scheduler when admission is attempted
// after the tasks were cancelled.
type CancelledError struct{}

func NewCancelledError() *CancelledError {
	return &CancelledError{}
}

func (e *CancelledError) Error() string {
	return "tasks are cancelled"
}

func IsCancelledError(err error) bool {
	var e *CancelledError
	return errors.As(err, &e)
}

// SchedulerClosedError is returned when work is handed to a scheduler or
// pool that no longer accepts submissions.
type SchedulerClosedError struct {
	name string
}

func NewSchedulerClosedError(name string) *SchedulerClosedError {
	return &SchedulerClosedError{name: name}
}

func (e *SchedulerClosedError) Error() string {
	if e.name == "" {
		return "scheduler closed"
	}
	return fmt.Sprintf("%s closed", e.name)
}

func IsSchedulerClosedError(err error) bool {
	var e *SchedulerClosedError
	return errors.As(err, &e)
}

type BatchValidationError struct {
	msg string
}

func NewBatchValidationError(format string, args ...any) *BatchValidationError {
	return &BatchValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("invalid batch: %s", e.msg)
}

func IsBatchValidationError(err error) bool {
	var e *BatchValidationError
	return errors.As(err, &e)
}

type BatchInProgressError struct{}

func NewBatchInProgressError() *BatchInProgressError {
	return &BatchInProgressError{}
}

func (e *BatchInProgressError) Error() string {
	return "a batch is already running"
}

func IsBatchInProgressError(err error) bool {
	var e *BatchInProgressError
	return errors.As(err, &e)
}

type InvalidTokenError struct {
	reason string
}

func NewInvalidTokenError(reason string) *InvalidTokenError {
	return &InvalidTokenError{reason: reason}
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %s", e.reason)
}

func IsInvalidTokenError(err error) bool {
	var e *InvalidTokenError
	return errors.As(err, &e)
}

type ResourceNotFoundError struct {
	resource string
	id       string
}

func NewResourceNotFoundError(resource, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: resource, id: id}
}

func NewBatchNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("batch", id)
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.resource, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}
