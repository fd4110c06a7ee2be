package scheduler

import "sync"

// Controller is the cancellation surface of a Manager, independent of its
// result type.
type Controller interface {
	Cancel()
	CheckCancelled() error
	IsCancelled() bool
}

var (
	globalMu sync.RWMutex
	global   Controller
)

// SetGlobal registers the process-wide controller used by Cancel and
// CheckCancelled. It panics if called more than once.
func SetGlobal(c Controller) {
	if c == nil {
		panic("scheduler: global controller must not be nil")
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		panic("scheduler: the global controller can be set only once")
	}
	global = c
}

// Global returns the process-wide controller, or nil if none was set.
func Global() Controller {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func Cancel() {
	if c := Global(); c != nil {
		c.Cancel()
	}
}

func CheckCancelled() error {
	if c := Global(); c != nil {
		return c.CheckCancelled()
	}
	return nil
}

func IsCancelled() bool {
	if c := Global(); c != nil {
		return c.IsCancelled()
	}
	return false
}
