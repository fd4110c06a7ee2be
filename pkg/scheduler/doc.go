// Package scheduler implements a bounded-concurrency task scheduler.
//
// Independent units of work are run across a fixed number of workers while
// keeping results in submission order, surfacing failures on the goroutine
// that waits for them, and supporting cooperative cancellation.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                             Manager                                 │
//	│                                                                     │
//	│  Submit(task) ──► ┌──────────────────────────────────────────┐      │
//	│                   │ pending (FIFO)  [t3] [t4] [t5] ...       │      │
//	│                   └──────────────────┬───────────────────────┘      │
//	│                                      │ admit() (under lock)         │
//	│                                      ▼                              │
//	│  ┌──────────────────────────────────────────────────────────┐       │
//	│  │ Pool        ┌──────────┐  ┌──────────┐  ┌──────────┐      │       │
//	│  │             │ Worker 1 │  │ Worker 2 │  │ Worker N │      │       │
//	│  │             └────┬─────┘  └────┬─────┘  └────┬─────┘      │       │
//	│  └──────────────────┼─────────────┼─────────────┼────────────┘       │
//	│                     └─────────────┼─────────────┘                    │
//	│                                   ▼                                  │
//	│                 in-flight futures  ──► Reconcile()                   │
//	│                                          │           │               │
//	│                                   success│           │failure        │
//	│                                          ▼           ▼               │
//	│                                   callback(v)   deferred (FIFO)      │
//	│                                                      │               │
//	│                          WaitForAny / WaitForAll ◄───┘               │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Core Components
//
// Task:
//   - Wraps a Work function with an integer ID and a result slot
//   - Measures queue wait, call time and total lifecycle
//   - Logs the timings on Close when verbose
//
// Pool:
//   - Fixed number of worker goroutines reading a buffered job channel
//   - Submit returns a Future that resolves exactly once
//   - Recovers panics and reports them as errors
//   - Changed() is closed each time a future resolves
//
// Manager:
//   - Pending FIFO, in-flight futures, future to task map
//   - Deferred failure FIFO and a monotonic cancelled flag
//   - Never more than maxWorkers tasks in flight
//
// # Admission
//
// admit() runs under the manager lock and only covers popping a task,
// handing it to the pool and recording the future:
//
//	for pending not empty && HasIdleWorker() {
//	    if cancelled { return CancelledError }
//	    task := pending.Pop()
//	    future := pool.Submit(task)
//	    inFlight = append(inFlight, future)
//	}
//
// The manager runs one goroutine that waits on pool.Changed() and runs
// admit() again whenever a worker finishes, so queued tasks start as soon
// as a worker frees up without anyone polling. Callbacks are never invoked
// with the lock held.
//
// # Failures
//
// A failing task never aborts reconciliation of the others. Its future is
// queued on the deferred FIFO, and the error is returned unchanged by the
// next WaitForAny or WaitForAll call, on the goroutine making that call.
// Remaining failures stay queued for later calls.
//
// # Cancellation
//
// Cancel only stops admission. Tasks already handed to the pool run to
// completion; stopping them early is the work function's business, through
// the context it receives.
//
// WaitForAll returns the CancelledError as soon as admission is refused, while
// other tasks may still be running. Drain joins them without admitting
// anything new, so their values still reach the callback:
//
//	if err := m.WaitForAll(ctx); srvErrors.IsCancelledError(err) {
//	    _ = m.Drain(ctx)
//	}
//
// The process may register one Manager with SetGlobal so that library code
// can call Cancel and CheckCancelled without holding a reference.
//
// # Usage Example
//
//	results, err := scheduler.RunInParallel(ctx, []scheduler.Work[string]{
//	    func(ctx context.Context) (string, error) { return "a", nil },
//	    func(ctx context.Context) (string, error) { return "b", nil },
//	})
//
//	m := scheduler.RunInParallelAsync(ctx, works, func(v string) {
//	    fmt.Println("done:", v)
//	})
//	defer m.Close()
//	if err := m.WaitForAll(ctx); err != nil {
//	    return err
//	}
package scheduler
