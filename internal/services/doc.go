// Package services implements the business logic layer for taskpool.
//
// Handlers and the CLI talk to services, services talk to the scheduler.
//
// # Runner
//
// Runner executes one batch of commands at a time through a
// scheduler.Manager and keeps the status of the current or last batch.
//
// State Machine:
//
//	┌───────┐    ┌─────────┐    ┌───────────┐
//	│ Ready │───►│ Running │───►│ Completed │
//	└───────┘    └─────────┘    └───────────┘
//	                 │   ▲
//	                 │   │ (next Run)
//	                 ▼   │
//	        ┌───────────────────────┐
//	        │  Cancelled / Error    │
//	        └───────────────────────┘
//
// Key behaviors:
//   - Only one batch runs at a time (returns BatchInProgressError otherwise)
//   - Workers come from the batch, then the runner default, then one per task
//   - Outputs are always returned in batch order
//   - In streaming mode onResult receives each output as soon as it succeeds
//   - The first failing task ends the batch with its error; tasks already
//     running are left to finish
//   - Cancel stops admission of the remaining tasks and is visible through
//     CheckCancelled to commands that have not started yet
//   - After a cancellation Run waits for the commands still running and
//     records their outputs; only ending ctx kills them
//   - CancelRunning checks and cancels under one lock, so a batch that just
//     finished is never left flagged as cancelled
//
// Runner implements scheduler.Controller, so the CLI registers it with
// scheduler.SetGlobal and SIGINT ends up in Runner.Cancel. POST
// /api/v1/cancel goes through Runner.CancelRunning.
//
// Usage:
//
//	runner := services.NewRunner(cfg.Scheduler.Workers, retry, cfg.Scheduler.Verbose)
//	outputs, err := runner.Run(ctx, batch, func(out models.CommandOutput) {
//	    fmt.Println(out.Name, "done")
//	})
//	status := runner.Status()
//
// # Thread Safety
//
// Every Runner method is safe for concurrent use. Status may be polled
// while Run is blocked.
package services
