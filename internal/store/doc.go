// Package store implements the batch history of taskpool.
//
// This package provides persistent storage using DuckDB. Every finished
// batch is saved with the outputs of its successful tasks so it can be
// listed and inspected after the process that ran it is gone.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                          BatchStore                             │
//	│                  ▼                           ▼                  │
//	│              batches                   task_outputs             │
//	├─────────────────────────────────────────────────────────────────┤
//	│                 QueryInterceptor (debug logging)                │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  batches           │  One row per batch: state, counters, error  │
//	│  task_outputs      │  Stdout/stderr of successful tasks          │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	db, err := store.NewDB(path)   // store.MemoryDSN for a private in-memory db
//	s := store.NewStore(db)
//	err = s.Migrate(ctx)           // applies pending migrations in order
//
// # BatchStore
//
// Methods:
//   - Save(ctx, status, outputs) → error (upsert; outputs are replaced)
//   - Get(ctx, id) → *models.BatchRecord (ResourceNotFoundError if unknown)
//   - List(ctx, opts...) → []models.BatchStatus
//   - Count(ctx, opts...) → int
//
// List Options:
//
// BatchStore.List uses the functional options pattern. Each ListOption
// modifies a squirrel.SelectBuilder:
//
//	batches, err := s.Batches().List(ctx,
//	    store.ByStates(models.BatchStateError, models.BatchStateCancelled),
//	    store.ByName("deploy"),
//	    store.WithDefaultSort(),
//	    store.WithLimit(20),
//	    store.WithOffset(0),
//	)
//
// Available options:
//   - ByStates(states ...BatchState): SQL WHERE state IN (...)
//   - ByName(name string): SQL WHERE name = ?
//   - StartedAfter(t time.Time): SQL WHERE started_at >= ?
//   - WithDefaultSort(): most recent first, id as tie-breaker
//   - WithLimit / WithOffset: pagination
//
// # QueryInterceptor
//
// All statements go through a QueryInterceptor that logs them at debug
// level under the "store" logger.
//
// # Timestamps
//
// DuckDB TIMESTAMP has no time zone; times are stored in UTC and read back
// in UTC.
package store
