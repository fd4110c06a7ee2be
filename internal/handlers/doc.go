// Package handlers implements v1.ServerInterface on top of the services
// layer. Handlers only translate between HTTP and the services: parameter
// validation, model to API conversion, and error to status code mapping.
//
//	gin request ──► Handler ──► services.Runner          (status, cancel)
//	                       └──► services.HistoryService  (finished batches)
//
// Registration:
//
//	v1.RegisterHandlers(router, handlers.New(runner, history))
//
// # Endpoints
//
//	┌────────┬───────────────────────┬──────────────────────────────────────┐
//	│ Method │ Path                  │                                      │
//	├────────┼───────────────────────┼──────────────────────────────────────┤
//	│ GET    │ /api/v1/status        │ current or last batch                │
//	│ POST   │ /api/v1/cancel        │ stop admission of the running batch  │
//	│ GET    │ /api/v1/batches       │ finished batches, newest first       │
//	│ GET    │ /api/v1/batches/{id}  │ one finished batch with its outputs  │
//	│ GET    │ /health               │ liveness, never authenticated        │
//	└────────┴───────────────────────┴──────────────────────────────────────┘
//
// A batch status looks like:
//
//	{
//	    "id": "uuid",
//	    "name": "deploy",
//	    "state": "running",    // ready|running|completed|cancelled|error
//	    "total": 10,
//	    "succeeded": 4,
//	    "running": 3,
//	    "pending": 3,
//	    "startedAt": "2026-01-01T10:00:00Z"
//	}
//
// Cancel answers 202 with the status once admission is stopped, or 409 when
// no batch is running. Running tasks are never interrupted.
//
// GET /api/v1/batches accepts state (repeatable), name, page (from 1) and
// pageSize (1 to 100, default 20) and answers with page, pageCount, total
// and batches. GET /api/v1/batches/{id} adds the outputs of the successful
// tasks to the status and answers 404 for an unknown id.
//
// Errors share one body: {"error": "message"}.
package handlers
