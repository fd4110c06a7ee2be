package store

// Batch queries
const (
	queryUpsertBatchSuffix = `
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			state = EXCLUDED.state,
			total = EXCLUDED.total,
			succeeded = EXCLUDED.succeeded,
			error = EXCLUDED.error,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at`

	queryDeleteOutputs = `DELETE FROM task_outputs WHERE batch_id = ?`

	queryListOutputs = `
		SELECT idx, name, stdout, stderr, duration_ms
		FROM task_outputs WHERE batch_id = ?
		ORDER BY idx`
)
