package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/taskpool/internal/models"
	srvErrors "github.com/kubev2v/taskpool/pkg/errors"
)

var batchColumns = []string{"id", "name", "state", "total", "succeeded", "error", "started_at", "finished_at"}

type BatchStore struct {
	db QueryInterceptor
}

func NewBatchStore(db QueryInterceptor) *BatchStore {
	return &BatchStore{db: db}
}

// Save stores the batch and replaces its outputs.
func (s *BatchStore) Save(ctx context.Context, status models.BatchStatus, outputs []models.CommandOutput) error {
	if status.ID == "" {
		return fmt.Errorf("cannot save a batch without id")
	}

	var errMsg *string
	if status.Error != nil {
		msg := status.Error.Error()
		errMsg = &msg
	}
	var finishedAt *time.Time
	if !status.FinishedAt.IsZero() {
		t := status.FinishedAt.UTC()
		finishedAt = &t
	}

	upsert, args, err := sq.Insert("batches").
		Columns(batchColumns...).
		Values(status.ID, status.Name, string(status.State), status.Total, status.Succeeded, errMsg, status.StartedAt.UTC(), finishedAt).
		Suffix(queryUpsertBatchSuffix).
		ToSql()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsert, args...); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", status.ID, err)
	}
	if _, err := tx.ExecContext(ctx, queryDeleteOutputs, status.ID); err != nil {
		return err
	}

	if len(outputs) > 0 {
		insert := sq.Insert("task_outputs").Columns("batch_id", "idx", "name", "stdout", "stderr", "duration_ms")
		for _, o := range outputs {
			insert = insert.Values(status.ID, o.Index, o.Name, o.Stdout, o.Stderr, o.Duration.Milliseconds())
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to save outputs of batch %s: %w", status.ID, err)
		}
	}

	return tx.Commit()
}

// Get returns the batch with its outputs, or a ResourceNotFoundError.
func (s *BatchStore) Get(ctx context.Context, id string) (*models.BatchRecord, error) {
	query, args, err := sq.Select(batchColumns...).From("batches").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	status, err := scanBatch(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewBatchNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	outputs, err := s.outputs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.BatchRecord{Status: status, Outputs: outputs}, nil
}

func (s *BatchStore) List(ctx context.Context, opts ...ListOption) ([]models.BatchStatus, error) {
	builder := sq.Select(batchColumns...).From("batches")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []models.BatchStatus
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Count takes filter options only; limit and offset are dropped.
func (s *BatchStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("batches")
	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.RemoveLimit().RemoveOffset().ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func (s *BatchStore) outputs(ctx context.Context, id string) ([]models.CommandOutput, error) {
	rows, err := s.db.QueryContext(ctx, queryListOutputs, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []models.CommandOutput
	for rows.Next() {
		var (
			o  models.CommandOutput
			ms int64
		)
		if err := rows.Scan(&o.Index, &o.Name, &o.Stdout, &o.Stderr, &ms); err != nil {
			return nil, err
		}
		o.Duration = time.Duration(ms) * time.Millisecond
		outputs = append(outputs, o)
	}
	return outputs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (models.BatchStatus, error) {
	var (
		b          models.BatchStatus
		state      string
		errMsg     sql.NullString
		finishedAt sql.NullTime
	)
	if err := row.Scan(&b.ID, &b.Name, &state, &b.Total, &b.Succeeded, &errMsg, &b.StartedAt, &finishedAt); err != nil {
		return models.BatchStatus{}, err
	}
	b.State = models.BatchState(state)
	if errMsg.Valid {
		b.Error = errors.New(errMsg.String)
	}
	if finishedAt.Valid {
		b.FinishedAt = finishedAt.Time
	}
	return b, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByStates(states ...models.BatchState) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(states) == 0 {
			return b
		}
		values := make([]string, 0, len(states))
		for _, s := range states {
			values = append(values, string(s))
		}
		return b.Where(sq.Eq{"state": values})
	}
}

func ByName(name string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if name == "" {
			return b
		}
		return b.Where(sq.Eq{"name": name})
	}
}

func StartedAfter(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"started_at": t.UTC()})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort lists the most recent batches first.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("started_at DESC", "id")
	}
}
