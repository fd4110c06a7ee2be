package store

import (
	"context"
	"database/sql"

	"github.com/kubev2v/taskpool/internal/store/migrations"
)

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	batches *BatchStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:      db,
		batches: NewBatchStore(NewQueryInterceptor(db)),
	}
}

// Migrate creates or upgrades the schema.
func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

func (s *Store) Batches() *BatchStore {
	return s.batches
}

func (s *Store) Close() error {
	return s.db.Close()
}
