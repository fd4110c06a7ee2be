package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kubev2v/taskpool/internal/config"
	"github.com/kubev2v/taskpool/internal/store"
)

const dbFile = "taskpool.duckdb"

// openStore opens the history database in the data folder, or an in-memory
// one when no folder is configured, and migrates it.
func openStore(ctx context.Context, cfg *config.Configuration) (*store.Store, error) {
	dsn := store.MemoryDSN
	if cfg.DataFolder != "" {
		if err := os.MkdirAll(cfg.DataFolder, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data folder: %w", err)
		}
		dsn = filepath.Join(cfg.DataFolder, dbFile)
	}

	db, err := store.NewDB(dsn)
	if err != nil {
		return nil, err
	}

	s := store.NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	zap.S().Named("cli").Debugw("history store opened", "dsn", dsn)
	return s, nil
}
