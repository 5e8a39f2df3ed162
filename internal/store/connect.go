package store

import (
	"context"
	"fmt"

	"github.com/travelnote/travelnote/internal/config"
	"github.com/travelnote/travelnote/internal/logger"
)

// Connect opens the database selected by cfg.Driver and runs migrations.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var db *DB
	var err error

	switch cfg.Driver {
	case "pgx":
		db, err = NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		return nil, err
	}

	return db, nil
}
