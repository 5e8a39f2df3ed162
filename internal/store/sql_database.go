package store

import (
	"database/sql"

	"github.com/travelnote/travelnote/internal/logger"
	"github.com/travelnote/travelnote/migrations"
)

// DB wraps the shared *sql.DB connection together with the dialect it was
// opened with, so migrations and error mapping can stay driver-aware.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Implementations are driver-specific.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies all pending schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
