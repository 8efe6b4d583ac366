package postgres

import (
	"context"
	"database/sql"

	"github.com/finvoice/finvoice/internal/config"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps sqlx.DB. It is the single long-lived store handle, constructed
// at process start and injected into every repository.
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier defines the database operations repositories rely on.
// Both *sqlx.DB and *sqlx.Tx implement these methods.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// NewDB creates a new DB instance. The connection URL is mandatory, so a
// misconfigured process fails here rather than on first query.
func NewDB(config *config.Configuration, logger *logger.Logger) (*DB, error) {
	dsn := config.Postgres.GetDSN()
	if dsn == "" {
		return nil, ierr.NewError("postgres connection url is not configured").
			WithHint("Set FINVOICE_POSTGRES_URL or postgres.url in config.yaml").
			Mark(ierr.ErrSystem)
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	return &DB{DB: db, logger: logger}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}
