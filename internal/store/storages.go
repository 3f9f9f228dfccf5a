package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-repo-pulse/internal/config"
	"github.com/MKhiriev/go-repo-pulse/internal/logger"
)

// Storages bundles the repositories of one database.
type Storages struct {
	FlowRunRepository FlowRunRepository

	db *DB
}

// NewStorages opens the database selected by cfg.DB.DSN (PostgreSQL for
// postgres:// URLs, a SQLite file otherwise), migrates it and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	if cfg.DB.DSN == "" {
		return nil, ErrUnsupportedDSN
	}

	var (
		db  *DB
		err error
	)
	if IsPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s database: %w", db.Dialect(), err)
	}

	return newStorages(db, log), nil
}

func newStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		FlowRunRepository: NewFlowRunRepository(db, log),
		db:                db,
	}
}

// Ping checks that the database is reachable.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Storages) Close() error {
	return s.db.Close()
}
