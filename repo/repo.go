// Package repo implements the catalog persistence layer over a
// relational store. The sqlite3 and pgx drivers are both supported; SQL
// is written with ? bindvars and rebound per driver.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/htol/booksdb/config"
	"github.com/htol/booksdb/errs"
	"github.com/htol/booksdb/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	booksTable       = "books"
	authorsTable     = "authors"
	bookAuthorsTable = "book_authors"
)

// Repo is the concrete Repository. It holds at most one open connection
// pool at a time; instantiate one and inject it wherever the catalog is
// needed.
type Repo struct {
	mu sync.Mutex // guards db across Connect/Close
	db *sqlx.DB
}

var _ Repository = (*Repo)(nil)

func New() *Repo {
	return &Repo{}
}

// Connect opens the configured database, pings it and creates the schema
// if it is missing. An existing connection is closed before being
// replaced, so reconnecting never leaks the previous pool.
func (r *Repo) Connect(cfg config.DatabaseConfig) error {
	driver := cfg.DriverName()
	db, err := sqlx.Open(driver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open %s: %w: %v", driver, errs.ErrConnection, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping %s: %w: %v", driver, errs.ErrConnection, err)
	}
	if err := createSchema(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("prepare schema: %w: %v", errs.ErrConnection, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db != nil {
		logger.Warn("Replacing existing database connection", "driver", driver)
		if err := r.db.Close(); err != nil {
			logger.Error("Failed to close previous connection", "error", err)
		}
	}
	r.db = db
	logger.Info("Connected to database", "driver", driver)
	return nil
}

// Close releases the current connection. Closing a repo that is not
// connected succeeds.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	logger.Info("Closing database connection")
	err := r.db.Close()
	r.db = nil
	if err != nil {
		return fmt.Errorf("close: %w: %v", errs.ErrConnection, err)
	}
	return nil
}

// Ping verifies the store is reachable.
func (r *Repo) Ping() error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping: %w: %v", errs.ErrConnection, err)
	}
	return nil
}

// handle returns the open pool or ErrNotConnected.
func (r *Repo) handle() (*sqlx.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil, errs.ErrNotConnected
	}
	return r.db, nil
}

// withTx runs fn inside a transaction. Any error from fn aborts the
// transaction; the deferred rollback is a no-op once the commit has gone
// through.
func (r *Repo) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return persistence("begin transaction", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return persistence("commit transaction", err)
	}
	return nil
}

// persistence classifies a statement failure under ErrPersistence and
// keeps the cause text. The core never retries; the wrapped error goes
// straight back to the caller.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, errs.ErrPersistence, err)
}
