// Package database wraps database/sql over the pgx stdlib driver with
// pool settings and transaction helpers shared by all services.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/sharebox/pkg/logger"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("record not found")

// serializationFailure is the PostgreSQL error code raised when two
// serializable transactions conflict. Callers retry on it.
const serializationFailure = "40001"

// Database wraps a *sql.DB connection pool.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens a connection pool against url and verifies connectivity.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{db: db, log: log}, nil
}

// DB returns the underlying *sql.DB for libraries that need it directly
// (watermill-sql publishers, goose).
func (d *Database) DB() *sql.DB {
	return d.db
}

// Ping checks connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (d *Database) Close() {
	_ = d.db.Close()
}

// TxFunc is the body of a transaction executed by WithTx.
type TxFunc func(*sql.Tx) error

// WithTx runs fn inside a transaction, committing on nil and rolling back
// on error or panic.
func (d *Database) WithTx(ctx context.Context, fn TxFunc) error {
	return d.withTx(ctx, nil, fn)
}

// WithSerializableTx runs fn inside a SERIALIZABLE transaction, retrying up
// to maxRetries times when the database aborts it with a serialization
// failure. fn must be safe to re-run.
func (d *Database) WithSerializableTx(ctx context.Context, maxRetries int, fn TxFunc) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = d.withTx(ctx, opts, fn)
		if !IsSerializationFailure(err) {
			return err
		}
		if d.log != nil {
			d.log.DebugContext(ctx, "serialization conflict, retrying tx", "attempt", attempt+1)
		}
	}
	return fmt.Errorf("serializable tx: retries exhausted: %w", err)
}

func (d *Database) withTx(ctx context.Context, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		p := recover()
		switch {
		case p != nil:
			_ = tx.Rollback()
			panic(p)

		case err != nil:
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("rollback tx: %w. original error: %w", rbErr, err)
			}

		default:
			if err = tx.Commit(); err != nil {
				err = fmt.Errorf("commit tx: %w", err)
			}
		}
	}()

	err = fn(tx)
	return
}

// IsSerializationFailure reports whether err is a PostgreSQL serialization
// conflict (SQLSTATE 40001).
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}

// MapError converts driver-level not-found errors to ErrNotFound.
func MapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
