package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/Unkn0wN1499/HackSmiths.AI/internal/config"
)

type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

var (
	dbInstance *DB
	once       sync.Once
)

// NewDB creates a new database connection pool
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	var err error
	once.Do(func() {
		var db *sqlx.DB
		db, err = sqlx.Connect("postgres", cfg.DSN())
		if err != nil {
			return
		}

		dbInstance = Wrap(db)
	})

	return dbInstance, err
}

// Wrap configures the pool of an already opened connection, e.g. one opened
// through the pgx stdlib driver.
func Wrap(db *sqlx.DB) *DB {
	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(10), // Limit to 10 concurrent transactions
	}
}

// WithTx executes a function within a transaction
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	seq             BIGSERIAL,
	id              TEXT PRIMARY KEY,
	sku             TEXT NOT NULL,
	name            TEXT NOT NULL,
	category        TEXT NOT NULL DEFAULT '',
	supplier        TEXT NOT NULL DEFAULT '',
	location_id     TEXT NOT NULL DEFAULT '',
	price           NUMERIC(12, 2) NOT NULL DEFAULT 0,
	stock_level     INTEGER NOT NULL CHECK (stock_level >= 0),
	min_stock_level INTEGER NOT NULL CHECK (min_stock_level >= 0),
	max_stock_level INTEGER NOT NULL,
	reorder_point   INTEGER NOT NULL,
	lead_time       INTEGER NOT NULL CHECK (lead_time >= 0),
	sales_velocity  DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_reordered  TIMESTAMPTZ,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS alerts (
	id         TEXT PRIMARY KEY,
	type       TEXT NOT NULL,
	product_id TEXT NOT NULL,
	message    TEXT NOT NULL,
	severity   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	read       BOOLEAN NOT NULL DEFAULT FALSE
);
`

// Migrate creates the products and alerts tables when missing.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
