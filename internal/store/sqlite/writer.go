package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"invest-indicators/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// defaultBatchSize bounds the rows written per transaction.
const defaultBatchSize = 500

// WriterConfig configures the SQLite writer.
type WriterConfig struct {
	DBPath string // path to SQLite database file, e.g. "data/prices.db"
}

var _ model.BarWriter = (*Writer)(nil)

// Writer is a single-connection SQLite writer with transaction batching.
type Writer struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (w *Writer) DB() *sql.DB { return w.db }

// New creates a new SQLite Writer, initializes the database with WAL mode and schema.
func New(cfg WriterConfig) (*Writer, error) {
	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Set connection pool for single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", cfg.DBPath)
	return &Writer{db: db}, nil
}

// Prices are stored as TEXT so decimals round-trip exactly.
func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS price_bars (
			market  TEXT    NOT NULL,
			symbol  TEXT    NOT NULL,
			ts      INTEGER NOT NULL,
			open    TEXT    NOT NULL,
			high    TEXT    NOT NULL,
			low     TEXT    NOT NULL,
			close   TEXT    NOT NULL,
			volume  INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (market, symbol, ts)
		);
	`)
	return err
}

// WriteBars upserts bars for market:symbol, committing every defaultBatchSize rows.
func (w *Writer) WriteBars(ctx context.Context, market, symbol string, bars model.Series) error {
	for start := 0; start < len(bars); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(bars) {
			end = len(bars)
		}
		if err := w.insertBatch(ctx, market, symbol, bars[start:end]); err != nil {
			return fmt.Errorf("sqlite write %s:%s: %w", market, symbol, err)
		}
	}
	return nil
}

// insertBatch inserts a batch of bars in a single transaction.
func (w *Writer) insertBatch(ctx context.Context, market, symbol string, bars model.Series) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO price_bars (market, symbol, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err := stmt.ExecContext(ctx, market, symbol, b.Time.Unix(),
			b.Open.String(), b.High.String(), b.Low.String(), b.Close.String(), b.Volume)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (w *Writer) Close() error {
	return w.db.Close()
}
