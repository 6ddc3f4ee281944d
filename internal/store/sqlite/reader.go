package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"invest-indicators/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var _ model.BarReader = (*Reader)(nil)

// Reader provides read-only access to the price history.
type Reader struct {
	db *sql.DB
}

// NewReader opens a SQLite connection for reading.
func NewReader(dbPath string) (*Reader, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open reader: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	log.Printf("[sqlite-reader] opened %s", dbPath)
	return &Reader{db: db}, nil
}

// DB returns the underlying sql.DB for health checks.
func (r *Reader) DB() *sql.DB { return r.db }

// ReadBars reads bars for market:symbol at or after from, ordered by
// timestamp ascending. A zero from reads everything.
func (r *Reader) ReadBars(ctx context.Context, market, symbol string, from time.Time) (model.Series, error) {
	var fromTS int64
	if !from.IsZero() {
		fromTS = from.Unix()
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts, open, high, low, close, volume
		FROM price_bars
		WHERE market = ? AND symbol = ? AND ts >= ?
		ORDER BY ts ASC
	`, market, symbol, fromTS)
	if err != nil {
		return nil, fmt.Errorf("sqlite query price_bars: %w", err)
	}
	defer rows.Close()

	var bars model.Series
	for rows.Next() {
		var b model.Bar
		var tsUnix int64
		var open, high, low, closeP string
		if err := rows.Scan(&tsUnix, &open, &high, &low, &closeP, &b.Volume); err != nil {
			return nil, fmt.Errorf("sqlite scan price_bars: %w", err)
		}
		b.Time = time.Unix(tsUnix, 0).UTC()
		if b.Open, err = decimal.NewFromString(open); err != nil {
			return nil, fmt.Errorf("sqlite parse open at %d: %w", tsUnix, err)
		}
		if b.High, err = decimal.NewFromString(high); err != nil {
			return nil, fmt.Errorf("sqlite parse high at %d: %w", tsUnix, err)
		}
		if b.Low, err = decimal.NewFromString(low); err != nil {
			return nil, fmt.Errorf("sqlite parse low at %d: %w", tsUnix, err)
		}
		if b.Close, err = decimal.NewFromString(closeP); err != nil {
			return nil, fmt.Errorf("sqlite parse close at %d: %w", tsUnix, err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Close closes the reader.
func (r *Reader) Close() error {
	return r.db.Close()
}
