package model

import (
	"context"
	"time"
)

// ── Storage Port Interfaces ──
// These interfaces decouple the price-history service from concrete
// storage implementations (SQLite, Redis).

// BarReader reads stored price history.
type BarReader interface {
	// ReadBars returns bars for market:symbol with time >= from, ascending.
	// A zero from reads the whole history.
	ReadBars(ctx context.Context, market, symbol string, from time.Time) (Series, error)

	// Close releases underlying resources.
	Close() error
}

// BarWriter appends or replaces stored price history.
type BarWriter interface {
	// WriteBars upserts bars for market:symbol, keyed by bar time.
	WriteBars(ctx context.Context, market, symbol string, bars Series) error

	// Close releases underlying resources.
	Close() error
}

// SeriesCache caches resolved series keyed by an opaque string.
type SeriesCache interface {
	// GetSeries returns the cached series. A miss is reported as an error
	// the caller can distinguish (see the concrete implementation).
	GetSeries(ctx context.Context, key string) (Series, error)

	// SetSeries stores the series for the configured TTL.
	SetSeries(ctx context.Context, key string, s Series) error
}
