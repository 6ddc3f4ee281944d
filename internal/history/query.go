// Package history resolves chart requests (symbol, range, market) to OHLC
// series. It reads through a cache in front of the price-history store and
// checks bar invariants at ingestion so calculators can trust their input.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultMarket is used when a query leaves the market empty.
const DefaultMarket = "US"

// DefaultRange is used when a query leaves the range empty.
const DefaultRange = "1Y"

var (
	// ErrNoSymbol is returned by Normalize for a blank symbol.
	ErrNoSymbol = errors.New("symbol is required")
	// ErrUnknownRange is returned for range codes outside Ranges.
	ErrUnknownRange = errors.New("unknown range")
	// ErrNoData is returned when the store has no bars for the query.
	ErrNoData = errors.New("no price data")
	// ErrInvalidBar wraps the first invariant violation found in a series.
	ErrInvalidBar = errors.New("invalid bar")
)

// Ranges lists the accepted range codes.
var Ranges = []string{"1M", "3M", "6M", "YTD", "1Y", "2Y", "5Y", "MAX"}

// Query identifies one price series.
type Query struct {
	Symbol string
	Range  string
	Market string
}

// Normalize upper-cases market and range and fills defaults.
func (q Query) Normalize() (Query, error) {
	q.Symbol = strings.TrimSpace(q.Symbol)
	if q.Symbol == "" {
		return q, ErrNoSymbol
	}
	q.Market = strings.ToUpper(strings.TrimSpace(q.Market))
	if q.Market == "" {
		q.Market = DefaultMarket
	}
	q.Range = strings.ToUpper(strings.TrimSpace(q.Range))
	if q.Range == "" {
		q.Range = DefaultRange
	}
	if _, err := RangeStart(q.Range, time.Now()); err != nil {
		return q, err
	}
	return q, nil
}

// Key returns the cache key: "series:{market}:{symbol}:{range}".
func (q Query) Key() string {
	return "series:" + q.Market + ":" + q.Symbol + ":" + q.Range
}

func (q Query) String() string {
	return q.Market + ":" + q.Symbol + "@" + q.Range
}

// RangeStart returns the earliest bar time for a range code relative to now.
// MAX returns the zero time (whole history).
func RangeStart(rng string, now time.Time) (time.Time, error) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToUpper(rng) {
	case "1M":
		return today.AddDate(0, -1, 0), nil
	case "3M":
		return today.AddDate(0, -3, 0), nil
	case "6M":
		return today.AddDate(0, -6, 0), nil
	case "YTD":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), nil
	case "1Y":
		return today.AddDate(-1, 0, 0), nil
	case "2Y":
		return today.AddDate(-2, 0, 0), nil
	case "5Y":
		return today.AddDate(-5, 0, 0), nil
	case "MAX":
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownRange, rng)
}

// ParseTarget splits "MARKET:SYMBOL" (or a bare symbol) into a market and symbol.
func ParseTarget(s string) (market, symbol string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", errors.New("empty target")
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return DefaultMarket, parts[0], nil
	}
	if parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed target %q", s)
	}
	return strings.ToUpper(parts[0]), parts[1], nil
}
