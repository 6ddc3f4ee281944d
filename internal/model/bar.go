package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one period of OHLCV price data for a single instrument.
// Prices are decimals so values from the price-history store survive
// untouched until a calculator reads them.
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// NewBar builds a Bar from float prices. Mostly useful for tests and CSV import.
func NewBar(ts time.Time, open, high, low, close float64, volume int64) Bar {
	return Bar{
		Time:   ts,
		Open:   decimal.NewFromFloat(open),
		High:   decimal.NewFromFloat(high),
		Low:    decimal.NewFromFloat(low),
		Close:  decimal.NewFromFloat(close),
		Volume: volume,
	}
}

// Validate checks the price invariants callers are expected to uphold:
// high >= max(open, close), low <= min(open, close), volume >= 0.
func (b *Bar) Validate() error {
	if b.High.LessThan(decimal.Max(b.Open, b.Close)) {
		return fmt.Errorf("bar %s: high %s below open/close", b.Time.Format(time.RFC3339), b.High)
	}
	if b.Low.GreaterThan(decimal.Min(b.Open, b.Close)) {
		return fmt.Errorf("bar %s: low %s above open/close", b.Time.Format(time.RFC3339), b.Low)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar %s: negative volume %d", b.Time.Format(time.RFC3339), b.Volume)
	}
	return nil
}

// JSON returns the JSON-encoded bar (ignoring errors for hot-path usage).
func (b *Bar) JSON() []byte {
	data, _ := json.Marshal(b)
	return data
}
