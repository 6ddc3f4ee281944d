package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one entry of the plain close-price line.
type PricePoint struct {
	Time  time.Time       `json:"time"`
	Price decimal.Decimal `json:"price"`
}

// ScalarPoint is a single-valued indicator output (RSI, ATR, OBV, CCI, MFI, ADX, SMA).
type ScalarPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// MACDPoint holds the three MACD lines for one bar.
type MACDPoint struct {
	Time      time.Time `json:"time"`
	MACD      float64   `json:"macd"`
	Signal    float64   `json:"signal"`
	Histogram float64   `json:"histogram"`
}

// StochasticPoint holds the slow %K and %D lines for one bar.
type StochasticPoint struct {
	Time  time.Time `json:"time"`
	SlowK float64   `json:"slowK"`
	SlowD float64   `json:"slowD"`
}

// BollingerPoint holds the three bands for one bar.
type BollingerPoint struct {
	Time   time.Time `json:"time"`
	Upper  float64   `json:"upper"`
	Middle float64   `json:"middle"`
	Lower  float64   `json:"lower"`
}
