package model

import (
	"fmt"
	"time"
)

// Series is an ordered run of bars, ascending by time with no duplicates.
// Calculators treat it as read-only.
type Series []Bar

// Validate checks every bar plus strict time ordering.
func (s Series) Validate() error {
	for i := range s {
		if err := s[i].Validate(); err != nil {
			return err
		}
		if i > 0 && !s[i].Time.After(s[i-1].Time) {
			return fmt.Errorf("bar %d: time %s not after %s", i,
				s[i].Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes returns the close column as float64.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Close.InexactFloat64()
	}
	return out
}

// Highs returns the high column as float64.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].High.InexactFloat64()
	}
	return out
}

// Lows returns the low column as float64.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = s[i].Low.InexactFloat64()
	}
	return out
}

// Volumes returns the volume column as float64.
func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i := range s {
		out[i] = float64(s[i].Volume)
	}
	return out
}

// ClosePoints returns the {time, price} line used by the chart endpoint.
func (s Series) ClosePoints() []PricePoint {
	out := make([]PricePoint, len(s))
	for i := range s {
		out[i] = PricePoint{Time: s[i].Time, Price: s[i].Close}
	}
	return out
}
