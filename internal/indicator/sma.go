package indicator

import "invest-indicators/internal/model"

// SMA returns the full-window simple moving averages of values: entry j is
// the mean of values[j : j+period]. The result has len(values)-period+1
// entries. Each window is summed afresh so bounded inputs stay bounded.
func SMA(values []float64, period int) []float64 {
	n := len(values)
	if period <= 0 || n < period {
		return nil
	}

	out := make([]float64, n-period+1)
	for j := range out {
		out[j] = mean(values[j : j+period])
	}
	return out
}

// MovingAverage is the chart overlay (MA5/MA20/MA60): the close SMA aligned
// to bars[period-1:]. Warm-up indices are dropped rather than emitted as nulls.
func MovingAverage(bars model.Series, period int) []model.ScalarPoint {
	avg := SMA(bars.Closes(), period)
	return alignScalar(bars, avg)
}

// alignScalar pairs values with the tail of bars.
func alignScalar(bars model.Series, values []float64) []model.ScalarPoint {
	out := make([]model.ScalarPoint, len(values))
	offset := len(bars) - len(values)
	for i, v := range values {
		out[i] = model.ScalarPoint{Time: bars[offset+i].Time, Value: v}
	}
	return out
}
