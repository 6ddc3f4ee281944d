package indicator

import "math"

// TrueRange returns TR for indices 1..len-1 of the given columns:
// max(high-low, |high-prevClose|, |low-prevClose|). Entry j belongs to bar j+1.
func TrueRange(highs, lows, closes []float64) []float64 {
	n := len(closes)
	if n < 2 {
		return nil
	}
	out := make([]float64, n-1)
	for i := 1; i < n; i++ {
		prev := closes[i-1]
		out[i-1] = math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-prev), math.Abs(lows[i]-prev)))
	}
	return out
}

// TypicalPrice returns (high+low+close)/3 per bar.
func TypicalPrice(highs, lows, closes []float64) []float64 {
	out := make([]float64, len(closes))
	for i := range closes {
		out[i] = (highs[i] + lows[i] + closes[i]) / 3
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
