package indicator

// FlatSeedEMA returns the exponential moving average of values with the
// same length as the input.
//
// The seed is the plain mean of the first period values and is emitted
// verbatim for indices 0..period-1, rather than leaving the warm-up
// undefined. MACD's output slicing depends on this flat prefix. When
// len(values) < period the seed is the mean of whatever is available.
func FlatSeedEMA(values []float64, period int) []float64 {
	n := len(values)
	out := make([]float64, n)
	if n == 0 || period <= 0 {
		return out
	}

	seedLen := period
	if seedLen > n {
		seedLen = n
	}
	sum := 0.0
	for i := 0; i < seedLen; i++ {
		sum += values[i]
	}
	seed := sum / float64(seedLen)
	for i := 0; i < seedLen; i++ {
		out[i] = seed
	}

	k := 2.0 / float64(period+1)
	for i := period; i < n; i++ {
		out[i] = (values[i]-out[i-1])*k + out[i-1]
	}
	return out
}
