package indicator

// Wilder applies Wilder's smoothing to samples.
// The first output is the mean of samples[0:period]; each later output is
// (prev*(period-1) + x) / period. The result has len(samples)-period+1
// entries, or none when there are fewer than period samples.
func Wilder(samples []float64, period int) []float64 {
	n := len(samples)
	if period <= 0 || n < period {
		return nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += samples[i]
	}
	out := make([]float64, n-period+1)
	out[0] = sum / float64(period)

	p := float64(period)
	for k := 1; k < len(out); k++ {
		out[k] = (out[k-1]*(p-1) + samples[period-1+k]) / p
	}
	return out
}

// wilderSum is the running-sum flavour used inside ADX: the seed is the
// sum of the first period samples and each step is prev - prev/period + x.
func wilderSum(samples []float64, period int) []float64 {
	n := len(samples)
	if period <= 0 || n < period {
		return nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += samples[i]
	}
	out := make([]float64, n-period+1)
	out[0] = sum

	p := float64(period)
	for k := 1; k < len(out); k++ {
		out[k] = out[k-1] - out[k-1]/p + samples[period-1+k]
	}
	return out
}
