package indicator

import "invest-indicators/internal/model"

// OBV calculates On-Balance Volume. The first bar is emitted with value 0
// as the seed, so the output has one point per bar. A single bar yields nothing.
func OBV(bars model.Series) []model.ScalarPoint {
	n := len(bars)
	if n < 2 {
		return []model.ScalarPoint{}
	}

	out := make([]model.ScalarPoint, n)
	out[0] = model.ScalarPoint{Time: bars[0].Time}
	obv := 0.0
	for i := 1; i < n; i++ {
		switch bars[i].Close.Cmp(bars[i-1].Close) {
		case 1:
			obv += float64(bars[i].Volume)
		case -1:
			obv -= float64(bars[i].Volume)
		}
		out[i] = model.ScalarPoint{Time: bars[i].Time, Value: obv}
	}
	return out
}
