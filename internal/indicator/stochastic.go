package indicator

import "invest-indicators/internal/model"

// Stochastic calculates the slow stochastic oscillator. Raw %K over kPeriod
// bars is smoothed by a dPeriod SMA into slow %K, which is smoothed again
// into slow %D. A flat window (highest == lowest) reads as 50.
func Stochastic(bars model.Series, kPeriod, dPeriod int) []model.StochasticPoint {
	n := len(bars)
	if kPeriod <= 0 || dPeriod <= 0 || n < kPeriod+dPeriod {
		return []model.StochasticPoint{}
	}

	highs, lows, closes := bars.Highs(), bars.Lows(), bars.Closes()
	rawK := make([]float64, 0, n-kPeriod+1)
	for i := kPeriod - 1; i < n; i++ {
		highest, lowest := highs[i], lows[i]
		for j := i - kPeriod + 1; j < i; j++ {
			if highs[j] > highest {
				highest = highs[j]
			}
			if lows[j] < lowest {
				lowest = lows[j]
			}
		}
		if highest == lowest {
			rawK = append(rawK, 50)
			continue
		}
		rawK = append(rawK, clamp100((closes[i]-lowest)/(highest-lowest)*100))
	}

	slowK := SMA(rawK, dPeriod)
	slowD := SMA(slowK, dPeriod)

	out := make([]model.StochasticPoint, len(slowD))
	kOffset := len(slowK) - len(slowD)
	barOffset := n - len(slowD)
	for i := range slowD {
		out[i] = model.StochasticPoint{
			Time:  bars[barOffset+i].Time,
			SlowK: slowK[kOffset+i],
			SlowD: slowD[i],
		}
	}
	return out
}

// clamp100 keeps a close outside its own bar's range (bad data) from
// pushing %K out of [0, 100].
func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
