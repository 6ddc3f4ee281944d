package indicator

import "invest-indicators/internal/model"

// MACD calculates the 12/26/9 MACD. The signal EMA runs over the MACD line
// from index 25 on, dropping the flat warm-up of the slow EMA. Output starts
// at bar 33. Fewer than 26 bars yields nothing.
//
// mode decides which signal value is paired with each output bar; see
// MACDLegacy and MACDStandard.
func MACD(bars model.Series, mode MACDMode) []model.MACDPoint {
	n := len(bars)
	if n < MACDSlow {
		return []model.MACDPoint{}
	}

	closes := bars.Closes()
	fast := FlatSeedEMA(closes, MACDFast)
	slow := FlatSeedEMA(closes, MACDSlow)
	line := make([]float64, n)
	for i := range closes {
		line[i] = fast[i] - slow[i]
	}

	tailStart := MACDSlow - 1
	signal := FlatSeedEMA(line[tailStart:], MACDSignal)

	first := MACDSlow + MACDSignal - 2
	if n <= first {
		return []model.MACDPoint{}
	}

	// legacy pairs bar first+k with signal[k]; standard with the signal of
	// the same bar, which sits first-tailStart entries further in.
	shift := 0
	if mode == MACDStandard {
		shift = first - tailStart
	}

	out := make([]model.MACDPoint, 0, n-first)
	for i := first; i < n; i++ {
		s := signal[i-first+shift]
		out = append(out, model.MACDPoint{
			Time:      bars[i].Time,
			MACD:      line[i],
			Signal:    s,
			Histogram: line[i] - s,
		})
	}
	return out
}
