package indicator

import (
	"math"

	"invest-indicators/internal/model"
)

// ADX calculates the Average Directional Index. TR, +DM and -DM are smoothed
// as running sums; DX is then Wilder-averaged into ADX. Output is aligned to
// bars[2*period-1:]; fewer than 2*period bars yields nothing.
func ADX(bars model.Series, period int) []model.ScalarPoint {
	n := len(bars)
	if period <= 0 || n < 2*period {
		return []model.ScalarPoint{}
	}

	highs, lows, closes := bars.Highs(), bars.Lows(), bars.Closes()
	tr := TrueRange(highs, lows, closes)
	plusDM := make([]float64, n-1)
	minusDM := make([]float64, n-1)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i-1] = up
		}
		if down > up && down > 0 {
			minusDM[i-1] = down
		}
	}

	smoothTR := wilderSum(tr, period)
	smoothPlus := wilderSum(plusDM, period)
	smoothMinus := wilderSum(minusDM, period)

	dx := make([]float64, len(smoothTR))
	for i := range smoothTR {
		var plusDI, minusDI float64
		if smoothTR[i] != 0 {
			plusDI = 100 * smoothPlus[i] / smoothTR[i]
			minusDI = 100 * smoothMinus[i] / smoothTR[i]
		}
		if sum := plusDI + minusDI; sum != 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
	}

	return alignScalar(bars, Wilder(dx, period))
}
