package indicator

import "invest-indicators/internal/model"

// MFI calculates the Money Flow Index. Each bar's money flow (typical price
// times volume) counts as positive or negative by comparing its typical
// price with the previous bar's; equal prices count as neither. Output is
// aligned to bars[period:]. No negative flow in a window reads as 100.
func MFI(bars model.Series, period int) []model.ScalarPoint {
	n := len(bars)
	if period <= 0 || n < period+1 {
		return []model.ScalarPoint{}
	}

	tp := TypicalPrice(bars.Highs(), bars.Lows(), bars.Closes())
	vol := bars.Volumes()
	pos := make([]float64, n)
	neg := make([]float64, n)
	for i := 1; i < n; i++ {
		flow := tp[i] * vol[i]
		switch {
		case tp[i] > tp[i-1]:
			pos[i] = flow
		case tp[i] < tp[i-1]:
			neg[i] = flow
		}
	}

	values := make([]float64, 0, n-period)
	for i := period; i < n; i++ {
		posFlow, negFlow := 0.0, 0.0
		for j := i - period + 1; j <= i; j++ {
			posFlow += pos[j]
			negFlow += neg[j]
		}
		if negFlow == 0 {
			values = append(values, 100)
			continue
		}
		values = append(values, 100-100/(1+posFlow/negFlow))
	}
	return alignScalar(bars, values)
}
