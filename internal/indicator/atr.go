package indicator

import "invest-indicators/internal/model"

// ATR calculates the Average True Range: Wilder-smoothed true range,
// aligned to bars[period:].
func ATR(bars model.Series, period int) []model.ScalarPoint {
	if period <= 0 || len(bars) < period+1 {
		return []model.ScalarPoint{}
	}
	tr := TrueRange(bars.Highs(), bars.Lows(), bars.Closes())
	return alignScalar(bars, Wilder(tr, period))
}
