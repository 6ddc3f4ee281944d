package indicator

import (
	"math"

	"invest-indicators/internal/model"
)

// cciConstant is Lambert's scaling factor.
const cciConstant = 0.015

// CCI calculates the Commodity Channel Index over typical prices, aligned
// to bars[period-1:]. A window with zero mean deviation reads as 0.
func CCI(bars model.Series, period int) []model.ScalarPoint {
	n := len(bars)
	if period <= 0 || n < period {
		return []model.ScalarPoint{}
	}

	tp := TypicalPrice(bars.Highs(), bars.Lows(), bars.Closes())
	values := make([]float64, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		window := tp[i-period+1 : i+1]
		avg := mean(window)
		dev := 0.0
		for _, x := range window {
			dev += math.Abs(x - avg)
		}
		dev /= float64(period)
		if dev == 0 {
			values = append(values, 0)
			continue
		}
		values = append(values, (tp[i]-avg)/(cciConstant*dev))
	}
	return alignScalar(bars, values)
}
