package indicator

import "invest-indicators/internal/model"

// RSI calculates the Relative Strength Index using Wilder's smoothing.
// Output is aligned to bars[period:]; fewer than period+1 bars yields nothing.
func RSI(bars model.Series, period int) []model.ScalarPoint {
	if period <= 0 || len(bars) < period+1 {
		return []model.ScalarPoint{}
	}

	closes := bars.Closes()
	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i-1] = delta
		} else {
			losses[i-1] = -delta
		}
	}

	avgGain := Wilder(gains, period)
	avgLoss := Wilder(losses, period)
	values := make([]float64, len(avgGain))
	for i := range avgGain {
		values[i] = rsiValue(avgGain[i], avgLoss[i])
	}
	return alignScalar(bars, values)
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
