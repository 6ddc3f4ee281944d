package indicator

import (
	"math"

	"invest-indicators/internal/model"
)

// Bollinger calculates Bollinger Bands with population standard deviation
// (divisor = period). Output is aligned to bars[period-1:].
func Bollinger(bars model.Series, period int, stdDevs float64) []model.BollingerPoint {
	n := len(bars)
	if period <= 0 || n < period {
		return []model.BollingerPoint{}
	}
	if stdDevs < 0 {
		stdDevs = -stdDevs
	}

	closes := bars.Closes()
	out := make([]model.BollingerPoint, 0, n-period+1)
	for i := period - 1; i < n; i++ {
		window := closes[i-period+1 : i+1]
		middle := mean(window)
		variance := 0.0
		for _, x := range window {
			d := x - middle
			variance += d * d
		}
		variance /= float64(period)
		band := stdDevs * math.Sqrt(variance)
		out = append(out, model.BollingerPoint{
			Time:   bars[i].Time,
			Upper:  middle + band,
			Middle: middle,
			Lower:  middle - band,
		})
	}
	return out
}
