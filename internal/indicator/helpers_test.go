package indicator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"invest-indicators/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func dayN(i int) time.Time { return day0.AddDate(0, 0, i) }

// closeBars builds bars whose open/high/low all equal the close.
func closeBars(closes ...float64) model.Series {
	out := make(model.Series, len(closes))
	for i, c := range closes {
		out[i] = model.NewBar(dayN(i), c, c, c, c, 100)
	}
	return out
}

// randomBars builds a reproducible random walk that respects the OHLC invariants.
func randomBars(n int, seed int64) model.Series {
	rng := rand.New(rand.NewSource(seed))
	out := make(model.Series, n)
	price := 100.0
	for i := 0; i < n; i++ {
		open := price
		closeP := open + (rng.Float64()-0.5)*4
		if closeP < 1 {
			closeP = 1
		}
		high := math.Max(open, closeP) + rng.Float64()*2
		low := math.Min(open, closeP) - rng.Float64()*2
		if low < 0.5 {
			low = 0.5
		}
		out[i] = model.NewBar(dayN(i), open, high, low, closeP, int64(rng.Intn(10000)))
		price = closeP
	}
	return out
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f, diff=%.6f)", label, got, want, tol, math.Abs(got-want))
	}
}
