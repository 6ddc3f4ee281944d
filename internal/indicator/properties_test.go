package indicator

import (
	"reflect"
	"testing"
)

func TestAlignment_AllKinds(t *testing.T) {
	params := []Params{{}, {Period: 5, KPeriod: 5, DPeriod: 2}, {Period: 3, KPeriod: 4, DPeriod: 1}}
	for _, p := range params {
		for _, k := range Kinds() {
			for _, n := range []int{0, 1, MinBars(k, p) - 1, MinBars(k, p), 40, 150} {
				if n < 0 {
					continue
				}
				bars := randomBars(n, int64(n)+1)
				res := Compute(bars, k, p)
				want := 0
				if n >= MinBars(k, p) && n > Warmup(k, p) {
					want = n - Warmup(k, p)
				}
				if res.Len() != want {
					t.Errorf("%s %+v n=%d: len=%d, want %d", k, p, n, res.Len(), want)
				}
			}
		}
	}
}

func TestAlignment_TailTimes(t *testing.T) {
	bars := randomBars(90, 4)
	for _, k := range Kinds() {
		res := Compute(bars, k, Params{})
		offset := Warmup(k, Params{})
		switch {
		case res.Scalar != nil:
			for i, p := range res.Scalar {
				if !p.Time.Equal(bars[offset+i].Time) {
					t.Fatalf("%s point %d at %v, want %v", k, i, p.Time, bars[offset+i].Time)
				}
			}
		case res.MACD != nil:
			for i, p := range res.MACD {
				if !p.Time.Equal(bars[offset+i].Time) {
					t.Fatalf("%s point %d misaligned", k, i)
				}
			}
		case res.Stochastic != nil:
			for i, p := range res.Stochastic {
				if !p.Time.Equal(bars[offset+i].Time) {
					t.Fatalf("%s point %d misaligned", k, i)
				}
			}
		case res.Bollinger != nil:
			for i, p := range res.Bollinger {
				if !p.Time.Equal(bars[offset+i].Time) {
					t.Fatalf("%s point %d misaligned", k, i)
				}
			}
		}
	}
}

func TestInsufficientData_OneShort(t *testing.T) {
	for _, k := range []Kind{KindADX, KindATR, KindRSI, KindMFI, KindCCI, KindBollinger, KindStochastic, KindMACD, KindOBV, KindSMA} {
		n := MinBars(k, Params{}) - 1
		res := Compute(randomBars(n, 8), k, Params{})
		if res.Len() != 0 {
			t.Errorf("%s with %d bars: expected empty, got %d", k, n, res.Len())
		}
	}
}

func TestBounds(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		bars := randomBars(200, seed)
		for _, p := range RSI(bars, 14) {
			inRange(t, "RSI", p.Value)
		}
		for _, p := range MFI(bars, 14) {
			inRange(t, "MFI", p.Value)
		}
		for _, p := range ADX(bars, 14) {
			inRange(t, "ADX", p.Value)
		}
		for _, p := range Stochastic(bars, 14, 3) {
			inRange(t, "slowK", p.SlowK)
			inRange(t, "slowD", p.SlowD)
		}
		for _, p := range ATR(bars, 14) {
			if p.Value < 0 {
				t.Fatalf("ATR negative: %v", p.Value)
			}
		}
		for _, p := range Bollinger(bars, 20, 2) {
			if p.Upper < p.Middle || p.Middle < p.Lower {
				t.Fatalf("bollinger bands out of order: %+v", p)
			}
		}
	}
}

func TestOBV_StepProperty(t *testing.T) {
	bars := randomBars(100, 12)
	pts := OBV(bars)
	for i := 1; i < len(pts); i++ {
		step := pts[i].Value - pts[i-1].Value
		vol := float64(bars[i].Volume)
		if step != 0 && step != vol && step != -vol {
			t.Fatalf("bar %d: step %v not in {0, ±%v}", i, step, vol)
		}
	}
}

func TestDeterminism(t *testing.T) {
	bars := randomBars(100, 21)
	for _, k := range Kinds() {
		a := Compute(bars, k, Params{})
		b := Compute(bars, k, Params{})
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: repeated compute differs", k)
		}
	}
}

func TestInputNotMutated(t *testing.T) {
	bars := randomBars(80, 30)
	snapshot := make([]string, len(bars))
	for i := range bars {
		snapshot[i] = string(bars[i].JSON())
	}
	for _, k := range Kinds() {
		Compute(bars, k, Params{})
	}
	for i := range bars {
		if string(bars[i].JSON()) != snapshot[i] {
			t.Fatalf("bar %d mutated", i)
		}
	}
}

func inRange(t *testing.T, label string, v float64) {
	t.Helper()
	if v < 0 || v > 100 {
		t.Fatalf("%s out of [0,100]: %v", label, v)
	}
}

func TestFirstOutputBars(t *testing.T) {
	if got := FirstOutputBars(KindStochastic, Params{}); got != 18 {
		t.Errorf("stochastic first output at %d bars, want 18", got)
	}
	if got := FirstOutputBars(KindMACD, Params{}); got != 34 {
		t.Errorf("macd first output at %d bars, want 34", got)
	}
	for _, k := range Kinds() {
		n := FirstOutputBars(k, Params{})
		if got := Compute(randomBars(n-1, 3), k, Params{}).Len(); got != 0 {
			t.Errorf("%s: %d bars gave %d points, want 0", k, n-1, got)
		}
		if got := Compute(randomBars(n, 3), k, Params{}).Len(); got < 1 {
			t.Errorf("%s: %d bars gave no points", k, n)
		}
	}
}
