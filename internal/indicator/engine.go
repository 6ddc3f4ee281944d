package indicator

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"invest-indicators/internal/model"
)

// Result is the output of one Compute call. Exactly one series field is
// set for a known kind; all are nil for KindNone.
type Result struct {
	Kind       Kind
	Scalar     []model.ScalarPoint
	MACD       []model.MACDPoint
	Stochastic []model.StochasticPoint
	Bollinger  []model.BollingerPoint
}

// Len returns the number of output points.
func (r Result) Len() int {
	switch {
	case r.Scalar != nil:
		return len(r.Scalar)
	case r.MACD != nil:
		return len(r.MACD)
	case r.Stochastic != nil:
		return len(r.Stochastic)
	case r.Bollinger != nil:
		return len(r.Bollinger)
	}
	return 0
}

// Series returns whichever series is populated, for encoding.
func (r Result) Series() any {
	switch r.Kind {
	case KindMACD:
		return r.MACD
	case KindStochastic:
		return r.Stochastic
	case KindBollinger:
		return r.Bollinger
	case KindNone:
		return struct{}{}
	}
	return r.Scalar
}

// MarshalJSON encodes the result as its bare point series.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Series())
}

// Option configures an Engine.
type Option func(*Engine)

// WithPrecision rounds every emitted value to places decimal places,
// half away from zero. A negative value disables rounding.
func WithPrecision(places int32) Option {
	return func(e *Engine) { e.precision = places }
}

// WithBarChecks makes Compute panic if the input series breaks the OHLC
// invariants. Meant for debugging ingestion, not for production traffic.
func WithBarChecks() Option {
	return func(e *Engine) { e.checkBars = true }
}

// WithMACDMode sets the signal pairing used when Params leaves it at
// MACDDefault. Passing MACDDefault keeps the legacy pairing.
func WithMACDMode(m MACDMode) Option {
	return func(e *Engine) {
		if m != MACDDefault {
			e.macdMode = m
		}
	}
}

// WithDefaults sets per-kind default params consulted before the
// package-level defaults.
func WithDefaults(defaults map[Kind]Params) Option {
	return func(e *Engine) {
		for k, p := range defaults {
			e.defaults[k] = p
		}
	}
}

// Engine dispatches a Kind to its calculator. It holds only construction-time
// options, so a single Engine can serve concurrent callers.
type Engine struct {
	precision int32
	checkBars bool
	macdMode  MACDMode
	defaults  map[Kind]Params
}

// NewEngine creates an indicator engine. Without options output is unrounded.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{precision: -1, macdMode: MACDLegacy, defaults: make(map[Kind]Params)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Compute runs kind over bars with an unconfigured engine.
func Compute(bars model.Series, kind Kind, p Params) Result {
	return defaultEngine.Compute(bars, kind, p)
}

// Params resolves the effective params for kind: request fields win, then
// engine defaults, then package defaults.
func (e *Engine) Params(kind Kind, p Params) Params {
	if d, ok := e.defaults[kind]; ok {
		if p.Period == 0 {
			p.Period = d.Period
		}
		if p.KPeriod == 0 {
			p.KPeriod = d.KPeriod
		}
		if p.DPeriod == 0 {
			p.DPeriod = d.DPeriod
		}
		if p.StdDevs == 0 {
			p.StdDevs = d.StdDevs
		}
	}
	if kind == KindMACD && p.MACDSignal == MACDDefault {
		p.MACDSignal = e.macdMode
	}
	return p.withDefaults(kind)
}

// Compute runs the calculator for kind. An unknown kind panics with
// *UnsupportedIndicatorError.
func (e *Engine) Compute(bars model.Series, kind Kind, p Params) Result {
	if !kind.Valid() {
		panic(&UnsupportedIndicatorError{Kind: kind})
	}
	if e.checkBars {
		if err := bars.Validate(); err != nil {
			panic(fmt.Sprintf("indicator: invalid input series: %v", err))
		}
	}

	p = e.Params(kind, p)
	res := Result{Kind: kind}
	switch kind {
	case KindNone:
		return res
	case KindSMA:
		res.Scalar = MovingAverage(bars, p.Period)
	case KindRSI:
		res.Scalar = RSI(bars, p.Period)
	case KindMACD:
		res.MACD = MACD(bars, p.MACDSignal)
	case KindStochastic:
		res.Stochastic = Stochastic(bars, p.KPeriod, p.DPeriod)
	case KindBollinger:
		res.Bollinger = Bollinger(bars, p.Period, p.StdDevs)
	case KindATR:
		res.Scalar = ATR(bars, p.Period)
	case KindOBV:
		res.Scalar = OBV(bars)
	case KindCCI:
		res.Scalar = CCI(bars, p.Period)
	case KindMFI:
		res.Scalar = MFI(bars, p.Period)
	case KindADX:
		res.Scalar = ADX(bars, p.Period)
	}

	if e.precision >= 0 {
		res.round(e.precision)
	}
	return res
}

func (r *Result) round(places int32) {
	for i := range r.Scalar {
		r.Scalar[i].Value = roundHalfUp(r.Scalar[i].Value, places)
	}
	for i := range r.MACD {
		pt := &r.MACD[i]
		pt.MACD = roundHalfUp(pt.MACD, places)
		pt.Signal = roundHalfUp(pt.Signal, places)
		pt.Histogram = roundHalfUp(pt.Histogram, places)
	}
	for i := range r.Stochastic {
		pt := &r.Stochastic[i]
		pt.SlowK = roundHalfUp(pt.SlowK, places)
		pt.SlowD = roundHalfUp(pt.SlowD, places)
	}
	for i := range r.Bollinger {
		pt := &r.Bollinger[i]
		pt.Upper = roundHalfUp(pt.Upper, places)
		pt.Middle = roundHalfUp(pt.Middle, places)
		pt.Lower = roundHalfUp(pt.Lower, places)
	}
}

// roundHalfUp rounds through the decimal representation of v so that
// 2.675 becomes 2.68 rather than the binary-float 2.67.
func roundHalfUp(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
