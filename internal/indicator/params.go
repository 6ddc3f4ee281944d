package indicator

import (
	"fmt"
	"strings"
)

// Default periods used when a Params field is zero.
const (
	DefaultRSIPeriod        = 14
	DefaultStochK           = 14
	DefaultStochD           = 3
	DefaultBollingerPeriod  = 20
	DefaultBollingerStdDevs = 2.0
	DefaultATRPeriod        = 14
	DefaultCCIPeriod        = 20
	DefaultMFIPeriod        = 14
	DefaultADXPeriod        = 14
	DefaultSMAPeriod        = 20

	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// MACDMode selects how the signal line is paired with output bars.
type MACDMode int

const (
	// MACDDefault leaves the choice to the engine's configured mode.
	MACDDefault MACDMode = iota
	// MACDLegacy pairs bar 33+k with signal[k], where the signal EMA runs
	// over macd[25:]. This reproduces the historic chart output exactly.
	MACDLegacy
	// MACDStandard pairs every bar with the signal value computed at that
	// same bar.
	MACDStandard
)

func (m MACDMode) String() string {
	switch m {
	case MACDLegacy:
		return "legacy"
	case MACDStandard:
		return "standard"
	}
	return "default"
}

// ParseMACDMode maps "legacy" and "standard" to a MACDMode. The empty
// string maps to MACDDefault.
func ParseMACDMode(s string) (MACDMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return MACDDefault, nil
	case "legacy":
		return MACDLegacy, nil
	case "standard":
		return MACDStandard, nil
	}
	return MACDDefault, fmt.Errorf("unknown macd mode %q", s)
}

// Params carries per-request indicator parameters. Zero fields take defaults.
type Params struct {
	Period     int      `json:"period,omitempty" yaml:"period"`
	KPeriod    int      `json:"k,omitempty" yaml:"k"`
	DPeriod    int      `json:"d,omitempty" yaml:"d"`
	StdDevs    float64  `json:"mult,omitempty" yaml:"mult"`
	MACDSignal MACDMode `json:"-" yaml:"-"`
}

// withDefaults fills zero fields for kind.
func (p Params) withDefaults(kind Kind) Params {
	switch kind {
	case KindSMA:
		p.Period = orInt(p.Period, DefaultSMAPeriod)
	case KindRSI:
		p.Period = orInt(p.Period, DefaultRSIPeriod)
	case KindStochastic:
		p.KPeriod = orInt(p.KPeriod, DefaultStochK)
		p.DPeriod = orInt(p.DPeriod, DefaultStochD)
	case KindBollinger:
		p.Period = orInt(p.Period, DefaultBollingerPeriod)
		if p.StdDevs <= 0 {
			p.StdDevs = DefaultBollingerStdDevs
		}
	case KindATR:
		p.Period = orInt(p.Period, DefaultATRPeriod)
	case KindCCI:
		p.Period = orInt(p.Period, DefaultCCIPeriod)
	case KindMFI:
		p.Period = orInt(p.Period, DefaultMFIPeriod)
	case KindADX:
		p.Period = orInt(p.Period, DefaultADXPeriod)
	}
	return p
}

func orInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Warmup returns the number of leading bars kind consumes before its first
// output point.
func Warmup(kind Kind, p Params) int {
	p = p.withDefaults(kind)
	switch kind {
	case KindSMA, KindBollinger, KindCCI:
		return p.Period - 1
	case KindRSI, KindATR, KindMFI:
		return p.Period
	case KindMACD:
		return MACDSlow + MACDSignal - 2
	case KindStochastic:
		return p.KPeriod + 2*p.DPeriod - 3
	case KindADX:
		return 2*p.Period - 1
	}
	return 0
}

// MinBars returns the shortest series the calculator accepts. Shorter inputs
// always yield an empty result. For MACD and Stochastic the warm-up is longer
// than MinBars, so see FirstOutputBars for the length that yields a point.
func MinBars(kind Kind, p Params) int {
	p = p.withDefaults(kind)
	switch kind {
	case KindSMA, KindBollinger, KindCCI:
		return p.Period
	case KindRSI, KindATR, KindMFI:
		return p.Period + 1
	case KindMACD:
		return MACDSlow
	case KindStochastic:
		return p.KPeriod + p.DPeriod
	case KindOBV:
		return 2
	case KindADX:
		return 2 * p.Period
	}
	return 0
}

// FirstOutputBars returns the shortest series for which kind emits at least
// one point: max(MinBars, Warmup+1). KindNone never emits and returns 0.
func FirstOutputBars(kind Kind, p Params) int {
	if kind == KindNone {
		return 0
	}
	return max(MinBars(kind, p), Warmup(kind, p)+1)
}
