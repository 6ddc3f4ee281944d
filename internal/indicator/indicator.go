// Package indicator computes technical indicators over OHLCV bar series.
//
// Every calculator is a pure function of its input series: it reads the
// bars, allocates its own output and keeps no state between calls, so the
// package is safe for concurrent use without locks. Output is always a
// suffix of the input time axis; when the series is shorter than the
// indicator's minimum window the result is empty, never an error.
package indicator

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects an indicator.
type Kind int

const (
	KindNone Kind = iota
	KindSMA
	KindRSI
	KindMACD
	KindStochastic
	KindBollinger
	KindATR
	KindOBV
	KindCCI
	KindMFI
	KindADX

	kindCount
)

var kindNames = [...]string{
	KindNone:       "none",
	KindSMA:        "sma",
	KindRSI:        "rsi",
	KindMACD:       "macd",
	KindStochastic: "stochastic",
	KindBollinger:  "bollinger",
	KindATR:        "atr",
	KindOBV:        "obv",
	KindCCI:        "cci",
	KindMFI:        "mfi",
	KindADX:        "adx",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a known indicator.
func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

// Kinds lists every selectable indicator except KindNone.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindSMA; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ErrUnknownKind is returned by ParseKind for names that match no indicator.
var ErrUnknownKind = errors.New("unknown indicator")

// ParseKind maps a case-insensitive name ("rsi", "MACD", "stoch", "") to a Kind.
// The empty string maps to KindNone.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "":
		return KindNone, nil
	case "stoch":
		return KindStochastic, nil
	case "boll", "bb":
		return KindBollinger, nil
	case "ma":
		return KindSMA, nil
	}
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind by name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// UnsupportedIndicatorError is the panic value raised by Engine.Compute
// when handed a Kind it does not know. It only arises from caller bugs.
type UnsupportedIndicatorError struct {
	Kind Kind
}

func (e *UnsupportedIndicatorError) Error() string {
	return "unsupported indicator: " + e.Kind.String()
}
