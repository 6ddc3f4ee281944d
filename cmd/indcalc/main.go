// Command indcalc computes one indicator over bars read as JSON from stdin
// and writes the aligned series as JSON to stdout.
//
//	indcalc -indicator rsi -period 14 < bars.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"invest-indicators/internal/indicator"
	"invest-indicators/internal/model"
)

type options struct {
	kind      indicator.Kind
	params    indicator.Params
	precision int
	validate  bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[indcalc] ")

	name := flag.String("indicator", "rsi", "Indicator: "+kindList())
	period := flag.Int("period", 0, "Period (0 = indicator default)")
	k := flag.Int("k", 0, "Stochastic %K period")
	d := flag.Int("d", 0, "Stochastic %D period")
	mult := flag.Float64("mult", 0, "Bollinger standard deviations")
	macd := flag.String("macd", "legacy", "MACD signal pairing: legacy|standard")
	precision := flag.Int("precision", -1, "Round output to N decimal places (-1 = unrounded)")
	validate := flag.Bool("validate", true, "Reject input that breaks OHLC invariants")
	flag.Parse()

	kind, err := indicator.ParseKind(*name)
	if err != nil {
		log.Fatal(err)
	}
	mode, err := indicator.ParseMACDMode(*macd)
	if err != nil {
		log.Fatal(err)
	}
	opts := options{
		kind: kind,
		params: indicator.Params{
			Period:     *period,
			KPeriod:    *k,
			DPeriod:    *d,
			StdDevs:    *mult,
			MACDSignal: mode,
		},
		precision: *precision,
		validate:  *validate,
	}

	if err := run(os.Stdin, os.Stdout, opts); err != nil {
		log.Fatal(err)
	}
}

func run(in io.Reader, out io.Writer, opts options) error {
	var bars model.Series
	if err := json.NewDecoder(in).Decode(&bars); err != nil {
		return fmt.Errorf("decode bars: %w", err)
	}
	if opts.validate {
		if err := bars.Validate(); err != nil {
			return err
		}
	}

	engine := indicator.NewEngine(indicator.WithPrecision(int32(opts.precision)))
	res := engine.Compute(bars, opts.kind, opts.params)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func kindList() string {
	s := ""
	for i, k := range indicator.Kinds() {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s
}
