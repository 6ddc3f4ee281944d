// Command barload imports daily OHLCV bars from CSV into the price history
// store read by chartapi.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"invest-indicators/internal/history"
	"invest-indicators/internal/model"
	"invest-indicators/internal/store/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	dbPath := flag.String("db", "data/prices.db", "Path to SQLite database")
	symbol := flag.String("symbol", "", "Instrument symbol (required)")
	market := flag.String("market", history.DefaultMarket, "Market code")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: barload -symbol X [-market M] [-db path] file.csv\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *symbol == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("[barload] %v", err)
	}
	defer f.Close()

	if err := ensureDataDir(*dbPath); err != nil {
		log.Fatalf("[barload] create data dir: %v", err)
	}
	w, err := sqlite.New(sqlite.WriterConfig{DBPath: *dbPath})
	if err != nil {
		log.Fatalf("[barload] %v", err)
	}
	defer w.Close()

	mkt := strings.ToUpper(*market)
	bars, err := importBars(context.Background(), w, mkt, *symbol, f)
	if err != nil {
		log.Fatalf("[barload] %s: %v", flag.Arg(0), err)
	}
	log.Printf("[barload] wrote %d bars for %s:%s (%s .. %s)", len(bars), mkt, *symbol,
		bars[0].Time.Format("2006-01-02"), bars[len(bars)-1].Time.Format("2006-01-02"))
}

// importBars parses r and writes every bar to w.
func importBars(ctx context.Context, w model.BarWriter, market, symbol string, r io.Reader) (model.Series, error) {
	bars, err := readBars(r)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, errors.New("no rows")
	}
	if err := w.WriteBars(ctx, market, symbol, bars); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return bars, nil
}

// ensureDataDir creates the directory holding dbPath.
func ensureDataDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
