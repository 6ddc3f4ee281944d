package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"invest-indicators/internal/model"
)

func TestReadBars(t *testing.T) {
	in := `Date,Open,High,Low,Close,Volume
2024-01-03,101.5,103,100.25,102.75,1200
2024-01-02,100,102,99.5,101.5,1000
`
	bars, err := readBars(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if !bars[0].Time.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("bars not sorted: first %v", bars[0].Time)
	}
	if bars[1].Low.String() != "100.25" || bars[1].Volume != 1200 {
		t.Errorf("unexpected bar %+v", bars[1])
	}
}

func TestReadBars_ColumnOrderAndUnixTime(t *testing.T) {
	in := "close,volume,timestamp,low,high,open\n10,5,1704153600,9,11,10\n"
	bars, err := readBars(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if bars[0].Time.Year() != 2024 || bars[0].High.String() != "11" {
		t.Errorf("unexpected bar %+v", bars[0])
	}
}

func TestReadBars_Errors(t *testing.T) {
	cases := map[string]string{
		"missing column": "date,open,high,low,close\n2024-01-02,1,1,1,1\n",
		"bad price":      "date,open,high,low,close,volume\n2024-01-02,abc,1,1,1,0\n",
		"bad time":       "date,open,high,low,close,volume\nyesterday,1,1,1,1,0\n",
		"broken bar":     "date,open,high,low,close,volume\n2024-01-02,10,9,8,9,0\n",
		"duplicate time": "date,open,high,low,close,volume\n2024-01-02,1,1,1,1,0\n2024-01-02,1,1,1,1,0\n",
		"empty":          "",
	}
	for name, in := range cases {
		if _, err := readBars(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

type recordingWriter struct {
	market, symbol string
	bars           model.Series
}

func (w *recordingWriter) WriteBars(_ context.Context, market, symbol string, bars model.Series) error {
	w.market, w.symbol, w.bars = market, symbol, bars
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestImportBars(t *testing.T) {
	in := "date,open,high,low,close,volume\n2024-01-02,1,2,0.5,1.5,10\n"
	w := &recordingWriter{}
	bars, err := importBars(context.Background(), w, "US", "AAPL", strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if w.market != "US" || w.symbol != "AAPL" || len(w.bars) != 1 || len(bars) != 1 {
		t.Errorf("unexpected write %+v", w)
	}

	if _, err := importBars(context.Background(), w, "US", "AAPL", strings.NewReader("date,open,high,low,close,volume\n")); err == nil {
		t.Error("expected error for header-only file")
	}
}

func TestEnsureDataDir(t *testing.T) {
	root := t.TempDir()
	if err := ensureDataDir(filepath.Join(root, "data", "prices.db")); err != nil {
		t.Fatalf("nested dir: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(root, "data")); err != nil || !fi.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}

	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureDataDir(filepath.Join(blocker, "sub", "prices.db")); err == nil {
		t.Error("expected error when a file sits in the path")
	}
	if err := ensureDataDir("prices.db"); err != nil {
		t.Errorf("bare file name: %v", err)
	}
}
