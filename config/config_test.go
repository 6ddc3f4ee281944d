package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"invest-indicators/internal/indicator"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr=%q", cfg.HTTPAddr)
	}
	if cfg.OutputPrecision != -1 {
		t.Errorf("OutputPrecision=%d, want -1", cfg.OutputPrecision)
	}
	if cfg.CacheTTL() != 300*time.Second {
		t.Errorf("CacheTTL=%v", cfg.CacheTTL())
	}
	if mode, _ := cfg.MACDMode(); mode != indicator.MACDLegacy {
		t.Errorf("MACD mode=%v, want legacy", mode)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
http_addr: ":9100"
sqlite_path: "/tmp/x.db"
output_precision: 4
macd_signal_mode: standard
warm_cron: "0 */15 * * * *"
warm_symbols: ["US:AAPL", "KR:005930"]
indicators:
  rsi:
    period: 9
  bollinger:
    period: 10
    mult: 2.5
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":9200")
	t.Setenv("WARM_RANGES", "1M, 6M")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":9200" {
		t.Errorf("env should override yaml, got %q", cfg.HTTPAddr)
	}
	if cfg.SQLitePath != "/tmp/x.db" {
		t.Errorf("SQLitePath=%q", cfg.SQLitePath)
	}
	if cfg.OutputPrecision != 4 {
		t.Errorf("OutputPrecision=%d", cfg.OutputPrecision)
	}
	if len(cfg.WarmSymbols) != 2 || cfg.WarmSymbols[1] != "KR:005930" {
		t.Errorf("WarmSymbols=%v", cfg.WarmSymbols)
	}
	if len(cfg.WarmRanges) != 2 || cfg.WarmRanges[1] != "6M" {
		t.Errorf("WarmRanges=%v", cfg.WarmRanges)
	}

	defaults, err := cfg.IndicatorDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if defaults[indicator.KindRSI].Period != 9 {
		t.Errorf("rsi default period=%d", defaults[indicator.KindRSI].Period)
	}
	if defaults[indicator.KindBollinger].StdDevs != 2.5 {
		t.Errorf("bollinger mult=%v", defaults[indicator.KindBollinger].StdDevs)
	}
}

func TestLoad_InvalidMACDMode(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MACD_SIGNAL_MODE", "sideways")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown MACD mode")
	}
}

func TestLoad_UnknownIndicatorDefault(t *testing.T) {
	cfg := Default()
	cfg.Indicators = map[string]indicator.Params{"vwap": {Period: 3}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown indicator name")
	}
}

func TestLoad_BadCheckBars(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CHECK_BARS", "maybe")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for CHECK_BARS=maybe")
	}
}
