package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"invest-indicators/internal/indicator"
)

// Config holds all service configuration. Values come from an optional YAML
// file (CONFIG_FILE) and are then overridden by environment variables.
type Config struct {
	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	// Infrastructure
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	CacheTTLSec   int    `yaml:"cache_ttl_sec"`
	SQLitePath    string `yaml:"sqlite_path"`

	// Indicator engine
	OutputPrecision int                         `yaml:"output_precision"` // decimal places, -1 = unrounded
	MACDSignalMode  string                      `yaml:"macd_signal_mode"` // legacy | standard
	CheckBars       bool                        `yaml:"check_bars"`
	Indicators      map[string]indicator.Params `yaml:"indicators"`

	// Cache warm-up
	WarmCron    string   `yaml:"warm_cron"`
	WarmSymbols []string `yaml:"warm_symbols"` // "MARKET:SYMBOL"
	WarmRanges  []string `yaml:"warm_ranges"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		RedisAddr:       "localhost:6379",
		CacheTTLSec:     300,
		SQLitePath:      "data/prices.db",
		OutputPrecision: -1,
		MACDSignalMode:  "legacy",
		CheckBars:       true,
		WarmRanges:      []string{"1Y"},
	}
}

// Load reads CONFIG_FILE (if set) and applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.CacheTTLSec = getEnvInt("CACHE_TTL_SEC", cfg.CacheTTLSec)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.OutputPrecision = getEnvInt("OUTPUT_PRECISION", cfg.OutputPrecision)
	cfg.MACDSignalMode = getEnv("MACD_SIGNAL_MODE", cfg.MACDSignalMode)
	cfg.WarmCron = getEnv("WARM_CRON", cfg.WarmCron)
	if v := os.Getenv("CHECK_BARS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CHECK_BARS: %w", err)
		}
		cfg.CheckBars = b
	}
	if v := os.Getenv("WARM_SYMBOLS"); v != "" {
		cfg.WarmSymbols = splitList(v)
	}
	if v := os.Getenv("WARM_RANGES"); v != "" {
		cfg.WarmRanges = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.CacheTTLSec < 0 {
		return fmt.Errorf("cache_ttl_sec must be >= 0, got %d", c.CacheTTLSec)
	}
	if c.OutputPrecision < -1 {
		return fmt.Errorf("output_precision must be >= -1, got %d", c.OutputPrecision)
	}
	if _, err := c.MACDMode(); err != nil {
		return err
	}
	if _, err := c.IndicatorDefaults(); err != nil {
		return err
	}
	return nil
}

// CacheTTL returns the series cache TTL.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSec) * time.Second
}

// MACDMode parses MACDSignalMode.
func (c *Config) MACDMode() (indicator.MACDMode, error) {
	m, err := indicator.ParseMACDMode(c.MACDSignalMode)
	if err != nil {
		return m, fmt.Errorf("macd_signal_mode: %w", err)
	}
	return m, nil
}

// IndicatorDefaults converts the name-keyed YAML defaults into engine defaults.
func (c *Config) IndicatorDefaults() (map[indicator.Kind]indicator.Params, error) {
	out := make(map[indicator.Kind]indicator.Params, len(c.Indicators))
	for name, p := range c.Indicators {
		k, err := indicator.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("indicators: %w", err)
		}
		out[k] = p
	}
	return out, nil
}

// EngineOptions builds the indicator engine options implied by the config.
func (c *Config) EngineOptions() []indicator.Option {
	mode, _ := c.MACDMode()
	defaults, _ := c.IndicatorDefaults()
	opts := []indicator.Option{
		indicator.WithPrecision(int32(c.OutputPrecision)),
		indicator.WithMACDMode(mode),
		indicator.WithDefaults(defaults),
	}
	return opts
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return fallback
	}
	return n
}
