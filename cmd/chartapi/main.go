package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"invest-indicators/config"
	"invest-indicators/internal/gateway"
	"invest-indicators/internal/history"
	"invest-indicators/internal/indicator"
	"invest-indicators/internal/logger"
	"invest-indicators/internal/metrics"
	redisstore "invest-indicators/internal/store/redis"
	"invest-indicators/internal/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[chartapi] config: %v", err)
	}
	logger.Init("chartapi", logger.ParseLevel(cfg.LogLevel))
	slog.Info("starting", slog.String("addr", cfg.HTTPAddr), slog.String("sqlite", cfg.SQLitePath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prom := metrics.NewMetrics(nil)
	health := metrics.NewHealthStatus()

	// ---- Price history store ----
	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("[chartapi] create data dir: %v", err)
		}
	}
	// The writer owns schema creation; open it once so a fresh file is usable.
	schema, err := sqlite.New(sqlite.WriterConfig{DBPath: cfg.SQLitePath})
	if err != nil {
		log.Fatalf("[chartapi] sqlite init: %v", err)
	}
	schema.Close()

	store, err := sqlite.NewReader(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("[chartapi] sqlite reader: %v", err)
	}
	defer store.Close()

	// ---- Series cache (optional) ----
	opts := []history.Option{history.WithBarChecks(cfg.CheckBars)}
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		cache, err := redisstore.NewCache(redisstore.CacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.CacheTTL(),
		})
		if err != nil {
			// Serving from the store alone is slower but correct
			slog.Warn("redis unavailable, running without series cache", slog.Any("error", err))
		} else {
			defer cache.Close()
			cache.Breaker().OnStateChange = func(from, to redisstore.State) {
				prom.ObserveBreaker(int(to), to == redisstore.StateOpen)
				slog.Warn("redis circuit breaker", slog.String("from", from.String()), slog.String("to", to.String()))
			}
			rdb = cache.Client()
			opts = append(opts, history.WithCache(cache))
		}
	}

	svc := history.NewService(store, prom, opts...)

	// ---- Cache warm-up ----
	if cfg.WarmCron != "" && len(cfg.WarmSymbols) > 0 {
		warmer, err := history.NewWarmer(svc, cfg.WarmSymbols, cfg.WarmRanges)
		if err != nil {
			log.Fatalf("[chartapi] warmer: %v", err)
		}
		if err := warmer.Start(ctx, cfg.WarmCron); err != nil {
			log.Fatalf("[chartapi] warmer: %v", err)
		}
		go warmer.WarmAll(ctx)
	}

	health.StartLivenessChecker(ctx, rdb, store.DB(), 10*time.Second)

	engine := indicator.NewEngine(cfg.EngineOptions()...)
	api := gateway.NewServer(svc, engine, prom, health)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		slog.Info("serving", slog.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[chartapi] server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", slog.Any("error", err))
	}
}
