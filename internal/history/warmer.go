package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer periodically refreshes the cache for a fixed set of queries so the
// first chart request after expiry does not pay the store read.
type Warmer struct {
	svc     *Service
	queries []Query
	cron    *cron.Cron
	timeout time.Duration
}

// NewWarmer builds a warmer for every target × range combination.
// Targets use the "MARKET:SYMBOL" form.
func NewWarmer(svc *Service, targets, ranges []string) (*Warmer, error) {
	if len(ranges) == 0 {
		ranges = []string{DefaultRange}
	}
	var queries []Query
	for _, t := range targets {
		market, symbol, err := ParseTarget(t)
		if err != nil {
			return nil, fmt.Errorf("warm target: %w", err)
		}
		for _, r := range ranges {
			q, err := Query{Symbol: symbol, Market: market, Range: r}.Normalize()
			if err != nil {
				return nil, fmt.Errorf("warm target %s: %w", t, err)
			}
			queries = append(queries, q)
		}
	}
	return &Warmer{
		svc:     svc,
		queries: queries,
		cron:    cron.New(cron.WithSeconds()),
		timeout: 30 * time.Second,
	}, nil
}

// Queries returns the queries refreshed on every run.
func (w *Warmer) Queries() []Query { return w.queries }

// Start registers the warm job on spec (six-field cron, with seconds) and
// starts the scheduler. It stops when ctx is cancelled.
func (w *Warmer) Start(ctx context.Context, spec string) error {
	if _, err := w.cron.AddFunc(spec, func() { w.WarmAll(ctx) }); err != nil {
		return fmt.Errorf("register warm job: %w", err)
	}
	w.cron.Start()
	slog.Info("cache warmer started", slog.String("cron", spec), slog.Int("queries", len(w.queries)))

	go func() {
		<-ctx.Done()
		<-w.cron.Stop().Done()
	}()
	return nil
}

// WarmAll refreshes every query once. Returns the number that succeeded.
func (w *Warmer) WarmAll(ctx context.Context) int {
	ok := 0
	for _, q := range w.queries {
		if ctx.Err() != nil {
			break
		}
		qctx, cancel := context.WithTimeout(ctx, w.timeout)
		bars, err := w.svc.Refresh(qctx, q)
		cancel()
		if err != nil {
			w.svc.prom.CacheWarmRuns.WithLabelValues("error").Inc()
			slog.Warn("cache warm failed", slog.String("query", q.String()), slog.Any("error", err))
			continue
		}
		w.svc.prom.CacheWarmRuns.WithLabelValues("ok").Inc()
		slog.Debug("cache warmed", slog.String("query", q.String()), slog.Int("bars", len(bars)))
		ok++
	}
	return ok
}
