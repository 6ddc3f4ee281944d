package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"invest-indicators/internal/logger"
	"invest-indicators/internal/metrics"
	"invest-indicators/internal/model"
	redisstore "invest-indicators/internal/store/redis"
)

// Service loads price series from a cache, falling back to the store.
// It is safe for concurrent use.
type Service struct {
	store     model.BarReader
	cache     model.SeriesCache // may be nil
	prom      *metrics.Metrics
	checkBars bool
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCache puts a series cache in front of the store.
func WithCache(c model.SeriesCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithBarChecks rejects series that break OHLC invariants or time ordering.
func WithBarChecks(on bool) Option {
	return func(s *Service) { s.checkBars = on }
}

// WithClock overrides the clock used to resolve ranges.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a price-history service over store.
func NewService(store model.BarReader, prom *metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		store: store,
		prom:  prom,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load resolves q to a series, reading the cache first.
func (s *Service) Load(ctx context.Context, q Query) (model.Series, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		bars, err := s.cache.GetSeries(ctx, q.Key())
		switch {
		case err == nil:
			s.prom.SeriesCache.WithLabelValues("hit").Inc()
			return bars, nil
		case errors.Is(err, redisstore.ErrCacheMiss):
			s.prom.SeriesCache.WithLabelValues("miss").Inc()
		default:
			// Cache trouble degrades to store reads
			s.prom.SeriesCache.WithLabelValues("error").Inc()
			slog.Warn("series cache read failed", append(logger.LogWithTrace(ctx),
				slog.String("query", q.String()), slog.Any("error", err))...)
		}
	}

	return s.fetch(ctx, q)
}

// Refresh reads q from the store and rewrites the cache entry.
func (s *Service) Refresh(ctx context.Context, q Query) (model.Series, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}
	return s.fetch(ctx, q)
}

func (s *Service) fetch(ctx context.Context, q Query) (model.Series, error) {
	start := time.Now()
	from, err := RangeStart(q.Range, s.now())
	if err != nil {
		return nil, err
	}

	bars, err := s.store.ReadBars(ctx, q.Market, q.Symbol, from)
	s.prom.SeriesLoadDur.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", q, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, q)
	}
	s.prom.SeriesBarsTotal.Add(float64(len(bars)))

	if s.checkBars {
		if err := bars.Validate(); err != nil {
			s.prom.InvalidSeries.Inc()
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBar, q, err)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetSeries(ctx, q.Key(), bars); err != nil {
			slog.Warn("series cache write failed", append(logger.LogWithTrace(ctx),
				slog.String("query", q.String()), slog.Any("error", err))...)
		}
	}
	return bars, nil
}
