package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the chart service.
type Metrics struct {
	// Indicator engine
	IndicatorComputeDur *prometheus.HistogramVec // labels: kind
	IndicatorPoints     *prometheus.CounterVec   // labels: kind

	// HTTP
	ChartRequests   *prometheus.CounterVec // labels: status
	RequestDuration *prometheus.HistogramVec

	// Price history
	SeriesCache     *prometheus.CounterVec // labels: result=hit|miss|error
	SeriesLoadDur   prometheus.Histogram
	InvalidSeries   prometheus.Counter
	CacheWarmRuns   *prometheus.CounterVec // labels: result=ok|error
	SeriesBarsTotal prometheus.Counter

	// Circuit breaker
	RedisCircuitBreakerState prometheus.Gauge // 0=closed, 1=open, 2=half-open
	RedisCircuitBreakerTrips prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates all metrics and registers them on reg. A nil reg uses
// a fresh private registry, which keeps tests from colliding on the global one.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indicator_compute_duration_seconds",
			Help:    "Indicator calculator latency per request",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"kind"}),
		IndicatorPoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicator_points_total",
			Help: "Total indicator points emitted (by kind)",
		}, []string{"kind"}),

		ChartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chart_requests_total",
			Help: "Chart API requests by HTTP status",
		}, []string{"status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		SeriesCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "series_cache_total",
			Help: "Series cache lookups by result",
		}, []string{"result"}),
		SeriesLoadDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "series_load_duration_seconds",
			Help:    "Price history load latency (cache + store)",
			Buckets: prometheus.DefBuckets,
		}),
		InvalidSeries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "series_invalid_total",
			Help: "Series rejected at ingestion for broken OHLC invariants",
		}),
		CacheWarmRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "series_cache_warm_total",
			Help: "Cache warm-up loads by result",
		}, []string{"result"}),
		SeriesBarsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "series_bars_loaded_total",
			Help: "Bars read from the price history store",
		}),

		RedisCircuitBreakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "redis_circuit_breaker_state",
			Help: "Redis cache circuit breaker state (0=closed, 1=open, 2=half-open)",
		}),
		RedisCircuitBreakerTrips: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "redis_circuit_breaker_trips_total",
			Help: "Times the Redis cache circuit breaker opened",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.IndicatorComputeDur,
		m.IndicatorPoints,
		m.ChartRequests,
		m.RequestDuration,
		m.SeriesCache,
		m.SeriesLoadDur,
		m.InvalidSeries,
		m.CacheWarmRuns,
		m.SeriesBarsTotal,
		m.RedisCircuitBreakerState,
		m.RedisCircuitBreakerTrips,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveBreaker records a circuit breaker transition. States are passed
// as ints to keep this package free of the store import.
func (m *Metrics) ObserveBreaker(to int, opened bool) {
	m.RedisCircuitBreakerState.Set(float64(to))
	if opened {
		m.RedisCircuitBreakerTrips.Inc()
	}
}
