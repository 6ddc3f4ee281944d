// Package gateway is the REST surface of the chart service: it resolves
// chart requests to a price series through the history service and fills
// the indicator and overlay fields with the indicator engine.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"invest-indicators/internal/history"
	"invest-indicators/internal/indicator"
	"invest-indicators/internal/logger"
	"invest-indicators/internal/metrics"
	"invest-indicators/internal/model"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// SeriesLoader resolves a chart query to bars. *history.Service implements it.
type SeriesLoader interface {
	Load(ctx context.Context, q history.Query) (model.Series, error)
}

// Server holds the handler dependencies.
type Server struct {
	history SeriesLoader
	engine  *indicator.Engine
	prom    *metrics.Metrics
	health  http.Handler
	stats   *ComputeStats
}

// NewServer wires the REST handlers. health may be nil.
func NewServer(loader SeriesLoader, engine *indicator.Engine, prom *metrics.Metrics, health http.Handler) *Server {
	if engine == nil {
		engine = indicator.NewEngine()
	}
	return &Server{
		history: loader,
		engine:  engine,
		prom:    prom,
		health:  health,
		stats:   NewComputeStats(1024),
	}
}

// Stats exposes the recent compute latency tracker.
func (s *Server) Stats() *ComputeStats { return s.stats }

// Handler returns the routed, instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return withRequestID(mux)
}

// RegisterRoutes registers all HTTP routes on the provided mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/stocks/chart", s.instrument("chart", http.HandlerFunc(s.handleChart)))
	mux.Handle("/api/indicators", s.instrument("indicators", http.HandlerFunc(s.handleIndicators)))
	mux.Handle("/api/indicators/stats", s.instrument("stats", http.HandlerFunc(s.handleStats)))
	mux.Handle("/metrics", s.prom.Handler())
	if s.health != nil {
		mux.Handle("/health", s.health)
	}
}

// SetCORS sets CORS headers for REST endpoints.
func SetCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
}

// withRequestID puts a request id in the context, taking the client's
// X-Request-ID when present.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = logger.GenerateTraceID()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithTraceID(r.Context(), id)))
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		SetCORS(rec)
		if r.Method == http.MethodOptions {
			rec.WriteHeader(http.StatusOK)
		} else {
			next.ServeHTTP(rec, r)
		}

		dur := time.Since(start)
		s.prom.RequestDuration.WithLabelValues(route).Observe(dur.Seconds())
		slog.Debug("http request", append(logger.LogWithTrace(r.Context()),
			slog.String("route", route),
			slog.String("method", r.Method),
			slog.Int("status", rec.status),
			slog.Duration("duration", dur))...)
	})
}

// compute runs one indicator and records its latency and point count.
func (s *Server) compute(bars model.Series, kind indicator.Kind, p indicator.Params) indicator.Result {
	start := time.Now()
	res := s.engine.Compute(bars, kind, p)
	dur := time.Since(start)

	name := kind.String()
	s.prom.IndicatorComputeDur.WithLabelValues(name).Observe(dur.Seconds())
	s.prom.IndicatorPoints.WithLabelValues(name).Add(float64(res.Len()))
	s.stats.Record(kind, dur)
	return res
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, RequestID: logger.TraceID(r.Context())})
}
