package gateway

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"invest-indicators/internal/history"
	"invest-indicators/internal/indicator"
	"invest-indicators/internal/logger"
	"invest-indicators/internal/model"
)

// Overlay periods drawn on every chart.
const (
	overlayShort  = 5
	overlayMedium = 20
	overlayLong   = 60
)

// handleChart serves GET /api/stocks/chart?symbol=&range=&market=&indicator=.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	defer func() {
		s.prom.ChartRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	}()
	fail := func(code int, msg string) {
		status = code
		writeError(w, r, code, msg)
	}

	if r.Method != http.MethodGet {
		fail(http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	qs := r.URL.Query()
	kinds, err := parseKinds(qs.Get("indicator"))
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	params, err := parseParams(qs)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	q := history.Query{Symbol: qs.Get("symbol"), Range: qs.Get("range"), Market: qs.Get("market")}
	bars, err := s.history.Load(r.Context(), q)
	if err != nil {
		code := loadStatus(err)
		if code >= http.StatusInternalServerError {
			slog.Error("chart load failed", append(logger.LogWithTrace(r.Context()),
				slog.String("symbol", q.Symbol), slog.Any("error", err))...)
			fail(code, "price history unavailable")
			return
		}
		fail(code, err.Error())
		return
	}

	resp := ChartResponse{
		Data:       bars.ClosePoints(),
		OHLC:       bars,
		Indicators: make(map[string]indicator.Result, len(kinds)),
		Overlays:   s.overlays(bars),
	}
	for _, k := range kinds {
		resp.Indicators[k.String()] = s.compute(bars, k, params)
	}
	writeJSON(w, status, resp)
}

func (s *Server) overlays(bars model.Series) Overlays {
	ma := func(period int) []model.ScalarPoint {
		return s.compute(bars, indicator.KindSMA, indicator.Params{Period: period}).Scalar
	}
	return Overlays{
		MA5:  ma(overlayShort),
		MA20: ma(overlayMedium),
		MA60: ma(overlayLong),
	}
}

// handleIndicators serves GET (supported kinds with effective defaults)
// and POST (compute over caller-supplied bars) on /api/indicators.
func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		kinds := indicator.Kinds()
		out := make([]KindInfo, 0, len(kinds))
		for _, k := range kinds {
			p := s.engine.Params(k, indicator.Params{})
			out = append(out, KindInfo{
				Name:            k.String(),
				Params:          p,
				Warmup:          indicator.Warmup(k, p),
				MinBars:         indicator.MinBars(k, p),
				FirstOutputBars: indicator.FirstOutputBars(k, p),
			})
		}
		writeJSON(w, http.StatusOK, out)
	case http.MethodPost:
		s.handleCompute(w, r)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	kind, err := indicator.ParseKind(req.Indicator)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := indicator.ParseMACDMode(req.MACDMode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Params.MACDSignal = mode
	if err := validateParams(req.Params); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	// Caller bars skip the history service, so check them here
	if err := req.Bars.Validate(); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	p := s.engine.Params(kind, req.Params)
	res := s.compute(req.Bars, kind, p)
	writeJSON(w, http.StatusOK, ComputeResponse{
		Indicator: kind.String(),
		Warmup:    indicator.Warmup(kind, p),
		Points:    res.Len(),
		Series:    res,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

// loadStatus maps a history error to an HTTP status.
func loadStatus(err error) int {
	switch {
	case errors.Is(err, history.ErrNoSymbol), errors.Is(err, history.ErrUnknownRange):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, history.ErrInvalidBar):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// parseKinds reads a comma-separated indicator list. "none" and blanks are
// skipped and duplicates collapse.
func parseKinds(raw string) ([]indicator.Kind, error) {
	var kinds []indicator.Kind
	seen := make(map[indicator.Kind]bool)
	for _, name := range strings.Split(raw, ",") {
		k, err := indicator.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if k == indicator.KindNone || seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// parseParams reads the optional period, k, d, mult and macd query params.
func parseParams(qs url.Values) (indicator.Params, error) {
	var p indicator.Params
	ints := []struct {
		key string
		dst *int
	}{
		{"period", &p.Period},
		{"k", &p.KPeriod},
		{"d", &p.DPeriod},
	}
	for _, f := range ints {
		v := qs.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("%s: not an integer: %q", f.key, v)
		}
		*f.dst = n
	}
	if v := qs.Get("mult"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("mult: not a number: %q", v)
		}
		p.StdDevs = f
	}
	mode, err := indicator.ParseMACDMode(qs.Get("macd"))
	if err != nil {
		return p, err
	}
	p.MACDSignal = mode
	return p, validateParams(p)
}

// maxPeriod bounds user-supplied windows.
const maxPeriod = 1000

func validateParams(p indicator.Params) error {
	for name, v := range map[string]int{"period": p.Period, "k": p.KPeriod, "d": p.DPeriod} {
		if v < 0 || v > maxPeriod {
			return fmt.Errorf("%s must be between 0 and %d", name, maxPeriod)
		}
	}
	if math.IsNaN(p.StdDevs) || math.IsInf(p.StdDevs, 0) {
		return errors.New("mult must be a finite number")
	}
	if p.StdDevs < 0 {
		return errors.New("mult must be positive")
	}
	return nil
}
