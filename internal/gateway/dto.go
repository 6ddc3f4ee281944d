package gateway

import (
	"invest-indicators/internal/indicator"
	"invest-indicators/internal/model"
)

// ChartResponse is the /api/stocks/chart response body.
type ChartResponse struct {
	Data       []model.PricePoint          `json:"data"`
	OHLC       model.Series                `json:"ohlc"`
	Indicators map[string]indicator.Result `json:"indicators"`
	Overlays   Overlays                    `json:"overlays"`
}

// Overlays are the close moving averages drawn over the price chart.
type Overlays struct {
	MA5  []model.ScalarPoint `json:"ma5"`
	MA20 []model.ScalarPoint `json:"ma20"`
	MA60 []model.ScalarPoint `json:"ma60"`
}

// ComputeRequest is the POST /api/indicators body.
type ComputeRequest struct {
	Indicator string           `json:"indicator"`
	Params    indicator.Params `json:"params"`
	MACDMode  string           `json:"macdMode,omitempty"`
	Bars      model.Series     `json:"bars"`
}

// ComputeResponse is the POST /api/indicators response body.
type ComputeResponse struct {
	Indicator string           `json:"indicator"`
	Warmup    int              `json:"warmup"`
	Points    int              `json:"points"`
	Series    indicator.Result `json:"series"`
}

// KindInfo is one entry of GET /api/indicators.
type KindInfo struct {
	Name            string           `json:"name"`
	Params          indicator.Params `json:"params"`
	Warmup          int              `json:"warmup"`
	MinBars         int              `json:"minBars"`
	FirstOutputBars int              `json:"firstOutputBars"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
