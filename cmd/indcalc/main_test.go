package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"invest-indicators/internal/indicator"
	"invest-indicators/internal/model"
)

func barsJSON(t *testing.T, closes ...float64) string {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make(model.Series, len(closes))
	for i, c := range closes {
		bars[i] = model.NewBar(start.AddDate(0, 0, i), c, c, c, c, 100)
	}
	data, err := json.Marshal(bars)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestRun_RSI(t *testing.T) {
	in := barsJSON(t, 1, 2, 3, 2, 3, 4)
	var out bytes.Buffer
	err := run(strings.NewReader(in), &out, options{
		kind:      indicator.KindRSI,
		params:    indicator.Params{Period: 2},
		precision: 2,
		validate:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	var pts []model.ScalarPoint
	if err := json.Unmarshal(out.Bytes(), &pts); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	if len(pts) != 4 {
		t.Fatalf("got %d points, want 4", len(pts))
	}
	if pts[0].Value != 100 {
		t.Errorf("first RSI %v, want 100 (no losses in seed)", pts[0].Value)
	}
}

func TestRun_None(t *testing.T) {
	var out bytes.Buffer
	if err := run(strings.NewReader(barsJSON(t, 1, 2)), &out, options{kind: indicator.KindNone}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "{}" {
		t.Errorf("expected {}, got %q", out.String())
	}
}

func TestRun_RejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	if err := run(strings.NewReader("not json"), &out, options{kind: indicator.KindOBV}); err == nil {
		t.Error("expected decode error")
	}

	bad := `[{"time":"2024-01-01T00:00:00Z","open":"10","high":"9","low":"8","close":"9","volume":1}]`
	if err := run(strings.NewReader(bad), &out, options{kind: indicator.KindOBV, validate: true}); err == nil {
		t.Error("expected validation error")
	}
}
