package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"invest-indicators/internal/model"
)

// readBars parses a header-led CSV with columns date|time|timestamp, open,
// high, low, close, volume|vol (any order, case-insensitive). Rows are
// sorted by time; invalid bars are rejected rather than skipped.
func readBars(r io.Reader) (model.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	idx := func(names ...string) (int, error) {
		for _, n := range names {
			if i, ok := cols[n]; ok {
				return i, nil
			}
		}
		return 0, fmt.Errorf("missing column %q", names[0])
	}

	var pos [6]int
	for i, names := range [][]string{
		{"date", "time", "timestamp"},
		{"open"}, {"high"}, {"low"}, {"close"},
		{"volume", "vol"},
	} {
		if pos[i], err = idx(names...); err != nil {
			return nil, err
		}
	}

	var bars model.Series
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		field := func(i int) string {
			if pos[i] < len(rec) {
				return strings.TrimSpace(rec[pos[i]])
			}
			return ""
		}
		if field(0) == "" {
			continue
		}

		b, err := parseRow(field(0), field(1), field(2), field(3), field(4), field(5))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, b)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if err := bars.Validate(); err != nil {
		return nil, err
	}
	return bars, nil
}

func parseRow(ts, open, high, low, close, volume string) (model.Bar, error) {
	t, err := parseTime(ts)
	if err != nil {
		return model.Bar{}, err
	}
	var b model.Bar
	b.Time = t
	for _, f := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"open", open, &b.Open},
		{"high", high, &b.High},
		{"low", low, &b.Low},
		{"close", close, &b.Close},
	} {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return model.Bar{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = d
	}
	if volume != "" {
		v, err := decimal.NewFromString(volume)
		if err != nil {
			return model.Bar{}, fmt.Errorf("volume: %w", err)
		}
		b.Volume = v.IntPart()
	}
	return b, nil
}

// parseTime accepts YYYY-MM-DD, RFC3339 or UNIX seconds.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("bad time: %q", s)
}
