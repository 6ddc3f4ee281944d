package gateway

import (
	"math"
	"sort"
	"sync"
	"time"

	"invest-indicators/internal/indicator"
)

// LatencySummary is the /api/indicators/stats entry for one kind.
type LatencySummary struct {
	Count int     `json:"count"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// ComputeStats keeps the most recent compute latencies per indicator kind
// and reports percentiles over them. Prometheus histograms cover the long
// run; this answers "how slow is MFI right now" without a query backend.
type ComputeStats struct {
	mu       sync.Mutex
	capacity int
	rings    map[indicator.Kind]*latencyRing
}

// NewComputeStats keeps up to capacity samples per kind.
func NewComputeStats(capacity int) *ComputeStats {
	if capacity <= 0 {
		capacity = 1024
	}
	return &ComputeStats{capacity: capacity, rings: make(map[indicator.Kind]*latencyRing)}
}

// Record adds one compute duration for kind.
func (cs *ComputeStats) Record(kind indicator.Kind, d time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	r, ok := cs.rings[kind]
	if !ok {
		r = &latencyRing{samples: make([]float64, cs.capacity)}
		cs.rings[kind] = r
	}
	r.add(float64(d) / float64(time.Millisecond))
}

// Snapshot summarizes every kind seen so far, keyed by kind name.
func (cs *ComputeStats) Snapshot() map[string]LatencySummary {
	cs.mu.Lock()
	copies := make(map[indicator.Kind][]float64, len(cs.rings))
	for k, r := range cs.rings {
		copies[k] = r.ordered()
	}
	cs.mu.Unlock()

	out := make(map[string]LatencySummary, len(copies))
	for k, s := range copies {
		sort.Float64s(s)
		out[k.String()] = LatencySummary{
			Count: len(s),
			P50Ms: percentile(s, 0.50),
			P95Ms: percentile(s, 0.95),
			P99Ms: percentile(s, 0.99),
		}
	}
	return out
}

// latencyRing is a fixed-size circular buffer of millisecond samples.
type latencyRing struct {
	samples []float64
	pos     int
	count   int
}

func (r *latencyRing) add(ms float64) {
	r.samples[r.pos] = ms
	r.pos = (r.pos + 1) % len(r.samples)
	if r.count < len(r.samples) {
		r.count++
	}
}

// ordered returns a copy of the live samples, oldest first.
func (r *latencyRing) ordered() []float64 {
	out := make([]float64, r.count)
	if r.count == len(r.samples) {
		n := copy(out, r.samples[r.pos:])
		copy(out[n:], r.samples[:r.pos])
	} else {
		copy(out, r.samples[:r.count])
	}
	return out
}

// percentile interpolates the p-th percentile (0..1) of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lower := int(math.Floor(rank))
	if lower+1 >= n {
		return sorted[n-1]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[lower+1]*frac
}
