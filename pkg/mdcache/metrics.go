package mdcache

// metrics.go mirrors the cache's per-kind Diagnostics into Prometheus when
// the caller opts in via WithMetrics; otherwise a no-op sink is used and
// the hot path pays nothing for metric bookkeeping. Adapted from the
// arena-cache ancestor's per-shard metricsSink abstraction, relabelled
// from "shard" to "kind" since this cache has one shared slot table
// rather than independent shards.
//
// © 2025 mdcache authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metricsSink interface {
	incHit(k Kind)
	incMiss(k Kind)
	incFlush(k Kind)
	setOccupancy(used, total int)
	setProtects(n int)
}

type noopMetrics struct{}

func (noopMetrics) incHit(Kind)           {}
func (noopMetrics) incMiss(Kind)          {}
func (noopMetrics) incFlush(Kind)         {}
func (noopMetrics) setOccupancy(int, int) {}
func (noopMetrics) setProtects(int)       {}

type promMetrics struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	flushes  *prometheus.CounterVec
	occupied prometheus.Gauge
	slots    prometheus.Gauge
	protects prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	label := []string{"kind"}
	pm := &promMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdcache",
			Name:      "hits_total",
			Help:      "Number of cache hits per entry kind.",
		}, label),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdcache",
			Name:      "misses_total",
			Help:      "Number of cache misses per entry kind.",
		}, label),
		flushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mdcache",
			Name:      "flushes_total",
			Help:      "Number of flush-callback invocations per entry kind.",
		}, label),
		occupied: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdcache",
			Name:      "slots_occupied",
			Help:      "Number of occupied slots in the table.",
		}),
		slots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdcache",
			Name:      "slots_total",
			Help:      "Fixed total slot count chosen at Create time.",
		}),
		protects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mdcache",
			Name:      "protects_outstanding",
			Help:      "Number of outstanding protect records (cache.nprots).",
		}),
	}
	reg.MustRegister(pm.hits, pm.misses, pm.flushes, pm.occupied, pm.slots, pm.protects)
	return pm
}

func (m *promMetrics) incHit(k Kind)   { m.hits.WithLabelValues(k.String()).Inc() }
func (m *promMetrics) incMiss(k Kind)  { m.misses.WithLabelValues(k.String()).Inc() }
func (m *promMetrics) incFlush(k Kind) { m.flushes.WithLabelValues(k.String()).Inc() }

func (m *promMetrics) setOccupancy(used, total int) {
	m.occupied.Set(float64(used))
	m.slots.Set(float64(total))
}

func (m *promMetrics) setProtects(n int) { m.protects.Set(float64(n)) }

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
