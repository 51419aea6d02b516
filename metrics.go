package goEntitle

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one counter or histogram tracked by the engine.
type MetricID uint16

const (
	// MetricLoginSuccess counts completed logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts logins rejected by the backend or transport.
	MetricLoginFailure
	// MetricLoginValidation counts logins stopped by local validation.
	MetricLoginValidation
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess
	// MetricRegisterDuplicate counts duplicate-account answers.
	MetricRegisterDuplicate
	// MetricRegisterFailure counts registrations rejected by the backend or transport.
	MetricRegisterFailure
	// MetricRegisterValidation counts registrations stopped by local validation.
	MetricRegisterValidation
	// MetricSyncSuccess counts entitlement fetches applied to the cache.
	MetricSyncSuccess
	// MetricSyncFailure counts entitlement fetches that failed.
	MetricSyncFailure
	// MetricSyncSuperseded counts fetch results discarded by the sequence guard.
	MetricSyncSuperseded
	// MetricSyncSkipped counts no-op ticks (no cached token).
	MetricSyncSkipped
	// MetricEntitlementGranted counts false-to-true premium transitions.
	MetricEntitlementGranted
	// MetricEntitlementRevoked counts true-to-false premium transitions.
	MetricEntitlementRevoked
	// MetricUpgradeRequested counts accepted payment-review requests.
	MetricUpgradeRequested
	// MetricUpgradeFailed counts rejected or failed payment-review requests.
	MetricUpgradeFailed
	// MetricNoticeShown counts notices started from Idle.
	MetricNoticeShown
	// MetricNoticeReplaced counts notices that restarted an active timeline.
	MetricNoticeReplaced
	// MetricStorageError counts persistent-store failures.
	MetricStorageError
	// MetricHydrate counts hydration passes.
	MetricHydrate
	// MetricLogout counts logouts.
	MetricLogout
	// MetricSyncLatency is the entitlement fetch latency histogram.
	MetricSyncLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters and the optional sync-latency histogram.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of every non-zero metric.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] per the given config.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample. Only [MetricSyncLatency] is tracked.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricSyncLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every non-zero counter and histogram.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   map[MetricID]uint64{},
		Histograms: map[MetricID][]uint64{},
	}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v > 0 {
			snap.Counters[id] = v
		}
		var buckets []uint64
		for b := 0; b < histBucketCount; b++ {
			if v := atomic.LoadUint64(&m.histograms[id].buckets[b]); v > 0 {
				if buckets == nil {
					buckets = make([]uint64, histBucketCount)
				}
				buckets[b] = v
			}
		}
		if buckets != nil {
			snap.Histograms[id] = buckets
		}
	}
	return snap
}

// bucketIndex maps a fetch latency to its histogram bucket:
// <50ms, <100ms, <250ms, <500ms, <1s, <2.5s, <5s, rest.
func bucketIndex(d time.Duration) int {
	bounds := [...]time.Duration{
		50 * time.Millisecond,
		100 * time.Millisecond,
		250 * time.Millisecond,
		500 * time.Millisecond,
		time.Second,
		2500 * time.Millisecond,
		5 * time.Second,
	}
	for i, bound := range bounds {
		if d < bound {
			return i
		}
	}
	return histBucketCount - 1
}
