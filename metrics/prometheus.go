package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Moonpool metrics collector. Collectors are registered with the default
// Prometheus registry, which the node exposes through its telemetry endpoint.

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Operation status labels
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Collector holds all moonpool metrics
type Collector struct {
	// Operation metrics
	OperationsTotal  *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec

	// Value flow metrics
	RaisedTotal   *prometheus.CounterVec
	TradeVolume   *prometheus.CounterVec
	TradeValue    *prometheus.CounterVec
	FeesCollected *prometheus.CounterVec
	PoolsCreated  prometheus.Counter

	// Pool state metrics
	PoolSupply      *prometheus.GaugeVec
	PoolTotalRaised *prometheus.GaugeVec
	PoolsByPhase    *prometheus.GaugeVec

	// System metrics
	BlockHeight prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
		collector.registerAll(prometheus.DefaultRegisterer)
	})
	return collector
}

// newCollector creates a new, unregistered metrics collector
func newCollector() *Collector {
	c := &Collector{}

	c.OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "operations",
			Name:      "total",
			Help:      "Total number of moonpool operations by outcome",
		},
		[]string{"operation", "status"},
	)

	c.OperationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moonpool",
			Subsystem: "operations",
			Name:      "latency_ms",
			Help:      "Operation handling latency in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"operation"},
	)

	c.RaisedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "raise",
			Name:      "contributed_total",
			Help:      "Quote units contributed during raise periods",
		},
		[]string{"pool"},
	)

	c.TradeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "trades",
			Name:      "volume",
			Help:      "Issuance units traded on the curve",
		},
		[]string{"pool", "side"},
	)

	c.TradeValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "trades",
			Name:      "value",
			Help:      "Quote units exchanged on the curve",
		},
		[]string{"pool", "side"},
	)

	c.FeesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "fees",
			Name:      "collected_total",
			Help:      "Fees collected in quote units",
		},
		[]string{"kind"},
	)

	c.PoolsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "moonpool",
			Subsystem: "pools",
			Name:      "created_total",
			Help:      "Number of pools created",
		},
	)

	c.PoolSupply = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "moonpool",
			Subsystem: "pools",
			Name:      "circulating_supply",
			Help:      "Circulating issuance supply per pool",
		},
		[]string{"pool"},
	)

	c.PoolTotalRaised = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "moonpool",
			Subsystem: "pools",
			Name:      "total_raised",
			Help:      "Quote units raised per pool",
		},
		[]string{"pool"},
	)

	c.PoolsByPhase = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "moonpool",
			Subsystem: "pools",
			Name:      "by_phase",
			Help:      "Number of pools in each lifecycle phase",
		},
		[]string{"phase"},
	)

	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "moonpool",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Last block height processed by the moonpool end blocker",
		},
	)

	return c
}

// registerAll registers all metrics with reg
func (c *Collector) registerAll(reg prometheus.Registerer) {
	reg.MustRegister(
		c.OperationsTotal,
		c.OperationLatency,
		c.RaisedTotal,
		c.TradeVolume,
		c.TradeValue,
		c.FeesCollected,
		c.PoolsCreated,
		c.PoolSupply,
		c.PoolTotalRaised,
		c.PoolsByPhase,
		c.BlockHeight,
	)
}

// ============ Recording Methods ============

// RecordOperation records the outcome and latency of an operation
func (c *Collector) RecordOperation(operation string, err error, latencyMs float64) {
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	c.OperationsTotal.WithLabelValues(operation, status).Inc()
	c.OperationLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordPoolCreated records a new pool and its creation fee
func (c *Collector) RecordPoolCreated(creationFee uint64) {
	c.PoolsCreated.Inc()
	c.FeesCollected.WithLabelValues("creation").Add(float64(creationFee))
}

// RecordContribution records a raise contribution
func (c *Collector) RecordContribution(pool string, amount, platformFee uint64) {
	c.RaisedTotal.WithLabelValues(pool).Add(float64(amount))
	c.FeesCollected.WithLabelValues("platform").Add(float64(platformFee))
}

// RecordTrade records a curve trade and its fees
func (c *Collector) RecordTrade(pool, side string, volume, value, ownerFee, platformFee uint64) {
	c.TradeVolume.WithLabelValues(pool, side).Add(float64(volume))
	c.TradeValue.WithLabelValues(pool, side).Add(float64(value))
	c.FeesCollected.WithLabelValues("owner").Add(float64(ownerFee))
	c.FeesCollected.WithLabelValues("platform").Add(float64(platformFee))
}

// RecordPoolState updates the per-pool gauges
func (c *Collector) RecordPoolState(pool string, supply, totalRaised uint64) {
	c.PoolSupply.WithLabelValues(pool).Set(float64(supply))
	c.PoolTotalRaised.WithLabelValues(pool).Set(float64(totalRaised))
}

// RecordPhaseCounts replaces the per-phase pool counts
func (c *Collector) RecordPhaseCounts(blockHeight int64, counts map[string]int) {
	c.PoolsByPhase.Reset()
	for phase, n := range counts {
		c.PoolsByPhase.WithLabelValues(phase).Set(float64(n))
	}
	c.BlockHeight.Set(float64(blockHeight))
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
