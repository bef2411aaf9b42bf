package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all chain and gateway metrics
type Collector struct {
	// Pool metrics
	PoolsTotal    *prometheus.CounterVec
	PoolsActive   prometheus.Gauge
	PoolValue     *prometheus.GaugeVec
	PoolShares    *prometheus.GaugeVec
	PoolInvestors *prometheus.GaugeVec

	// Investment metrics
	InvestmentsTotal *prometheus.CounterVec
	InvestmentValue  *prometheus.CounterVec
	RedemptionsTotal *prometheus.CounterVec
	RedemptionValue  *prometheus.CounterVec

	// Secondary market metrics
	ListingsOpen    *prometheus.GaugeVec
	ListingsTotal   *prometheus.CounterVec
	TradesTotal     *prometheus.CounterVec
	TradeValue      *prometheus.CounterVec
	BookRebuildTime prometheus.Histogram

	// Settlement metrics
	PaymentsRecorded *prometheus.CounterVec
	PaymentValue     *prometheus.CounterVec
	Distributions    *prometheus.CounterVec
	DistributedValue *prometheus.CounterVec
	ShortfallValue   *prometheus.CounterVec

	// Asset registry metrics
	AssetsRegistered *prometheus.CounterVec
	AssetsByStatus   *prometheus.GaugeVec

	// WebSocket metrics
	WSConnectionsActive *prometheus.GaugeVec
	WSMessagesTotal     *prometheus.CounterVec
	WSSubscriptions     *prometheus.GaugeVec

	// API metrics
	APIRequestsTotal  *prometheus.CounterVec
	APIRequestLatency *prometheus.HistogramVec
	APIErrorsTotal    *prometheus.CounterVec
	RateLimitHits     *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge
	BlockTime   *prometheus.HistogramVec
	TxPoolSize  prometheus.Gauge
	PeerCount   prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Pool metrics
	c.PoolsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "pools",
			Name:      "total",
			Help:      "Total number of pools created",
		},
		[]string{"phase"},
	)

	c.PoolsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "pools",
			Name:      "active",
			Help:      "Number of active pools",
		},
	)

	c.PoolValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "pools",
			Name:      "value",
			Help:      "Total pool value in the payment denom",
		},
		[]string{"pool_id"},
	)

	c.PoolShares = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "pools",
			Name:      "shares",
			Help:      "Total shares outstanding per pool",
		},
		[]string{"pool_id"},
	)

	c.PoolInvestors = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "pools",
			Name:      "investors",
			Help:      "Number of investors with open positions per pool",
		},
		[]string{"pool_id"},
	)

	// Investment metrics
	c.InvestmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "investments",
			Name:      "total",
			Help:      "Total number of investments",
		},
		[]string{"pool_id", "scope"},
	)

	c.InvestmentValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "investments",
			Name:      "value",
			Help:      "Total invested value in the payment denom",
		},
		[]string{"pool_id", "scope"},
	)

	c.RedemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "redemptions",
			Name:      "total",
			Help:      "Total number of redemptions",
		},
		[]string{"pool_id", "scope"},
	)

	c.RedemptionValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "redemptions",
			Name:      "value",
			Help:      "Total redeemed value in the payment denom",
		},
		[]string{"pool_id", "scope"},
	)

	// Secondary market metrics
	c.ListingsOpen = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "market",
			Name:      "listings_open",
			Help:      "Number of open share listings per scope",
		},
		[]string{"scope"},
	)

	c.ListingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "market",
			Name:      "listings_total",
			Help:      "Total share listings created",
		},
		[]string{"scope"},
	)

	c.TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "market",
			Name:      "trades_total",
			Help:      "Total share trades executed",
		},
		[]string{"scope"},
	)

	c.TradeValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "market",
			Name:      "trade_value",
			Help:      "Total traded value in the payment denom",
		},
		[]string{"scope"},
	)

	c.BookRebuildTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rwachain",
			Subsystem: "market",
			Name:      "book_rebuild_ms",
			Help:      "Listing book rebuild time at startup in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)

	// Settlement metrics
	c.PaymentsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "settlement",
			Name:      "payments_total",
			Help:      "Total asset payments recorded",
		},
		[]string{"pool_id"},
	)

	c.PaymentValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "settlement",
			Name:      "payment_value",
			Help:      "Total recorded payment value in the payment denom",
		},
		[]string{"pool_id"},
	)

	c.Distributions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "settlement",
			Name:      "distributions_total",
			Help:      "Total yield distributions executed",
		},
		[]string{"pool_id"},
	)

	c.DistributedValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "settlement",
			Name:      "distributed_value",
			Help:      "Total value distributed through the waterfall",
		},
		[]string{"pool_id", "class"},
	)

	c.ShortfallValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "settlement",
			Name:      "shortfall_value",
			Help:      "Total shortfall absorbed by junior tranches",
		},
		[]string{"pool_id", "class"},
	)

	// Asset registry metrics
	c.AssetsRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "registry",
			Name:      "assets_total",
			Help:      "Total assets registered",
		},
		[]string{"category"},
	)

	c.AssetsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "registry",
			Name:      "assets_by_status",
			Help:      "Number of assets per lifecycle status",
		},
		[]string{"status"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
		[]string{},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total WebSocket messages sent",
		},
		[]string{"channel"},
	)

	c.WSSubscriptions = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "websocket",
			Name:      "subscriptions",
			Help:      "Number of active subscriptions per channel",
		},
		[]string{"channel"},
	)

	// API metrics
	c.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	c.APIRequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rwachain",
			Subsystem: "api",
			Name:      "request_latency_ms",
			Help:      "API request latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method", "path"},
	)

	c.APIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Total API errors",
		},
		[]string{"method", "path", "error_type"},
	)

	c.RateLimitHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rwachain",
			Subsystem: "api",
			Name:      "rate_limit_hits",
			Help:      "Total rate limit hits",
		},
		[]string{"limit_type"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rwachain",
			Subsystem: "system",
			Name:      "block_time_ms",
			Help:      "Block time in milliseconds",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000},
		},
		[]string{},
	)

	c.TxPoolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "system",
			Name:      "tx_pool_size",
			Help:      "Transaction pool size",
		},
	)

	c.PeerCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rwachain",
			Subsystem: "system",
			Name:      "peer_count",
			Help:      "Number of connected peers",
		},
	)

	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Pool metrics
	prometheus.MustRegister(c.PoolsTotal)
	prometheus.MustRegister(c.PoolsActive)
	prometheus.MustRegister(c.PoolValue)
	prometheus.MustRegister(c.PoolShares)
	prometheus.MustRegister(c.PoolInvestors)

	// Investment metrics
	prometheus.MustRegister(c.InvestmentsTotal)
	prometheus.MustRegister(c.InvestmentValue)
	prometheus.MustRegister(c.RedemptionsTotal)
	prometheus.MustRegister(c.RedemptionValue)

	// Secondary market metrics
	prometheus.MustRegister(c.ListingsOpen)
	prometheus.MustRegister(c.ListingsTotal)
	prometheus.MustRegister(c.TradesTotal)
	prometheus.MustRegister(c.TradeValue)
	prometheus.MustRegister(c.BookRebuildTime)

	// Settlement metrics
	prometheus.MustRegister(c.PaymentsRecorded)
	prometheus.MustRegister(c.PaymentValue)
	prometheus.MustRegister(c.Distributions)
	prometheus.MustRegister(c.DistributedValue)
	prometheus.MustRegister(c.ShortfallValue)

	// Asset registry metrics
	prometheus.MustRegister(c.AssetsRegistered)
	prometheus.MustRegister(c.AssetsByStatus)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSSubscriptions)

	// API metrics
	prometheus.MustRegister(c.APIRequestsTotal)
	prometheus.MustRegister(c.APIRequestLatency)
	prometheus.MustRegister(c.APIErrorsTotal)
	prometheus.MustRegister(c.RateLimitHits)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
	prometheus.MustRegister(c.TxPoolSize)
	prometheus.MustRegister(c.PeerCount)
}

// ============ Recording Helpers ============

// RecordInvestment records an investment into a pool or tranche scope
func (c *Collector) RecordInvestment(poolID, scope string, value float64) {
	c.InvestmentsTotal.WithLabelValues(poolID, scope).Inc()
	c.InvestmentValue.WithLabelValues(poolID, scope).Add(value)
}

// RecordRedemption records a share redemption
func (c *Collector) RecordRedemption(poolID, scope string, value float64) {
	c.RedemptionsTotal.WithLabelValues(poolID, scope).Inc()
	c.RedemptionValue.WithLabelValues(poolID, scope).Add(value)
}

// RecordTrade records a secondary market share trade
func (c *Collector) RecordTrade(scope string, value float64) {
	c.TradesTotal.WithLabelValues(scope).Inc()
	c.TradeValue.WithLabelValues(scope).Add(value)
}

// RecordPayment records an asset payment into a pool
func (c *Collector) RecordPayment(poolID string, value float64) {
	c.PaymentsRecorded.WithLabelValues(poolID).Inc()
	c.PaymentValue.WithLabelValues(poolID).Add(value)
}

// RecordDistribution records a waterfall distribution per tranche class
func (c *Collector) RecordDistribution(poolID string, allocations map[string]float64) {
	c.Distributions.WithLabelValues(poolID).Inc()
	for class, value := range allocations {
		c.DistributedValue.WithLabelValues(poolID, class).Add(value)
	}
}

// RecordShortfall records a shortfall absorbed by a tranche class
func (c *Collector) RecordShortfall(poolID, class string, value float64) {
	c.ShortfallValue.WithLabelValues(poolID, class).Add(value)
}

// RecordAssetRegistered records an asset registration
func (c *Collector) RecordAssetRegistered(category string) {
	c.AssetsRegistered.WithLabelValues(category).Inc()
}

// RecordAPIRequest records an API request
func (c *Collector) RecordAPIRequest(method, path, status string, latencyMs float64) {
	c.APIRequestsTotal.WithLabelValues(method, path, status).Inc()
	c.APIRequestLatency.WithLabelValues(method, path).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.WithLabelValues().Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// UpdateSystemMetrics updates system-level metrics
func (c *Collector) UpdateSystemMetrics(blockHeight int64, txPoolSize int, peerCount int) {
	c.BlockHeight.Set(float64(blockHeight))
	c.TxPoolSize.Set(float64(txPoolSize))
	c.PeerCount.Set(float64(peerCount))
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
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
