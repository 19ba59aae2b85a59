package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "royalty_vault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "royalty_vault_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "royalty_vault_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Royalty operation metrics
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "royalty_vault_operations_total",
			Help: "Total number of royalty operations by kind and result",
		},
		[]string{"kind", "status"},
	)

	DepositedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "royalty_vault_deposited_lamports_total",
			Help: "Lamports moved into the vault",
		},
		[]string{"kind"},
	)

	WithdrawnTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "royalty_vault_withdrawn_lamports_total",
			Help: "Lamports paid out of the vault",
		},
		[]string{"kind"},
	)

	RoundingRetainedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "royalty_vault_rounding_retained_lamports_total",
			Help: "Lamports left unassigned in the vault by truncating division",
		},
	)

	VaultBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "royalty_vault_balance_lamports",
			Help: "Vault balance after the last committed operation",
		},
	)

	SplitMismatchTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "royalty_vault_split_mismatch_total",
			Help: "Artist splits that named an artist missing from the ledger",
		},
	)

	WebhookDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "royalty_vault_webhook_deliveries_total",
			Help: "Settlement webhook delivery attempts by result",
		},
		[]string{"status"},
	)
)

// Middleware returns a gin middleware that records HTTP metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		c.Next()

		// Use the route pattern if available, otherwise use the path
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordOperation records the result of a royalty operation.
func RecordOperation(kind string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	OperationsTotal.WithLabelValues(kind, status).Inc()
}

// RecordSettlement records the value movement of a committed operation.
func RecordSettlement(kind string, deposit bool, amount, retained, vaultBalance uint64) {
	if deposit {
		DepositedTotal.WithLabelValues(kind).Add(float64(amount))
		RoundingRetainedTotal.Add(float64(retained))
	} else {
		WithdrawnTotal.WithLabelValues(kind).Add(float64(amount))
	}
	VaultBalance.Set(float64(vaultBalance))
}
