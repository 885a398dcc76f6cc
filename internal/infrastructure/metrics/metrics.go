package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Movement metrics
	TransfersCreated     prometheus.Counter
	TopUpsCreated        prometheus.Counter
	TransactionsReversed prometheus.Counter
	MovementAmount       prometheus.Histogram
	MovementErrors       *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	LoginAttempts *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condorpay_transfers_created_total",
			Help: "Total number of transfers confirmed",
		}),
		TopUpsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condorpay_topups_created_total",
			Help: "Total number of top-ups confirmed",
		}),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condorpay_transactions_reversed_total",
			Help: "Total number of transactions reversed",
		}),
		MovementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "condorpay_movement_amount",
			Help:    "Movement amounts",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		}),
		MovementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_movement_errors_total",
				Help: "Total number of movement errors by type",
			},
			[]string{"error_type"},
		),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "condorpay_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "condorpay_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_login_attempts_total",
				Help: "Total login attempts",
			},
			[]string{"status"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "condorpay_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
