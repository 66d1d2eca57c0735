package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransfersRejected  *prometheus.CounterVec
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram

	// Account metrics
	AccountsProvisioned prometheus.Counter
	BalanceQueries      prometheus.Counter

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinbank_transfers_completed_total",
			Help: "Total number of committed transfers",
		}),
		TransfersRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinbank_transfers_rejected_total",
				Help: "Total number of rejected transfers by reason",
			},
			[]string{"reason"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "coinbank_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "coinbank_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		}),

		AccountsProvisioned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinbank_accounts_provisioned_total",
			Help: "Total number of accounts provisioned",
		}),
		BalanceQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinbank_balance_queries_total",
			Help: "Total number of balance queries",
		}),

		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinbank_balance_cache_hits_total",
			Help: "Total balance cache hits",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "coinbank_balance_cache_misses_total",
			Help: "Total balance cache misses",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinbank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coinbank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinbank_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
	}
}
