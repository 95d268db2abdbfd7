package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Wallet ledger
	WalletTransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transactions_total",
			Help: "Total committed wallet transactions",
		},
		[]string{"type"},
	)
	WalletTransactionsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_transactions_failed_total",
			Help: "Total rejected or failed wallet transactions",
		},
	)

	// Push delivery
	PushBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_batches_total",
			Help: "Total push notification batches by outcome",
		},
		[]string{"outcome"},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(WalletTransactionsTotal)
	prometheus.MustRegister(WalletTransactionsFailed)
	prometheus.MustRegister(PushBatchesTotal)
}
