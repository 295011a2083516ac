package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec
	FraudFlags       prometheus.Counter

	// Account metrics
	AccountsOpened    prometheus.Counter
	AccountsClosed    prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Device metrics
	CashOperations *prometheus.CounterVec
	Capital        prometheus.Gauge

	// Exchange metrics
	RateOperations *prometheus.CounterVec

	// API metrics
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	HTTPInFlight  prometheus.Gauge
	RateLimitHits prometheus.Counter
}

// New creates all Prometheus metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transfer metrics
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobank_transfer_amount",
			Help:    "Transfer amounts in the source currency",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_transfer_errors_total",
				Help: "Total number of rejected transfers by error kind",
			},
			[]string{"kind"},
		),
		FraudFlags: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_fraud_flags_total",
			Help: "Total number of transactions above the payer's fraud threshold",
		}),

		// Account metrics
		AccountsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		AccountsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_account_operations_total",
				Help: "Total account operations by type and result",
			},
			[]string{"operation", "result"},
		),

		// Device metrics
		CashOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_cash_operations_total",
				Help: "Total cash operations by device kind, operation and result",
			},
			[]string{"device", "operation", "result"},
		),
		Capital: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobank_capital_available",
			Help: "Bank capital not reserved by any device",
		}),

		// Exchange metrics
		RateOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_rate_operations_total",
				Help: "Total exchange table operations by type and result",
			},
			[]string{"operation", "result"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gobank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gobank_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gobank_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// TransferCreated counts a completed transfer.
func (m *Metrics) TransferCreated(amount decimal.Decimal) {
	m.TransfersCreated.Inc()
	m.TransferAmount.Observe(amount.InexactFloat64())
}

// TransferFailed counts a rejected transfer by error kind.
func (m *Metrics) TransferFailed(kind string) {
	m.TransferErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) AccountOperation(operation, result string) {
	m.AccountOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) AccountOpened() { m.AccountsOpened.Inc() }
func (m *Metrics) AccountClosed() { m.AccountsClosed.Inc() }

func (m *Metrics) CashOperation(kind domain.DeviceKind, operation, result string) {
	m.CashOperations.WithLabelValues(string(kind), operation, result).Inc()
}

// CapitalAvailable sets the capital gauge.
func (m *Metrics) CapitalAvailable(amount decimal.Decimal) {
	m.Capital.Set(amount.InexactFloat64())
}

func (m *Metrics) RateOperation(operation, result string) {
	m.RateOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) FraudFlagged() { m.FraudFlags.Inc() }
