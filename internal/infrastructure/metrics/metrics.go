package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/bankstatement/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountOperations *prometheus.CounterVec
	AccountBalance    prometheus.Gauge
	PostedAmount      *prometheus.HistogramVec
	PostingsTotal     prometheus.Counter

	// Statement metrics
	StatementsPrinted prometheus.Counter
	StatementLines    prometheus.Histogram
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_account_operations_total",
				Help: "Deposit and withdrawal attempts by outcome",
			},
			[]string{"kind", "outcome"},
		),
		AccountBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bank_account_balance",
			Help: "Current account balance",
		}),
		PostedAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_posted_amount",
				Help:    "Absolute amounts of posted transactions",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		PostingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bank_postings_total",
			Help: "Total number of transactions appended to the ledger",
		}),
		StatementsPrinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "bank_statements_printed_total",
			Help: "Total number of statements printed",
		}),
		StatementLines: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bank_statement_lines",
			Help:    "Transaction lines per printed statement",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// RecordOperation counts a deposit or withdrawal attempt.
func (m *Metrics) RecordOperation(kind domain.TransactionKind, outcome string) {
	m.AccountOperations.WithLabelValues(string(kind), outcome).Inc()
}

// RecordPosting observes a transaction appended to the ledger.
func (m *Metrics) RecordPosting(tx domain.Transaction) {
	amount := tx.Amount
	if amount < 0 {
		amount = -amount
	}

	m.PostingsTotal.Inc()
	m.PostedAmount.WithLabelValues(string(tx.Kind())).Observe(float64(amount))
	m.AccountBalance.Set(float64(tx.BalanceAfter))
}

// RecordStatement observes a printed statement.
func (m *Metrics) RecordStatement(lines int) {
	m.StatementsPrinted.Inc()
	m.StatementLines.Observe(float64(lines))
}
