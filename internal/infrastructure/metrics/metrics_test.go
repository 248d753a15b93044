package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/bankstatement/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.AccountOperations == nil || m.AccountBalance == nil || m.StatementsPrinted == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.RecordStatement(0)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecordPosting(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordPosting(domain.Transaction{Amount: 1000, BalanceAfter: 1000})
	m.RecordPosting(domain.Transaction{Amount: -500, BalanceAfter: 500})

	if got := testutil.ToFloat64(m.PostingsTotal); got != 2 {
		t.Fatalf("expected 2 postings, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountBalance); got != 500 {
		t.Fatalf("expected balance gauge 500, got %v", got)
	}
	if got := testutil.CollectAndCount(m.PostedAmount); got != 2 {
		t.Fatalf("expected one series per kind, got %d", got)
	}
}

func TestRecordOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordOperation(domain.KindWithdrawal, "insufficient_funds")
	m.RecordOperation(domain.KindWithdrawal, "insufficient_funds")
	m.RecordOperation(domain.KindDeposit, "posted")

	if got := testutil.ToFloat64(m.AccountOperations.WithLabelValues("withdrawal", "insufficient_funds")); got != 2 {
		t.Fatalf("expected 2 rejected withdrawals, got %v", got)
	}
	if got := testutil.ToFloat64(m.AccountOperations.WithLabelValues("deposit", "posted")); got != 1 {
		t.Fatalf("expected 1 posted deposit, got %v", got)
	}
}
