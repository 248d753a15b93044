package domain

import (
	"testing"
	"time"
)

func TestTransaction_StatementLine(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "deposit",
			tx:   Transaction{Date: date(2012, 1, 10), Amount: 1000, BalanceAfter: 1000},
			want: "10/01/2012 || 1000 || 1000",
		},
		{
			name: "withdrawal keeps the sign",
			tx:   Transaction{Date: date(2012, 1, 14), Amount: -500, BalanceAfter: 2500},
			want: "14/01/2012 || -500 || 2500",
		},
		{
			name: "sequence is not rendered",
			tx:   Transaction{Date: date(2025, 12, 1), Amount: 5, BalanceAfter: 0, Sequence: 99},
			want: "01/12/2025 || 5 || 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tx.StatementLine(); got != tt.want {
				t.Errorf("StatementLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransaction_Kind(t *testing.T) {
	if k := (Transaction{Amount: 10}).Kind(); k != KindDeposit {
		t.Errorf("expected deposit, got %s", k)
	}
	if k := (Transaction{Amount: -10}).Kind(); k != KindWithdrawal {
		t.Errorf("expected withdrawal, got %s", k)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2012, 1, 10, 23, 59, 59, 0, loc)

	got := DateOf(in)
	if !got.Equal(date(2012, 1, 10)) {
		t.Errorf("DateOf() = %s, want 2012-01-10", got)
	}
}
