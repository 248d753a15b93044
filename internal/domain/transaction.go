package domain

import (
	"fmt"
	"time"
)

// StatementDateLayout renders dates as dd/mm/yyyy.
const StatementDateLayout = "02/01/2006"

// TransactionKind tells deposits and withdrawals apart.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Transaction is a posted ledger entry. It is a value type and is never
// modified after it has been appended to a Ledger.
type Transaction struct {
	ID           string
	Date         time.Time
	Amount       int64
	BalanceAfter int64
	// Sequence orders postings within the ledger. It is only used to sort
	// the statement and is never rendered.
	Sequence uint64
}

// Kind reports whether the transaction credited or debited the account.
func (t Transaction) Kind() TransactionKind {
	if t.Amount < 0 {
		return KindWithdrawal
	}
	return KindDeposit
}

// StatementLine formats the transaction as "dd/mm/yyyy || amount || balance".
func (t Transaction) StatementLine() string {
	return fmt.Sprintf("%s || %d || %d", t.Date.Format(StatementDateLayout), t.Amount, t.BalanceAfter)
}

// DateOf strips the time of day from t, keeping the calendar date as seen
// in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
