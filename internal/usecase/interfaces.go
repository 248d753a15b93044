package usecase

import (
	"time"

	"github.com/iho/bankstatement/internal/domain"
)

// LedgerRepository stores the account's postings and balance.
type LedgerRepository interface {
	Append(tx domain.Transaction)
	Balance() int64
	History() []domain.Transaction
	NextSequence() uint64
}

// Clock supplies the calendar date postings are stamped with.
type Clock interface {
	Today() time.Time
}

// StatementWriter receives the rendered statement one line at a time.
type StatementWriter interface {
	WriteLine(line string) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// MetricsRecorder observes account operations.
type MetricsRecorder interface {
	RecordOperation(kind domain.TransactionKind, outcome string)
	RecordPosting(tx domain.Transaction)
	RecordStatement(lines int)
}

// Operation outcomes reported to MetricsRecorder.
const (
	OutcomePosted            = "posted"
	OutcomeInvalidAmount     = "invalid_amount"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeOverflow          = "overflow"
)

type noopRecorder struct{}

func (noopRecorder) RecordOperation(domain.TransactionKind, string) {}
func (noopRecorder) RecordPosting(domain.Transaction)               {}
func (noopRecorder) RecordStatement(int)                            {}
