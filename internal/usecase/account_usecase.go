package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/bankstatement/internal/domain"
)

// StatementHeader is the first line of every statement.
const StatementHeader = "Date || Amount || Balance"

// ErrInconsistentLedger is returned when the posted history does not add up
// to the current balance.
var ErrInconsistentLedger = errors.New("ledger is inconsistent")

// AccountUseCase handles deposits, withdrawals and statements for a single
// account.
type AccountUseCase struct {
	// mu serialises validate, compute and append so concurrent callers
	// cannot interleave postings.
	mu sync.Mutex

	ledger  LedgerRepository
	clock   Clock
	writer  StatementWriter
	idGen   IDGenerator
	metrics MetricsRecorder
	logger  zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase. A nil recorder disables
// metrics.
func NewAccountUseCase(
	ledger LedgerRepository,
	clock Clock,
	writer StatementWriter,
	idGen IDGenerator,
	recorder MetricsRecorder,
	logger zerolog.Logger,
) *AccountUseCase {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AccountUseCase{
		ledger:  ledger,
		clock:   clock,
		writer:  writer,
		idGen:   idGen,
		metrics: recorder,
		logger:  logger,
	}
}

// Deposit credits amount to the account and returns the posted transaction.
func (uc *AccountUseCase) Deposit(ctx context.Context, amount int64) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := domain.ValidateAmount(amount); err != nil {
		uc.metrics.RecordOperation(domain.KindDeposit, OutcomeInvalidAmount)
		return nil, err
	}

	balance := uc.ledger.Balance()
	if err := domain.ValidateCredit(balance, amount); err != nil {
		uc.metrics.RecordOperation(domain.KindDeposit, OutcomeOverflow)
		return nil, err
	}

	tx := uc.post(amount, balance+amount)

	uc.log(ctx).Debug().
		Str("id", tx.ID).
		Int64("amount", amount).
		Int64("balance", tx.BalanceAfter).
		Msg("deposit posted")

	return &tx, nil
}

// Withdraw debits amount from the account and returns the posted
// transaction. The amount is checked before the funds.
func (uc *AccountUseCase) Withdraw(ctx context.Context, amount int64) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := domain.ValidateAmount(amount); err != nil {
		uc.metrics.RecordOperation(domain.KindWithdrawal, OutcomeInvalidAmount)
		return nil, err
	}

	balance := uc.ledger.Balance()
	if err := domain.ValidateDebit(balance, amount); err != nil {
		uc.metrics.RecordOperation(domain.KindWithdrawal, OutcomeInsufficientFunds)
		return nil, err
	}

	tx := uc.post(-amount, balance-amount)

	uc.log(ctx).Debug().
		Str("id", tx.ID).
		Int64("amount", amount).
		Int64("balance", tx.BalanceAfter).
		Msg("withdrawal posted")

	return &tx, nil
}

// post appends a validated transaction. Callers must hold mu.
func (uc *AccountUseCase) post(amount, balanceAfter int64) domain.Transaction {
	tx := domain.Transaction{
		ID:           uc.idGen.Generate(),
		Date:         domain.DateOf(uc.clock.Today()),
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Sequence:     uc.ledger.NextSequence(),
	}
	uc.ledger.Append(tx)

	uc.metrics.RecordOperation(tx.Kind(), OutcomePosted)
	uc.metrics.RecordPosting(tx)

	return tx
}

// PrintStatement writes the statement to the configured StatementWriter,
// header first, most recent posting next.
func (uc *AccountUseCase) PrintStatement(ctx context.Context) error {
	lines := uc.Statement(ctx)
	for _, line := range lines {
		if err := uc.writer.WriteLine(line); err != nil {
			return err
		}
	}

	uc.metrics.RecordStatement(len(lines) - 1)

	return nil
}

// Statement renders the statement lines without writing them.
func (uc *AccountUseCase) Statement(ctx context.Context) []string {
	txs := uc.Transactions(ctx)

	lines := make([]string, 0, len(txs)+1)
	lines = append(lines, StatementHeader)
	for _, tx := range txs {
		lines = append(lines, tx.StatementLine())
	}
	return lines
}

// Transactions returns all postings, most recently posted first. Postings
// sharing a date keep their reverse posting order.
func (uc *AccountUseCase) Transactions(ctx context.Context) []domain.Transaction {
	uc.mu.Lock()
	txs := uc.ledger.History()
	uc.mu.Unlock()

	slices.SortFunc(txs, func(a, b domain.Transaction) int {
		switch {
		case a.Sequence > b.Sequence:
			return -1
		case a.Sequence < b.Sequence:
			return 1
		default:
			return 0
		}
	})
	return txs
}

// Balance returns the current balance.
func (uc *AccountUseCase) Balance(ctx context.Context) int64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.ledger.Balance()
}

// CheckConsistency replays the history and verifies that every running
// balance matches, sequences strictly increase and the final balance equals
// the sum of all posted amounts.
func (uc *AccountUseCase) CheckConsistency(ctx context.Context) error {
	uc.mu.Lock()
	balance := uc.ledger.Balance()
	txs := uc.ledger.History()
	uc.mu.Unlock()

	var running int64
	var lastSeq uint64
	for i, tx := range txs {
		if tx.Amount == 0 || tx.Sequence <= lastSeq {
			return ErrInconsistentLedger
		}
		running += tx.Amount
		if running < 0 || tx.BalanceAfter != running {
			uc.log(ctx).Warn().Int("index", i).Msg("running balance mismatch")
			return ErrInconsistentLedger
		}
		lastSeq = tx.Sequence
	}

	if running != balance {
		return ErrInconsistentLedger
	}
	return nil
}

// log prefers a request-scoped logger carried by ctx.
func (uc *AccountUseCase) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &uc.logger
}
