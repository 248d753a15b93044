package script

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/bankstatement/internal/domain"
)

// Account is the part of the account use case a script drives.
type Account interface {
	Deposit(ctx context.Context, amount int64) (*domain.Transaction, error)
	Withdraw(ctx context.Context, amount int64) (*domain.Transaction, error)
	PrintStatement(ctx context.Context) error
}

// DateSetter moves the clock the account stamps postings with.
type DateSetter interface {
	Set(t time.Time)
}

// Summary counts what a run did.
type Summary struct {
	Posted     int
	Rejected   int
	Statements int
}

// Runner replays commands against an account.
type Runner struct {
	account Account
	clock   DateSetter

	// OnError is called for every rejected posting.
	OnError func(cmd Command, err error)
	// FailFast stops the run at the first rejected posting.
	FailFast bool
}

// NewRunner creates a Runner. The account must read its dates from clock.
func NewRunner(account Account, clock DateSetter) *Runner {
	return &Runner{account: account, clock: clock}
}

// Run executes cmds in order. Rejected postings are counted and, with
// FailFast, returned. Statement write errors always abort the run.
func (r *Runner) Run(ctx context.Context, cmds []Command) (Summary, error) {
	var sum Summary

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if cmd.Op == OpPrint {
			if err := r.account.PrintStatement(ctx); err != nil {
				return sum, fmt.Errorf("line %d: %w", cmd.Line, err)
			}
			sum.Statements++
			continue
		}

		r.clock.Set(cmd.Date)

		var err error
		switch cmd.Op {
		case OpDeposit:
			_, err = r.account.Deposit(ctx, cmd.Amount)
		case OpWithdraw:
			_, err = r.account.Withdraw(ctx, cmd.Amount)
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownOp, cmd.Op)
		}

		if err != nil {
			sum.Rejected++
			if r.OnError != nil {
				r.OnError(cmd, err)
			}
			if r.FailFast {
				return sum, fmt.Errorf("line %d: %w", cmd.Line, err)
			}
			continue
		}
		sum.Posted++
	}

	return sum, nil
}
