package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the ISO calendar date layout accepted on input.
const DateLayout = "2006-01-02"

// ValidateAmount checks that amount is strictly positive.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidateCredit checks that crediting amount to balance stays representable.
func ValidateCredit(balance, amount int64) error {
	if amount > math.MaxInt64-balance {
		return fmt.Errorf("%w: balance %d, deposit %d", ErrBalanceOverflow, balance, amount)
	}
	return nil
}

// ValidateDebit checks that debiting amount keeps balance non-negative.
func ValidateDebit(balance, amount int64) error {
	if amount > balance {
		return &InsufficientFundsError{Balance: balance, Requested: amount}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
