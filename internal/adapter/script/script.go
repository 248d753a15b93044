// Package script replays plain-text transaction scripts against an account.
//
// Each non-blank line is one command:
//
//	# comments start with a hash
//	2012-01-10 deposit 1000
//	2012-01-14 withdraw 500
//	print
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankstatement/internal/domain"
)

// Op is a script operation.
type Op string

const (
	OpDeposit  Op = "deposit"
	OpWithdraw Op = "withdraw"
	OpPrint    Op = "print"
)

var (
	ErrUnknownOp        = errors.New("unknown operation")
	ErrMalformedCommand = errors.New("malformed command")
	ErrNonIntegerAmount = errors.New("amount must be a whole number")
	ErrAmountOutOfRange = errors.New("amount out of range")
)

var maxAmount = decimal.NewFromInt(math.MaxInt64)
var minAmount = decimal.NewFromInt(math.MinInt64)

// Command is one parsed script line.
type Command struct {
	Line   int
	Op     Op
	Date   time.Time
	Amount int64
}

// ParseError reports which line of a script could not be parsed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a whole script. It stops at the first malformed line.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		cmd, err := parseLine(text)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return cmds, nil
}

func parseLine(text string) (Command, error) {
	fields := strings.Fields(text)

	if len(fields) == 1 && Op(strings.ToLower(fields[0])) == OpPrint {
		return Command{Op: OpPrint}, nil
	}
	if len(fields) != 3 {
		return Command{}, fmt.Errorf("%w: %q", ErrMalformedCommand, text)
	}

	date, err := domain.ParseDate(fields[0])
	if err != nil {
		return Command{}, err
	}

	op := Op(strings.ToLower(fields[1]))
	if op != OpDeposit && op != OpWithdraw {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownOp, fields[1])
	}

	amount, err := ParseAmount(fields[2])
	if err != nil {
		return Command{}, err
	}

	return Command{Op: op, Date: date, Amount: amount}, nil
}

// ParseAmount parses a whole-number amount. Zero and negative amounts are
// accepted here and rejected when posted. Exponent notation is malformed.
func ParseAmount(s string) (int64, error) {
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCommand, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCommand, s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrNonIntegerAmount, s)
	}
	if d.GreaterThan(maxAmount) || d.LessThan(minAmount) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, s)
	}
	return d.IntPart(), nil
}
