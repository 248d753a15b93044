package domain

// Ledger holds the balance and the append-only posting history of the
// account. It does not validate anything: callers check amounts and funds
// before appending.
type Ledger struct {
	balance int64
	history []Transaction
}

// NewLedger returns an empty ledger with a zero balance.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append posts tx at the end of the history and moves the balance to
// tx.BalanceAfter.
func (l *Ledger) Append(tx Transaction) {
	l.history = append(l.history, tx)
	l.balance = tx.BalanceAfter
}

// Balance returns the current balance.
func (l *Ledger) Balance() int64 {
	return l.balance
}

// History returns a copy of all postings in the order they were appended.
func (l *Ledger) History() []Transaction {
	out := make([]Transaction, len(l.history))
	copy(out, l.history)
	return out
}

// Len returns the number of postings.
func (l *Ledger) Len() int {
	return len(l.history)
}

// NextSequence returns the sequence number the next posting must carry.
// The counter only advances when a transaction is appended.
func (l *Ledger) NextSequence() uint64 {
	if len(l.history) == 0 {
		return 1
	}
	return l.history[len(l.history)-1].Sequence + 1
}
