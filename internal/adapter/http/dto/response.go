package dto

import (
	"github.com/iho/bankstatement/internal/domain"
)

// TransactionResponse represents a posted transaction in API responses.
type TransactionResponse struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Kind         string `json:"kind"`
	Amount       int64  `json:"amount"`
	BalanceAfter int64  `json:"balance_after"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(tx *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           tx.ID,
		Date:         tx.Date.Format(domain.DateLayout),
		Kind:         string(tx.Kind()),
		Amount:       tx.Amount,
		BalanceAfter: tx.BalanceAfter,
	}
}

// TransactionsFromDomain converts domain transactions to responses,
// preserving order.
func TransactionsFromDomain(txs []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i := range txs {
		result[i] = TransactionFromDomain(&txs[i])
	}
	return result
}

// AccountResponse summarises the account.
type AccountResponse struct {
	Balance      int64 `json:"balance"`
	Transactions int   `json:"transactions"`
}

// ListTransactionsResponse lists postings, most recent first.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ConsistencyResponse reports the outcome of a ledger consistency check.
type ConsistencyResponse struct {
	Consistent bool   `json:"consistent"`
	Status     string `json:"status"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Balance   *int64 `json:"balance,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}
