package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/bankstatement/internal/adapter/http/dto"
	"github.com/iho/bankstatement/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Deposit(ctx context.Context, amount int64) (*domain.Transaction, error)
	Withdraw(ctx context.Context, amount int64) (*domain.Transaction, error)
	Balance(ctx context.Context) int64
	Transactions(ctx context.Context) []domain.Transaction
	Statement(ctx context.Context) []string
	CheckConsistency(ctx context.Context) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get returns the balance and the number of postings.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, dto.AccountResponse{
		Balance:      h.accountUC.Balance(ctx),
		Transactions: len(h.accountUC.Transactions(ctx)),
	})
}

// Deposit posts a deposit.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.accountUC.Deposit(r.Context(), req.Amount)
	if err != nil {
		writeDomainError(w, "failed to deposit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// Withdraw posts a withdrawal.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.AmountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.accountUC.Withdraw(r.Context(), req.Amount)
	if err != nil {
		writeDomainError(w, "failed to withdraw", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// ListTransactions lists postings, most recent first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := h.accountUC.Transactions(r.Context())

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Total:        int64(len(txs)),
	})
}

// Statement renders the printable statement as plain text.
func (h *AccountHandler) Statement(w http.ResponseWriter, r *http.Request) {
	lines := h.accountUC.Statement(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(strings.Join(lines, "\n") + "\n"))
}

// Consistency replays the ledger and reports whether it adds up.
func (h *AccountHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.CheckConsistency(r.Context()); err != nil {
		writeJSON(w, http.StatusConflict, dto.ConsistencyResponse{
			Consistent: false,
			Status:     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyResponse{
		Consistent: true,
		Status:     "ok",
	})
}
