package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snitin/walletd/internal/adapter/http/dto"
	"github.com/snitin/walletd/internal/domain"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	ledgerUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC TransactionService) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC}
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	txn, err := h.ledgerUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}
