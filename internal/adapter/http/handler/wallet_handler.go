package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snitin/walletd/internal/adapter/http/dto"
	"github.com/snitin/walletd/internal/domain"
	"github.com/snitin/walletd/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	BalanceOf(ctx context.Context, walletID string) (int64, error)
	Mutate(ctx context.Context, input usecase.MutateInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	ledgerUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledgerUC WalletService) *WalletHandler {
	return &WalletHandler{ledgerUC: ledgerUC}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.ledgerUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")

	wallet, err := h.ledgerUC.GetWallet(r.Context(), walletID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// GetBalance retrieves the current balance of a wallet.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")

	balance, err := h.ledgerUC.BalanceOf(r.Context(), walletID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		WalletID: walletID,
		Balance:  balance,
	})
}

// Deposit credits an amount to a wallet.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.TransactionDeposit)
}

// Withdraw debits an amount from a wallet.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.TransactionWithdraw)
}

func (h *WalletHandler) mutate(w http.ResponseWriter, r *http.Request, txType domain.TransactionType) {
	walletID := chi.URLParam(r, "walletID")

	var req dto.MutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.ledgerUC.Mutate(r.Context(), usecase.MutateInput{
		WalletID: walletID,
		Type:     txType,
		Amount:   req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply "+string(txType), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListTransactions lists a wallet's transactions, newest first.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")
	limit := parseIntQuery(r, "limit", usecase.DefaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		WalletID: walletID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Limit:        limit,
		Offset:       offset,
	})
}
