package dto

import (
	"github.com/snitin/walletd/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	WalletID       string `json:"wallet_id"`
	Owner          string `json:"owner"`
	InitialBalance int64  `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		WalletID:       r.WalletID,
		Owner:          r.Owner,
		InitialBalance: r.InitialBalance,
	}
}

// MutateRequest represents a deposit or withdrawal request. The transaction
// type comes from the route, not the body.
type MutateRequest struct {
	Amount int64 `json:"amount"`
}
