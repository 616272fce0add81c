package domain

import (
	"time"
)

// TransactionType is the direction of a balance mutation.
type TransactionType string

const (
	TransactionDeposit  TransactionType = "DEPOSIT"
	TransactionWithdraw TransactionType = "WITHDRAW"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdraw
}

// Transaction is an immutable record of a single wallet mutation.
// BalanceAfter is a denormalized snapshot of the wallet balance taken in the
// same database transaction that committed the mutation, so the per-wallet
// transaction log always replays to the current balance.
type Transaction struct {
	ID           string
	WalletID     string
	Type         TransactionType
	Amount       int64
	BalanceAfter int64
	CreatedAt    time.Time
}

// Validate checks transaction invariants before persistence.
func (t *Transaction) Validate() error {
	if t.WalletID == "" {
		return ErrInvalidWalletID
	}
	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if t.BalanceAfter < 0 {
		return ErrInsufficientBalance
	}
	return nil
}
