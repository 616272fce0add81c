package domain

import (
	"time"
)

// Wallet represents an account-style balance owned by a single holder.
// WalletID is the caller-supplied external identifier; Balance is the only
// field that changes after creation, and Version is bumped on every
// successful mutation so the storage layer can fence concurrent writers.
type Wallet struct {
	WalletID  string
	Owner     string
	Balance   int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateWithdraw checks if the wallet can be debited by amount without
// going negative.
func (w *Wallet) ValidateWithdraw(amount int64) error {
	if w.Balance-amount < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDeposit returns the balance after crediting amount.
func (w *Wallet) ApplyDeposit(amount int64) int64 {
	return w.Balance + amount
}

// ApplyWithdraw returns the balance after debiting amount.
func (w *Wallet) ApplyWithdraw(amount int64) int64 {
	return w.Balance - amount
}
