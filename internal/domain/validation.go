package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors
var (
	ErrInvalidWalletID = errors.New("invalid wallet id")
	ErrInvalidOwner    = errors.New("invalid owner")
	ErrNegativeBalance = errors.New("initial balance cannot be negative")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxWalletIDLength = 64
	MaxOwnerLength    = 255

	// MaxTransactionAmount bounds a single mutation so a malformed request
	// cannot overflow int64 arithmetic on the balance.
	MaxTransactionAmount = int64(1_000_000_000_000)
)

var walletIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateWalletID validates a caller-supplied wallet identifier.
func ValidateWalletID(walletID string) error {
	if walletID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidWalletID)
	}

	if len(walletID) > MaxWalletIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidWalletID, MaxWalletIDLength)
	}

	if !walletIDRegex.MatchString(walletID) {
		return fmt.Errorf("%w: id contains forbidden characters", ErrInvalidWalletID)
	}

	return nil
}

// ValidateOwner validates the wallet owner display name.
func ValidateOwner(owner string) error {
	owner = strings.TrimSpace(owner)

	if owner == "" {
		return fmt.Errorf("%w: owner cannot be empty", ErrInvalidOwner)
	}

	if len(owner) > MaxOwnerLength {
		return fmt.Errorf("%w: owner exceeds %d characters", ErrInvalidOwner, MaxOwnerLength)
	}

	return nil
}

// ValidateAmount validates a mutation amount.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	if amount > MaxTransactionAmount {
		return fmt.Errorf("%w: maximum amount is %d", ErrAmountTooLarge, MaxTransactionAmount)
	}

	return nil
}

// ValidateInitialBalance validates the opening balance of a new wallet.
func ValidateInitialBalance(balance int64) error {
	if balance < 0 {
		return ErrNegativeBalance
	}

	return nil
}
