package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Mutation errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrVersionConflict        = errors.New("wallet version conflict")
	ErrConcurrentUpdate       = errors.New("concurrent update conflict")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
)
