package usecase

import (
	"context"
	"time"

	"github.com/snitin/walletd/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Insert(ctx context.Context, wallet *domain.Wallet) error
	GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error)
	// ConditionalUpdateBalance writes the new balance and increments the
	// version, but only if the stored version still equals expectedVersion.
	// Returns domain.ErrVersionConflict when another mutation committed since
	// the wallet was read.
	ConditionalUpdateBalance(ctx context.Context, tx Transaction, walletID string, expectedVersion, newBalance int64, updatedAt time.Time) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	// Create appends a transaction record inside the same database
	// transaction as the balance update it describes.
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// TransactionCache is a read-through cache for immutable transaction
// records. Get returns (nil, nil) on a miss.
type TransactionCache interface {
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	Set(ctx context.Context, txn *domain.Transaction) error
}

// MetricsRecorder observes ledger engine outcomes.
type MetricsRecorder interface {
	WalletCreated()
	MutationApplied(txType string)
	MutationFailed(txType, status string)
	MutationRetried()
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a claimed key so the request may be retried.
	Delete(ctx context.Context, key string) error
}
