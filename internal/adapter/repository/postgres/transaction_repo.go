package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snitin/walletd/internal/domain"
	"github.com/snitin/walletd/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Rows are
// append-only; there is no update or delete path.
type TransactionRepository struct {
	pool Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction record. It runs on the caller's database
// transaction so the append commits atomically with the balance update.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `INSERT INTO transactions (id, wallet_id, type, amount, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID, txn.WalletID, string(txn.Type), txn.Amount, txn.BalanceAfter, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT id, wallet_id, type, amount, balance_after, created_at
		FROM transactions WHERE id = $1`

	txn := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&txn.ID, &txn.WalletID, &txn.Type, &txn.Amount, &txn.BalanceAfter, &txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return txn, nil
}

// ListByWallet lists a wallet's transactions, newest first.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `SELECT id, wallet_id, type, amount, balance_after, created_at
		FROM transactions WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*domain.Transaction

	for rows.Next() {
		txn := &domain.Transaction{}
		if err := rows.Scan(&txn.ID, &txn.WalletID, &txn.Type, &txn.Amount, &txn.BalanceAfter, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txns, nil
}
