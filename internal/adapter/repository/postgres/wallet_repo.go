package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/snitin/walletd/internal/domain"
	"github.com/snitin/walletd/internal/usecase"
)

// PostgreSQL error code for unique constraint violations.
const pgErrUniqueViolation = "23505"

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Insert creates a new wallet row. The unique index on wallet_id is the
// backstop for racing creations; its violation maps to
// domain.ErrWalletAlreadyExists.
func (r *WalletRepository) Insert(ctx context.Context, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (wallet_id, owner, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		wallet.WalletID, wallet.Owner, wallet.Balance, wallet.Version,
		wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrWalletAlreadyExists
		}

		return fmt.Errorf("insert wallet: %w", err)
	}

	return nil
}

// GetByWalletID retrieves a wallet by its external identifier.
func (r *WalletRepository) GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT wallet_id, owner, balance, version, created_at, updated_at
		FROM wallets WHERE wallet_id = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, walletID).Scan(
		&w.WalletID, &w.Owner, &w.Balance, &w.Version, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return w, nil
}

// ConditionalUpdateBalance writes the new balance guarded by the version read
// by the caller. Zero rows affected means another mutation committed in
// between and surfaces as domain.ErrVersionConflict.
func (r *WalletRepository) ConditionalUpdateBalance(ctx context.Context, tx usecase.Transaction, walletID string, expectedVersion, newBalance int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE wallets
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE wallet_id = $3 AND version = $4`

	tag, err := pgxTx.Exec(ctx, query, newBalance, updatedAt, walletID, expectedVersion)
	if err != nil {
		return fmt.Errorf("conditional update balance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}

	return nil
}
