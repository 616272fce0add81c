package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snitin/walletd/internal/domain"
	"github.com/snitin/walletd/internal/usecase"
)

func newTestWallet() *domain.Wallet {
	now := time.Now().UTC().Truncate(time.Microsecond)

	return &domain.Wallet{
		WalletID:  "snitin6528",
		Owner:     "Nitin",
		Balance:   100,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func walletColumns() []string {
	return []string{"wallet_id", "owner", "balance", "version", "created_at", "updated_at"}
}

func walletRow(w *domain.Wallet) *pgxmock.Rows {
	return pgxmock.NewRows(walletColumns()).AddRow(
		w.WalletID, w.Owner, w.Balance, w.Version, w.CreatedAt, w.UpdatedAt,
	)
}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()

	pool.ExpectBegin()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	require.NoError(t, err)

	return tx
}

func TestWalletRepository_Insert(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	w := newTestWallet()

	mockPool.ExpectExec("INSERT INTO wallets").
		WithArgs(w.WalletID, w.Owner, w.Balance, w.Version, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), w)
	assert.NoError(t, err)
	assertExpectations(t, mockPool)
}

func TestWalletRepository_Insert_UniqueViolation(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	w := newTestWallet()

	mockPool.ExpectExec("INSERT INTO wallets").
		WithArgs(w.WalletID, w.Owner, w.Balance, w.Version, w.CreatedAt, w.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := repo.Insert(context.Background(), w)
	assert.ErrorIs(t, err, domain.ErrWalletAlreadyExists)
	assertExpectations(t, mockPool)
}

func TestWalletRepository_GetByWalletID(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	w := newTestWallet()

	mockPool.ExpectQuery("SELECT .+ FROM wallets WHERE wallet_id").
		WithArgs(w.WalletID).
		WillReturnRows(walletRow(w))

	got, err := repo.GetByWalletID(context.Background(), w.WalletID)
	require.NoError(t, err)
	assert.Equal(t, w.WalletID, got.WalletID)
	assert.Equal(t, w.Balance, got.Balance)
	assert.Equal(t, w.Version, got.Version)
	assertExpectations(t, mockPool)
}

func TestWalletRepository_GetByWalletID_NotFound(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)

	mockPool.ExpectQuery("SELECT .+ FROM wallets WHERE wallet_id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	_, err := repo.GetByWalletID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assertExpectations(t, mockPool)
}

func TestWalletRepository_ConditionalUpdateBalance(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	now := time.Now().UTC()

	tx := beginTx(t, mockPool)

	mockPool.ExpectExec("UPDATE wallets").
		WithArgs(int64(150), now, "snitin6528", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	err := repo.ConditionalUpdateBalance(context.Background(), tx, "snitin6528", 3, 150, now)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))
	assertExpectations(t, mockPool)
}

func TestWalletRepository_ConditionalUpdateBalance_VersionConflict(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	now := time.Now().UTC()

	tx := beginTx(t, mockPool)

	// Another mutation committed since the read: the guard matches no row.
	mockPool.ExpectExec("UPDATE wallets").
		WithArgs(int64(150), now, "snitin6528", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	err := repo.ConditionalUpdateBalance(context.Background(), tx, "snitin6528", 3, 150, now)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	require.NoError(t, tx.Rollback(context.Background()))
	assertExpectations(t, mockPool)
}

func TestWalletRepository_ConditionalUpdateBalance_ExecError(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewWalletRepository(mockPool)
	now := time.Now().UTC()

	tx := beginTx(t, mockPool)

	execErr := errors.New("connection reset")
	mockPool.ExpectExec("UPDATE wallets").
		WithArgs(int64(150), now, "snitin6528", int64(3)).
		WillReturnError(execErr)

	err := repo.ConditionalUpdateBalance(context.Background(), tx, "snitin6528", 3, 150, now)
	assert.ErrorIs(t, err, execErr)
	assert.NotErrorIs(t, err, domain.ErrVersionConflict)
}
