package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/snitin/walletd/internal/domain"
)

// LedgerUseCase serializes concurrent deposit/withdraw requests against a
// wallet through an optimistic read-validate-write loop. The wallet version
// is the fencing token: the balance write is conditional on the version read,
// and the transaction record is appended in the same database transaction so
// the two are durable as one atomic unit.
type LedgerUseCase struct {
	txManager       TransactionManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	txnCache        TransactionCache
	metrics         MetricsRecorder
	maxAttempts     int
}

// NewLedgerUseCase creates a new LedgerUseCase. maxAttempts <= 0 falls back
// to DefaultMutateAttempts.
func NewLedgerUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
	maxAttempts int,
) *LedgerUseCase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMutateAttempts
	}

	return &LedgerUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		maxAttempts:     maxAttempts,
	}
}

// WithTransactionCache attaches an optional read-through cache for
// transaction lookups. Records are immutable, so cache hits are always
// current.
func (uc *LedgerUseCase) WithTransactionCache(cache TransactionCache) *LedgerUseCase {
	uc.txnCache = cache
	return uc
}

// WithMetrics attaches an optional recorder for engine outcomes.
func (uc *LedgerUseCase) WithMetrics(rec MetricsRecorder) *LedgerUseCase {
	uc.metrics = rec
	return uc
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	WalletID       string
	Owner          string
	InitialBalance int64
}

// CreateWallet creates a new wallet with version 0. The explicit existence
// check gives callers a typed error on the common path; the unique constraint
// on wallet_id is the backstop when two creations race.
func (uc *LedgerUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := domain.ValidateWalletID(input.WalletID); err != nil {
		return nil, err
	}

	if err := domain.ValidateOwner(input.Owner); err != nil {
		return nil, err
	}

	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	_, err := uc.walletRepo.GetByWalletID(ctx, input.WalletID)
	if err == nil {
		return nil, domain.ErrWalletAlreadyExists
	}

	if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}

	now := time.Now().UTC()

	wallet := &domain.Wallet{
		WalletID:  input.WalletID,
		Owner:     input.Owner,
		Balance:   input.InitialBalance,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.Insert(ctx, wallet); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WalletCreated()
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by its external identifier.
func (uc *LedgerUseCase) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	return uc.walletRepo.GetByWalletID(ctx, walletID)
}

// BalanceOf returns the current balance of a wallet.
func (uc *LedgerUseCase) BalanceOf(ctx context.Context, walletID string) (int64, error) {
	wallet, err := uc.walletRepo.GetByWalletID(ctx, walletID)
	if err != nil {
		return 0, err
	}

	return wallet.Balance, nil
}

// MutateInput represents input for a deposit or withdraw.
type MutateInput struct {
	WalletID string
	Type     domain.TransactionType
	Amount   int64
}

// Mutate applies a deposit or withdraw to a wallet and returns the persisted
// transaction record. On a version conflict the whole read-validate-write
// sequence is retried with backoff up to maxAttempts times; exhausting the
// budget returns domain.ErrConcurrentUpdate. No state change survives any
// failure path.
func (uc *LedgerUseCase) Mutate(ctx context.Context, input MutateInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval

	var (
		txn      *domain.Transaction
		attempts int
	)

	err := backoff.Retry(func() error {
		attempts++

		result, err := uc.mutateOnce(ctx, input)
		if err != nil {
			if errors.Is(err, domain.ErrVersionConflict) && attempts < uc.maxAttempts {
				if uc.metrics != nil {
					uc.metrics.MutationRetried()
				}

				return err
			}

			return backoff.Permanent(err)
		}

		txn = result

		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			err = domain.ErrConcurrentUpdate
		}

		if uc.metrics != nil {
			uc.metrics.MutationFailed(string(input.Type), mutationFailureStatus(err))
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MutationApplied(string(input.Type))
	}

	return txn, nil
}

// mutationFailureStatus buckets mutation errors into low-cardinality metric
// labels.
func mutationFailureStatus(err error) string {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return "wallet_not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "concurrent_update"
	default:
		return "error"
	}
}

// mutateOnce runs a single read-validate-write attempt.
func (uc *LedgerUseCase) mutateOnce(ctx context.Context, input MutateInput) (*domain.Transaction, error) {
	wallet, err := uc.walletRepo.GetByWalletID(ctx, input.WalletID)
	if err != nil {
		return nil, err
	}

	var balanceAfter int64

	switch input.Type {
	case domain.TransactionDeposit:
		balanceAfter = wallet.ApplyDeposit(input.Amount)
	case domain.TransactionWithdraw:
		if err := wallet.ValidateWithdraw(input.Amount); err != nil {
			return nil, err
		}

		balanceAfter = wallet.ApplyWithdraw(input.Amount)
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		WalletID:     wallet.WalletID,
		Type:         input.Type,
		Amount:       input.Amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The version guard is the concurrency fence: zero rows affected means
	// another mutation committed since the read above.
	err = uc.walletRepo.ConditionalUpdateBalance(ctx, tx, wallet.WalletID, wallet.Version, balanceAfter, now)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a transaction by ID, consulting the cache first
// when one is configured. Cache failures fall through to the repository.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	if uc.txnCache != nil {
		if cached, err := uc.txnCache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.txnCache != nil {
		// Best effort; a failed cache write must not fail the lookup.
		_ = uc.txnCache.Set(ctx, txn)
	}

	return txn, nil
}

// ListTransactionsInput represents input for listing wallet transactions.
type ListTransactionsInput struct {
	WalletID string
	Limit    int
	Offset   int
}

// ListTransactions lists a wallet's transactions, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.walletRepo.GetByWalletID(ctx, input.WalletID); err != nil {
		return nil, err
	}

	if input.Limit <= 0 {
		input.Limit = DefaultListLimit
	}

	if input.Limit > MaxListLimit {
		input.Limit = MaxListLimit
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.transactionRepo.ListByWallet(ctx, input.WalletID, input.Limit, input.Offset)
}
