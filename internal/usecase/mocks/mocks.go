package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/snitin/walletd/internal/domain"
	"github.com/snitin/walletd/internal/usecase"
)

// MockWalletRepository is an in-memory implementation of WalletRepository.
// The default behavior mimics a store with an atomic conditional-write
// primitive; individual methods can be overridden per test via the Func
// fields.
type MockWalletRepository struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet

	InsertFunc                   func(ctx context.Context, wallet *domain.Wallet) error
	GetByWalletIDFunc            func(ctx context.Context, walletID string) (*domain.Wallet, error)
	ConditionalUpdateBalanceFunc func(ctx context.Context, tx usecase.Transaction, walletID string, expectedVersion, newBalance int64, updatedAt time.Time) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

func (m *MockWalletRepository) Insert(ctx context.Context, wallet *domain.Wallet) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, wallet)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.wallets[wallet.WalletID]; ok {
		return domain.ErrWalletAlreadyExists
	}

	cp := *wallet
	m.wallets[wallet.WalletID] = &cp

	return nil
}

func (m *MockWalletRepository) GetByWalletID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	if m.GetByWalletIDFunc != nil {
		return m.GetByWalletIDFunc(ctx, walletID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[walletID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}

	cp := *w

	return &cp, nil
}

func (m *MockWalletRepository) ConditionalUpdateBalance(ctx context.Context, tx usecase.Transaction, walletID string, expectedVersion, newBalance int64, updatedAt time.Time) error {
	if m.ConditionalUpdateBalanceFunc != nil {
		return m.ConditionalUpdateBalanceFunc(ctx, tx, walletID, expectedVersion, newBalance, updatedAt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[walletID]
	if !ok {
		return domain.ErrWalletNotFound
	}

	if w.Version != expectedVersion {
		return domain.ErrVersionConflict
	}

	w.Balance = newBalance
	w.Version++
	w.UpdatedAt = updatedAt

	return nil
}

// MockTransactionRepository is an in-memory implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.Mutex
	txns []*domain.Transaction

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByWalletFunc func(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *txn
	m.txns = append(m.txns, &cp)

	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, txn := range m.txns {
		if txn.ID == id {
			cp := *txn
			return &cp, nil
		}
	}

	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByWalletFunc != nil {
		return m.ListByWalletFunc(ctx, walletID, limit, offset)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Transaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		if m.txns[i].WalletID == walletID {
			cp := *m.txns[i]
			result = append(result, &cp)
		}
	}

	if offset >= len(result) {
		return nil, nil
	}

	result = result[offset:]
	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// All returns every stored transaction.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Transaction, len(m.txns))
	copy(result, m.txns)

	return result
}

// MockTx is a no-op database transaction that records its outcome.
type MockTx struct {
	mu         sync.Mutex
	committed  bool
	rolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.committed = true

	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.committed {
		t.rolledBack = true
	}

	return nil
}

func (t *MockTx) Committed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.committed
}

func (t *MockTx) RolledBack() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rolledBack
}

// MockTransactionManager hands out MockTx transactions.
type MockTransactionManager struct {
	mu  sync.Mutex
	txs []*MockTx

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MockTx{}
	m.txs = append(m.txs, tx)

	return tx, nil
}

// Transactions returns every transaction handed out so far.
func (m *MockTransactionManager) Transactions() []*MockTx {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*MockTx, len(m.txs))
	copy(result, m.txs)

	return result
}

// MockIDGenerator generates ULIDs unless overridden.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	return ulid.Make().String()
}

// MockTransactionCache is an in-memory usecase.TransactionCache.
type MockTransactionCache struct {
	mu      sync.Mutex
	records map[string]*domain.Transaction

	GetFunc func(ctx context.Context, id string) (*domain.Transaction, error)
	SetFunc func(ctx context.Context, txn *domain.Transaction) error
}

func NewMockTransactionCache() *MockTransactionCache {
	return &MockTransactionCache{records: make(map[string]*domain.Transaction)}
}

func (m *MockTransactionCache) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	txn, ok := m.records[id]
	if !ok {
		return nil, nil
	}

	copied := *txn

	return &copied, nil
}

func (m *MockTransactionCache) Set(ctx context.Context, txn *domain.Transaction) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, txn)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *txn
	m.records[copied.ID] = &copied

	return nil
}

// Len reports how many records the cache holds.
func (m *MockTransactionCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}
