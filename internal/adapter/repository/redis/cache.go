package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snitin/walletd/internal/domain"
)

// TransactionCache implements usecase.TransactionCache using Redis.
// Transactions never change once written, so cached records cannot go stale;
// the TTL only bounds memory use.
type TransactionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTransactionCache creates a new TransactionCache.
func NewTransactionCache(client *redis.Client, ttl time.Duration) *TransactionCache {
	return &TransactionCache{
		client: client,
		prefix: "walletd:txn:",
		ttl:    ttl,
	}
}

// Get retrieves a cached transaction. A miss returns (nil, nil).
func (c *TransactionCache) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	raw, err := c.client.Get(ctx, c.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("get cached transaction: %w", err)
	}

	txn := &domain.Transaction{}
	if err := json.Unmarshal(raw, txn); err != nil {
		return nil, fmt.Errorf("decode cached transaction: %w", err)
	}

	return txn, nil
}

// Set stores a transaction record.
func (c *TransactionCache) Set(ctx context.Context, txn *domain.Transaction) error {
	raw, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+txn.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache transaction: %w", err)
	}

	return nil
}
