package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Placeholder stored while the first request with a key is still in flight.
// Replays that race the original see the claim and are told to retry.
const inFlightMarker = "__in_flight__"

// IdempotencyStore implements usecase.IdempotencyStore using Redis. Keys are
// claimed with SETNX so concurrent replays of the same mutation resolve to a
// single winner.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "walletd:idem:",
	}
}

func (s *IdempotencyStore) key(key string) string {
	return s.prefix + key
}

// CheckAndSet claims the key if it is unseen and reports whether a prior
// request already holds it. When the key exists, the stored response is
// returned; a nil response with seen=true means the original request has not
// finished yet.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.key(key)

	value := any(inFlightMarker)
	if response != nil {
		value = response
	}

	claimed, err := s.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("claim idempotency key: %w", err)
	}
	if claimed {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		// The holder's TTL may expire between SETNX and GET; treat that
		// as an unfinished original rather than failing the request.
		if errors.Is(err, redis.Nil) {
			return true, nil, nil
		}

		return false, nil, fmt.Errorf("read idempotency key: %w", err)
	}

	if string(existing) == inFlightMarker {
		return true, nil, nil
	}

	return true, existing, nil
}

// Update replaces the in-flight marker with the final response so later
// replays receive the recorded outcome.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), response, ttl).Err(); err != nil {
		return fmt.Errorf("store idempotency response: %w", err)
	}

	return nil
}

// Delete releases a claimed key. Used when the original request fails and
// the client should be free to retry under the same key.
func (s *IdempotencyStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}

	return nil
}
