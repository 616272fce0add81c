package usecase

import "time"

const (
	// DefaultMutateAttempts bounds the optimistic retry loop so sustained
	// contention surfaces as domain.ErrConcurrentUpdate instead of spinning.
	DefaultMutateAttempts = 5

	// Backoff between retry attempts after a version conflict.
	retryInitialInterval = 10 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond

	// Pagination bounds for transaction listings.
	DefaultListLimit = 20
	MaxListLimit     = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
