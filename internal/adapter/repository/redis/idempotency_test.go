package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_ClaimsNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	seen, resp, err := store.CheckAndSet(ctx, "dep-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if seen || resp != nil {
		t.Fatalf("expected fresh claim, got seen=%v resp=%s", seen, resp)
	}

	val, err := client.Get(ctx, store.key("dep-1")).Result()
	if err != nil || val != inFlightMarker {
		t.Fatalf("expected in-flight marker, got val=%q err=%v", val, err)
	}
}

func TestIdempotencyStore_ReplaySeesRecordedResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "dep-2", nil, time.Minute); err != nil {
		t.Fatalf("first CheckAndSet failed: %v", err)
	}
	if err := store.Update(ctx, "dep-2", []byte(`{"balance":150}`), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "dep-2", nil, time.Minute)
	if err != nil {
		t.Fatalf("replay CheckAndSet failed: %v", err)
	}
	if !seen || string(resp) != `{"balance":150}` {
		t.Fatalf("expected recorded response, got seen=%v resp=%s", seen, resp)
	}
}

func TestIdempotencyStore_ReplayWhileInFlight(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "dep-3", nil, time.Minute); err != nil {
		t.Fatalf("first CheckAndSet failed: %v", err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "dep-3", nil, time.Minute)
	if err != nil {
		t.Fatalf("replay CheckAndSet failed: %v", err)
	}
	if !seen || resp != nil {
		t.Fatalf("expected in-flight replay, got seen=%v resp=%s", seen, resp)
	}
}

func TestIdempotencyStore_DeleteAllowsReclaim(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "dep-4", nil, time.Minute); err != nil {
		t.Fatalf("first CheckAndSet failed: %v", err)
	}
	if err := store.Delete(ctx, "dep-4"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	seen, resp, err := store.CheckAndSet(ctx, "dep-4", nil, time.Minute)
	if err != nil {
		t.Fatalf("reclaim CheckAndSet failed: %v", err)
	}
	if seen || resp != nil {
		t.Fatalf("expected a fresh claim after delete, got seen=%v resp=%s", seen, resp)
	}
}
