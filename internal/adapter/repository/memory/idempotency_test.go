package memory

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_CheckAndSetExisting(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	if err := store.Update(ctx, "key", []byte("cached"), time.Minute); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if !exists || string(resp) != "cached" {
		t.Fatalf("expected existing cached response, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_CheckAndSetLocksNewKey(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("unexpected result: exists=%v resp=%v err=%v", exists, resp, err)
	}

	exists, resp, err = store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || !exists || string(resp) != "processing" {
		t.Fatalf("expected placeholder lock, got exists=%v resp=%s err=%v", exists, resp, err)
	}
}

func TestIdempotencyStore_Expiry(t *testing.T) {
	store := NewIdempotencyStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "k", []byte("done"), time.Minute); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	now = now.Add(2 * time.Minute)
	exists, _, err := store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected expired key to be free, got exists=%v err=%v", exists, err)
	}
}

func TestIdempotencyStore_Sweep(t *testing.T) {
	store := NewIdempotencyStore()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Update(ctx, "short", []byte("a"), time.Second)
	_ = store.Update(ctx, "long", []byte("b"), time.Hour)

	now = now.Add(time.Minute)
	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removed key, got %d", removed)
	}

	if exists, _, _ := store.CheckAndSet(ctx, "long", nil, time.Hour); !exists {
		t.Fatal("expected long-lived key to survive sweep")
	}
}

func TestIdempotencyStore_Delete(t *testing.T) {
	store := NewIdempotencyStore()
	ctx := context.Background()

	_, _, _ = store.CheckAndSet(ctx, "k", nil, time.Minute)
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if exists, _, _ := store.CheckAndSet(ctx, "k", nil, time.Minute); exists {
		t.Fatal("expected deleted key to be free")
	}
}
