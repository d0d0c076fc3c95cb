package storage

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "token", "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "token")
	if err != nil || !ok || value != "abc" {
		t.Fatalf("expected stored value, got %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Set(ctx, "token", "def"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = store.Get(ctx, "token")
	if value != "def" {
		t.Fatalf("expected overwritten value, got %q", value)
	}

	if err := store.Remove(ctx, "token"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "token"); ok {
		t.Fatal("expected key removed")
	}

	// Removing a missing key is not an error.
	if err := store.Remove(ctx, "token"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}
