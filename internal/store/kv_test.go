package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestGet_AbsentKey(t *testing.T) {
	s := createTestStore(t)

	value, found, err := s.Get(context.Background(), "cafe_cart")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("expected found=false for absent key")
	}
	if value != "" {
		t.Errorf("expected empty value for absent key, got %q", value)
	}
}

func TestSet_ThenGet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "cafe_cart", `[{"id":"1","quantity":2}]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, found, err := s.Get(ctx, "cafe_cart")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after Set")
	}
	if value != `[{"id":"1","quantity":2}]` {
		t.Errorf("unexpected value: %q", value)
	}
}

func TestSet_Upsert(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "cafe_orders", "[]"); err != nil {
		t.Fatalf("first Set() failed: %v", err)
	}
	if err := s.Set(ctx, "cafe_orders", `[{"id":"a"}]`); err != nil {
		t.Fatalf("second Set() failed: %v", err)
	}

	value, found, err := s.Get(ctx, "cafe_orders")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("upsert did not replace value: %q", value)
	}

	// Only one row for the key
	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("expected 1 key, got %d: %v", len(keys), keys)
	}
}

func TestSet_EmptyValueDistinctFromAbsent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "cafe_cart", ""); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, found, err := s.Get(ctx, "cafe_cart")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Error("empty value should still be found")
	}
	if value != "" {
		t.Errorf("expected empty value, got %q", value)
	}
}

func TestDelete_AbsentKeyIsNoOp(t *testing.T) {
	s := createTestStore(t)

	if err := s.Delete(context.Background(), "nope"); err != nil {
		t.Errorf("Delete() of absent key failed: %v", err)
	}
}

func TestDelete_RemovesKey(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "cafe_cart", "[]"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Delete(ctx, "cafe_cart"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	_, found, err := s.Get(ctx, "cafe_cart")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("key still present after Delete")
	}
}

func TestKeys_DeterministicOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"cafe_orders", "cafe_cart", "aux"} {
		if err := s.Set(ctx, k, "[]"); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{"aux", "cafe_cart", "cafe_orders"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, expected %q", i, keys[i], want[i])
		}
	}
}

func TestRoundTrip_AcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s1.Set(ctx, "cafe_cart", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	value, found, err := s2.Get(ctx, "cafe_cart")
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if !found || value != `[{"id":"1"}]` {
		t.Errorf("round-trip lost data: found=%v value=%q", found, value)
	}
}
