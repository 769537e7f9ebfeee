package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryKV_GetMissingKey(t *testing.T) {
	kv := NewMemoryKV()

	_, err := kv.Get(context.Background(), KeyProducts)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryKV_SetThenGet(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	value := []byte(`[{"id":"1"}]`)
	if err := kv.Set(ctx, KeyOrders, value); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := kv.Get(ctx, KeyOrders)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("Get = %q, want %q", got, value)
	}
}

func TestMemoryKV_Overwrite(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, KeyProducts, []byte("old")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, KeyProducts, []byte("new")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := kv.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("Get = %q, want %q", got, "new")
	}
}

func TestMemoryKV_GetReturnsCopy(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if err := kv.Set(ctx, KeyProducts, []byte("value")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := kv.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got[0] = 'X'

	again, err := kv.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != "value" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
