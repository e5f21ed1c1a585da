package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

func TestNoopAlwaysMisses(t *testing.T) {
	var c Noop

	if err := c.Set(context.Background(), &model.Product{ID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(context.Background(), 1); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}
	if err := c.Invalidate(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProductKey(t *testing.T) {
	if productKey(42) != "product:42" {
		t.Fatalf("unexpected key %q", productKey(42))
	}
}
