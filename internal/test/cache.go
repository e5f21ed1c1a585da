package test

import (
	"context"

	"github.com/elijahkelechi/Beautytrendy-API/internal/cache"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// ProductCacheStub stores product snapshots in-memory and tracks calls.
type ProductCacheStub struct {
	GetFn        func(context.Context, int64) (*model.Product, error)
	SetFn        func(context.Context, *model.Product) error
	InvalidateFn func(context.Context, int64) error

	Entries     map[int64]*model.Product
	Invalidated []int64
}

// NewProductCacheStub constructs stub cache with initialized map.
func NewProductCacheStub() *ProductCacheStub {
	return &ProductCacheStub{Entries: make(map[int64]*model.Product)}
}

// Get returns cached product or a miss.
func (s *ProductCacheStub) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if p, ok := s.Entries[id]; ok {
		return p, nil
	}
	return nil, cache.ErrCacheMiss
}

// Set stores the snapshot.
func (s *ProductCacheStub) Set(ctx context.Context, product *model.Product) error {
	if s.SetFn != nil {
		return s.SetFn(ctx, product)
	}
	if s.Entries == nil {
		s.Entries = make(map[int64]*model.Product)
	}
	s.Entries[product.ID] = product
	return nil
}

// Invalidate drops the snapshot and records the call.
func (s *ProductCacheStub) Invalidate(ctx context.Context, id int64) error {
	s.Invalidated = append(s.Invalidated, id)
	if s.InvalidateFn != nil {
		return s.InvalidateFn(ctx, id)
	}
	delete(s.Entries, id)
	return nil
}

var _ cache.ProductCache = (*ProductCacheStub)(nil)
