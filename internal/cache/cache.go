package cache

import (
	"context"
	"errors"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// ErrCacheMiss indicates the requested product snapshot is not cached.
var ErrCacheMiss = errors.New("cache miss")

// ProductCache stores catalog product snapshots for the read side.
type ProductCache interface {
	Get(ctx context.Context, id int64) (*model.Product, error)
	Set(ctx context.Context, product *model.Product) error
	Invalidate(ctx context.Context, id int64) error
}

// Noop satisfies ProductCache without storing anything. It is wired when
// no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, int64) (*model.Product, error) { return nil, ErrCacheMiss }
func (Noop) Set(context.Context, *model.Product) error          { return nil }
func (Noop) Invalidate(context.Context, int64) error            { return nil }
