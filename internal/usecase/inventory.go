package usecase

import (
	"context"
	"log/slog"

	"github.com/elijahkelechi/Beautytrendy-API/internal/cache"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// InventoryReconciler performs all-or-nothing stock adjustment for an
// order. Decrements are applied per line via atomic conditional updates;
// when one line fails, every prior decrement of the same attempt is
// compensated.
type InventoryReconciler struct {
	products repository.ProductRepository
	cache    cache.ProductCache
	logger   *slog.Logger
}

// NewInventoryReconciler constructs InventoryReconciler.
func NewInventoryReconciler(products repository.ProductRepository, productCache cache.ProductCache, logger *slog.Logger) *InventoryReconciler {
	return &InventoryReconciler{products: products, cache: productCache, logger: logger}
}

// Commit consumes stock for every line of the order. On failure, stock
// taken by earlier lines is returned before the error surfaces.
func (r *InventoryReconciler) Commit(ctx context.Context, items []model.OrderItem) error {
	for i, item := range items {
		if err := r.products.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			r.Release(ctx, items[:i])
			r.invalidate(ctx, item.ProductID)
			return err
		}
	}
	for _, item := range items {
		r.invalidate(ctx, item.ProductID)
	}
	return nil
}

// Release returns previously consumed stock for every line. Stock is
// always restorable since it was only ever taken from this order.
func (r *InventoryReconciler) Release(ctx context.Context, items []model.OrderItem) {
	for _, item := range items {
		if err := r.products.IncrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			r.logger.Error("inventory release failed",
				slog.Int64("product_id", item.ProductID),
				slog.Int("quantity", item.Quantity),
				slog.String("error", err.Error()),
			)
			continue
		}
		r.invalidate(ctx, item.ProductID)
	}
}

func (r *InventoryReconciler) invalidate(ctx context.Context, productID int64) {
	if err := r.cache.Invalidate(ctx, productID); err != nil {
		r.logger.Warn("product cache invalidation failed",
			slog.Int64("product_id", productID), slog.String("error", err.Error()))
	}
}
