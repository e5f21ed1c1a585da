package repository

import (
	"context"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// ProductRepository describes persistence operations for catalog products.
// The inventory mutators are the only write paths to product stock and are
// required to be atomic conditional updates.
type ProductRepository interface {
	Search(ctx context.Context, filter model.ProductFilter, sort []model.ProductSort, offset, limit int) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	// DecrementInventory subtracts quantity only when enough stock remains,
	// returning ErrInsufficientStock otherwise.
	DecrementInventory(ctx context.Context, productID int64, quantity int) error
	// IncrementInventory returns previously consumed stock to the product.
	IncrementInventory(ctx context.Context, productID int64, quantity int) error
}
