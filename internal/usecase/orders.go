package usecase

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// OrderQueryUseCase serves the read side of the order pipeline.
type OrderQueryUseCase struct {
	orders repository.OrderRepository
}

// NewOrderQueryUseCase constructs OrderQueryUseCase.
func NewOrderQueryUseCase(orders repository.OrderRepository) *OrderQueryUseCase {
	return &OrderQueryUseCase{orders: orders}
}

// Get returns a single order visible to the caller. Orders of other users
// are reported as not found rather than forbidden.
func (u *OrderQueryUseCase) Get(ctx context.Context, userID int64, admin bool, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !admin {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the caller's orders, newest first.
func (u *OrderQueryUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// StaleForConfirmation returns pending orders whose payment session has
// been open longer than the given age.
func (u *OrderQueryUseCase) StaleForConfirmation(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, time.Now().Add(-olderThan), limit)
}

// List returns a paginated listing of all orders for administrators.
func (u *OrderQueryUseCase) List(ctx context.Context, page, limit int) (*model.OrderPage, error) {
	if page < 1 || limit < 1 {
		return nil, fmt.Errorf("%w: invalid page or limit value", domainErrors.ErrValidation)
	}

	orders, total, err := u.orders.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.OrderPage{
		Orders:      orders,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasMore:     page < totalPages,
	}, nil
}
