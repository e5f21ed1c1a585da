package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// OrderLifecycleUseCase owns status transitions. Every transition is a
// compare-and-swap on the stored status, so duplicate or out-of-order
// confirmation delivery degrades to a reported no-op.
type OrderLifecycleUseCase struct {
	orders    repository.OrderRepository
	inventory *InventoryReconciler
	logger    *slog.Logger
}

// NewOrderLifecycleUseCase constructs OrderLifecycleUseCase.
func NewOrderLifecycleUseCase(orders repository.OrderRepository, inventory *InventoryReconciler, logger *slog.Logger) *OrderLifecycleUseCase {
	return &OrderLifecycleUseCase{orders: orders, inventory: inventory, logger: logger}
}

// Confirm applies a payment confirmation signal to the order.
//
// On success stock is consumed before the status swap; when the swap is
// lost to a concurrent delivery the decrements are compensated, so one
// order can never consume stock twice. Returns the resulting status, or
// ErrConflict when the signal had already been applied.
func (u *OrderLifecycleUseCase) Confirm(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error) {
	if !outcome.Terminal() {
		return "", fmt.Errorf("%w: outcome %q is not terminal", domainErrors.ErrValidation, outcome)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Status != model.OrderStatusPending {
		return order.Status, domainErrors.ErrConflict
	}

	var ref *string
	if intentID != "" {
		ref = &intentID
	}

	if outcome != model.PaymentOutcomeSucceeded {
		if err := u.orders.TransitionStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusFailed, ref); err != nil {
			return u.settle(ctx, orderID, err)
		}
		return model.OrderStatusFailed, nil
	}

	if err := u.inventory.Commit(ctx, order.Items); err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientStock) {
			if terr := u.orders.TransitionStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusFailed, ref); terr != nil {
				return u.settle(ctx, orderID, terr)
			}
			return model.OrderStatusFailed, domainErrors.ErrInsufficientStock
		}
		// Order stays pending; the confirmation may be retried safely.
		return "", err
	}

	if err := u.orders.TransitionStatus(ctx, orderID, model.OrderStatusPending, model.OrderStatusPaid, ref); err != nil {
		u.inventory.Release(ctx, order.Items)
		return u.settle(ctx, orderID, err)
	}
	return model.OrderStatusPaid, nil
}

// settle resolves a lost status swap into the freshest known status.
func (u *OrderLifecycleUseCase) settle(ctx context.Context, orderID int64, cause error) (model.OrderStatus, error) {
	if !errors.Is(cause, domainErrors.ErrConflict) {
		return "", cause
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", domainErrors.ErrConflict
	}
	return order.Status, domainErrors.ErrConflict
}

// UpdateStatus applies a user- or admin-driven transition (cancellation
// or delivery). Illegal transitions are rejected as conflicts, never
// silently overwritten.
func (u *OrderLifecycleUseCase) UpdateStatus(ctx context.Context, userID int64, admin bool, orderID int64, to model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(to) {
		return nil, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, to)
	}
	if to != model.OrderStatusCanceled && to != model.OrderStatusDelivered {
		return nil, fmt.Errorf("%w: status %q is driven by payment confirmation", domainErrors.ErrValidation, to)
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !admin {
		return nil, domainErrors.ErrNotFound
	}

	from := order.Status
	if !model.CanTransition(from, to) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", domainErrors.ErrConflict, from, to)
	}

	if err := u.orders.TransitionStatus(ctx, orderID, from, to, nil); err != nil {
		return nil, err
	}

	if from == model.OrderStatusPaid && to == model.OrderStatusCanceled {
		// The swap was won exactly once, so the restore happens exactly once.
		u.inventory.Release(ctx, order.Items)
	}

	order.Status = to
	return order, nil
}
