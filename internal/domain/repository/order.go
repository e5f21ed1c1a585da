package repository

import (
	"context"
	"time"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// OrderRepository describes persistence operations for orders and their
// line snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, offset, limit int) ([]model.Order, int64, error)
	// SelectStalePending returns pending orders with an open payment session
	// that have not been updated since the cutoff.
	SelectStalePending(ctx context.Context, updatedBefore time.Time, limit int) ([]model.Order, error)
	// TransitionStatus applies from->to as a compare-and-swap on the current
	// status, optionally recording the external payment reference. A missed
	// swap returns ErrConflict.
	TransitionStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, paymentRef *string) error
	// SetClientSecret records the payment session secret once.
	SetClientSecret(ctx context.Context, orderID int64, secret string) error
}
