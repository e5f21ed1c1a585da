package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// CatalogFacadeStub provides controllable behaviour for product endpoints.
type CatalogFacadeStub struct {
	SearchFn  func(context.Context, model.ProductFilter, int, int, string) (*model.ProductPage, error)
	ProductFn func(context.Context, int64) (*model.Product, error)
}

// SearchProducts delegates to the override or returns a single-page result.
func (s CatalogFacadeStub) SearchProducts(ctx context.Context, filter model.ProductFilter, page, limit int, sort string) (*model.ProductPage, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter, page, limit, sort)
	}
	return &model.ProductPage{
		Products:    []model.Product{{ID: 1, Name: "lipstick", Price: 9.99}},
		Total:       1,
		TotalPages:  1,
		CurrentPage: page,
	}, nil
}

// Product returns configured product data.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "lipstick", Price: 9.99}, nil
}

// OrderFacadeStub simulates order operations for HTTP layer tests.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, int64, []model.CartItem, model.ShippingDetails) (*model.Order, error)
	ClientSecretFn func(context.Context, int64, bool, int64) (string, error)
	OrdersFn       func(context.Context, int, int) (*model.OrderPage, error)
	UserOrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn        func(context.Context, int64, bool, int64) (*model.Order, error)
	UpdateFn       func(context.Context, int64, bool, int64, model.OrderStatus) (*model.Order, error)
}

// CreateOrder delegates to override or returns a default pending order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, userID int64, items []model.CartItem, shipping model.ShippingDetails) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, items, shipping)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPending, ClientSecret: "secret"}, nil
}

// OrderClientSecret returns a session secret for the order.
func (s OrderFacadeStub) OrderClientSecret(ctx context.Context, userID int64, admin bool, orderID int64) (string, error) {
	if s.ClientSecretFn != nil {
		return s.ClientSecretFn(ctx, userID, admin, orderID)
	}
	return "secret", nil
}

// Orders returns a paginated administrative listing.
func (s OrderFacadeStub) Orders(ctx context.Context, page, limit int) (*model.OrderPage, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, page, limit)
	}
	return &model.OrderPage{Orders: []model.Order{{ID: 1}}, Total: 1, TotalPages: 1, CurrentPage: page}, nil
}

// UserOrders returns predefined orders for given user.
func (s OrderFacadeStub) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.UserOrdersFn != nil {
		return s.UserOrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

// Order returns configured order data.
func (s OrderFacadeStub) Order(ctx context.Context, userID int64, admin bool, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, admin, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending}, nil
}

// UpdateOrderStatus executes configured transition handler.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, userID int64, admin bool, orderID int64, to model.OrderStatus) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, userID, admin, orderID, to)
	}
	return &model.Order{ID: orderID, UserID: userID, Status: to}, nil
}

// ConfirmCall stores information about ConfirmPayment invocations.
type ConfirmCall struct {
	OrderID  int64
	IntentID string
	Outcome  model.PaymentOutcome
}

// PaymentFacadeStub simulates payment confirmation handling.
type PaymentFacadeStub struct {
	ConfirmFn func(context.Context, int64, string, model.PaymentOutcome) (model.OrderStatus, error)
}

// ConfirmPayment delegates to override or reports success.
func (s PaymentFacadeStub) ConfirmPayment(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, orderID, intentID, outcome)
	}
	return model.OrderStatusPaid, nil
}

// StoreFacadeStub aggregates facade dependencies for HTTP layer tests.
type StoreFacadeStub struct {
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}

// CheckoutFacadeStub mimics poller interactions with the application facade.
type CheckoutFacadeStub struct {
	Batches   [][]model.Order
	StaleFn   func(context.Context, time.Duration, int) ([]model.Order, error)
	ReopenFn  func(context.Context, *model.Order) (*model.PaymentIntent, error)
	ConfirmFn func(context.Context, int64, string, model.PaymentOutcome) (model.OrderStatus, error)
	Confirms  []ConfirmCall

	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *CheckoutFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *CheckoutFacadeStub) Unlock() { s.mu.Unlock() }

// StalePendingOrders returns batches from configured queue.
func (s *CheckoutFacadeStub) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReopenIntent returns the current gateway session for the order.
func (s *CheckoutFacadeStub) ReopenIntent(ctx context.Context, order *model.Order) (*model.PaymentIntent, error) {
	if s.ReopenFn != nil {
		return s.ReopenFn(ctx, order)
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "secret", Outcome: model.PaymentOutcomeSucceeded}, nil
}

// ConfirmPayment records confirmation requests.
func (s *CheckoutFacadeStub) ConfirmPayment(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, orderID, intentID, outcome)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Confirms = append(s.Confirms, ConfirmCall{OrderID: orderID, IntentID: intentID, Outcome: outcome})
	return model.OrderStatusPaid, nil
}
