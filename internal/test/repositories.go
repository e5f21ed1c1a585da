package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// StockCall records one inventory mutation.
type StockCall struct {
	ProductID int64
	Quantity  int
}

// TransitionCall records one status compare-and-swap attempt.
type TransitionCall struct {
	OrderID    int64
	From       model.OrderStatus
	To         model.OrderStatus
	PaymentRef *string
}

// ProductRepositoryStub keeps products in-memory and tracks stock calls.
// Safe for concurrent use.
type ProductRepositoryStub struct {
	SearchFn    func(context.Context, model.ProductFilter, []model.ProductSort, int, int) ([]model.Product, int64, error)
	GetByIDFn   func(context.Context, int64) (*model.Product, error)
	DecrementFn func(context.Context, int64, int) error
	IncrementFn func(context.Context, int64, int) error

	Products   map[int64]*model.Product
	Decrements []StockCall
	Increments []StockCall

	mu sync.Mutex
}

// NewProductRepositoryStub constructs stub repository with initialized map.
func NewProductRepositoryStub(products ...*model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]*model.Product)}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	return s
}

// Search returns configured results or all stored products.
func (s *ProductRepositoryStub) Search(ctx context.Context, filter model.ProductFilter, sort []model.ProductSort, offset, limit int) ([]model.Product, int64, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, filter, sort, offset, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Product
	for _, p := range s.Products {
		out = append(out, *p)
	}
	return out, int64(len(s.Products)), nil
}

// GetByID fetches product by identifier or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// DecrementInventory applies a conditional decrement against stored stock.
func (s *ProductRepositoryStub) DecrementInventory(ctx context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Decrements = append(s.Decrements, StockCall{ProductID: productID, Quantity: quantity})
	if s.DecrementFn != nil {
		return s.DecrementFn(ctx, productID, quantity)
	}
	p, ok := s.Products[productID]
	if !ok || p.Inventory < quantity {
		return domainErrors.ErrInsufficientStock
	}
	p.Inventory -= quantity
	return nil
}

// IncrementInventory returns stock to the stored product.
func (s *ProductRepositoryStub) IncrementInventory(ctx context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Increments = append(s.Increments, StockCall{ProductID: productID, Quantity: quantity})
	if s.IncrementFn != nil {
		return s.IncrementFn(ctx, productID, quantity)
	}
	p, ok := s.Products[productID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.Inventory += quantity
	return nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
// Safe for concurrent use.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	ListByUserFn         func(context.Context, int64) ([]model.Order, error)
	ListFn               func(context.Context, int, int) ([]model.Order, int64, error)
	SelectStalePendingFn func(context.Context, time.Time, int) ([]model.Order, error)
	TransitionFn         func(context.Context, int64, model.OrderStatus, model.OrderStatus, *string) error
	SetClientSecretFn    func(context.Context, int64, string) error

	Orders      map[int64]*model.Order
	Next        int64
	Transitions []TransitionCall
	Secrets     map[int64]string

	mu sync.Mutex
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{
		Orders:  make(map[int64]*model.Order),
		Secrets: make(map[int64]string),
		Next:    1,
	}
	for _, o := range orders {
		s.Orders[o.ID] = o
		if o.ID >= s.Next {
			s.Next = o.ID + 1
		}
	}
	return s
}

// Create stores the order assigning a sequential identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *order
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.Next++
	s.Orders[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID fetches order by identifier or returns not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns stored orders belonging to the user.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

// List returns all stored orders with a total count.
func (s *OrderRepositoryStub) List(ctx context.Context, offset, limit int) ([]model.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, offset, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

// SelectStalePending returns pending orders with an open session.
func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, updatedBefore time.Time, limit int) ([]model.Order, error) {
	if s.SelectStalePendingFn != nil {
		return s.SelectStalePendingFn(ctx, updatedBefore, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Order
	for _, o := range s.Orders {
		if o.Status == model.OrderStatusPending && o.ClientSecret != "" && o.UpdatedAt.Before(updatedBefore) {
			out = append(out, *o)
		}
	}
	return out, nil
}

// TransitionStatus applies a compare-and-swap against the stored status.
func (s *OrderRepositoryStub) TransitionStatus(ctx context.Context, orderID int64, from, to model.OrderStatus, paymentRef *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Transitions = append(s.Transitions, TransitionCall{OrderID: orderID, From: from, To: to, PaymentRef: paymentRef})
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, from, to, paymentRef)
	}
	o, ok := s.Orders[orderID]
	if !ok || o.Status != from {
		return domainErrors.ErrConflict
	}
	o.Status = to
	if paymentRef != nil {
		o.PaymentIntentID = paymentRef
	}
	o.UpdatedAt = time.Now()
	return nil
}

// SetClientSecret records the session secret for the order.
func (s *OrderRepositoryStub) SetClientSecret(ctx context.Context, orderID int64, secret string) error {
	if s.SetClientSecretFn != nil {
		return s.SetClientSecretFn(ctx, orderID, secret)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if o.ClientSecret != "" && o.ClientSecret != secret {
		return domainErrors.ErrConflict
	}
	o.ClientSecret = secret
	if s.Secrets == nil {
		s.Secrets = make(map[int64]string)
	}
	s.Secrets[orderID] = secret
	return nil
}
