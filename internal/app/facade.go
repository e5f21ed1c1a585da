package app

import (
	"context"
	"time"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/pkg/auth"
	"github.com/elijahkelechi/Beautytrendy-API/internal/usecase"
)

// StoreFacade is the single entry point the HTTP layer and the
// confirmation poller talk to.
type StoreFacade struct {
	catalog   *usecase.CatalogUseCase
	builder   *usecase.OrderBuilderUseCase
	queries   *usecase.OrderQueryUseCase
	lifecycle *usecase.OrderLifecycleUseCase
	tokens    auth.Strategy
}

func NewStoreFacade(catalog *usecase.CatalogUseCase, builder *usecase.OrderBuilderUseCase, queries *usecase.OrderQueryUseCase, lifecycle *usecase.OrderLifecycleUseCase, tokens auth.Strategy) *StoreFacade {
	return &StoreFacade{catalog: catalog, builder: builder, queries: queries, lifecycle: lifecycle, tokens: tokens}
}

func (f *StoreFacade) SearchProducts(ctx context.Context, filter model.ProductFilter, page, limit int, sort string) (*model.ProductPage, error) {
	return f.catalog.Search(ctx, filter, page, limit, sort)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StoreFacade) CreateOrder(ctx context.Context, userID int64, items []model.CartItem, shipping model.ShippingDetails) (*model.Order, error) {
	return f.builder.CreateOrder(ctx, userID, items, shipping)
}

func (f *StoreFacade) OrderClientSecret(ctx context.Context, userID int64, admin bool, orderID int64) (string, error) {
	return f.builder.ClientSecret(ctx, userID, admin, orderID)
}

func (f *StoreFacade) Orders(ctx context.Context, page, limit int) (*model.OrderPage, error) {
	return f.queries.List(ctx, page, limit)
}

func (f *StoreFacade) UserOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.queries.ListByUser(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, userID int64, admin bool, orderID int64) (*model.Order, error) {
	return f.queries.Get(ctx, userID, admin, orderID)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, userID int64, admin bool, orderID int64, to model.OrderStatus) (*model.Order, error) {
	return f.lifecycle.UpdateStatus(ctx, userID, admin, orderID, to)
}

func (f *StoreFacade) ConfirmPayment(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error) {
	return f.lifecycle.Confirm(ctx, orderID, intentID, outcome)
}

func (f *StoreFacade) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.queries.StaleForConfirmation(ctx, olderThan, limit)
}

func (f *StoreFacade) ReopenIntent(ctx context.Context, order *model.Order) (*model.PaymentIntent, error) {
	return f.builder.ReopenSession(ctx, order)
}

func (f *StoreFacade) ParseToken(token string) (*auth.Claims, error) {
	return f.tokens.ParseToken(token)
}
