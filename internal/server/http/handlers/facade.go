package handlers

import (
	"context"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// CatalogFacade describes catalog capabilities required by handlers.
type CatalogFacade interface {
	SearchProducts(ctx context.Context, filter model.ProductFilter, page, limit int, sort string) (*model.ProductPage, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, userID int64, items []model.CartItem, shipping model.ShippingDetails) (*model.Order, error)
	OrderClientSecret(ctx context.Context, userID int64, admin bool, orderID int64) (string, error)
	Orders(ctx context.Context, page, limit int) (*model.OrderPage, error)
	UserOrders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID int64, admin bool, orderID int64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, userID int64, admin bool, orderID int64, to model.OrderStatus) (*model.Order, error)
}

// PaymentFacade handles payment confirmation signals.
type PaymentFacade interface {
	ConfirmPayment(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	CatalogFacade
	OrderFacade
	PaymentFacade
}
