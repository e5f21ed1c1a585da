package usecase

import (
	"context"
	"fmt"
	"math"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// PaymentBroker is the slice of the payment gateway the order pipeline needs.
type PaymentBroker interface {
	CreateIntent(ctx context.Context, orderID int64, amountCents int64, currency string) (*model.PaymentIntent, error)
}

// Pricing carries the configured order pricing policy.
type Pricing struct {
	TaxRate          float64
	ShippingFee      float64
	FreeShippingOver float64
	Currency         string
}

// OrderBuilderUseCase validates carts, snapshots product lines, computes
// totals and creates orders in pending state with an open payment session.
type OrderBuilderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	payments PaymentBroker
	pricing  Pricing
}

// NewOrderBuilderUseCase constructs OrderBuilderUseCase.
func NewOrderBuilderUseCase(orders repository.OrderRepository, products repository.ProductRepository, payments PaymentBroker, pricing Pricing) *OrderBuilderUseCase {
	return &OrderBuilderUseCase{orders: orders, products: products, payments: payments, pricing: pricing}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func amountCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func validateShipping(shipping model.ShippingDetails) error {
	fields := map[string]string{
		"name":    shipping.Name,
		"address": shipping.Address,
		"city":    shipping.City,
		"state":   shipping.State,
		"country": shipping.Country,
	}
	for field, value := range fields {
		if value == "" {
			return fmt.Errorf("%w: shipping %s is required", domainErrors.ErrValidation, field)
		}
	}
	return nil
}

// CreateOrder builds and persists a pending order from the submitted cart.
// Stock is deliberately not checked here: it is only authoritative at
// payment confirmation time.
func (u *OrderBuilderUseCase) CreateOrder(ctx context.Context, userID int64, items []model.CartItem, shipping model.ShippingDetails) (*model.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domainErrors.ErrValidation)
	}
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	var subtotal float64
	lines := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be a positive integer", domainErrors.ErrValidation)
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		subtotal += product.Price * float64(item.Quantity)
	}

	subtotal = round2(subtotal)
	tax := round2(subtotal * u.pricing.TaxRate)
	shippingFee := u.pricing.ShippingFee
	if u.pricing.FreeShippingOver > 0 && subtotal >= u.pricing.FreeShippingOver {
		shippingFee = 0
	}
	total := round2(subtotal + tax + shippingFee)

	order, err := u.orders.Create(ctx, &model.Order{
		UserID:      userID,
		Items:       lines,
		Subtotal:    subtotal,
		Tax:         tax,
		ShippingFee: shippingFee,
		Total:       total,
		Status:      model.OrderStatusPending,
		Shipping:    shipping,
	})
	if err != nil {
		return nil, err
	}

	secret, err := u.openSession(ctx, order)
	if err != nil {
		// The order stays pending; the client can re-request the secret,
		// session creation is idempotent.
		return nil, err
	}
	order.ClientSecret = secret
	return order, nil
}

// ClientSecret re-issues the payment session secret for an existing order.
func (u *OrderBuilderUseCase) ClientSecret(ctx context.Context, userID int64, admin bool, orderID int64) (string, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.UserID != userID && !admin {
		return "", domainErrors.ErrNotFound
	}
	if order.Status != model.OrderStatusPending {
		return "", fmt.Errorf("%w: order is %s", domainErrors.ErrConflict, order.Status)
	}
	if order.ClientSecret != "" {
		return order.ClientSecret, nil
	}
	return u.openSession(ctx, order)
}

// ReopenSession re-addresses the order's gateway session without touching
// the stored secret. Used by the confirmation poller to learn the current
// session outcome.
func (u *OrderBuilderUseCase) ReopenSession(ctx context.Context, order *model.Order) (*model.PaymentIntent, error) {
	return u.payments.CreateIntent(ctx, order.ID, amountCents(order.Total), u.pricing.Currency)
}

func (u *OrderBuilderUseCase) openSession(ctx context.Context, order *model.Order) (string, error) {
	intent, err := u.payments.CreateIntent(ctx, order.ID, amountCents(order.Total), u.pricing.Currency)
	if err != nil {
		return "", err
	}
	if err := u.orders.SetClientSecret(ctx, order.ID, intent.ClientSecret); err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
