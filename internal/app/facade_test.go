package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	pkgAuth "github.com/elijahkelechi/Beautytrendy-API/internal/pkg/auth"
	testhelpers "github.com/elijahkelechi/Beautytrendy-API/internal/test"
	"github.com/elijahkelechi/Beautytrendy-API/internal/usecase"
)

func newFacade() (*StoreFacade, *testhelpers.ProductRepositoryStub, *testhelpers.OrderRepositoryStub, *testhelpers.PaymentBrokerStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	products := testhelpers.NewProductRepositoryStub(
		&model.Product{ID: 1, Name: "cream", Price: 20, Inventory: 10},
	)
	orders := testhelpers.NewOrderRepositoryStub()
	broker := &testhelpers.PaymentBrokerStub{}
	productCache := testhelpers.NewProductCacheStub()

	catalog := usecase.NewCatalogUseCase(products, productCache, logger)
	inventory := usecase.NewInventoryReconciler(products, productCache, logger)
	lifecycle := usecase.NewOrderLifecycleUseCase(orders, inventory, logger)
	queries := usecase.NewOrderQueryUseCase(orders)
	builder := usecase.NewOrderBuilderUseCase(orders, products, broker, usecase.Pricing{
		TaxRate:     0.05,
		ShippingFee: 5,
		Currency:    "usd",
	})

	strategy := testhelpers.StrategyStub{ParseFn: func(string) (*pkgAuth.Claims, error) {
		return &pkgAuth.Claims{UserID: 99, Role: pkgAuth.RoleAdmin}, nil
	}}

	facade := NewStoreFacade(catalog, builder, queries, lifecycle, strategy)
	return facade, products, orders, broker
}

var testShipping = model.ShippingDetails{
	Name:    "Ada",
	Address: "1 Main St",
	City:    "Lagos",
	State:   "LA",
	Country: "NG",
}

func TestStoreFacadeCatalog(t *testing.T) {
	facade, _, _, _ := newFacade()

	page, err := facade.SearchProducts(context.Background(), model.ProductFilter{}, 1, 10, "")
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if page.Total != 1 || len(page.Products) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	product, err := facade.Product(context.Background(), 1)
	if err != nil {
		t.Fatalf("product returned error: %v", err)
	}
	if product.Name != "cream" {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestStoreFacadeCheckout(t *testing.T) {
	facade, _, _, broker := newFacade()

	order, err := facade.CreateOrder(context.Background(), 7, []model.CartItem{{ProductID: 1, Quantity: 2}}, testShipping)
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}
	if order.Status != model.OrderStatusPending || order.ClientSecret == "" {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(broker.Calls) != 1 {
		t.Fatalf("expected one intent call, got %d", len(broker.Calls))
	}

	secret, err := facade.OrderClientSecret(context.Background(), 7, false, order.ID)
	if err != nil {
		t.Fatalf("client secret returned error: %v", err)
	}
	if secret != order.ClientSecret {
		t.Fatalf("expected stored secret %q, got %q", order.ClientSecret, secret)
	}
}

func TestStoreFacadeOrders(t *testing.T) {
	facade, _, orders, _ := newFacade()

	order, err := facade.CreateOrder(context.Background(), 7, []model.CartItem{{ProductID: 1, Quantity: 1}}, testShipping)
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}

	mine, err := facade.UserOrders(context.Background(), 7)
	if err != nil || len(mine) != 1 {
		t.Fatalf("unexpected user orders: %v err=%v", mine, err)
	}

	fetched, err := facade.Order(context.Background(), 7, false, order.ID)
	if err != nil || fetched.ID != order.ID {
		t.Fatalf("unexpected order fetch: %v err=%v", fetched, err)
	}

	listed, err := facade.Orders(context.Background(), 1, 10)
	if err != nil || listed.Total != 1 {
		t.Fatalf("unexpected admin listing: %+v err=%v", listed, err)
	}

	updated, err := facade.UpdateOrderStatus(context.Background(), 7, false, order.ID, model.OrderStatusCanceled)
	if err != nil {
		t.Fatalf("update status returned error: %v", err)
	}
	if updated.Status != model.OrderStatusCanceled {
		t.Fatalf("unexpected status %q", updated.Status)
	}
	if len(orders.Transitions) == 0 {
		t.Fatal("expected a recorded transition")
	}
}

func TestStoreFacadeConfirmation(t *testing.T) {
	facade, products, orders, _ := newFacade()

	order, err := facade.CreateOrder(context.Background(), 7, []model.CartItem{{ProductID: 1, Quantity: 2}}, testShipping)
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}

	stored := orders.Orders[order.ID]
	stored.UpdatedAt = time.Now().Add(-time.Hour)

	stale, err := facade.StalePendingOrders(context.Background(), time.Minute, 10)
	if err != nil || len(stale) != 1 {
		t.Fatalf("unexpected stale orders: %v err=%v", stale, err)
	}

	intent, err := facade.ReopenIntent(context.Background(), &stale[0])
	if err != nil || intent.ID == "" {
		t.Fatalf("unexpected reopened intent: %v err=%v", intent, err)
	}

	status, err := facade.ConfirmPayment(context.Background(), order.ID, intent.ID, model.PaymentOutcomeSucceeded)
	if err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}
	if status != model.OrderStatusPaid {
		t.Fatalf("expected paid, got %q", status)
	}
	if products.Products[1].Inventory != 8 {
		t.Fatalf("expected stock consumed, got %d", products.Products[1].Inventory)
	}
}

func TestStoreFacadeParseToken(t *testing.T) {
	facade, _, _, _ := newFacade()

	claims, err := facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if claims.UserID != 99 || !claims.Admin() {
		t.Fatalf("unexpected claims %+v", claims)
	}
}
