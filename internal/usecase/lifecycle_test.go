package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
	"github.com/elijahkelechi/Beautytrendy-API/internal/test"
)

func newLifecycleFixture(products *test.ProductRepositoryStub, orders *test.OrderRepositoryStub) *OrderLifecycleUseCase {
	reconciler := NewInventoryReconciler(products, test.NewProductCacheStub(), discardLogger())
	return NewOrderLifecycleUseCase(orders, reconciler, discardLogger())
}

func pendingOrder(id int64, items ...model.OrderItem) *model.Order {
	return &model.Order{ID: id, UserID: 7, Status: model.OrderStatusPending, Items: items}
}

func TestConfirmSucceededConsumesStockAndMarksPaid(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	uc := newLifecycleFixture(products, orders)

	status, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != model.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", status)
	}
	if products.Products[1].Inventory != 3 {
		t.Fatalf("expected stock consumed, got %d", products.Products[1].Inventory)
	}
	stored, _ := orders.GetByID(context.Background(), 3)
	if stored.PaymentIntentID == nil || *stored.PaymentIntentID != "pi_1" {
		t.Fatalf("expected payment reference recorded, got %+v", stored.PaymentIntentID)
	}
}

func TestConfirmDeclinedMarksFailedWithoutStockChange(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	uc := newLifecycleFixture(products, orders)

	status, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeDeclined)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != model.OrderStatusFailed {
		t.Fatalf("expected failed, got %s", status)
	}
	if len(products.Decrements) != 0 {
		t.Fatalf("declined payment must not touch stock")
	}
}

func TestConfirmInsufficientStockFailsOrderWithoutPartialDecrement(t *testing.T) {
	products := test.NewProductRepositoryStub(
		&model.Product{ID: 1, Inventory: 5},
		&model.Product{ID: 2, Inventory: 1},
	)
	orders := test.NewOrderRepositoryStub(pendingOrder(3,
		model.OrderItem{ProductID: 1, Quantity: 2},
		model.OrderItem{ProductID: 2, Quantity: 3},
	))
	uc := newLifecycleFixture(products, orders)

	status, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded)
	if !errors.Is(err, domainErrors.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if status != model.OrderStatusFailed {
		t.Fatalf("expected failed, got %s", status)
	}
	if products.Products[1].Inventory != 5 || products.Products[2].Inventory != 1 {
		t.Fatalf("stock must be untouched: %+v %+v", products.Products[1], products.Products[2])
	}
	stored, _ := orders.GetByID(context.Background(), 3)
	if stored.Status != model.OrderStatusFailed {
		t.Fatalf("expected stored order failed, got %s", stored.Status)
	}
}

func TestConfirmDuplicateDeliveryIsReportedNoOp(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	uc := newLifecycleFixture(products, orders)

	if _, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}

	status, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded)
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict on duplicate, got %v", err)
	}
	if status != model.OrderStatusPaid {
		t.Fatalf("duplicate must report settled status, got %s", status)
	}
	if products.Products[1].Inventory != 3 {
		t.Fatalf("stock must be consumed exactly once, got %d", products.Products[1].Inventory)
	}
}

func TestConfirmLostSwapCompensatesDecrement(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	orders.TransitionFn = func(context.Context, int64, model.OrderStatus, model.OrderStatus, *string) error {
		// Simulates a concurrent delivery winning the swap first.
		orders.Orders[3].Status = model.OrderStatusFailed
		return domainErrors.ErrConflict
	}
	uc := newLifecycleFixture(products, orders)

	status, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded)
	if !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if status != model.OrderStatusFailed {
		t.Fatalf("expected freshest status, got %s", status)
	}
	if products.Products[1].Inventory != 5 {
		t.Fatalf("lost swap must return consumed stock, got %d", products.Products[1].Inventory)
	}
}

func TestConfirmConcurrentOrdersNeverOversellStock(t *testing.T) {
	const contenders = 8

	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	pending := make([]*model.Order, 0, contenders)
	for id := int64(1); id <= contenders; id++ {
		pending = append(pending, pendingOrder(id, model.OrderItem{ProductID: 1, Quantity: 3}))
	}
	orders := test.NewOrderRepositoryStub(pending...)
	uc := newLifecycleFixture(products, orders)

	statuses := make([]model.OrderStatus, contenders)
	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			orderID := int64(i + 1)
			statuses[i], errs[i] = uc.Confirm(context.Background(), orderID, fmt.Sprintf("pi_%d", orderID), model.PaymentOutcomeSucceeded)
		}(i)
	}
	wg.Wait()

	var paid, failed int
	for i := range statuses {
		switch statuses[i] {
		case model.OrderStatusPaid:
			if errs[i] != nil {
				t.Fatalf("paid order %d returned error: %v", i+1, errs[i])
			}
			paid++
		case model.OrderStatusFailed:
			if !errors.Is(errs[i], domainErrors.ErrInsufficientStock) {
				t.Fatalf("failed order %d must report insufficient stock, got %v", i+1, errs[i])
			}
			failed++
		default:
			t.Fatalf("order %d ended in %s (err=%v)", i+1, statuses[i], errs[i])
		}
	}
	if paid != 1 || failed != contenders-1 {
		t.Fatalf("expected exactly one winner, got paid=%d failed=%d", paid, failed)
	}
	if got := products.Products[1].Inventory; got != 2 {
		t.Fatalf("expected stock 2 after single sale, got %d", got)
	}
}

func TestConfirmRejectsNonTerminalOutcome(t *testing.T) {
	uc := newLifecycleFixture(test.NewProductRepositoryStub(), test.NewOrderRepositoryStub())

	if _, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeRequiresPayment); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfirmTransientCommitErrorKeepsOrderPending(t *testing.T) {
	boom := errors.New("connection reset")
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 5})
	products.DecrementFn = func(context.Context, int64, int) error { return boom }
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	uc := newLifecycleFixture(products, orders)

	if _, err := uc.Confirm(context.Background(), 3, "pi_1", model.PaymentOutcomeSucceeded); !errors.Is(err, boom) {
		t.Fatalf("expected transient error passthrough, got %v", err)
	}
	stored, _ := orders.GetByID(context.Background(), 3)
	if stored.Status != model.OrderStatusPending {
		t.Fatalf("order must stay pending on transient failure, got %s", stored.Status)
	}
}

func TestUpdateStatusCancelPaidRestoresStockOnce(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 3})
	orders := test.NewOrderRepositoryStub(&model.Order{
		ID: 3, UserID: 7, Status: model.OrderStatusPaid,
		Items: []model.OrderItem{{ProductID: 1, Quantity: 2}},
	})
	uc := newLifecycleFixture(products, orders)

	order, err := uc.UpdateStatus(context.Background(), 7, false, 3, model.OrderStatusCanceled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != model.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", order.Status)
	}
	if products.Products[1].Inventory != 5 {
		t.Fatalf("expected stock restored, got %d", products.Products[1].Inventory)
	}

	if _, err := uc.UpdateStatus(context.Background(), 7, false, 3, model.OrderStatusCanceled); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict on repeated cancel, got %v", err)
	}
	if products.Products[1].Inventory != 5 {
		t.Fatalf("repeated cancel must not restore stock again, got %d", products.Products[1].Inventory)
	}
}

func TestUpdateStatusCancelPendingSkipsStock(t *testing.T) {
	products := test.NewProductRepositoryStub(&model.Product{ID: 1, Inventory: 3})
	orders := test.NewOrderRepositoryStub(pendingOrder(3, model.OrderItem{ProductID: 1, Quantity: 2}))
	uc := newLifecycleFixture(products, orders)

	if _, err := uc.UpdateStatus(context.Background(), 7, false, 3, model.OrderStatusCanceled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products.Increments) != 0 {
		t.Fatalf("pending cancel must not touch stock")
	}
}

func TestUpdateStatusRejectsConfirmationDrivenStates(t *testing.T) {
	uc := newLifecycleFixture(test.NewProductRepositoryStub(), test.NewOrderRepositoryStub())

	for _, to := range []model.OrderStatus{model.OrderStatusPaid, model.OrderStatusFailed, model.OrderStatusPending} {
		if _, err := uc.UpdateStatus(context.Background(), 7, false, 3, to); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("expected validation error for %s, got %v", to, err)
		}
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	orders := test.NewOrderRepositoryStub(&model.Order{ID: 3, UserID: 7, Status: model.OrderStatusFailed})
	uc := newLifecycleFixture(test.NewProductRepositoryStub(), orders)

	if _, err := uc.UpdateStatus(context.Background(), 7, false, 3, model.OrderStatusCanceled); !errors.Is(err, domainErrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateStatusHidesForeignOrders(t *testing.T) {
	orders := test.NewOrderRepositoryStub(pendingOrder(3))
	uc := newLifecycleFixture(test.NewProductRepositoryStub(), orders)

	if _, err := uc.UpdateStatus(context.Background(), 8, false, 3, model.OrderStatusCanceled); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
