package usecase

import (
	"go.uber.org/fx"

	"github.com/elijahkelechi/Beautytrendy-API/internal/config"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewCatalogUseCase,
	NewInventoryReconciler,
	NewOrderLifecycleUseCase,
	NewOrderQueryUseCase,
	newOrderBuilder,
)

type builderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Products repository.ProductRepository
	Payments PaymentBroker
	Config   *config.Config
}

func newOrderBuilder(p builderParams) *OrderBuilderUseCase {
	return NewOrderBuilderUseCase(p.Orders, p.Products, p.Payments, Pricing{
		TaxRate:          p.Config.TaxRate,
		ShippingFee:      p.Config.ShippingFee,
		FreeShippingOver: p.Config.FreeShippingOver,
		Currency:         p.Config.Currency,
	})
}
