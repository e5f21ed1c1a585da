package di

import (
	"github.com/elijahkelechi/Beautytrendy-API/internal/adapter/payment"
	"github.com/elijahkelechi/Beautytrendy-API/internal/app"
	"github.com/elijahkelechi/Beautytrendy-API/internal/cache"
	"github.com/elijahkelechi/Beautytrendy-API/internal/config"
	"github.com/elijahkelechi/Beautytrendy-API/internal/logger"
	"github.com/elijahkelechi/Beautytrendy-API/internal/pkg/auth"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/router"
	"github.com/elijahkelechi/Beautytrendy-API/internal/storage/postgres"
	"github.com/elijahkelechi/Beautytrendy-API/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		cache.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(client payment.Client) usecase.PaymentBroker { return client }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
