package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/elijahkelechi/Beautytrendy-API/internal/config"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/handlers"
	"github.com/elijahkelechi/Beautytrendy-API/internal/server/http/middleware"
	"github.com/elijahkelechi/Beautytrendy-API/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewStoreFacade,
		func(f *StoreFacade) handlers.StoreFacade { return f },
		func(f *StoreFacade) middleware.TokenParser { return f },
		func(f *StoreFacade) worker.CheckoutFacade { return f },
		newHTTPServer,
		newConfirmationPoller,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade worker.CheckoutFacade
	Config *config.Config
	Logger *slog.Logger
}

func newConfirmationPoller(p workerParams) *worker.ConfirmationPoller {
	return worker.NewConfirmationPoller(
		p.Facade,
		p.Config.OrderPollInterval,
		p.Config.PendingRecheckAge,
		p.Config.MaxOrdersBatch,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.ConfirmationPoller
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting beautytrendy", slog.String("addr", p.Server.Addr))
			p.Worker.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("beautytrendy stopped")
			return nil
		},
	})
}
