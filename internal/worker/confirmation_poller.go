package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/elijahkelechi/Beautytrendy-API/internal/adapter/payment"
	domainErrors "github.com/elijahkelechi/Beautytrendy-API/internal/domain/errors"
	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// CheckoutFacade exposes the subset of application functionality required by the poller.
type CheckoutFacade interface {
	StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
	ReopenIntent(ctx context.Context, order *model.Order) (*model.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, orderID int64, intentID string, outcome model.PaymentOutcome) (model.OrderStatus, error)
}

// ConfirmationPoller drives confirmation for orders whose webhook never
// arrived: it periodically re-checks stale pending payment sessions
// against the gateway and funnels terminal outcomes into the same
// idempotent confirmation path the webhook uses.
type ConfirmationPoller struct {
	facade       CheckoutFacade
	pollInterval time.Duration
	recheckAge   time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewConfirmationPoller constructs the confirmation worker pool.
func NewConfirmationPoller(facade CheckoutFacade, pollInterval, recheckAge time.Duration, batchSize, workers int, logger *slog.Logger) *ConfirmationPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if recheckAge <= 0 {
		recheckAge = pollInterval
	}
	return &ConfirmationPoller{
		facade:       facade,
		pollInterval: pollInterval,
		recheckAge:   recheckAge,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (p *ConfirmationPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *ConfirmationPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ConfirmationPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *ConfirmationPoller) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.StalePendingOrders(ctx, p.recheckAge, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale pending orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *ConfirmationPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *ConfirmationPoller) handleOrder(ctx context.Context, order model.Order) {
	intent, err := p.facade.ReopenIntent(ctx, &order)
	if err != nil {
		var tooMany payment.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			p.logger.Warn("payment gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			time.Sleep(tooMany.RetryAfter)
		case errors.Is(err, domainErrors.ErrGatewayUnavailable):
			p.logger.Error("payment gateway unavailable", slog.Int64("order_id", order.ID))
		default:
			p.logger.Error("payment session recheck failed",
				slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
		}
		return
	}

	if !intent.Outcome.Terminal() {
		return
	}

	status, err := p.facade.ConfirmPayment(ctx, order.ID, intent.ID, intent.Outcome)
	switch {
	case err == nil:
		p.logger.Info("order confirmed by poller",
			slog.Int64("order_id", order.ID), slog.String("status", string(status)))
	case errors.Is(err, domainErrors.ErrConflict):
		// Another delivery won; nothing to do.
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		p.logger.Info("order failed on stock reconciliation", slog.Int64("order_id", order.ID))
	default:
		p.logger.Error("confirmation failed",
			slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
	}
}
