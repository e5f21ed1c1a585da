package test

import (
	"context"
	"sync"

	"github.com/elijahkelechi/Beautytrendy-API/internal/domain/model"
)

// IntentCall records one gateway session request.
type IntentCall struct {
	OrderID     int64
	AmountCents int64
	Currency    string
}

// PaymentBrokerStub simulates the payment gateway client.
type PaymentBrokerStub struct {
	CreateFn func(context.Context, int64, int64, string) (*model.PaymentIntent, error)
	Intent   *model.PaymentIntent
	Err      error

	mu    sync.Mutex
	Calls []IntentCall
}

// CreateIntent records the request and returns configured response.
func (s *PaymentBrokerStub) CreateIntent(ctx context.Context, orderID int64, amountCents int64, currency string) (*model.PaymentIntent, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, IntentCall{OrderID: orderID, AmountCents: amountCents, Currency: currency})
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderID, amountCents, currency)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Intent != nil {
		return s.Intent, nil
	}
	return &model.PaymentIntent{ID: "pi_stub", ClientSecret: "secret", Outcome: model.PaymentOutcomeRequiresPayment}, nil
}
