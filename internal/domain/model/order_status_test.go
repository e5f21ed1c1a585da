package model

import "testing"

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusPending, OrderStatusCanceled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPaid, OrderStatusDelivered, true},
		{OrderStatusPaid, OrderStatusCanceled, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusFailed, OrderStatusPaid, false},
		{OrderStatusFailed, OrderStatusCanceled, false},
		{OrderStatusDelivered, OrderStatusCanceled, false},
		{OrderStatusCanceled, OrderStatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for status, terminal := range map[OrderStatus]bool{
		OrderStatusPending:   false,
		OrderStatusPaid:      false,
		OrderStatusFailed:    true,
		OrderStatusDelivered: true,
		OrderStatusCanceled:  true,
	} {
		if status.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", status, status.Terminal(), terminal)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	if !ValidOrderStatus(OrderStatusPaid) {
		t.Fatal("paid must be a known status")
	}
	if ValidOrderStatus("shipped") {
		t.Fatal("unknown status must be rejected")
	}
}

func TestPaymentOutcomeTerminal(t *testing.T) {
	for outcome, terminal := range map[PaymentOutcome]bool{
		PaymentOutcomeRequiresPayment: false,
		PaymentOutcomeSucceeded:       true,
		PaymentOutcomeDeclined:        true,
		PaymentOutcomeTimedOut:        true,
	} {
		if outcome.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", outcome, outcome.Terminal(), terminal)
		}
	}
}
