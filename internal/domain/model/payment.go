package model

// PaymentOutcome describes a payment session outcome reported by the gateway.
type PaymentOutcome string

const (
	PaymentOutcomeRequiresPayment PaymentOutcome = "requires_payment"
	PaymentOutcomeSucceeded       PaymentOutcome = "succeeded"
	PaymentOutcomeDeclined        PaymentOutcome = "declined"
	PaymentOutcomeTimedOut        PaymentOutcome = "timed_out"
)

// Terminal reports whether the outcome ends the payment session.
func (o PaymentOutcome) Terminal() bool {
	switch o {
	case PaymentOutcomeSucceeded, PaymentOutcomeDeclined, PaymentOutcomeTimedOut:
		return true
	}
	return false
}

// PaymentIntent is an external payment session tied 1:1 to an order.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Outcome      PaymentOutcome
}
