package dto

// WebhookRequest is the confirmation callback delivered by the payment gateway.
type WebhookRequest struct {
	OrderID         int64  `json:"orderId"`
	PaymentIntentID string `json:"paymentIntentId"`
	Outcome         string `json:"outcome"`
}

// WebhookResponse acknowledges a confirmation signal.
type WebhookResponse struct {
	Status  string `json:"status,omitempty"`
	Applied bool   `json:"applied"`
}
