package dto

import "time"

// CartItemRequest is one submitted cart line.
type CartItemRequest struct {
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

// CreateOrderRequest describes the order submission payload.
type CreateOrderRequest struct {
	OrderItems  []CartItemRequest `json:"orderItems"`
	FormName    string            `json:"formName"`
	FormAddress string            `json:"formAddress"`
	FormCity    string            `json:"formCity"`
	FormState   string            `json:"formState"`
	FormCountry string            `json:"formCountry"`
}

// OrderItemResponse is an immutable order line snapshot on the wire.
type OrderItemResponse struct {
	Product  int64   `json:"product"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderResponse mirrors a persisted order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	User            int64               `json:"user"`
	OrderItems      []OrderItemResponse `json:"orderItems"`
	Subtotal        float64             `json:"subtotal"`
	Tax             float64             `json:"tax"`
	ShippingFee     float64             `json:"shippingFee"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	FormName        string              `json:"formName"`
	FormAddress     string              `json:"formAddress"`
	FormCity        string              `json:"formCity"`
	FormState       string              `json:"formState"`
	FormCountry     string              `json:"formCountry"`
	ClientSecret    string              `json:"clientSecret,omitempty"`
	PaymentIntentID *string             `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// OrderListResponse is the paginated admin order listing payload.
type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	TotalOrders int64           `json:"totalOrders"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	HasMore     bool            `json:"hasMore"`
}

// ClientSecretRequest asks to re-issue the payment session secret.
type ClientSecretRequest struct {
	OrderID int64 `json:"orderId"`
}

// ClientSecretResponse carries the payment session secret.
type ClientSecretResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// UpdateOrderRequest applies a status transition.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}
