package model

import "time"

// OrderItem is an immutable snapshot of a product line captured at order
// creation time. Later catalog changes never affect it.
type OrderItem struct {
	ID        int64
	ProductID int64
	Name      string
	Image     string
	Price     float64
	Quantity  int
}

// CartItem is a submitted cart line before snapshotting.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// ShippingDetails holds the destination fields submitted with an order.
type ShippingDetails struct {
	Name    string
	Address string
	City    string
	State   string
	Country string
}

// Order is a purchase order owned by a user. It is created once in
// pending state and mutated only through status transitions.
type Order struct {
	ID              int64
	UserID          int64
	Items           []OrderItem
	Subtotal        float64
	Tax             float64
	ShippingFee     float64
	Total           float64
	Status          OrderStatus
	Shipping        ShippingDetails
	ClientSecret    string
	PaymentIntentID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderPage is a paginated order listing for administrators.
type OrderPage struct {
	Orders      []Order
	Total       int64
	TotalPages  int
	CurrentPage int
	HasMore     bool
}
