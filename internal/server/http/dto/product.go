package dto

import "time"

// ProductResponse mirrors a catalog product on the wire.
type ProductResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image"`
	Price        float64   `json:"price"`
	Category     string    `json:"category"`
	Brand        string    `json:"brand"`
	Featured     bool      `json:"featured"`
	FreeShipping bool      `json:"freeShipping"`
	Inventory    int       `json:"inventory"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductListResponse is the paginated catalog listing payload.
type ProductListResponse struct {
	Products      []ProductResponse `json:"products"`
	TotalProducts int64             `json:"totalProducts"`
	TotalPages    int               `json:"totalPages"`
	CurrentPage   int               `json:"currentPage"`
	HasMore       bool              `json:"hasMore"`
}
