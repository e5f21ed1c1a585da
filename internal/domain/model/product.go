package model

import "time"

// Product is a catalog item. Inventory is mutated only through the
// inventory reconciliation path, never by catalog reads.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Image        string
	Price        float64
	Category     string
	Brand        string
	Featured     bool
	FreeShipping bool
	Inventory    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductFilter describes conjunctive catalog search criteria.
type ProductFilter struct {
	Category     string
	Brand        string
	Search       string
	Featured     *bool
	FreeShipping *bool
	PriceMin     *float64
	PriceMax     *float64
}

// ProductSort is one ordering key of a catalog query.
type ProductSort struct {
	Field string
	Desc  bool
}

// ProductPage is a paginated catalog search result.
type ProductPage struct {
	Products    []Product
	Total       int64
	TotalPages  int
	CurrentPage int
	HasMore     bool
}
