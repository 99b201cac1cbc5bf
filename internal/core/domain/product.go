package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry resolvable to a display name and unit price.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	ItemCode string          `json:"itemCode"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"` // Units in stock
}
