package domain

import "github.com/shopspring/decimal"

// Totals is the invoice-level aggregate recomputed from all line items.
// Negative values are kept as-is; discounts may exceed the subtotal while the user is editing.
type Totals struct {
	SubtotalSum     decimal.Decimal `json:"subtotalSum"`
	Discount        decimal.Decimal `json:"discount"`
	ManagerDiscount decimal.Decimal `json:"managerDiscount"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	Total           decimal.Decimal `json:"total"`           // SubtotalSum - Discount - ManagerDiscount
	AmountRemaining decimal.Decimal `json:"amountRemaining"` // Total - AmountPaid
}
