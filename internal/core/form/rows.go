package form

import (
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RowRepository is the ordered set of line items of one form.
// Indexes come from a counter owned by the repository and are never reused, even after removal.
type RowRepository struct {
	next int
	rows []*domain.LineItem
}

// NewRowRepository creates an empty repository whose first row gets index 0.
func NewRowRepository() *RowRepository {
	return &RowRepository{}
}

// AddRow appends a row built from seed (nil for a blank row) and returns its index.
func (r *RowRepository) AddRow(seed *domain.Seed) int {
	item := newLineItem(r.next, seed)
	r.next++
	r.rows = append(r.rows, item)
	return item.Index
}

// RemoveRow deletes the row with the given index. Remaining rows keep their indexes.
func (r *RowRepository) RemoveRow(index int) bool {
	for i, row := range r.rows {
		if row.Index == index {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Row returns the live row for index, for in-place mutation by the controller.
func (r *RowRepository) Row(index int) (*domain.LineItem, bool) {
	for _, row := range r.rows {
		if row.Index == index {
			return row, true
		}
	}
	return nil, false
}

// ListRows returns copies of all rows in insertion order.
func (r *RowRepository) ListRows() []domain.LineItem {
	out := make([]domain.LineItem, len(r.rows))
	for i, row := range r.rows {
		out[i] = *row
	}
	return out
}

// Len returns the number of rows currently present.
func (r *RowRepository) Len() int {
	return len(r.rows)
}

func (r *RowRepository) each(fn func(row *domain.LineItem)) {
	for _, row := range r.rows {
		fn(row)
	}
}

func newLineItem(index int, seed *domain.Seed) *domain.LineItem {
	item := &domain.LineItem{
		Index:    index,
		Quantity: decimal.NewFromInt(1),
		State:    domain.RowEmpty,
	}
	if seed == nil {
		return item
	}

	item.ProductID = seed.ProductID
	item.ProductName = seed.ProductName
	// A missing or zero quantity falls back to one unit.
	if seed.Quantity.Valid && seed.Quantity.Decimal.IsPositive() {
		item.Quantity = seed.Quantity.Decimal
	}
	if seed.UnitPrice.Valid && !seed.UnitPrice.Decimal.IsNegative() {
		item.UnitPrice = seed.UnitPrice
	}

	switch {
	case item.HasProduct():
		item.State = domain.RowCatalogSelected
	case item.ProductName != "" || item.UnitPrice.Valid:
		item.State = domain.RowCustomEntry
	}
	return item
}
