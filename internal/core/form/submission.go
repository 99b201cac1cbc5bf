package form

import (
	"net/url"
	"sort"
	"strings"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/utils/amount"
	"github.com/shopspring/decimal"
)

// DecodeSubmission reads the row fields ("quantity_3", "unit_price_3", ...) and the invoice-level
// inputs out of posted form values. Rows are returned in ascending index order; rows left
// completely blank are skipped. Totals are recomputed from the decoded rows rather than trusted
// from the read-only display fields.
func DecodeSubmission(values url.Values) domain.InvoiceSubmission {
	indexes := map[int]struct{}{}
	for name := range values {
		if _, index, ok := ParseRowFieldName(name); ok {
			indexes[index] = struct{}{}
		}
	}
	ordered := make([]int, 0, len(indexes))
	for index := range indexes {
		ordered = append(ordered, index)
	}
	sort.Ints(ordered)

	items := make([]domain.LineItem, 0, len(ordered))
	sum := decimal.Zero
	for _, index := range ordered {
		get := func(field string) string {
			return strings.TrimSpace(values.Get(RowFieldName(field, index)))
		}
		seed := domain.Seed{
			ProductID:   get(FieldProductID),
			ProductName: get(FieldProductName),
			UnitPrice:   amount.ParseOptionalAmount(get(FieldUnitPrice)),
		}
		if seed.ProductID == "" && seed.ProductName == "" && !seed.UnitPrice.Valid {
			continue
		}
		item := newLineItem(index, &seed)
		// Only a blank quantity defaults to one unit; anything typed is taken as entered.
		if raw := get(FieldQuantity); raw != "" {
			item.Quantity = amount.ParseAmount(raw)
		}
		item.Subtotal = Subtotal(item.Quantity, item.UnitPrice)
		sum = sum.Add(item.Subtotal)
		items = append(items, *item)
	}

	return domain.InvoiceSubmission{
		Items: items,
		Totals: ComputeTotals(
			sum,
			amount.ParseAmount(values.Get(DiscountInputID)),
			amount.ParseAmount(values.Get(ManagerDiscountInputID)),
			amount.ParseAmount(values.Get(AmountPaidInputID)),
		),
	}
}
