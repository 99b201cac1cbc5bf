package form

import (
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/utils/amount"
	"github.com/shopspring/decimal"
)

// Aggregator recomputes row subtotals and invoice totals and writes them to the display.
type Aggregator struct {
	rows    *RowRepository
	display *Display
}

// NewAggregator creates an aggregator over rows that renders into display.
func NewAggregator(rows *RowRepository, display *Display) *Aggregator {
	return &Aggregator{rows: rows, display: display}
}

// Recompute derives every subtotal and the invoice totals from the current rows and the
// discount and paid inputs. Every derived field is rewritten on each call.
func (a *Aggregator) Recompute() domain.Totals {
	sum := decimal.Zero
	a.rows.each(func(row *domain.LineItem) {
		row.Subtotal = Subtotal(row.Quantity, row.UnitPrice)
		a.display.SetValue(RowFieldName(FieldSubtotal, row.Index), amount.Format(row.Subtotal))
		sum = sum.Add(row.Subtotal)
	})

	totals := ComputeTotals(
		sum,
		amount.ParseAmount(a.display.Value(DiscountInputID)),
		amount.ParseAmount(a.display.Value(ManagerDiscountInputID)),
		amount.ParseAmount(a.display.Value(AmountPaidInputID)),
	)

	a.display.SetValue(SubtotalDisplayID, amount.Format(totals.SubtotalSum))
	a.display.SetValue(TotalDisplayID, amount.Format(totals.Total))
	a.display.SetValue(AmountRemainingDisplayID, amount.Format(totals.AmountRemaining))
	return totals
}

// Subtotal is quantity times unit price rounded to two places; a blank price counts as zero.
func Subtotal(quantity decimal.Decimal, unitPrice decimal.NullDecimal) decimal.Decimal {
	if !unitPrice.Valid {
		return decimal.Zero
	}
	return amount.Round(quantity.Mul(unitPrice.Decimal))
}

// ComputeTotals applies the invoice formulas to an already summed subtotal.
// Results may be negative; nothing is clamped.
func ComputeTotals(subtotalSum, discount, managerDiscount, amountPaid decimal.Decimal) domain.Totals {
	total := amount.Round(subtotalSum.Sub(discount).Sub(managerDiscount))
	return domain.Totals{
		SubtotalSum:     amount.Round(subtotalSum),
		Discount:        discount,
		ManagerDiscount: managerDiscount,
		AmountPaid:      amountPaid,
		Total:           total,
		AmountRemaining: amount.Round(total.Sub(amountPaid)),
	}
}
