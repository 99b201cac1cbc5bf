package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
)

// Per-row field prefixes. A row's inputs are named "<prefix>_<index>".
const (
	FieldProductID   = "product_id"
	FieldProductName = "product_name"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unit_price"
	FieldSubtotal    = "subtotal"
)

// Fixed identifiers of the invoice-level fields.
const (
	SubtotalDisplayID        = "subtotalDisplay"
	TotalDisplayID           = "totalDisplay"
	DiscountInputID          = "discount-amount-input"
	ManagerDiscountInputID   = "manager-discount-amount-input"
	AmountPaidInputID        = "amount-paid-input"
	AmountRemainingDisplayID = "amount-remaining-display"
)

// Totals input names accepted by Controller.OnTotalsInputEdited.
const (
	TotalsDiscount        = "discount"
	TotalsManagerDiscount = "manager_discount"
	TotalsAmountPaid      = "amount_paid"
)

// DefaultAggregateFields is the invoice-level layout rendered when the host page does not choose one.
var DefaultAggregateFields = []string{
	SubtotalDisplayID,
	TotalDisplayID,
	DiscountInputID,
	ManagerDiscountInputID,
	AmountPaidInputID,
	AmountRemainingDisplayID,
}

var totalsInputIDs = map[string]string{
	TotalsDiscount:        DiscountInputID,
	TotalsManagerDiscount: ManagerDiscountInputID,
	TotalsAmountPaid:      AmountPaidInputID,
}

var editableRowFields = map[string]bool{
	FieldProductName: true,
	FieldQuantity:    true,
	FieldUnitPrice:   true,
}

// IsEditableRowField reports whether field may be passed to Controller.OnFieldEdited.
func IsEditableRowField(field string) bool {
	return editableRowFields[field]
}

// TotalsInputID maps a totals input name to its field identifier.
func TotalsInputID(name string) (string, bool) {
	id, ok := totalsInputIDs[name]
	return id, ok
}

// RowFieldName builds the submitted name of a row input, e.g. "quantity_3".
func RowFieldName(field string, index int) string {
	return fmt.Sprintf("%s_%d", field, index)
}

// ParseRowFieldName splits "unit_price_3" into ("unit_price", 3).
func ParseRowFieldName(name string) (string, int, bool) {
	sep := strings.LastIndexByte(name, '_')
	if sep <= 0 || sep == len(name)-1 {
		return "", 0, false
	}
	suffix := name[sep+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	index, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, false
	}
	field := name[:sep]
	switch field {
	case FieldProductID, FieldProductName, FieldQuantity, FieldUnitPrice, FieldSubtotal:
		return field, index, true
	}
	return "", 0, false
}

// Field is one rendered form control.
type Field = domain.FormField

// Display is the rendered field tree of one form, addressed by field name.
// Writes to a name that is not present are silently ignored.
type Display struct {
	fields map[string]*Field
	order  []string
}

// NewDisplay creates a display holding the given invoice-level fields.
// Output fields (subtotal, total, remaining) are read-only.
func NewDisplay(aggregateIDs ...string) *Display {
	d := &Display{fields: make(map[string]*Field)}
	for _, id := range aggregateIDs {
		readOnly := id == SubtotalDisplayID || id == TotalDisplayID || id == AmountRemainingDisplayID
		d.Add(id, "", readOnly)
	}
	return d
}

// Add appends a field, replacing any field of the same name in place.
func (d *Display) Add(name, value string, readOnly bool) {
	if f, ok := d.fields[name]; ok {
		f.Value, f.ReadOnly, f.Hidden = value, readOnly, false
		return
	}
	d.fields[name] = &Field{Name: name, Value: value, ReadOnly: readOnly}
	d.order = append(d.order, name)
}

// Remove deletes a field.
func (d *Display) Remove(name string) {
	if _, ok := d.fields[name]; !ok {
		return
	}
	delete(d.fields, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Has reports whether the field exists.
func (d *Display) Has(name string) bool {
	_, ok := d.fields[name]
	return ok
}

// Value returns the field's current value, or "" when the field does not exist.
func (d *Display) Value(name string) string {
	if f, ok := d.fields[name]; ok {
		return f.Value
	}
	return ""
}

// Field returns a copy of the named field.
func (d *Display) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	if !ok {
		return Field{}, false
	}
	return *f, true
}

// SetValue replaces the value of the named field.
func (d *Display) SetValue(name, value string) {
	if f, ok := d.fields[name]; ok {
		f.Value = value
	}
}

// SetReadOnly toggles whether the named field accepts user input.
func (d *Display) SetReadOnly(name string, readOnly bool) {
	if f, ok := d.fields[name]; ok {
		f.ReadOnly = readOnly
	}
}

// SetHidden toggles whether the named field is rendered.
func (d *Display) SetHidden(name string, hidden bool) {
	if f, ok := d.fields[name]; ok {
		f.Hidden = hidden
	}
}

// Fields returns copies of all fields in the order they were added.
func (d *Display) Fields() []Field {
	out := make([]Field, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, *d.fields[name])
	}
	return out
}
