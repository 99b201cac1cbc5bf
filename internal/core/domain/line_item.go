package domain

import "github.com/shopspring/decimal"

// RowState is the editing mode of a single invoice row.
type RowState string

const (
	// RowEmpty has neither a catalog product nor manually entered details.
	RowEmpty RowState = "EMPTY"
	// RowCatalogSelected references a catalog product; its price comes from the catalog.
	RowCatalogSelected RowState = "CATALOG_SELECTED"
	// RowCustomEntry is a custom item whose name and price are typed by the user.
	RowCustomEntry RowState = "CUSTOM_ENTRY"
)

// LineItem is one invoice row: a quantity of a product or custom item at a unit price.
type LineItem struct {
	Index       int                 `json:"index"`     // Stable, never reused while the form is open
	ProductID   string              `json:"productID"` // Empty for custom items
	ProductName string              `json:"productName"`
	Quantity    decimal.Decimal     `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"` // Invalid when the price field is blank
	Subtotal    decimal.Decimal     `json:"subtotal"`  // Derived: quantity x unit price, 2 places
	State       RowState            `json:"state"`
}

// HasProduct reports whether the row references a catalog product.
func (li LineItem) HasProduct() bool {
	return li.ProductID != ""
}

// PriceEditable reports whether the unit price may be typed by the user.
func (li LineItem) PriceEditable() bool {
	return !li.HasProduct()
}

// Seed is an initial line item supplied by the hosting page when editing an existing invoice.
// Missing values fall back to a quantity of 1 and a blank price.
type Seed struct {
	ProductID   string              `json:"productID,omitempty"`
	ProductName string              `json:"productName,omitempty"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	UnitPrice   decimal.NullDecimal `json:"unitPrice"`
}

// ProductRef identifies what the user picked in the product selector.
// An empty ID picks the "custom item" entry; Name then carries the typed label.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsCustom reports whether the reference selects a custom item rather than a catalog product.
func (r ProductRef) IsCustom() bool {
	return r.ID == ""
}
