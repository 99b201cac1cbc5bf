package form

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/utils/amount"
)

// DefaultLookupTimeout bounds a single catalog lookup.
const DefaultLookupTimeout = 10 * time.Second

// Controller applies user events to one form's rows and keeps the display and totals current.
// It is not safe for concurrent use; a Session serialises all calls onto one goroutine.
type Controller struct {
	rows       *RowRepository
	display    *Display
	aggregator *Aggregator
	lookup     portssvc.ProductLookupSvc
	logger     *slog.Logger
	timeout    time.Duration

	pending map[int]string // row index -> product id awaiting a lookup
	totals  domain.Totals
}

// ControllerOption is a functional option for configuring the controller
type ControllerOption func(*Controller)

// WithLogger sets the logger lookup failures and stale completions are reported to.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLookupTimeout bounds each catalog lookup. Zero disables the bound.
func WithLookupTimeout(timeout time.Duration) ControllerOption {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

// WithAggregateFields chooses which invoice-level fields the form renders.
func WithAggregateFields(ids ...string) ControllerOption {
	return func(c *Controller) {
		c.display = NewDisplay(ids...)
	}
}

// NewController creates a controller with no rows. Call Init before use.
func NewController(lookup portssvc.ProductLookupSvc, options ...ControllerOption) *Controller {
	c := &Controller{
		rows:    NewRowRepository(),
		lookup:  lookup,
		logger:  slog.Default(),
		timeout: DefaultLookupTimeout,
		pending: make(map[int]string),
	}
	for _, option := range options {
		option(c)
	}
	if c.display == nil {
		c.display = NewDisplay(DefaultAggregateFields...)
	}
	c.aggregator = NewAggregator(c.rows, c.display)
	return c
}

// Init creates one row per seed, in order, or a single blank row when there are no seeds,
// then computes the initial totals.
func (c *Controller) Init(seeds []domain.Seed) {
	if len(seeds) == 0 {
		c.addRow(nil)
	}
	for i := range seeds {
		c.addRow(&seeds[i])
	}
	c.recompute()
}

// OnRowAdded appends a row and returns its index.
func (c *Controller) OnRowAdded(seed *domain.Seed) int {
	index := c.addRow(seed)
	c.recompute()
	return index
}

// OnRowRemoved deletes a row and its fields. Removing an unknown row changes nothing.
func (c *Controller) OnRowRemoved(index int) error {
	if !c.rows.RemoveRow(index) {
		return fmt.Errorf("row %d: %w", index, apperrors.ErrNotFound)
	}
	delete(c.pending, index)
	for _, field := range []string{FieldProductID, FieldProductName, FieldQuantity, FieldUnitPrice, FieldSubtotal} {
		c.display.Remove(RowFieldName(field, index))
	}
	c.recompute()
	return nil
}

// OnProductSelected handles a pick in the row's product selector.
//
// Picking the custom entry (empty ID) turns the row into a custom item named ref.Name with a
// blank, editable price and returns a nil lookup. Picking a catalog product locks the price,
// hides the manual name and starts a lookup; the caller must pass the returned lookup to
// CompleteLookup once it is done.
func (c *Controller) OnProductSelected(ctx context.Context, index int, ref domain.ProductRef) (*PendingLookup, error) {
	row, ok := c.rows.Row(index)
	if !ok {
		return nil, fmt.Errorf("row %d: %w", index, apperrors.ErrNotFound)
	}

	if ref.IsCustom() {
		delete(c.pending, index)
		row.ProductID = ""
		row.ProductName = ref.Name
		row.UnitPrice.Valid = false
		row.State = domain.RowCustomEntry
		c.render(row)
		c.recompute()
		return nil, nil
	}

	row.ProductID = ref.ID
	if ref.Name != "" {
		row.ProductName = ref.Name
	}
	row.State = domain.RowCatalogSelected
	c.render(row)
	c.recompute()

	c.pending[index] = ref.ID
	return startLookup(ctx, c.lookup, index, ref.ID, c.timeout), nil
}

// CompleteLookup applies a finished lookup to its row. Results for rows that were removed or
// now reference a different product are dropped. It reports whether the result was applied.
func (c *Controller) CompleteLookup(p *PendingLookup) bool {
	row, ok := c.rows.Row(p.Index)
	if !ok || row.ProductID != p.ProductID {
		c.logger.Debug("Discarding stale product lookup",
			slog.Int("row_index", p.Index),
			slog.String("product_id", p.ProductID))
		return false
	}
	if c.pending[p.Index] == p.ProductID {
		delete(c.pending, p.Index)
	}

	res := p.Result()
	if res.Err != nil {
		c.logger.Error("Failed to fetch product price",
			slog.Int("row_index", p.Index),
			slog.String("product_id", p.ProductID),
			slog.String("error", res.Err.Error()))
		row.UnitPrice.Valid = false
	} else {
		row.ProductName = res.Product.Name
		row.UnitPrice.Decimal = res.Product.Price
		row.UnitPrice.Valid = true
	}

	c.render(row)
	c.recompute()
	return true
}

// OnProductCleared drops the row's product, name and price and makes them editable again.
func (c *Controller) OnProductCleared(index int) error {
	row, ok := c.rows.Row(index)
	if !ok {
		return fmt.Errorf("row %d: %w", index, apperrors.ErrNotFound)
	}
	delete(c.pending, index)
	row.ProductID = ""
	row.ProductName = ""
	row.UnitPrice.Valid = false
	row.State = domain.RowEmpty
	c.render(row)
	c.recompute()
	return nil
}

// OnFieldEdited stores a typed value for quantity, unit_price or product_name.
// Name and price edits on a row showing a catalog product are ignored, as those inputs are read-only.
func (c *Controller) OnFieldEdited(index int, field, value string) error {
	if !IsEditableRowField(field) {
		return fmt.Errorf("field %q is not editable: %w", field, apperrors.ErrValidation)
	}
	row, ok := c.rows.Row(index)
	if !ok {
		return fmt.Errorf("row %d: %w", index, apperrors.ErrNotFound)
	}

	switch field {
	case FieldQuantity:
		row.Quantity = amount.ParseAmount(value)
		c.display.SetValue(RowFieldName(FieldQuantity, index), value)
	case FieldUnitPrice:
		if row.PriceEditable() {
			row.UnitPrice = amount.ParseOptionalAmount(value)
			c.display.SetValue(RowFieldName(FieldUnitPrice, index), value)
			c.markCustom(row)
		}
	case FieldProductName:
		if !row.HasProduct() {
			row.ProductName = value
			c.display.SetValue(RowFieldName(FieldProductName, index), value)
			c.markCustom(row)
		}
	}

	c.recompute()
	return nil
}

// OnTotalsInputEdited stores a typed discount, manager discount or paid amount.
// An input the form does not render is ignored.
func (c *Controller) OnTotalsInputEdited(name, value string) error {
	id, ok := TotalsInputID(name)
	if !ok {
		return fmt.Errorf("totals input %q: %w", name, apperrors.ErrValidation)
	}
	c.display.SetValue(id, value)
	c.recompute()
	return nil
}

// Recompute refreshes subtotals and totals.
func (c *Controller) Recompute() domain.Totals {
	c.recompute()
	return c.totals
}

// Totals returns the totals from the last recompute.
func (c *Controller) Totals() domain.Totals {
	return c.totals
}

// Rows returns copies of the current line items in order.
func (c *Controller) Rows() []domain.LineItem {
	return c.rows.ListRows()
}

// Fields returns the rendered field tree.
func (c *Controller) Fields() []Field {
	return c.display.Fields()
}

// Field returns one rendered field.
func (c *Controller) Field(name string) (Field, bool) {
	return c.display.Field(name)
}

// PendingRows returns the indexes of rows awaiting a catalog lookup, ascending.
func (c *Controller) PendingRows() []int {
	out := make([]int, 0, len(c.pending))
	for index := range c.pending {
		out = append(out, index)
	}
	sort.Ints(out)
	return out
}

// State captures the whole form for rendering.
func (c *Controller) State() domain.FormState {
	return domain.FormState{
		Rows:        c.Rows(),
		Totals:      c.totals,
		Fields:      c.Fields(),
		PendingRows: c.PendingRows(),
	}
}

func (c *Controller) addRow(seed *domain.Seed) int {
	index := c.rows.AddRow(seed)
	row, _ := c.rows.Row(index)

	c.display.Add(RowFieldName(FieldProductID, index), "", false)
	c.display.Add(RowFieldName(FieldProductName, index), "", false)
	c.display.Add(RowFieldName(FieldQuantity, index), row.Quantity.String(), false)
	c.display.Add(RowFieldName(FieldUnitPrice, index), "", false)
	c.display.Add(RowFieldName(FieldSubtotal, index), "", true)
	c.render(row)
	return index
}

// render writes a row's model values and editability to its fields.
func (c *Controller) render(row *domain.LineItem) {
	c.display.SetValue(RowFieldName(FieldProductID, row.Index), row.ProductID)
	c.display.SetValue(RowFieldName(FieldProductName, row.Index), row.ProductName)
	c.display.SetValue(RowFieldName(FieldUnitPrice, row.Index), amount.FormatOptional(row.UnitPrice))

	locked := row.HasProduct()
	c.display.SetHidden(RowFieldName(FieldProductName, row.Index), locked)
	c.display.SetReadOnly(RowFieldName(FieldUnitPrice, row.Index), locked)
}

func (c *Controller) markCustom(row *domain.LineItem) {
	if row.State == domain.RowEmpty {
		row.State = domain.RowCustomEntry
	}
}

func (c *Controller) recompute() {
	c.totals = c.aggregator.Recompute()
}
