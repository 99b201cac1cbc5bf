package dto

import (
	"bytes"
	"encoding/json"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/utils/amount"
	"github.com/shopspring/decimal"
)

// OptionalAmount is a lenient JSON amount: it accepts numbers, numeric strings, "" and null.
// Blank and null leave it unset; anything unparsable counts as zero.
type OptionalAmount struct {
	decimal.NullDecimal
}

func (a *OptionalAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		s = string(b)
	}
	a.NullDecimal = amount.ParseOptionalAmount(s)
	return nil
}

// SeedRequest is one initial line item supplied by the host page.
type SeedRequest struct {
	ProductID   string         `json:"productID"`
	ProductName string         `json:"productName"`
	Quantity    OptionalAmount `json:"quantity"`
	UnitPrice   OptionalAmount `json:"unitPrice"`
}

// ToSeed converts the request into a domain seed.
func (r SeedRequest) ToSeed() domain.Seed {
	return domain.Seed{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity.NullDecimal,
		UnitPrice:   r.UnitPrice.NullDecimal,
	}
}

// CreateFormRequest opens a new invoice form. With no items the form starts with one blank row.
type CreateFormRequest struct {
	Items           []SeedRequest `json:"items"`
	Discount        string        `json:"discount"`
	ManagerDiscount string        `json:"managerDiscount"`
	AmountPaid      string        `json:"amountPaid"`
}

// Seeds converts all items into domain seeds, preserving order.
func (r CreateFormRequest) Seeds() []domain.Seed {
	seeds := make([]domain.Seed, len(r.Items))
	for i, item := range r.Items {
		seeds[i] = item.ToSeed()
	}
	return seeds
}

// SelectProductRequest is a pick in a row's product selector. An empty ID picks the custom item.
type SelectProductRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EditFieldRequest is a typed value in one of a row's inputs.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required,formfield"`
	Value string `json:"value"`
}

// EditTotalsRequest is a typed discount, manager discount or paid amount.
type EditTotalsRequest struct {
	Field string `json:"field" binding:"required,totalsfield"`
	Value string `json:"value"`
}

// LineItemResponse defines the data returned for one row.
type LineItemResponse struct {
	Index       int    `json:"index"`
	ProductID   string `json:"productID"`
	ProductName string `json:"productName"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
	State       string `json:"state"`
}

// TotalsResponse defines the invoice-level amounts, formatted to two places.
type TotalsResponse struct {
	SubtotalSum     string `json:"subtotalSum"`
	Discount        string `json:"discount"`
	ManagerDiscount string `json:"managerDiscount"`
	AmountPaid      string `json:"amountPaid"`
	Total           string `json:"total"`
	AmountRemaining string `json:"amountRemaining"`
}

// FormStateResponse defines the data returned after every form event.
type FormStateResponse struct {
	FormID      string             `json:"formID"`
	Rows        []LineItemResponse `json:"rows"`
	Totals      TotalsResponse     `json:"totals"`
	Fields      []domain.FormField `json:"fields"`
	PendingRows []int              `json:"pendingRows"`
}

// SubmissionResponse defines the decoded content of a posted invoice form.
type SubmissionResponse struct {
	Items  []LineItemResponse `json:"items"`
	Totals TotalsResponse     `json:"totals"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO
func ToLineItemResponse(li domain.LineItem) LineItemResponse {
	return LineItemResponse{
		Index:       li.Index,
		ProductID:   li.ProductID,
		ProductName: li.ProductName,
		Quantity:    li.Quantity.String(),
		UnitPrice:   amount.FormatOptional(li.UnitPrice),
		Subtotal:    amount.Format(li.Subtotal),
		State:       string(li.State),
	}
}

// ToLineItemResponses converts a slice of domain.LineItem to []LineItemResponse.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	res := make([]LineItemResponse, len(items))
	for i, li := range items {
		res[i] = ToLineItemResponse(li)
	}
	return res
}

// ToTotalsResponse converts domain.Totals to TotalsResponse DTO
func ToTotalsResponse(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		SubtotalSum:     amount.Format(t.SubtotalSum),
		Discount:        amount.Format(t.Discount),
		ManagerDiscount: amount.Format(t.ManagerDiscount),
		AmountPaid:      amount.Format(t.AmountPaid),
		Total:           amount.Format(t.Total),
		AmountRemaining: amount.Format(t.AmountRemaining),
	}
}

// ToFormStateResponse converts a domain.FormState to FormStateResponse DTO
func ToFormStateResponse(st *domain.FormState) FormStateResponse {
	pending := st.PendingRows
	if pending == nil {
		pending = []int{}
	}
	fields := st.Fields
	if fields == nil {
		fields = []domain.FormField{}
	}
	return FormStateResponse{
		FormID:      st.FormID,
		Rows:        ToLineItemResponses(st.Rows),
		Totals:      ToTotalsResponse(st.Totals),
		Fields:      fields,
		PendingRows: pending,
	}
}

// ToSubmissionResponse converts a domain.InvoiceSubmission to SubmissionResponse DTO
func ToSubmissionResponse(sub *domain.InvoiceSubmission) SubmissionResponse {
	return SubmissionResponse{
		Items:  ToLineItemResponses(sub.Items),
		Totals: ToTotalsResponse(sub.Totals),
	}
}
