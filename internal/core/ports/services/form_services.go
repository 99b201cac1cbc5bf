package services

import (
	"context"
	"net/url"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/dto"
)

// FormReaderSvc defines read operations on open invoice forms
type FormReaderSvc interface {
	// GetForm renders the current state of an open form.
	GetForm(ctx context.Context, formID string) (*domain.FormState, error)

	// SearchProducts runs the form's debounced product type-ahead.
	SearchProducts(ctx context.Context, formID string, term string) ([]domain.Product, error)

	// DecodeSubmission reads a posted invoice form back into line items and totals.
	DecodeSubmission(ctx context.Context, values url.Values) (*domain.InvoiceSubmission, error)
}

// FormWriterSvc defines the events that change an open invoice form
type FormWriterSvc interface {
	// CreateForm opens a form seeded with the host page's line items.
	CreateForm(ctx context.Context, req dto.CreateFormRequest) (*domain.FormState, error)

	// CloseForm stops a form's session and forgets it.
	CloseForm(ctx context.Context, formID string) error

	AddRow(ctx context.Context, formID string, seed *domain.Seed) (*domain.FormState, error)
	RemoveRow(ctx context.Context, formID string, index int) (*domain.FormState, error)

	// SelectProduct applies a product pick; the catalog lookup completes in the background.
	SelectProduct(ctx context.Context, formID string, index int, ref domain.ProductRef) (*domain.FormState, error)
	ClearProduct(ctx context.Context, formID string, index int) (*domain.FormState, error)

	EditField(ctx context.Context, formID string, index int, field, value string) (*domain.FormState, error)
	EditTotalsInput(ctx context.Context, formID string, field, value string) (*domain.FormState, error)
}

// FormSvcFacade combines all form-related service interfaces
type FormSvcFacade interface {
	FormReaderSvc
	FormWriterSvc
}
