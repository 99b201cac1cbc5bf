package services

import (
	"context"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
)

// ProductLookupSvc resolves catalog products for the invoice form.
// Implementations talk to a remote catalog and may fail; failures wrap apperrors.ErrLookupFailed.
type ProductLookupSvc interface {
	// Lookup retrieves the canonical name and unit price of a product.
	Lookup(ctx context.Context, productID string) (domain.Product, error)
}

// ProductSearchSvc backs the incremental product type-ahead.
type ProductSearchSvc interface {
	// Search returns catalog products matching term.
	Search(ctx context.Context, term string) ([]domain.Product, error)
}

// ProductCatalogClient combines lookup and search against the remote catalog
type ProductCatalogClient interface {
	ProductLookupSvc
	ProductSearchSvc
}

// CatalogSvcFacade serves the product catalog consumed by ProductCatalogClient.
type CatalogSvcFacade interface {
	// GetProduct retrieves a single product for price lookup.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// Autocomplete returns at most AutocompleteLimit products matching term.
	Autocomplete(ctx context.Context, term string) ([]domain.Product, error)
}

// AutocompleteLimit caps the number of products returned by one autocomplete query.
const AutocompleteLimit = 20
