package repositories

import (
	"context"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
)

// ProductReader defines read operations on the product catalog.
type ProductReader interface {
	// FindProductByID retrieves a product by its identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// SearchProducts returns products whose name or item code contains term, ordered by name.
	SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
}
