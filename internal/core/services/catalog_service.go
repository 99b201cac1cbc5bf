package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_form_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
)

type catalogService struct {
	BaseService
	productRepo portsrepo.ProductReader
}

// NewCatalogService creates the service that serves product price lookups and autocomplete.
func NewCatalogService(productRepo portsrepo.ProductReader) portssvc.CatalogSvcFacade {
	return &catalogService{productRepo: productRepo}
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product", slog.String("product_id", productID))
		}
		return nil, fmt.Errorf("failed to get product in service: %w", err)
	}
	return product, nil
}

func (s *catalogService) Autocomplete(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.productRepo.SearchProducts(ctx, strings.TrimSpace(term), portssvc.AutocompleteLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search products", slog.String("term", term))
		return nil, fmt.Errorf("failed to search products in service: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}
