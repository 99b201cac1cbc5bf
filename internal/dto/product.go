package dto

import (
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/utils/amount"
)

// ProductPriceResponse is the body of a single product lookup.
type ProductPriceResponse struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// AutocompleteResult is one type-ahead suggestion.
type AutocompleteResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Price    string `json:"price"`
	ItemCode string `json:"item_code,omitempty"`
	Quantity int    `json:"quantity"`
}

// AutocompleteResponse wraps suggestions the way select-style widgets expect them.
type AutocompleteResponse struct {
	Results []AutocompleteResult `json:"results"`
}

// ToProductPriceResponse converts a domain.Product to ProductPriceResponse DTO
func ToProductPriceResponse(p *domain.Product) ProductPriceResponse {
	return ProductPriceResponse{
		Name:  p.Name,
		Price: amount.Format(p.Price),
	}
}

// ToAutocompleteResponse converts products into autocomplete suggestions.
func ToAutocompleteResponse(products []domain.Product) AutocompleteResponse {
	results := make([]AutocompleteResult, len(products))
	for i, p := range products {
		results[i] = AutocompleteResult{
			ID:       p.ID,
			Name:     p.Name,
			Text:     p.Name,
			Price:    amount.Format(p.Price),
			ItemCode: p.ItemCode,
			Quantity: p.Quantity,
		}
	}
	return AutocompleteResponse{Results: results}
}
