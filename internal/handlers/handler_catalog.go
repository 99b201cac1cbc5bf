package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/dto"
	"github.com/SscSPs/invoice_form_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// catalogHandler serves the product catalog the form's lookups and type-ahead consume.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// RegisterCatalogRoutes registers the product catalog routes.
func RegisterCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade, searchMiddleware ...gin.HandlerFunc) {
	h := newCatalogHandler(catalogService)

	products := rg.Group("/products")
	{
		autocomplete := append(append([]gin.HandlerFunc{}, searchMiddleware...), h.autocomplete)
		products.GET("/autocomplete", autocomplete...)
		products.GET("/:productID", h.getProduct)
	}
}

// getProduct godoc
// @Summary Get a product's name and price
// @Description Price lookup used when a product is picked on an invoice row
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductPriceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *catalogHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")
	logger = logger.With(slog.String("product_id", productID))

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Product not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			logger.Error("Failed to get product from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToProductPriceResponse(product))
}

// autocomplete godoc
// @Summary Product autocomplete
// @Description Case-insensitive match on product name or item code, ordered by name, at most 20 results
// @Tags products
// @Produce  json
// @Param   q query string false "Search term"
// @Success 200 {object} dto.AutocompleteResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to search products"
// @Security BearerAuth
// @Router /products/autocomplete [get]
func (h *catalogHandler) autocomplete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	term := c.Query("q")

	products, err := h.catalogService.Autocomplete(c.Request.Context(), term)
	if err != nil {
		logger.Error("Failed to search products from service", slog.String("error", err.Error()), slog.String("term", term))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
		return
	}

	logger.Debug("Autocomplete served", slog.String("term", term), slog.Int("count", len(products)))
	c.JSON(http.StatusOK, dto.ToAutocompleteResponse(products))
}
