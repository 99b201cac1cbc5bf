package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/dto"
	"github.com/SscSPs/invoice_form_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// formHandler handles HTTP requests that drive an open invoice form.
type formHandler struct {
	formService portssvc.FormSvcFacade
}

func newFormHandler(fs portssvc.FormSvcFacade) *formHandler {
	return &formHandler{formService: fs}
}

// RegisterFormRoutes registers the invoice form routes. searchMiddleware guards the
// per-keystroke product search.
func RegisterFormRoutes(rg *gin.RouterGroup, formService portssvc.FormSvcFacade, searchMiddleware ...gin.HandlerFunc) {
	RegisterValidators()
	h := newFormHandler(formService)

	forms := rg.Group("/forms")
	{
		forms.POST("", h.createForm)
		forms.POST("/submission", h.decodeSubmission)
		forms.GET("/:formID", h.getForm)
		forms.DELETE("/:formID", h.closeForm)

		forms.POST("/:formID/rows", h.addRow)
		forms.PATCH("/:formID/rows/:index", h.editField)
		forms.DELETE("/:formID/rows/:index", h.removeRow)
		forms.PUT("/:formID/rows/:index/product", h.selectProduct)
		forms.DELETE("/:formID/rows/:index/product", h.clearProduct)

		forms.PATCH("/:formID/totals", h.editTotals)

		search := append(append([]gin.HandlerFunc{}, searchMiddleware...), h.searchProducts)
		forms.GET("/:formID/products/search", search...)
	}
}

// createForm godoc
// @Summary Open an invoice form
// @Description Opens a form seeded with the host page's line items. Without items the form starts with one blank row.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   form body dto.CreateFormRequest false "Initial line items and invoice-level inputs"
// @Success 201 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to open form"
// @Security BearerAuth
// @Router /forms [post]
func (h *formHandler) createForm(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("Failed to bind JSON for CreateForm", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	st, err := h.formService.CreateForm(c.Request.Context(), req)
	if err != nil {
		respondFormError(c, logger, err, "Failed to open form")
		return
	}

	logger.Info("Form opened successfully", slog.String("form_id", st.FormID), slog.Int("rows", len(st.Rows)))
	c.JSON(http.StatusCreated, dto.ToFormStateResponse(st))
}

// getForm godoc
// @Summary Get an invoice form
// @Description Renders the current rows, fields, totals and pending lookups of an open form
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Success 200 {object} dto.FormStateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /forms/{formID} [get]
func (h *formHandler) getForm(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)

	st, err := h.formService.GetForm(c.Request.Context(), formID)
	if err != nil {
		respondFormError(c, logger, err, "Failed to retrieve form")
		return
	}
	c.JSON(http.StatusOK, dto.ToFormStateResponse(st))
}

// closeForm godoc
// @Summary Close an invoice form
// @Description Stops the form's session and cancels its in-flight lookups
// @Tags forms
// @Param   formID path string true "Form ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /forms/{formID} [delete]
func (h *formHandler) closeForm(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)

	if err := h.formService.CloseForm(c.Request.Context(), formID); err != nil {
		respondFormError(c, logger, err, "Failed to close form")
		return
	}
	logger.Info("Form closed")
	c.Status(http.StatusNoContent)
}

// addRow godoc
// @Summary Add a line item
// @Description Appends a row. The body is optional; without it the row starts blank with quantity 1.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   row body dto.SeedRequest false "Initial row values"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /forms/{formID}/rows [post]
func (h *formHandler) addRow(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)

	var seed *domain.Seed
	var req dto.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Warn("Failed to bind JSON for AddRow", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	} else {
		s := req.ToSeed()
		seed = &s
	}

	h.respondState(c, logger, "Failed to add row", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.AddRow(ctx, formID, seed)
	})
}

// removeRow godoc
// @Summary Remove a line item
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   index path int true "Row index"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid row index"
// @Failure 404 {object} map[string]string "Form or row not found"
// @Security BearerAuth
// @Router /forms/{formID}/rows/{index} [delete]
func (h *formHandler) removeRow(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)
	index, ok := rowIndex(c, logger)
	if !ok {
		return
	}

	h.respondState(c, logger, "Failed to remove row", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.RemoveRow(ctx, formID, index)
	})
}

// selectProduct godoc
// @Summary Pick a product for a row
// @Description Applies a product selection. A catalog pick starts a price lookup that completes in the background; its row is listed in pendingRows until then. An empty id picks the custom item.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   index path int true "Row index"
// @Param   product body dto.SelectProductRequest true "Selected product"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Form or row not found"
// @Security BearerAuth
// @Router /forms/{formID}/rows/{index}/product [put]
func (h *formHandler) selectProduct(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)
	index, ok := rowIndex(c, logger)
	if !ok {
		return
	}

	var req dto.SelectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SelectProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	logger.Debug("Product selected", slog.Int("row", index), slog.String("product_id", req.ID))

	h.respondState(c, logger, "Failed to select product", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.SelectProduct(ctx, formID, index, domain.ProductRef{ID: req.ID, Name: req.Name})
	})
}

// clearProduct godoc
// @Summary Clear a row's product
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   index path int true "Row index"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid row index"
// @Failure 404 {object} map[string]string "Form or row not found"
// @Security BearerAuth
// @Router /forms/{formID}/rows/{index}/product [delete]
func (h *formHandler) clearProduct(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)
	index, ok := rowIndex(c, logger)
	if !ok {
		return
	}

	h.respondState(c, logger, "Failed to clear product", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.ClearProduct(ctx, formID, index)
	})
}

// editField godoc
// @Summary Edit a row input
// @Description Stores a typed quantity, unit_price or product_name. Name and price edits on a row showing a catalog product are ignored.
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   index path int true "Row index"
// @Param   edit body dto.EditFieldRequest true "Field and raw value"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid field"
// @Failure 404 {object} map[string]string "Form or row not found"
// @Security BearerAuth
// @Router /forms/{formID}/rows/{index} [patch]
func (h *formHandler) editField(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)
	index, ok := rowIndex(c, logger)
	if !ok {
		return
	}

	var req dto.EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditField", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.respondState(c, logger, "Failed to edit field", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.EditField(ctx, formID, index, req.Field, req.Value)
	})
}

// editTotals godoc
// @Summary Edit an invoice-level input
// @Description Stores a typed discount, manager_discount or amount_paid and recomputes the totals
// @Tags forms
// @Accept  json
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   edit body dto.EditTotalsRequest true "Input and raw value"
// @Success 200 {object} dto.FormStateResponse
// @Failure 400 {object} map[string]string "Invalid input name"
// @Failure 404 {object} map[string]string "Form not found"
// @Security BearerAuth
// @Router /forms/{formID}/totals [patch]
func (h *formHandler) editTotals(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)

	var req dto.EditTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTotals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.respondState(c, logger, "Failed to edit totals", func(ctx context.Context) (*domain.FormState, error) {
		return h.formService.EditTotalsInput(ctx, formID, req.Field, req.Value)
	})
}

// searchProducts godoc
// @Summary Product type-ahead for a form
// @Description Debounced catalog search. A request overtaken by a newer one from the same form gets 409.
// @Tags forms
// @Produce  json
// @Param   formID path string true "Form ID"
// @Param   q query string true "Search term"
// @Success 200 {object} dto.AutocompleteResponse
// @Failure 404 {object} map[string]string "Form not found"
// @Failure 409 {object} map[string]string "Superseded by a newer search"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Security BearerAuth
// @Router /forms/{formID}/products/search [get]
func (h *formHandler) searchProducts(c *gin.Context) {
	formID := c.Param("formID")
	logger := formLogger(c, formID)

	products, err := h.formService.SearchProducts(c.Request.Context(), formID, c.Query("q"))
	if err != nil {
		respondFormError(c, logger, err, "Failed to search products")
		return
	}
	c.JSON(http.StatusOK, dto.ToAutocompleteResponse(products))
}

// decodeSubmission godoc
// @Summary Decode a posted invoice form
// @Description Reads urlencoded row fields (product_id_N, quantity_N, unit_price_N, ...) and invoice-level inputs into line items with recomputed totals
// @Tags forms
// @Accept  application/x-www-form-urlencoded
// @Produce  json
// @Success 200 {object} dto.SubmissionResponse
// @Failure 400 {object} map[string]string "Malformed form body"
// @Security BearerAuth
// @Router /forms/submission [post]
func (h *formHandler) decodeSubmission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := c.Request.ParseForm(); err != nil {
		logger.Warn("Failed to parse submitted form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form body: " + err.Error()})
		return
	}

	sub, err := h.formService.DecodeSubmission(c.Request.Context(), c.Request.PostForm)
	if err != nil {
		respondFormError(c, logger, err, "Failed to decode submission")
		return
	}
	logger.Info("Invoice submission decoded", slog.Int("items", len(sub.Items)))
	c.JSON(http.StatusOK, dto.ToSubmissionResponse(sub))
}

func (h *formHandler) respondState(c *gin.Context, logger *slog.Logger, failure string, event func(ctx context.Context) (*domain.FormState, error)) {
	st, err := event(c.Request.Context())
	if err != nil {
		respondFormError(c, logger, err, failure)
		return
	}
	c.JSON(http.StatusOK, dto.ToFormStateResponse(st))
}

func formLogger(c *gin.Context, formID string) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("form_id", formID))
	c.Request = c.Request.WithContext(middleware.WithLogger(c.Request.Context(), logger))
	return logger
}

func rowIndex(c *gin.Context, logger *slog.Logger) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		logger.Warn("Invalid row index", slog.String("index", c.Param("index")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row index"})
		return 0, false
	}
	return index, true
}

// respondFormError maps service errors onto HTTP statuses.
func respondFormError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Form or row not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSuperseded):
		logger.Debug("Search superseded")
		c.JSON(http.StatusConflict, gin.H{"error": "Superseded by a newer search"})
	case errors.Is(err, apperrors.ErrSessionClosed):
		logger.Warn("Form session closed", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Form is closed"})
	case errors.Is(err, apperrors.ErrLookupFailed):
		logger.Warn("Catalog request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog unavailable"})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}
