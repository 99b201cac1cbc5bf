package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_form_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_form_app/internal/dto"
	"github.com/SscSPs/invoice_form_app/internal/handlers"
	"github.com/SscSPs/invoice_form_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FormService ---
type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) state(args mock.Arguments) (*domain.FormState, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FormState), args.Error(1)
}

func (m *MockFormService) CreateForm(ctx context.Context, req dto.CreateFormRequest) (*domain.FormState, error) {
	return m.state(m.Called(ctx, req))
}
func (m *MockFormService) GetForm(ctx context.Context, formID string) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID))
}
func (m *MockFormService) CloseForm(ctx context.Context, formID string) error {
	return m.Called(ctx, formID).Error(0)
}
func (m *MockFormService) AddRow(ctx context.Context, formID string, seed *domain.Seed) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, seed))
}
func (m *MockFormService) RemoveRow(ctx context.Context, formID string, index int) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, index))
}
func (m *MockFormService) SelectProduct(ctx context.Context, formID string, index int, ref domain.ProductRef) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, index, ref))
}
func (m *MockFormService) ClearProduct(ctx context.Context, formID string, index int) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, index))
}
func (m *MockFormService) EditField(ctx context.Context, formID string, index int, field, value string) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, index, field, value))
}
func (m *MockFormService) EditTotalsInput(ctx context.Context, formID string, field, value string) (*domain.FormState, error) {
	return m.state(m.Called(ctx, formID, field, value))
}
func (m *MockFormService) SearchProducts(ctx context.Context, formID string, term string) ([]domain.Product, error) {
	args := m.Called(ctx, formID, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockFormService) DecodeSubmission(ctx context.Context, values url.Values) (*domain.InvoiceSubmission, error) {
	args := m.Called(ctx, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSubmission), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.FormSvcFacade = (*MockFormService)(nil)

// --- Test Suite Setup ---
type FormHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockFormService
	jwtSecret   string
}

func (suite *FormHandlerTestSuite) generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *FormHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockService = new(MockFormService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterFormRoutes(v1, suite.mockService)
}

func (suite *FormHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("host-page"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleState(formID string) *domain.FormState {
	return &domain.FormState{
		FormID: formID,
		Rows: []domain.LineItem{{
			Index:       1,
			ProductName: "Widget",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewNullDecimal(decimal.RequireFromString("5.25")),
			Subtotal:    decimal.RequireFromString("10.5"),
			State:       domain.RowCustomEntry,
		}},
		Totals: domain.Totals{
			SubtotalSum:     decimal.RequireFromString("10.5"),
			Total:           decimal.RequireFromString("10.5"),
			AmountRemaining: decimal.RequireFromString("10.5"),
		},
		Fields: []domain.FormField{{Name: "subtotal_1", Value: "10.50", ReadOnly: true}},
	}
}

func (suite *FormHandlerTestSuite) decodeState(w *httptest.ResponseRecorder) dto.FormStateResponse {
	var resp dto.FormStateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Test Cases ---

func (suite *FormHandlerTestSuite) TestCreateForm_Success() {
	body := map[string]any{
		"items": []map[string]any{
			{"productName": "Widget", "quantity": 2, "unitPrice": "5.25"},
		},
		"discount": "1",
	}
	suite.mockService.On("CreateForm", mock.Anything, mock.MatchedBy(func(req dto.CreateFormRequest) bool {
		return len(req.Items) == 1 &&
			req.Items[0].Quantity.Decimal.Equal(decimal.NewFromInt(2)) &&
			req.Items[0].UnitPrice.Decimal.Equal(decimal.RequireFromString("5.25")) &&
			req.Discount == "1"
	})).Return(sampleState("f1"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/forms", body)

	suite.Equal(http.StatusCreated, w.Code)
	resp := suite.decodeState(w)
	suite.Equal("f1", resp.FormID)
	suite.Require().Len(resp.Rows, 1)
	suite.Equal("5.25", resp.Rows[0].UnitPrice)
	suite.Equal("10.50", resp.Rows[0].Subtotal)
	suite.Equal("10.50", resp.Totals.Total)
	suite.Equal([]int{}, resp.PendingRows)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestCreateForm_EmptyBody() {
	suite.mockService.On("CreateForm", mock.Anything, dto.CreateFormRequest{}).Return(sampleState("f2"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/forms", nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestCreateForm_Unauthorized() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateForm", mock.Anything, mock.Anything)
}

func (suite *FormHandlerTestSuite) TestGetForm_ErrorMapping() {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: apperrors.NewAppError(404, "form not found", apperrors.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "closed", err: fmt.Errorf("read: %w", apperrors.ErrSessionClosed), wantStatus: http.StatusConflict},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			suite.mockService.On("GetForm", mock.Anything, "f1").Return(nil, tc.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/forms/f1", nil)

			suite.Equal(tc.wantStatus, w.Code)
		})
	}
}

func (suite *FormHandlerTestSuite) TestCloseForm() {
	suite.mockService.On("CloseForm", mock.Anything, "f1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/forms/f1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestAddRow() {
	suite.mockService.On("AddRow", mock.Anything, "f1", (*domain.Seed)(nil)).Return(sampleState("f1"), nil).Once()
	w := suite.do(http.MethodPost, "/api/v1/forms/f1/rows", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.mockService.On("AddRow", mock.Anything, "f1", mock.MatchedBy(func(seed *domain.Seed) bool {
		return seed != nil && seed.ProductName == "Gadget" && !seed.UnitPrice.Valid
	})).Return(sampleState("f1"), nil).Once()
	w = suite.do(http.MethodPost, "/api/v1/forms/f1/rows", map[string]any{"productName": "Gadget", "unitPrice": ""})
	suite.Equal(http.StatusOK, w.Code)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestRemoveRow_InvalidIndex() {
	for _, index := range []string{"abc", "0", "-1"} {
		w := suite.do(http.MethodDelete, "/api/v1/forms/f1/rows/"+index, nil)
		suite.Equal(http.StatusBadRequest, w.Code, index)
	}
	suite.mockService.AssertNotCalled(suite.T(), "RemoveRow", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FormHandlerTestSuite) TestRemoveRow_UnknownRow() {
	suite.mockService.On("RemoveRow", mock.Anything, "f1", 9).
		Return(nil, fmt.Errorf("row 9: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/forms/f1/rows/9", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FormHandlerTestSuite) TestSelectAndClearProduct() {
	st := sampleState("f1")
	st.PendingRows = []int{1}
	suite.mockService.On("SelectProduct", mock.Anything, "f1", 1, domain.ProductRef{ID: "42", Name: "Bolt"}).
		Return(st, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/forms/f1/rows/1/product", dto.SelectProductRequest{ID: "42", Name: "Bolt"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal([]int{1}, suite.decodeState(w).PendingRows)

	suite.mockService.On("ClearProduct", mock.Anything, "f1", 1).Return(sampleState("f1"), nil).Once()
	w = suite.do(http.MethodDelete, "/api/v1/forms/f1/rows/1/product", nil)
	suite.Equal(http.StatusOK, w.Code)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestEditField() {
	suite.mockService.On("EditField", mock.Anything, "f1", 1, "quantity", "3").Return(sampleState("f1"), nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/forms/f1/rows/1", dto.EditFieldRequest{Field: "quantity", Value: "3"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestEditField_RejectsUnknownField() {
	for _, field := range []string{"subtotal", "product_id", ""} {
		w := suite.do(http.MethodPatch, "/api/v1/forms/f1/rows/1", dto.EditFieldRequest{Field: field, Value: "3"})
		suite.Equal(http.StatusBadRequest, w.Code, field)
	}
	suite.mockService.AssertNotCalled(suite.T(), "EditField", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FormHandlerTestSuite) TestEditTotals() {
	suite.mockService.On("EditTotalsInput", mock.Anything, "f1", "amount_paid", "4").Return(sampleState("f1"), nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/forms/f1/totals", dto.EditTotalsRequest{Field: "amount_paid", Value: "4"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPatch, "/api/v1/forms/f1/totals", dto.EditTotalsRequest{Field: "tax", Value: "4"})
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *FormHandlerTestSuite) TestSearchProducts() {
	testCases := []struct {
		name       string
		products   []domain.Product
		err        error
		wantStatus int
	}{
		{name: "results", products: []domain.Product{{ID: "7", Name: "Bolt", Price: decimal.RequireFromString("0.35")}}, wantStatus: http.StatusOK},
		{name: "superseded", err: apperrors.ErrSuperseded, wantStatus: http.StatusConflict},
		{name: "catalog down", err: fmt.Errorf("search: %w", apperrors.ErrLookupFailed), wantStatus: http.StatusBadGateway},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			if tc.err != nil {
				suite.mockService.On("SearchProducts", mock.Anything, "f1", "bol").Return(nil, tc.err).Once()
			} else {
				suite.mockService.On("SearchProducts", mock.Anything, "f1", "bol").Return(tc.products, nil).Once()
			}

			w := suite.do(http.MethodGet, "/api/v1/forms/f1/products/search?q=bol", nil)

			suite.Equal(tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				var resp dto.AutocompleteResponse
				suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				suite.Require().Len(resp.Results, 1)
				suite.Equal("0.35", resp.Results[0].Price)
				suite.Equal("Bolt", resp.Results[0].Text)
			}
		})
	}
}

func (suite *FormHandlerTestSuite) TestDecodeSubmission() {
	values := url.Values{"quantity_1": {"2"}, "unit_price_1": {"5"}, "product_name_1": {"Widget"}}
	sub := &domain.InvoiceSubmission{
		Items:  sampleState("").Rows,
		Totals: domain.Totals{Total: decimal.NewFromInt(10)},
	}
	suite.mockService.On("DecodeSubmission", mock.Anything, values).Return(sub, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/forms/submission", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("host-page"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SubmissionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("10.00", resp.Totals.Total)
	suite.Len(resp.Items, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func TestFormHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FormHandlerTestSuite))
}
