package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/core/form"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, lookup *MockProductLookup, seeds ...domain.Seed) *form.Session {
	t.Helper()
	ctrl := form.NewController(lookup)
	ctrl.Init(seeds)
	s := form.NewSession(context.Background(), "test-form", ctrl, lookup, nil)
	s.Start()
	t.Cleanup(s.Close)
	return s
}

func fieldValue(st domain.FormState, name string) string {
	for _, f := range st.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestSession_LookupCompletesOnLoop(t *testing.T) {
	lookup := new(MockProductLookup)
	lookup.On("Lookup", mock.Anything, "42").
		Return(domain.Product{ID: "42", Name: "Oak table", Price: decimal.RequireFromString("99.99")}, nil).Once()
	s := newTestSession(t, lookup, seed(2, ""))
	ctx := context.Background()

	require.NoError(t, s.SelectProduct(ctx, 0, domain.ProductRef{ID: "42"}))

	require.Eventually(t, func() bool {
		st, err := s.State(ctx)
		return err == nil && len(st.PendingRows) == 0 && fieldValue(st, "unit_price_0") == "99.99"
	}, time.Second, 5*time.Millisecond)

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "199.98", fieldValue(st, form.TotalDisplayID))
	assert.Equal(t, "Oak table", st.Rows[0].ProductName)
	lookup.AssertExpectations(t)
}

func TestSession_ClearBeforeLookupReturns(t *testing.T) {
	release := make(chan struct{})
	lookup := new(MockProductLookup)
	lookup.On("Lookup", mock.Anything, "42").Run(func(mock.Arguments) {
		<-release
	}).Return(domain.Product{ID: "42", Name: "Oak", Price: decimal.NewFromInt(50)}, nil).Once()
	s := newTestSession(t, lookup)
	ctx := context.Background()

	require.NoError(t, s.SelectProduct(ctx, 0, domain.ProductRef{ID: "42"}))
	require.NoError(t, s.ClearProduct(ctx, 0))
	close(release)

	// Give the stale completion a chance to reach the loop.
	assert.Never(t, func() bool {
		st, err := s.State(ctx)
		return err != nil || fieldValue(st, "unit_price_0") != ""
	}, 100*time.Millisecond, 5*time.Millisecond)
}

func TestSession_RowOperations(t *testing.T) {
	s := newTestSession(t, new(MockProductLookup))
	ctx := context.Background()

	index, err := s.AddRow(ctx, &domain.Seed{ProductName: "Fabric", Quantity: decimal.NewNullDecimal(decimal.NewFromInt(3)), UnitPrice: decimal.NewNullDecimal(decimal.NewFromInt(10))})
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	require.NoError(t, s.EditField(ctx, 0, form.FieldUnitPrice, "2.50"))
	require.NoError(t, s.EditTotalsInput(ctx, form.TotalsAmountPaid, "5"))

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "30.00", fieldValue(st, "subtotal_1"))
	assert.Equal(t, "32.50", fieldValue(st, form.TotalDisplayID))
	assert.Equal(t, "27.50", fieldValue(st, form.AmountRemainingDisplayID))

	require.NoError(t, s.RemoveRow(ctx, 1))
	assert.ErrorIs(t, s.RemoveRow(ctx, 1), apperrors.ErrNotFound)
}

func TestSession_SearchUsesSearcher(t *testing.T) {
	lookup := new(MockProductLookup)
	lookup.On("Search", mock.Anything, "oak").Return([]domain.Product{{ID: "1", Name: "Oak"}}, nil).Once()
	s := newTestSession(t, lookup)

	products, err := s.SearchProducts(context.Background(), "oak")
	require.NoError(t, err)
	assert.Len(t, products, 1)
	lookup.AssertExpectations(t)
}

func TestSession_ClosedSessionRejectsEvents(t *testing.T) {
	ctrl := form.NewController(new(MockProductLookup))
	ctrl.Init(nil)
	s := form.NewSession(context.Background(), "closed", ctrl, nil, nil)
	s.Start()
	s.Close()
	s.Close()

	_, err := s.State(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrSessionClosed)
	_, err = s.SearchProducts(context.Background(), "x")
	assert.ErrorIs(t, err, apperrors.ErrSessionClosed)
}

func TestSession_CloseWithoutStart(t *testing.T) {
	ctrl := form.NewController(new(MockProductLookup))
	s := form.NewSession(context.Background(), "never-started", ctrl, nil, nil)

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on a session that was never started")
	}
}
