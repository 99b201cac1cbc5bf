package form_test

import (
	"net/url"
	"testing"

	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	"github.com/SscSPs/invoice_form_app/internal/core/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubmission(t *testing.T) {
	values := url.Values{}
	values.Set("product_id_4", "")
	values.Set("product_name_4", "Delivery")
	values.Set("quantity_4", "1")
	values.Set("unit_price_4", "7.50")
	values.Set("product_id_0", "12")
	values.Set("product_name_0", "Lamp")
	values.Set("quantity_0", "2")
	values.Set("unit_price_0", "5.00")
	values.Set("subtotal_0", "999.00")
	values.Set("quantity_2", "1")
	values.Set("unit_price_2", "")
	values.Set(form.DiscountInputID, "1.00")
	values.Set(form.AmountPaidInputID, "10")
	values.Set(form.TotalDisplayID, "123")
	values.Set("csrfmiddlewaretoken", "x")

	sub := form.DecodeSubmission(values)

	require.Len(t, sub.Items, 2)
	assert.Equal(t, 0, sub.Items[0].Index)
	assert.Equal(t, domain.RowCatalogSelected, sub.Items[0].State)
	assert.Equal(t, "10.00", sub.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, 4, sub.Items[1].Index)
	assert.Equal(t, domain.RowCustomEntry, sub.Items[1].State)
	assert.Equal(t, "17.50", sub.Totals.SubtotalSum.StringFixed(2))
	assert.Equal(t, "16.50", sub.Totals.Total.StringFixed(2))
	assert.Equal(t, "6.50", sub.Totals.AmountRemaining.StringFixed(2))
}

func TestDecodeSubmission_Empty(t *testing.T) {
	sub := form.DecodeSubmission(url.Values{})
	assert.Empty(t, sub.Items)
	assert.True(t, sub.Totals.Total.IsZero())
}

func TestDecodeSubmission_Quantity(t *testing.T) {
	testCases := []struct {
		name     string
		quantity string
		want     string
	}{
		{name: "blank defaults to one", quantity: "", want: "10.00"},
		{name: "letters count as zero", quantity: "abc", want: "0.00"},
		{name: "zero stays zero", quantity: "0", want: "0.00"},
		{name: "negative counts as zero", quantity: "-2", want: "0.00"},
		{name: "entered value", quantity: "3", want: "30.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			values.Set("product_name_1", "Widget")
			values.Set("unit_price_1", "10.00")
			values.Set("quantity_1", tc.quantity)

			sub := form.DecodeSubmission(values)

			require.Len(t, sub.Items, 1)
			assert.Equal(t, tc.want, sub.Items[0].Subtotal.StringFixed(2))
			assert.Equal(t, tc.want, sub.Totals.Total.StringFixed(2))
		})
	}
}

func TestDecodeSubmission_SignedIndexIsIgnored(t *testing.T) {
	values := url.Values{}
	values.Set("product_name_3", "Widget")
	values.Set("quantity_3", "2")
	values.Set("unit_price_3", "4")
	values.Set("quantity_+3", "9")

	sub := form.DecodeSubmission(values)

	require.Len(t, sub.Items, 1)
	assert.Equal(t, "8.00", sub.Totals.Total.StringFixed(2))
}
