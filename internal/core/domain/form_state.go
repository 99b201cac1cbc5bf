package domain

// FormField is one rendered control of the invoice form, addressed by its submitted name.
type FormField struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	ReadOnly bool   `json:"readOnly"`
	Hidden   bool   `json:"hidden"`
}

// FormState is a point-in-time copy of an open invoice form.
type FormState struct {
	FormID      string      `json:"formID"`
	Rows        []LineItem  `json:"rows"`
	Totals      Totals      `json:"totals"`
	Fields      []FormField `json:"fields"`
	PendingRows []int       `json:"pendingRows"` // Rows whose catalog lookup has not returned yet
}

// InvoiceSubmission is a posted invoice form decoded into line items and recomputed totals.
type InvoiceSubmission struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}
