package handlers

import (
	"sync"

	"github.com/SscSPs/invoice_form_app/internal/core/form"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the form's binding tags to gin's validator:
// "formfield" for editable row inputs and "totalsfield" for invoice-level inputs.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("formfield", func(fl validator.FieldLevel) bool {
			return form.IsEditableRowField(fl.Field().String())
		})
		_ = v.RegisterValidation("totalsfield", func(fl validator.FieldLevel) bool {
			_, ok := form.TotalsInputID(fl.Field().String())
			return ok
		})
	})
}
