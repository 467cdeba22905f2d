package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/telesante/telesante-api/internal/model"
)

// RegisterCustomValidations installs the platform's wire-format
// validations on gin's binding engine. Binding tags can then use
// "rdvdate" (YYYY-MM-DD) and "rdvheure" (HH:MM).
func RegisterCustomValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("rdvdate", func(fl validator.FieldLevel) bool {
		return model.ValidDate(fl.Field().String())
	})
	v.RegisterValidation("rdvheure", func(fl validator.FieldLevel) bool {
		return model.ValidTimeOfDay(fl.Field().String())
	})
}
