package handler

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for treatment dates and dashboard
// filter bounds.
const DateLayout = "2006-01-02"

// RegisterValidations installs the custom binding rules used by the
// survey and dashboard request DTOs. Call once at startup.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("surveydate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
}

// ParseDate parses a value previously accepted by the surveydate rule.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
