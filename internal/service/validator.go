package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator shared by the services, with the
// campus-specific rules registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Phone numbers are ten digits, dashes allowed: 555-123-4567.
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		digits := strings.ReplaceAll(fl.Field().String(), "-", "")
		if len(digits) != 10 {
			return false
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}
