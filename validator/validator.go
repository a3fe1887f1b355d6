// Package validator validates the JSON bodies received by the API.
package validator

import (
	"github.com/coursion/backend/internal"
	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around the go-playground/validator package.
type Validator struct {
	validator *validator.Validate
}

// New creates a new Validator instance with the custom tags registered:
//   - objectid: the hex form of a MongoDB ObjectID.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("objectid", validateObjectID)
	return &Validator{
		validator: v,
	}
}

// Validate validates a struct using the validator package.
func (v *Validator) Validate(s any) error {
	return v.validator.Struct(s)
}

// validateObjectID accepts empty values; combine it with required if needed.
func validateObjectID(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}
	return internal.ValidObjectIDHex(fl.Field().String())
}
