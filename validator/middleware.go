package validator

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/coursion/backend/errors"
	"github.com/go-playground/validator/v10"
	"go.vocdoni.io/dvote/log"
)

// ValidatedModelKey is the context key of the decoded and validated body.
type ValidatedModelKey struct{}

// maxBodySize limits the size of the validated bodies.
const maxBodySize = 1 << 20

// ValidationError represents an individual validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError.
type ValidationErrors []ValidationError

// Error returns a string representation of the validation errors.
func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, err := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, ", ")
}

// InputValidator returns a middleware that decodes the JSON request body into
// a new instance of the model type and validates it. Invalid bodies are
// rejected with errors.ErrMalformedBody. The validated instance (a pointer to
// the model type) is stored in the request context, see ModelFromContext.
func (v *Validator) InputValidator(model any) func(next http.Handler) http.Handler {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			instance := reflect.New(modelType).Interface()
			if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(instance); err != nil {
				errors.ErrMalformedBody.Write(w)
				return
			}
			if err := v.validator.Struct(instance); err != nil {
				var fieldErrs validator.ValidationErrors
				if !stderrors.As(err, &fieldErrs) {
					errors.ErrMalformedBody.WithErr(err).Write(w)
					return
				}
				validationErrors := ValidationErrors{}
				for _, fieldErr := range fieldErrs {
					validationErrors = append(validationErrors, ValidationError{
						Field:   fieldErr.Field(),
						Message: errorMessage(fieldErr),
					})
				}
				log.Debugw("validation errors", "errors", validationErrors)
				errors.ErrMalformedBody.WithErr(validationErrors).Write(w)
				return
			}
			ctx := context.WithValue(r.Context(), ValidatedModelKey{}, instance)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ModelFromContext returns the body validated by InputValidator.
func ModelFromContext[T any](ctx context.Context) (*T, bool) {
	model, ok := ctx.Value(ValidatedModelKey{}).(*T)
	return model, ok
}

// errorMessage returns a human-readable error message for a validation error.
func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "objectid":
		return "Invalid object ID"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long", err.Param())
	default:
		return fmt.Sprintf("Invalid value: %s", err.Tag())
	}
}
