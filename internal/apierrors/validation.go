package apierrors

import (
	"campaign-gateway/internal/validation"
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationError converts a validation failure into a 400 error. The field
// name, when known, is returned in the details.
func ValidationError(err error) *APIError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		err = validation.FromValidator(fieldErrs)
	}

	var verr *validation.Error
	if !errors.As(err, &verr) {
		return BadRequest(CodeInvalidInput, "Invalid request")
	}
	apiErr := BadRequest(CodeInvalidInput, verr.Error())
	if verr.Field != "" {
		apiErr.Details = map[string]any{"field": verr.Field}
	}
	return apiErr
}
