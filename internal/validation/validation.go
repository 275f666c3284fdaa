package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid matches every validation failure with errors.Is.
var ErrInvalid = errors.New("invalid input")

// Error is a local rule violation detected before any vendor call.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets callers test for ErrInvalid without knowing the concrete type.
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// New creates a validation error for a field.
func New(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// MaxRunes returns an error when value is longer than limit characters.
func MaxRunes(field, value string, limit int) error {
	if n := len([]rune(value)); n > limit {
		return New(field, "must be at most %d characters (got %d)", limit, n)
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct runs the `validate` tags of s and converts the first failures into an Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	return FromValidator(fieldErrs)
}

// FromValidator builds a single Error out of validator field errors.
func FromValidator(fieldErrs validator.ValidationErrors) *Error {
	if len(fieldErrs) == 0 {
		return &Error{Message: "invalid request"}
	}
	if len(fieldErrs) == 1 {
		return &Error{Field: fieldErrs[0].Field(), Message: Message(fieldErrs[0])}
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Field()+" "+Message(fe))
	}
	return &Error{Message: "validation failed: " + strings.Join(messages, "; ")}
}

// Message returns a human-readable message for a validator field error.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
