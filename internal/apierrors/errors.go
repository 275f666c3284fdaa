package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error with everything needed to answer an API client.
// Err is kept for logging and is never sent to the client.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeInvalidInput         = "INVALID_INPUT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeCampaignNotFound     = "CAMPAIGN_NOT_FOUND"
	CodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	CodeTemplateNotApproved  = "TEMPLATE_NOT_APPROVED"
	CodeInsufficientBalance  = "INSUFFICIENT_BALANCE"
	CodeUnresolvableWindow   = "UNRESOLVABLE_WINDOW"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeStatusConflict       = "STATUS_CONFLICT"
	CodeCampaignBusy         = "CAMPAIGN_BUSY"
	CodeVendorRejected       = "VENDOR_REJECTED"
	CodeVendorUnavailable    = "VENDOR_UNAVAILABLE"
	CodeVendorInvalidReply   = "VENDOR_INVALID_RESPONSE"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeServiceNotConfigured = "SERVICE_NOT_CONFIGURED"
)

func newError(status int, code, message string) *APIError {
	return &APIError{StatusCode: status, Code: code, Message: message}
}

// BadRequest creates a 400 error
func BadRequest(code, message string) *APIError {
	return newError(http.StatusBadRequest, code, message)
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *APIError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

// PaymentRequired creates a 402 error
func PaymentRequired(code, message string) *APIError {
	return newError(http.StatusPaymentRequired, code, message)
}

// Forbidden creates a 403 error
func Forbidden(message string) *APIError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// NotFound creates a 404 error
func NotFound(code, message string) *APIError {
	return newError(http.StatusNotFound, code, message)
}

// Conflict creates a 409 error
func Conflict(code, message string) *APIError {
	return newError(http.StatusConflict, code, message)
}

// BadGateway creates a 502 error for upstream failures
func BadGateway(code, message string, err error) *APIError {
	e := newError(http.StatusBadGateway, code, message)
	e.Err = err
	return e
}

// ServiceUnavailable creates a 503 error
func ServiceUnavailable(code, message string, err error) *APIError {
	e := newError(http.StatusServiceUnavailable, code, message)
	e.Err = err
	return e
}

// InternalError creates a sanitized 500 error - never exposes internal details
func InternalError(err error) *APIError {
	e := newError(http.StatusInternalServerError, CodeInternalError, "An internal error occurred. Please try again later.")
	e.Err = err
	return e
}

// WithDetails attaches client-visible details.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	e.Details = details
	return e
}
