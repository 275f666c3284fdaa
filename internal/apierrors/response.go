package apierrors

import (
	"campaign-gateway/internal/observability"

	"github.com/gin-gonic/gin"
)

// Package-level logger that uses context for observability
var logger = observability.NewLogger()

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error   string         `json:"error"`             // User-friendly error message
	Code    string         `json:"code,omitempty"`    // Machine-readable error code
	Details map[string]any `json:"details,omitempty"` // Field or vendor specifics
}

// RespondWithError handles error logging and sends a sanitized JSON response to the client.
// This is the primary function handlers should use for error responses.
//
// Example usage:
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	respond(c, MapError(err))
}

// RespondWithValidationError handles Gin binding/validation errors and returns
// structured validation error responses.
//
// Example usage:
//
//	var req SomeRequest
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    apierrors.RespondWithValidationError(c, err)
//	    return
//	}
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := ValidationError(err)
	if apiErr.Details == nil && apiErr.Message == "Invalid request" {
		// Not a validation error - a JSON parsing error or other binding issue
		apiErr.Message = "Invalid request format. Please check your JSON syntax."
	}
	logger.Error(c.Request.Context(), "request binding failed", err)
	respond(c, apiErr)
}

func respond(c *gin.Context, apiErr *APIError) {
	// Log API error response for correlation with processor logs
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.Err != nil && apiErr.StatusCode >= 500 {
		logger.Error(ctx, "API error response", apiErr.Err)
	} else {
		logger.Info(ctx, "API error response")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}
