package apierrors

import (
	campaignProcessor "campaign-gateway/internal/campaign/processor"
	"campaign-gateway/internal/campaign/schedule"
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/lock"
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"errors"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	// Check if already an APIError
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	if ve, ok := vendor.AsError(err); ok {
		return mapVendorError(ve)
	}

	var transitionErr *campaignProcessor.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return Conflict(CodeInvalidTransition, transitionErr.Error()).WithDetails(map[string]any{
			"status": transitionErr.From.String(),
			"action": string(transitionErr.Action),
		})
	}

	switch {
	case errors.Is(err, schedule.ErrUnresolvableWindow):
		apiErr := ValidationError(err)
		apiErr.Code = CodeUnresolvableWindow
		return apiErr

	case errors.Is(err, validation.ErrInvalid):
		return ValidationError(err)

	// Map campaign processor errors
	case errors.Is(err, campaignProcessor.ErrCampaignNotFound):
		return NotFound(CodeCampaignNotFound, "Campaign not found")

	case errors.Is(err, campaignProcessor.ErrUnauthorized):
		return Forbidden("You do not have access to this campaign")

	case errors.Is(err, campaignProcessor.ErrInsufficientBalance):
		return PaymentRequired(CodeInsufficientBalance, "Balance is not sufficient for the campaign goal")

	case errors.Is(err, campaignProcessor.ErrTemplateNotFound):
		return NotFound(CodeTemplateNotFound, "Template not found")

	case errors.Is(err, campaignProcessor.ErrTemplateNotApproved):
		return BadRequest(CodeTemplateNotApproved, "Template is not approved")

	case errors.Is(err, campaignProcessor.ErrUnknownVendorStatus):
		return BadGateway(CodeVendorInvalidReply, "The vendor reported an unexpected campaign status", err)

	case errors.Is(err, targeting.ErrEmptyAudienceQuery):
		return BadGateway(CodeVendorInvalidReply, "The vendor did not return an audience query", err)

	// Concurrency
	case errors.Is(err, store.ErrStatusConflict):
		return Conflict(CodeStatusConflict, "The campaign was modified by another request. Please retry.")

	case errors.Is(err, lock.ErrLocked):
		return Conflict(CodeCampaignBusy, "Another operation on this campaign is in progress. Please retry.")

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	case errors.Is(err, vendor.ErrMissingAPIKey):
		return ServiceUnavailable(CodeServiceNotConfigured, "The vendor integration is not configured", err)

	default:
		return InternalError(err)
	}
}

// mapVendorError keeps the raw vendor code next to the translated message.
func mapVendorError(ve *vendor.Error) *APIError {
	if ve.Kind == vendor.KindTransport {
		return ServiceUnavailable(CodeVendorUnavailable, ve.FriendlyMessage(), ve).WithDetails(map[string]any{
			"operation": ve.Op,
			"retryable": true,
		})
	}
	return BadGateway(CodeVendorRejected, ve.FriendlyMessage(), ve).WithDetails(map[string]any{
		"operation":      ve.Op,
		"vendor_code":    ve.Code,
		"vendor_message": ve.Message,
	})
}
