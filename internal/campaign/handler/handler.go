package handler

import (
	"campaign-gateway/internal/apierrors"
	"campaign-gateway/internal/campaign/processor"
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/observability"
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=mocks_test.go -package=handler

// UserIDKey is the gin context key the auth middleware stores the caller under.
const UserIDKey = "User-ID"

// CampaignService is the campaign use-case surface the HTTP layer depends on.
type CampaignService interface {
	CreateCampaign(ctx context.Context, userID uuid.UUID, params processor.CreateCampaignParams) (processor.CampaignDetails, error)
	GetCampaign(ctx context.Context, userID, campaignID uuid.UUID) (processor.CampaignDetails, error)
	ListCampaigns(ctx context.Context, userID uuid.UUID, status *store.CampaignStatus, page, limit int) (store.ListCampaignsResult, error)
	SubmitCampaign(ctx context.Context, userID, campaignID uuid.UUID, scheduledAt *time.Time) (store.Campaign, error)
	TransitionCampaign(ctx context.Context, userID, campaignID uuid.UUID, action processor.Action) (store.Campaign, error)
}

type Handler struct {
	processor CampaignService
	logger    *observability.Logger
}

func New(processor CampaignService, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// MessageRequest is an inline message in HTTP request
type MessageRequest struct {
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	ImageRef *string        `json:"image_ref,omitempty"`
	URLs     []string       `json:"urls,omitempty" validate:"omitempty,max=5,dive,url"`
	Buttons  []store.Button `json:"buttons,omitempty"`
	Slides   []store.Slide  `json:"slides,omitempty"`
}

// CreateCampaignRequest represents the HTTP request for creating a campaign.
// Targeting is a mode-tagged object: {"mode":"ats","demographic":{...}} or
// {"mode":"geofence","geofences":{...}}.
type CreateCampaignRequest struct {
	Name            string            `json:"name" validate:"required"`
	CompanyName     string            `json:"company_name" validate:"required"`
	SenderNumber    string            `json:"sender_number" validate:"required"`
	MessageType     store.MessageType `json:"message_type" validate:"required,oneof=LMS MMS RCS"`
	RCSSubType      *store.RCSSubType `json:"rcs_sub_type,omitempty" validate:"omitempty,gte=0,lte=5"`
	GoalCount       int64             `json:"goal_count" validate:"gt=0"`
	OvershootCount  *int64            `json:"overshoot_count,omitempty" validate:"omitempty,gte=0"`
	Targeting       json.RawMessage   `json:"targeting"`
	ScheduledAt     *time.Time        `json:"scheduled_at,omitempty"`
	CollectionStart *time.Time        `json:"collection_start,omitempty"`
	CollectionEnd   *time.Time        `json:"collection_end,omitempty"`
	TemplateID      *uuid.UUID        `json:"template_id,omitempty"`
	Message         *MessageRequest   `json:"message,omitempty"`
}

// SubmitCampaignRequest optionally overrides the stored send time
type SubmitCampaignRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// TransitionCampaignRequest names a lifecycle action
type TransitionCampaignRequest struct {
	Action string `json:"action" validate:"required"`
}

// HandleCreateCampaign creates a draft campaign
func (h *Handler) HandleCreateCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID.String()})

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	spec, err := decodeTargeting(req.Targeting)
	if err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	params := processor.CreateCampaignParams{
		Name:            req.Name,
		CompanyName:     req.CompanyName,
		SenderNumber:    req.SenderNumber,
		MessageType:     req.MessageType,
		RCSSubType:      req.RCSSubType,
		GoalCount:       req.GoalCount,
		OvershootCount:  req.OvershootCount,
		Targeting:       spec,
		ScheduledAt:     req.ScheduledAt,
		CollectionStart: req.CollectionStart,
		CollectionEnd:   req.CollectionEnd,
		TemplateID:      req.TemplateID,
	}
	if m := req.Message; m != nil {
		params.Message = &processor.MessageParams{
			Title:    m.Title,
			Body:     m.Body,
			ImageRef: m.ImageRef,
			URLs:     m.URLs,
			Buttons:  m.Buttons,
			Slides:   m.Slides,
		}
	}

	campaign, err := h.processor.CreateCampaign(ctx, userID, params)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func decodeTargeting(raw json.RawMessage) (targeting.Spec, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, validation.New("targeting", "is required")
	}
	spec, err := targeting.Decode(raw)
	if err != nil {
		return nil, validation.New("targeting", "%s", err.Error())
	}
	return spec, nil
}

// HandleListCampaigns lists the caller's campaigns
func (h *Handler) HandleListCampaigns(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "user_id", Value: userID.String()})

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if _, err := fmt.Sscanf(pageStr, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}

	limit := 20
	if limitStr := c.Query("limit"); limitStr != "" {
		if _, err := fmt.Sscanf(limitStr, "%d", &limit); err != nil || limit < 1 || limit > 100 {
			limit = 20
		}
	}

	var status *store.CampaignStatus
	if statusStr := c.Query("status"); statusStr != "" {
		code, err := strconv.Atoi(statusStr)
		if err != nil {
			apierrors.RespondWithError(c, validation.New("status", "must be a numeric status code"))
			return
		}
		s := store.CampaignStatus(code)
		status = &s
	}

	result, err := h.processor.ListCampaigns(ctx, userID, status, page, limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	totalPages := (result.TotalCount + limit - 1) / limit

	c.JSON(http.StatusOK, gin.H{
		"campaigns": result.Campaigns,
		"pagination": gin.H{
			"total_count": result.TotalCount,
			"page":        page,
			"page_size":   limit,
			"total_pages": totalPages,
		},
	})
}

// HandleGetCampaign retrieves a campaign by ID
func (h *Handler) HandleGetCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
	)

	campaign, err := h.processor.GetCampaign(ctx, userID, campaignID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleSubmitCampaign registers the campaign at the vendor and requests approval
func (h *Handler) HandleSubmitCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
	)

	var req SubmitCampaignRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.RespondWithValidationError(c, err)
			return
		}
	}

	campaign, err := h.processor.SubmitCampaign(ctx, userID, campaignID, req.ScheduledAt)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// HandleTransitionCampaign applies a single lifecycle action
func (h *Handler) HandleTransitionCampaign(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.getUserID(c)
	if !ok {
		return
	}
	campaignID, ok := h.getCampaignID(c)
	if !ok {
		return
	}

	var req TransitionCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}
	action, err := processor.ParseAction(req.Action)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
		observability.Field{Key: "action", Value: string(action)},
	)

	campaign, err := h.processor.TransitionCampaign(ctx, userID, campaignID, action)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(UserIDKey)
	if !exists {
		apierrors.RespondWithError(c, apierrors.Unauthorized("User ID not found in context"))
		return uuid.UUID{}, false
	}

	raw, _ := userIDStr.(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Invalid user ID format"))
		return uuid.UUID{}, false
	}
	return userID, true
}

func (h *Handler) getCampaignID(c *gin.Context) (uuid.UUID, bool) {
	campaignID, err := uuid.Parse(c.Param("campaign_id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "Invalid campaign ID format"))
		return uuid.UUID{}, false
	}
	return campaignID, true
}
