package processor

import (
	"campaign-gateway/internal/campaign/payload"
	"campaign-gateway/internal/campaign/schedule"
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/observability"
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrUnauthorized        = errors.New("unauthorized access to campaign")
	ErrInsufficientBalance = errors.New("insufficient balance for the campaign goal")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateNotApproved = errors.New("template is not approved")
	ErrUnknownVendorStatus = errors.New("vendor reported an unknown campaign status")
)

// Config holds the business settings of the processor.
type Config struct {
	// CostPerMessage is the price of one message in the smallest currency unit.
	CostPerMessage int64
}

type CampaignProcessor struct {
	store    CampaignStore
	vendor   VendorGateway
	audience AudienceResolver
	locker   Locker
	events   EventPublisher
	cfg      Config
	logger   *observability.Logger
	now      func() time.Time
}

func New(store CampaignStore, vendor VendorGateway, audience AudienceResolver, locker Locker, events EventPublisher, cfg Config, logger *observability.Logger) CampaignProcessor {
	return CampaignProcessor{
		store:    store,
		vendor:   vendor,
		audience: audience,
		locker:   locker,
		events:   events,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// MessageParams is an inline message.
type MessageParams struct {
	Title    string
	Body     string
	ImageRef *string
	URLs     []string
	Buttons  []store.Button
	Slides   []store.Slide
}

// CreateCampaignParams represents parameters for creating a campaign. Exactly
// one of Message and TemplateID is used; an inline message wins.
type CreateCampaignParams struct {
	Name           string
	CompanyName    string
	SenderNumber   string
	MessageType    store.MessageType
	RCSSubType     *store.RCSSubType
	GoalCount      int64
	OvershootCount *int64
	Targeting      targeting.Spec
	// ScheduledAt is the send time; for geofence targeting the collection send time.
	ScheduledAt     *time.Time
	CollectionStart *time.Time
	CollectionEnd   *time.Time
	TemplateID      *uuid.UUID
	Message         *MessageParams
}

// CampaignDetails is a campaign with its message.
type CampaignDetails struct {
	store.Campaign
	Message store.Message `json:"message"`
}

// CreateCampaign validates and persists a draft campaign. No vendor campaign
// is created; demographic targeting is estimated at the vendor and a failed
// estimate fails the creation.
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, userID uuid.UUID, params CreateCampaignParams) (CampaignDetails, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "message_type", Value: string(params.MessageType)},
	)

	if params.Targeting == nil {
		return CampaignDetails{}, validation.New("targeting", "is required")
	}
	campaign := store.Campaign{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           params.Name,
		CompanyName:    params.CompanyName,
		SenderNumber:   params.SenderNumber,
		MessageType:    params.MessageType,
		RCSSubType:     params.RCSSubType,
		GoalCount:      params.GoalCount,
		OvershootCount: params.OvershootCount,
		TargetingMode:  params.Targeting.Mode(),
		Targeting:      store.TargetingColumn{Spec: params.Targeting},
		Status:         store.CampaignStatusDraft,
		TemplateID:     params.TemplateID,
	}
	if err := payload.ValidateCampaign(campaign); err != nil {
		return CampaignDetails{}, err
	}
	if err := targeting.Validate(params.Targeting); err != nil {
		return CampaignDetails{}, err
	}

	if err := p.checkBalance(ctx, userID, campaign.GoalCount); err != nil {
		return CampaignDetails{}, err
	}

	message, err := p.buildMessage(ctx, userID, campaign, params)
	if err != nil {
		return CampaignDetails{}, err
	}
	if err := payload.ValidateMessage(campaign.MessageType, campaign.RCSSubType, message); err != nil {
		return CampaignDetails{}, err
	}

	now := p.now()
	switch spec := params.Targeting.(type) {
	case targeting.Demographic:
		if params.ScheduledAt != nil {
			sendAt, err := schedule.ValidateSendTime(*params.ScheduledAt, now, schedule.Reject)
			if err != nil {
				return CampaignDetails{}, err
			}
			campaign.ScheduledAt = &sendAt
		}
		res, err := p.audience.Resolve(ctx, spec)
		if err != nil {
			p.logger.Error(ctx, "failed to resolve audience", err)
			return CampaignDetails{}, err
		}
		campaign.FilterQuery = res.Query
		campaign.FilterDescription = res.HTML
		campaign.MaxAudience = res.Count
	case targeting.Geofences:
		if params.ScheduledAt == nil {
			return CampaignDetails{}, validation.New("scheduled_at", "collection send time is required")
		}
		w, err := schedule.CollectionWindow(windowRequest(params.CollectionStart, params.CollectionEnd, *params.ScheduledAt), now)
		if err != nil {
			return CampaignDetails{}, err
		}
		setWindow(&campaign, w)
		campaign.FilterDescription = targeting.HTML(targeting.DescribeGeofences(spec))
	}

	created, createdMessage, err := p.store.CreateCampaignWithMessage(ctx, campaign, message)
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return CampaignDetails{}, err
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: created.ID.String()})
	p.logger.Info(ctx, "campaign created successfully")
	return CampaignDetails{Campaign: created, Message: createdMessage}, nil
}

func (p *CampaignProcessor) checkBalance(ctx context.Context, userID uuid.UUID, goal int64) error {
	balance, err := p.store.GetUserBalance(ctx, userID)
	if err != nil {
		p.logger.Error(ctx, "failed to get user balance", err)
		return err
	}
	required := goal * p.cfg.CostPerMessage
	if balance < required {
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "balance", Value: balance},
			observability.Field{Key: "required", Value: required},
		)
		p.logger.Warn(ctx, "insufficient balance")
		return ErrInsufficientBalance
	}
	return nil
}

// buildMessage returns the inline message, or a copy of an approved template
// owned by the user.
func (p *CampaignProcessor) buildMessage(ctx context.Context, userID uuid.UUID, campaign store.Campaign, params CreateCampaignParams) (store.Message, error) {
	if m := params.Message; m != nil {
		return store.Message{
			CampaignID: campaign.ID,
			Title:      m.Title,
			Body:       m.Body,
			ImageRef:   m.ImageRef,
			URLs:       store.StringArray(m.URLs),
			Buttons:    store.JSONColumn[[]store.Button]{V: m.Buttons},
			Slides:     store.JSONColumn[[]store.Slide]{V: m.Slides},
		}, nil
	}
	if params.TemplateID == nil {
		return store.Message{}, validation.New("message", "message or template_id is required")
	}

	tmpl, err := p.store.GetTemplate(ctx, *params.TemplateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Message{}, ErrTemplateNotFound
		}
		p.logger.Error(ctx, "failed to get template", err)
		return store.Message{}, err
	}
	if tmpl.UserID != userID {
		return store.Message{}, ErrTemplateNotFound
	}
	if tmpl.Status != store.TemplateStatusApproved {
		return store.Message{}, ErrTemplateNotApproved
	}
	if tmpl.MessageType != campaign.MessageType {
		return store.Message{}, validation.New("template_id", "template message type %s does not match %s", tmpl.MessageType, campaign.MessageType)
	}
	return tmpl.Clone(campaign.ID), nil
}

// GetCampaign retrieves a campaign and its message
func (p *CampaignProcessor) GetCampaign(ctx context.Context, userID, campaignID uuid.UUID) (CampaignDetails, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
	)

	campaign, err := p.loadOwned(ctx, userID, campaignID)
	if err != nil {
		return CampaignDetails{}, err
	}
	message, err := p.store.GetMessageByCampaign(ctx, campaignID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		p.logger.Error(ctx, "failed to get campaign message", err)
		return CampaignDetails{}, err
	}
	return CampaignDetails{Campaign: campaign, Message: message}, nil
}

// ListCampaigns retrieves a user's campaigns with pagination
func (p *CampaignProcessor) ListCampaigns(ctx context.Context, userID uuid.UUID, status *store.CampaignStatus, page, limit int) (store.ListCampaignsResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "page", Value: page},
		observability.Field{Key: "limit", Value: limit},
	)

	if status != nil && !status.Known() {
		return store.ListCampaignsResult{}, validation.New("status", "unknown campaign status %d", int(*status))
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	result, err := p.store.ListCampaigns(ctx, store.ListCampaignsParams{
		UserID: userID,
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list campaigns", err)
		return store.ListCampaignsResult{}, err
	}

	// Ensure campaigns is never null - return empty array instead
	if result.Campaigns == nil {
		result.Campaigns = []store.Campaign{}
	}
	return result, nil
}

func (p *CampaignProcessor) loadOwned(ctx context.Context, userID, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, ErrCampaignNotFound
		}
		p.logger.Error(ctx, "failed to get campaign", err)
		return store.Campaign{}, err
	}
	if campaign.UserID != userID {
		return store.Campaign{}, ErrUnauthorized
	}
	return campaign, nil
}

func windowRequest(start, end *time.Time, send time.Time) schedule.WindowRequest {
	req := schedule.WindowRequest{Send: send}
	if start != nil {
		req.Start = *start
	}
	if end != nil {
		req.End = *end
	}
	return req
}

func setWindow(c *store.Campaign, w schedule.Window) {
	start, end, send := w.Start, w.End, w.Send
	c.CollectionStart = &start
	c.CollectionEnd = &end
	c.CollectionSend = &send
	c.ScheduledAt = &send
}

// withCampaign runs fn while holding the campaign lock.
func (p *CampaignProcessor) withCampaign(ctx context.Context, campaignID uuid.UUID, fn func() (store.Campaign, error)) (store.Campaign, error) {
	release, err := p.locker.Acquire(ctx, lockKey(campaignID))
	if err != nil {
		p.logger.Error(ctx, "failed to acquire campaign lock", err)
		return store.Campaign{}, fmt.Errorf("failed to acquire campaign lock: %w", err)
	}
	defer release()
	return fn()
}
