package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const campaignColumns = `
    id, user_id, name, company_name, message_type, rcs_sub_type, targeting_mode, targeting,
    vendor_campaign_id, status, sender_number, goal_count, overshoot_count, max_audience,
    filter_query, filter_description, scheduled_at, collection_start, collection_end,
    collection_send, template_id, last_synced_at, created_at, updated_at`

const sqlCreateCampaign = `
INSERT INTO campaigns (
    id, user_id, name, company_name, message_type, rcs_sub_type, targeting_mode, targeting,
    status, sender_number, goal_count, overshoot_count, max_audience, filter_query,
    filter_description, scheduled_at, collection_start, collection_end, collection_send, template_id
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
RETURNING` + campaignColumns

const sqlCreateMessage = `
INSERT INTO campaign_messages (id, campaign_id, title, body, image_ref, urls, buttons, slides)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, campaign_id, title, body, image_ref, urls, buttons, slides, created_at, updated_at
`

// CreateCampaignWithMessage inserts a draft campaign and its message in one transaction.
func (s *Store) CreateCampaignWithMessage(ctx context.Context, campaign Campaign, message Message) (Campaign, Message, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error(ctx, "failed to begin transaction", err)
		return Campaign{}, Message{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}
	var created Campaign
	err = tx.GetContext(ctx, &created, sqlCreateCampaign,
		campaign.ID,
		campaign.UserID,
		campaign.Name,
		campaign.CompanyName,
		campaign.MessageType,
		campaign.RCSSubType,
		campaign.TargetingMode,
		campaign.Targeting,
		campaign.Status,
		campaign.SenderNumber,
		campaign.GoalCount,
		campaign.OvershootCount,
		campaign.MaxAudience,
		campaign.FilterQuery,
		campaign.FilterDescription,
		campaign.ScheduledAt,
		campaign.CollectionStart,
		campaign.CollectionEnd,
		campaign.CollectionSend,
		campaign.TemplateID)
	if err != nil {
		s.logger.Error(ctx, "failed to create campaign", err)
		return Campaign{}, Message{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	var createdMessage Message
	err = tx.GetContext(ctx, &createdMessage, sqlCreateMessage,
		message.ID,
		created.ID,
		message.Title,
		message.Body,
		message.ImageRef,
		message.URLs,
		message.Buttons,
		message.Slides)
	if err != nil {
		s.logger.Error(ctx, "failed to create campaign message", err)
		return Campaign{}, Message{}, fmt.Errorf("failed to create campaign message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error(ctx, "failed to commit campaign", err)
		return Campaign{}, Message{}, fmt.Errorf("failed to commit campaign: %w", err)
	}
	return created, createdMessage, nil
}

const sqlGetCampaignByID = `SELECT` + campaignColumns + `
FROM campaigns
WHERE id = $1
`

// GetCampaign retrieves a campaign by ID
func (s *Store) GetCampaign(ctx context.Context, campaignID uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlGetCampaignByID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign by id", err)
		return Campaign{}, fmt.Errorf("failed to get campaign by id: %w", err)
	}
	return campaign, nil
}

// ListCampaignsParams filters a user's campaigns.
type ListCampaignsParams struct {
	UserID uuid.UUID
	Status *CampaignStatus
	Limit  int
	Offset int
}

const sqlListCampaigns = `SELECT` + campaignColumns + `
FROM campaigns
WHERE user_id = $1 AND ($2::int IS NULL OR status = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4
`

const sqlCountCampaigns = `
SELECT COUNT(*)
FROM campaigns
WHERE user_id = $1 AND ($2::int IS NULL OR status = $2)
`

// ListCampaignsResult is one page of campaigns.
type ListCampaignsResult struct {
	Campaigns  []Campaign
	TotalCount int
}

// ListCampaigns retrieves a page of a user's campaigns, newest first
func (s *Store) ListCampaigns(ctx context.Context, params ListCampaignsParams) (ListCampaignsResult, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int
	if err := s.db.GetContext(ctx, &total, sqlCountCampaigns, params.UserID, params.Status); err != nil {
		s.logger.Error(ctx, "failed to count campaigns", err)
		return ListCampaignsResult{}, fmt.Errorf("failed to count campaigns: %w", err)
	}

	campaigns := []Campaign{}
	err := s.db.SelectContext(ctx, &campaigns, sqlListCampaigns, params.UserID, params.Status, limit, params.Offset)
	if err != nil {
		s.logger.Error(ctx, "failed to list campaigns", err)
		return ListCampaignsResult{}, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return ListCampaignsResult{Campaigns: campaigns, TotalCount: total}, nil
}

const sqlSaveCampaign = `
UPDATE campaigns
SET vendor_campaign_id = COALESCE(vendor_campaign_id, $3),
    status = $4,
    max_audience = $5,
    filter_query = $6,
    filter_description = $7,
    scheduled_at = $8,
    collection_start = $9,
    collection_end = $10,
    collection_send = $11,
    updated_at = NOW()
WHERE id = $1 AND status = $2
RETURNING` + campaignColumns

// SaveCampaign persists the lifecycle fields of a campaign. The write only
// applies while the stored status still equals prev; otherwise it returns
// ErrStatusConflict. A vendor campaign id, once stored, is never replaced.
func (s *Store) SaveCampaign(ctx context.Context, campaign Campaign, prev CampaignStatus) (Campaign, error) {
	var saved Campaign
	err := s.db.GetContext(ctx, &saved, sqlSaveCampaign,
		campaign.ID,
		prev,
		campaign.VendorCampaignID,
		campaign.Status,
		campaign.MaxAudience,
		campaign.FilterQuery,
		campaign.FilterDescription,
		campaign.ScheduledAt,
		campaign.CollectionStart,
		campaign.CollectionEnd,
		campaign.CollectionSend)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrStatusConflict
		}
		s.logger.Error(ctx, "failed to save campaign", err)
		return Campaign{}, fmt.Errorf("failed to save campaign: %w", err)
	}
	return saved, nil
}

const sqlListSyncableCampaigns = `SELECT` + campaignColumns + `
FROM campaigns
WHERE vendor_campaign_id IS NOT NULL
  AND status NOT IN ($1, $2, $3, $4)
  AND (last_synced_at IS NULL OR last_synced_at < $5)
ORDER BY last_synced_at ASC NULLS FIRST
LIMIT $6
`

// ListSyncableCampaigns returns registered campaigns in a non-terminal state
// that have not been polled since before, least recently polled first.
func (s *Store) ListSyncableCampaigns(ctx context.Context, before time.Time, limit int) ([]Campaign, error) {
	campaigns := []Campaign{}
	err := s.db.SelectContext(ctx, &campaigns, sqlListSyncableCampaigns,
		CampaignStatusDraft,
		CampaignStatusCompleted,
		CampaignStatusCancelled,
		CampaignStatusStopped,
		before,
		limit)
	if err != nil {
		s.logger.Error(ctx, "failed to list syncable campaigns", err)
		return nil, fmt.Errorf("failed to list syncable campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlRecordVendorCampaignID = `
UPDATE campaigns
SET vendor_campaign_id = COALESCE(vendor_campaign_id, $2),
    updated_at = NOW()
WHERE id = $1
RETURNING vendor_campaign_id
`

// RecordVendorCampaignID links the campaign to its vendor campaign regardless
// of status. It returns the stored id, which is the earlier one if the
// campaign was already linked.
func (s *Store) RecordVendorCampaignID(ctx context.Context, campaignID uuid.UUID, vendorID string) (string, error) {
	var stored string
	err := s.db.GetContext(ctx, &stored, sqlRecordVendorCampaignID, campaignID, vendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		s.logger.Error(ctx, "failed to record vendor campaign id", err)
		return "", fmt.Errorf("failed to record vendor campaign id: %w", err)
	}
	return stored, nil
}

const sqlMarkCampaignSynced = `
UPDATE campaigns
SET last_synced_at = $2
WHERE id = $1
`

// MarkCampaignSynced records a vendor status poll.
func (s *Store) MarkCampaignSynced(ctx context.Context, campaignID uuid.UUID, at time.Time) error {
	res, err := s.db.ExecContext(ctx, sqlMarkCampaignSynced, campaignID, at)
	if err != nil {
		s.logger.Error(ctx, "failed to mark campaign synced", err)
		return fmt.Errorf("failed to mark campaign synced: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark campaign synced: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlGetMessageByCampaign = `
SELECT id, campaign_id, title, body, image_ref, urls, buttons, slides, created_at, updated_at
FROM campaign_messages
WHERE campaign_id = $1
`

// GetMessageByCampaign retrieves the message of a campaign
func (s *Store) GetMessageByCampaign(ctx context.Context, campaignID uuid.UUID) (Message, error) {
	var message Message
	err := s.db.GetContext(ctx, &message, sqlGetMessageByCampaign, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Message{}, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get campaign message", err)
		return Message{}, fmt.Errorf("failed to get campaign message: %w", err)
	}
	return message, nil
}
