package store

import (
	"campaign-gateway/internal/campaign/targeting"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Storer defines all public methods available on the Store
type Storer interface {
	// Database
	DB() *sqlx.DB
	Ping(ctx context.Context) error

	// Campaign operations
	CreateCampaignWithMessage(ctx context.Context, campaign Campaign, message Message) (Campaign, Message, error)
	GetCampaign(ctx context.Context, campaignID uuid.UUID) (Campaign, error)
	ListCampaigns(ctx context.Context, params ListCampaignsParams) (ListCampaignsResult, error)
	SaveCampaign(ctx context.Context, campaign Campaign, prev CampaignStatus) (Campaign, error)
	RecordVendorCampaignID(ctx context.Context, campaignID uuid.UUID, vendorID string) (string, error)
	ListSyncableCampaigns(ctx context.Context, before time.Time, limit int) ([]Campaign, error)
	MarkCampaignSynced(ctx context.Context, campaignID uuid.UUID, at time.Time) error
	GetMessageByCampaign(ctx context.Context, campaignID uuid.UUID) (Message, error)

	// Template operations
	GetTemplate(ctx context.Context, templateID uuid.UUID) (Template, error)

	// Balance operations
	GetUserBalance(ctx context.Context, userID uuid.UUID) (int64, error)

	// Catalog operations
	ListCategories(ctx context.Context) ([]targeting.Category, error)
}

var _ Storer = (*Store)(nil)
