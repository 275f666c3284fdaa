package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/store"
	"context"
	"time"

	"github.com/google/uuid"
)

// CampaignStore defines the database operations required by CampaignProcessor
type CampaignStore interface {
	CreateCampaignWithMessage(ctx context.Context, campaign store.Campaign, message store.Message) (store.Campaign, store.Message, error)
	GetCampaign(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	ListCampaigns(ctx context.Context, params store.ListCampaignsParams) (store.ListCampaignsResult, error)
	SaveCampaign(ctx context.Context, campaign store.Campaign, prev store.CampaignStatus) (store.Campaign, error)
	RecordVendorCampaignID(ctx context.Context, campaignID uuid.UUID, vendorID string) (string, error)
	MarkCampaignSynced(ctx context.Context, campaignID uuid.UUID, at time.Time) error
	GetMessageByCampaign(ctx context.Context, campaignID uuid.UUID) (store.Message, error)
	GetTemplate(ctx context.Context, templateID uuid.UUID) (store.Template, error)
	GetUserBalance(ctx context.Context, userID uuid.UUID) (int64, error)
}

// VendorGateway is the vendor campaign API.
type VendorGateway interface {
	SaveCampaign(ctx context.Context, req vendor.Request) (string, error)
	RequestApproval(ctx context.Context, vendorID string) error
	CancelCampaign(ctx context.Context, vendorID string) error
	StopCampaign(ctx context.Context, vendorID string) error
	CampaignStatus(ctx context.Context, vendorID string) (int, error)
}

// AudienceResolver compiles demographic targeting and obtains the vendor query.
type AudienceResolver interface {
	Resolve(ctx context.Context, d targeting.Demographic) (targeting.Resolution, error)
}

// Locker serialises operations on one campaign.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// EventPublisher announces committed status changes.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, campaign store.Campaign, from store.CampaignStatus) error
}
