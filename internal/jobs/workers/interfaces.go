package workers

import (
	"campaign-gateway/internal/store"
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=workers

// CampaignSyncer pulls the vendor status of one campaign
type CampaignSyncer interface {
	SyncCampaignStatus(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
}

// SyncableCampaignStore lists campaigns whose vendor status may have moved
type SyncableCampaignStore interface {
	ListSyncableCampaigns(ctx context.Context, before time.Time, limit int) ([]store.Campaign, error)
}

// SyncJobEnqueuer queues per-campaign sync tasks
type SyncJobEnqueuer interface {
	EnqueueSyncStatusJob(ctx context.Context, campaignID uuid.UUID) error
}
