package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Job type constants
const (
	TypeCampaignSyncStatus = "campaign:sync_status"
	TypeCampaignSyncSweep  = "campaign:sync_sweep"
)

// Queue names
const (
	QueueDefault  = "default"
	QueuePeriodic = "periodic"
)

// syncUniqueTTL keeps a campaign from being queued twice within one sweep.
const syncUniqueTTL = 2 * time.Minute

// SyncStatusJobPayload asks for one campaign's vendor status to be pulled
type SyncStatusJobPayload struct {
	CampaignID uuid.UUID `json:"campaign_id"`
}

// NewSyncStatusTask creates a new vendor status sync task
func NewSyncStatusTask(payload SyncStatusJobPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCampaignSyncStatus, data,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.Unique(syncUniqueTTL),
	), nil
}

// NewSyncSweepTask creates the periodic task that fans out status syncs
func NewSyncSweepTask() *asynq.Task {
	return asynq.NewTask(TypeCampaignSyncSweep, nil, asynq.Queue(QueuePeriodic), asynq.MaxRetry(0))
}
