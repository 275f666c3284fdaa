package workers

import (
	"campaign-gateway/internal/campaign/processor"
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/jobs"
	"campaign-gateway/internal/observability"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// SyncWorker handles vendor status synchronisation jobs
type SyncWorker struct {
	syncer     CampaignSyncer
	store      SyncableCampaignStore
	enqueuer   SyncJobEnqueuer
	staleAfter time.Duration
	batchSize  int
	logger     *observability.Logger
	now        func() time.Time
}

// NewSyncWorker creates a new sync worker. Campaigns updated within staleAfter
// are skipped by the sweep; at most batchSize are queued per sweep.
func NewSyncWorker(syncer CampaignSyncer, store SyncableCampaignStore, enqueuer SyncJobEnqueuer, staleAfter time.Duration, batchSize int, logger *observability.Logger) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &SyncWorker{
		syncer:     syncer,
		store:      store,
		enqueuer:   enqueuer,
		staleAfter: staleAfter,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

// ProcessSyncStatusTask pulls one campaign's vendor status. Failures that a
// retry cannot fix are marked with asynq.SkipRetry.
func (w *SyncWorker) ProcessSyncStatusTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.SyncStatusJobPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal sync status job payload", err)
		return fmt.Errorf("failed to unmarshal sync status job payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: payload.CampaignID.String()})

	campaign, err := w.syncer.SyncCampaignStatus(ctx, payload.CampaignID)
	if err != nil {
		if permanent(err) {
			w.logger.Warn(ctx, fmt.Sprintf("dropping sync status task: %v", err))
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		w.logger.Error(ctx, "failed to sync campaign status", err)
		return fmt.Errorf("failed to sync campaign status: %w", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "status", Value: int(campaign.Status)})
	w.logger.Info(ctx, "campaign status synced")
	return nil
}

// permanent reports errors a retry cannot fix. A vendor internal error is
// an application error but transient.
func permanent(err error) bool {
	if errors.Is(err, processor.ErrCampaignNotFound) || errors.Is(err, processor.ErrUnknownVendorStatus) {
		return true
	}
	if ve, ok := vendor.AsError(err); ok && ve.Kind == vendor.KindApplication {
		return ve.Code != vendor.CodeInternal
	}
	return false
}

// ProcessSyncSweepTask queues a status sync for every registered, non-terminal
// campaign that has not been polled recently.
func (w *SyncWorker) ProcessSyncSweepTask(ctx context.Context, _ *asynq.Task) error {
	before := w.now().Add(-w.staleAfter)
	campaigns, err := w.store.ListSyncableCampaigns(ctx, before, w.batchSize)
	if err != nil {
		w.logger.Error(ctx, "failed to list syncable campaigns", err)
		return fmt.Errorf("failed to list syncable campaigns: %w", err)
	}

	queued := 0
	for _, c := range campaigns {
		if err := w.enqueuer.EnqueueSyncStatusJob(ctx, c.ID); err != nil {
			w.logger.Error(observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: c.ID.String()}),
				"failed to enqueue campaign status sync", err)
			continue
		}
		queued++
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "found", Value: len(campaigns)},
		observability.Field{Key: "queued", Value: queued},
	)
	w.logger.Info(ctx, "sync sweep finished")
	return nil
}
