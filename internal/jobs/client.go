package jobs

import (
	"campaign-gateway/internal/observability"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer is the part of asynq.Client the job client uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client handles enqueueing background jobs
type Client struct {
	client Enqueuer
	logger *observability.Logger
}

// NewClient creates a new job client
func NewClient(redisOpt asynq.RedisClientOpt, logger *observability.Logger) *Client {
	return NewClientWithEnqueuer(asynq.NewClient(redisOpt), logger)
}

func NewClientWithEnqueuer(enqueuer Enqueuer, logger *observability.Logger) *Client {
	return &Client{
		client: enqueuer,
		logger: logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueSyncStatusJob enqueues a vendor status sync for one campaign. A sync
// already queued for the same campaign is not an error.
func (c *Client) EnqueueSyncStatusJob(ctx context.Context, campaignID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	task, err := NewSyncStatusTask(SyncStatusJobPayload{CampaignID: campaignID})
	if err != nil {
		c.logger.Error(ctx, "failed to create sync status task", err)
		return fmt.Errorf("failed to create sync status task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		c.logger.Error(ctx, "failed to enqueue sync status task", err)
		return fmt.Errorf("failed to enqueue sync status task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued sync status task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}
