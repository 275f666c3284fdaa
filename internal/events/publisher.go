package events

import (
	"campaign-gateway/internal/clients/kafka"
	"campaign-gateway/internal/observability"
	"campaign-gateway/internal/store"
	"context"
	"time"

	"github.com/google/uuid"
)

// TypeCampaignStatusChanged is emitted after a status transition is committed.
const TypeCampaignStatusChanged = "campaign.status_changed"

// EventProducer writes encoded events to the stream.
type EventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// Publisher handles publishing domain events to Kafka
type Publisher struct {
	producer EventProducer
	logger   *observability.Logger
	now      func() time.Time
}

// NewPublisher creates a new event publisher
func NewPublisher(producer EventProducer, logger *observability.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// PublishStatusChanged publishes a campaign.status_changed event
func (p *Publisher) PublishStatusChanged(ctx context.Context, campaign store.Campaign, from store.CampaignStatus) error {
	data := map[string]any{
		"from_status":       int(from),
		"from_status_label": from.String(),
		"to_status":         int(campaign.Status),
		"to_status_label":   campaign.Status.String(),
	}
	if campaign.HasVendorID() {
		data["vendor_campaign_id"] = *campaign.VendorCampaignID
	}

	event := kafka.EventMessage{
		ID:         uuid.New().String(),
		Type:       TypeCampaignStatusChanged,
		UserID:     campaign.UserID.String(),
		CampaignID: campaign.ID.String(),
		Data:       data,
		Timestamp:  p.now().UTC().Format(time.RFC3339),
	}

	return p.producer.PublishEvent(ctx, event)
}

// NoopPublisher drops events; used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, store.Campaign, store.CampaignStatus) error {
	return nil
}
