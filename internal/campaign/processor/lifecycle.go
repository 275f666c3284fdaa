package processor

import (
	"campaign-gateway/internal/campaign/payload"
	"campaign-gateway/internal/campaign/schedule"
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/lock"
	"campaign-gateway/internal/observability"
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Action is a caller-requested lifecycle transition.
type Action string

const (
	ActionSubmit          Action = "submit"
	ActionRegister        Action = "register"
	ActionRequestApproval Action = "request_approval"
	ActionCancel          Action = "cancel"
	ActionStop            Action = "stop"
)

// ParseAction validates an action name accepted by TransitionCampaign.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionRegister, ActionRequestApproval, ActionCancel, ActionStop:
		return a, nil
	}
	return "", validation.New("action", "must be one of: register request_approval cancel stop")
}

func statusSet(statuses ...store.CampaignStatus) map[store.CampaignStatus]bool {
	set := make(map[store.CampaignStatus]bool, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

var (
	registerFrom = statusSet(
		store.CampaignStatusDraft,
		store.CampaignStatusTempRegistered,
		store.CampaignStatusInspectionComplete,
		store.CampaignStatusRejected,
	)
	approvalFrom = statusSet(
		store.CampaignStatusTempRegistered,
		store.CampaignStatusInspectionComplete,
		store.CampaignStatusRejected,
	)
	cancelFrom = statusSet(
		store.CampaignStatusInspectionRequested,
		store.CampaignStatusInspectionComplete,
		store.CampaignStatusApprovalRequested,
		store.CampaignStatusApproved,
		store.CampaignStatusRejected,
		store.CampaignStatusSendPreparation,
	)
	stopFrom = statusSet(store.CampaignStatusInProgress)
)

var guards = map[Action]map[store.CampaignStatus]bool{
	ActionSubmit:          registerFrom,
	ActionRegister:        registerFrom,
	ActionRequestApproval: approvalFrom,
	ActionCancel:          cancelFrom,
	ActionStop:            stopFrom,
}

// ErrInvalidTransition matches every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid campaign status transition")

// InvalidTransitionError is returned when an action is not allowed from the
// campaign's current status.
type InvalidTransitionError struct {
	From   store.CampaignStatus
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a campaign in status %s", e.Action, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func guard(action Action, from store.CampaignStatus) error {
	if !guards[action][from] {
		return &InvalidTransitionError{From: from, Action: action}
	}
	return nil
}

func lockKey(campaignID uuid.UUID) string {
	return lock.CampaignKey(campaignID)
}

// SubmitCampaign registers the campaign at the vendor (create on first
// submission, update afterwards) and requests approval. An explicit
// scheduledAt must be valid as given; otherwise the stored send time is
// rounded up to the next legal slot.
func (p *CampaignProcessor) SubmitCampaign(ctx context.Context, userID, campaignID uuid.UUID, scheduledAt *time.Time) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
		observability.Field{Key: "action", Value: string(ActionSubmit)},
	)

	return p.withCampaign(ctx, campaignID, func() (store.Campaign, error) {
		campaign, err := p.loadOwned(ctx, userID, campaignID)
		if err != nil {
			return store.Campaign{}, err
		}
		if err := guard(ActionSubmit, campaign.Status); err != nil {
			return store.Campaign{}, err
		}

		campaign, err = p.register(ctx, campaign, scheduledAt)
		if err != nil {
			return store.Campaign{}, err
		}
		return p.approve(ctx, campaign)
	})
}

// TransitionCampaign applies a single lifecycle action.
func (p *CampaignProcessor) TransitionCampaign(ctx context.Context, userID, campaignID uuid.UUID, action Action) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "user_id", Value: userID.String()},
		observability.Field{Key: "campaign_id", Value: campaignID.String()},
		observability.Field{Key: "action", Value: string(action)},
	)

	if _, err := ParseAction(string(action)); err != nil {
		return store.Campaign{}, err
	}

	return p.withCampaign(ctx, campaignID, func() (store.Campaign, error) {
		campaign, err := p.loadOwned(ctx, userID, campaignID)
		if err != nil {
			return store.Campaign{}, err
		}
		if err := guard(action, campaign.Status); err != nil {
			return store.Campaign{}, err
		}

		switch action {
		case ActionRegister:
			return p.register(ctx, campaign, nil)
		case ActionRequestApproval:
			if err := p.revalidateSchedule(campaign); err != nil {
				return store.Campaign{}, err
			}
			return p.approve(ctx, campaign)
		case ActionCancel:
			return p.cancel(ctx, campaign)
		default:
			return p.stop(ctx, campaign)
		}
	})
}

// SyncCampaignStatus commits the vendor-reported status of a registered
// campaign. Terminal local states are left alone. Every answered poll is
// recorded so the sweep rotates through all registered campaigns.
func (p *CampaignProcessor) SyncCampaignStatus(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "campaign_id", Value: campaignID.String()})

	return p.withCampaign(ctx, campaignID, func() (store.Campaign, error) {
		campaign, err := p.store.GetCampaign(ctx, campaignID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return store.Campaign{}, ErrCampaignNotFound
			}
			p.logger.Error(ctx, "failed to get campaign", err)
			return store.Campaign{}, err
		}
		if !campaign.HasVendorID() || campaign.Status.Terminal() {
			return campaign, nil
		}

		code, err := p.vendor.CampaignStatus(ctx, *campaign.VendorCampaignID)
		if err != nil {
			p.logger.Error(ctx, "failed to get vendor campaign status", err)
			return store.Campaign{}, err
		}
		if err := p.store.MarkCampaignSynced(ctx, campaign.ID, p.now()); err != nil {
			p.logger.Error(ctx, "failed to record status poll", err)
		}

		reported := store.CampaignStatus(code)
		if !reported.Known() || reported == store.CampaignStatusDraft {
			ctx = observability.WithFields(ctx, observability.Field{Key: "vendor_status", Value: code})
			p.logger.Warn(ctx, "vendor reported an unknown campaign status")
			return store.Campaign{}, fmt.Errorf("%w: %d", ErrUnknownVendorStatus, code)
		}
		if reported == campaign.Status {
			return campaign, nil
		}

		prev := campaign.Status
		campaign.Status = reported
		return p.commit(ctx, campaign, prev)
	})
}

// register creates or updates the vendor campaign. A create records the vendor
// id; a draft or rejected campaign moves to temp_registered. Nothing is
// committed unless the vendor accepted the request.
func (p *CampaignProcessor) register(ctx context.Context, campaign store.Campaign, scheduledAt *time.Time) (store.Campaign, error) {
	message, err := p.store.GetMessageByCampaign(ctx, campaign.ID)
	if err != nil {
		p.logger.Error(ctx, "failed to get campaign message", err)
		return store.Campaign{}, fmt.Errorf("failed to get campaign message: %w", err)
	}

	in := payload.Input{Message: message}
	now := p.now()
	switch spec := campaign.Targeting.Spec.(type) {
	case targeting.Demographic:
		sendAt, err := resolveSendTime(campaign, scheduledAt, now)
		if err != nil {
			return store.Campaign{}, err
		}
		campaign.ScheduledAt = &sendAt
		in.SendAt = sendAt

		if campaign.FilterQuery == "" {
			res, err := p.audience.Resolve(ctx, spec)
			if err != nil {
				p.logger.Error(ctx, "failed to resolve audience", err)
				return store.Campaign{}, err
			}
			campaign.FilterQuery = res.Query
			campaign.FilterDescription = res.HTML
			campaign.MaxAudience = res.Count
		}
	case targeting.Geofences:
		w, err := resolveWindow(campaign, scheduledAt, now)
		if err != nil {
			return store.Campaign{}, err
		}
		setWindow(&campaign, w)
		in.Window = w
	}
	in.Campaign = campaign

	req, err := payload.Assemble(in)
	if err != nil {
		return store.Campaign{}, err
	}

	vendorID, err := p.vendor.SaveCampaign(ctx, req)
	if err != nil {
		p.logger.Error(ctx, "vendor rejected campaign registration", err)
		return store.Campaign{}, err
	}

	// The vendor id is stored on its own, without the status guard, so a
	// failed status commit never leads to a second vendor create.
	if !campaign.HasVendorID() {
		stored, err := p.recordVendorID(ctx, campaign.ID, vendorID)
		if err != nil {
			return store.Campaign{}, err
		}
		campaign.VendorCampaignID = &stored
	}

	prev := campaign.Status
	if prev == store.CampaignStatusDraft || prev == store.CampaignStatusRejected {
		campaign.Status = store.CampaignStatusTempRegistered
	}
	return p.commit(ctx, campaign, prev)
}

// UnrecordedVendorCampaignError means the vendor created a campaign whose id
// could not be stored locally.
type UnrecordedVendorCampaignError struct {
	VendorCampaignID string
	Err              error
}

func (e *UnrecordedVendorCampaignError) Error() string {
	return fmt.Sprintf("vendor campaign %s was created but not recorded: %v", e.VendorCampaignID, e.Err)
}

func (e *UnrecordedVendorCampaignError) Unwrap() error {
	return e.Err
}

func (p *CampaignProcessor) recordVendorID(ctx context.Context, campaignID uuid.UUID, vendorID string) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "vendor_campaign_id", Value: vendorID})

	stored, err := p.store.RecordVendorCampaignID(ctx, campaignID, vendorID)
	if err != nil {
		p.logger.Error(ctx, "vendor campaign created but its id was not recorded", err)
		return "", &UnrecordedVendorCampaignError{VendorCampaignID: vendorID, Err: err}
	}
	if stored != vendorID {
		ctx = observability.WithFields(ctx, observability.Field{Key: "stored_vendor_campaign_id", Value: stored})
		p.logger.Warn(ctx, "campaign was already linked to another vendor campaign")
	}
	return stored, nil
}

func (p *CampaignProcessor) approve(ctx context.Context, campaign store.Campaign) (store.Campaign, error) {
	if !campaign.HasVendorID() {
		return store.Campaign{}, validation.New("vendor_campaign_id", "campaign is not registered at the vendor")
	}
	if err := p.vendor.RequestApproval(ctx, *campaign.VendorCampaignID); err != nil {
		p.logger.Error(ctx, "vendor rejected approval request", err)
		return store.Campaign{}, err
	}

	prev := campaign.Status
	campaign.Status = store.CampaignStatusApprovalRequested
	return p.commit(ctx, campaign, prev)
}

func (p *CampaignProcessor) cancel(ctx context.Context, campaign store.Campaign) (store.Campaign, error) {
	if campaign.HasVendorID() {
		if err := p.vendor.CancelCampaign(ctx, *campaign.VendorCampaignID); err != nil {
			p.logger.Error(ctx, "vendor rejected cancellation", err)
			return store.Campaign{}, err
		}
	}

	prev := campaign.Status
	campaign.Status = store.CampaignStatusCancelled
	return p.commit(ctx, campaign, prev)
}

func (p *CampaignProcessor) stop(ctx context.Context, campaign store.Campaign) (store.Campaign, error) {
	if campaign.HasVendorID() {
		if err := p.vendor.StopCampaign(ctx, *campaign.VendorCampaignID); err != nil {
			p.logger.Error(ctx, "vendor rejected stop", err)
			return store.Campaign{}, err
		}
	}

	prev := campaign.Status
	campaign.Status = store.CampaignStatusStopped
	return p.commit(ctx, campaign, prev)
}

// commit persists the campaign with a compare-and-swap on prev and publishes
// the status change. A failed publish is logged only: the vendor already
// confirmed the transition.
func (p *CampaignProcessor) commit(ctx context.Context, campaign store.Campaign, prev store.CampaignStatus) (store.Campaign, error) {
	saved, err := p.store.SaveCampaign(ctx, campaign, prev)
	if err != nil {
		if errors.Is(err, store.ErrStatusConflict) {
			p.logger.Warn(ctx, "campaign status changed concurrently")
			return store.Campaign{}, err
		}
		p.logger.Error(ctx, "failed to save campaign", err)
		return store.Campaign{}, err
	}

	if saved.Status != prev {
		ctx = observability.WithFields(ctx,
			observability.Field{Key: "from_status", Value: prev.String()},
			observability.Field{Key: "to_status", Value: saved.Status.String()},
		)
		p.logger.Info(ctx, "campaign status changed")
		if err := p.events.PublishStatusChanged(ctx, saved, prev); err != nil {
			p.logger.Error(ctx, "failed to publish campaign status change", err)
		}
	}
	return saved, nil
}

func resolveSendTime(campaign store.Campaign, scheduledAt *time.Time, now time.Time) (time.Time, error) {
	if scheduledAt != nil {
		return schedule.ValidateSendTime(*scheduledAt, now, schedule.Reject)
	}
	if campaign.ScheduledAt == nil {
		return time.Time{}, validation.New("scheduled_at", "is required")
	}
	return schedule.ValidateSendTime(*campaign.ScheduledAt, now, schedule.RoundUp)
}

func resolveWindow(campaign store.Campaign, scheduledAt *time.Time, now time.Time) (schedule.Window, error) {
	if scheduledAt != nil {
		return schedule.CollectionWindow(schedule.WindowRequest{Send: *scheduledAt}, now)
	}
	if campaign.CollectionSend == nil {
		return schedule.Window{}, validation.New("scheduled_at", "collection send time is required")
	}
	return schedule.CollectionWindow(windowRequest(campaign.CollectionStart, campaign.CollectionEnd, *campaign.CollectionSend), now)
}

// revalidateSchedule checks that the stored schedule is still acceptable
// without moving it; the vendor already holds these values.
func (p *CampaignProcessor) revalidateSchedule(campaign store.Campaign) error {
	now := p.now()
	switch campaign.Targeting.Spec.(type) {
	case targeting.Demographic:
		if campaign.ScheduledAt == nil {
			return validation.New("scheduled_at", "is required")
		}
		_, err := schedule.ValidateSendTime(*campaign.ScheduledAt, now, schedule.Reject)
		return err
	case targeting.Geofences:
		if campaign.CollectionStart == nil || campaign.CollectionEnd == nil || campaign.CollectionSend == nil {
			return validation.New("scheduled_at", "collection window is required")
		}
		w, err := resolveWindow(campaign, nil, now)
		if err != nil {
			return err
		}
		if !w.Start.Equal(*campaign.CollectionStart) || !w.End.Equal(*campaign.CollectionEnd) || !w.Send.Equal(*campaign.CollectionSend) {
			return validation.New("scheduled_at", "collection window is no longer valid, submit the campaign again")
		}
	}
	return nil
}
