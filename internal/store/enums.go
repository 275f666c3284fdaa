package store

// CampaignStatus is the vendor-aligned status code of a campaign.
type CampaignStatus int

// Campaign statuses. The numeric values are the vendor's own codes, except
// draft which exists only locally.
const (
	CampaignStatusTempRegistered      CampaignStatus = 0
	CampaignStatusInspectionRequested CampaignStatus = 1
	CampaignStatusInspectionComplete  CampaignStatus = 2
	CampaignStatusDraft               CampaignStatus = 5
	CampaignStatusApprovalRequested   CampaignStatus = 10
	CampaignStatusApproved            CampaignStatus = 11
	CampaignStatusRejected            CampaignStatus = 17
	CampaignStatusSendPreparation     CampaignStatus = 20
	CampaignStatusInProgress          CampaignStatus = 30
	CampaignStatusCompleted           CampaignStatus = 40
	CampaignStatusCancelled           CampaignStatus = 90
	CampaignStatusStopped             CampaignStatus = 91
)

var campaignStatusLabels = map[CampaignStatus]string{
	CampaignStatusDraft:               "draft",
	CampaignStatusTempRegistered:      "temp_registered",
	CampaignStatusInspectionRequested: "inspection_requested",
	CampaignStatusInspectionComplete:  "inspection_complete",
	CampaignStatusApprovalRequested:   "approval_requested",
	CampaignStatusApproved:            "approved",
	CampaignStatusRejected:            "rejected",
	CampaignStatusSendPreparation:     "send_preparation",
	CampaignStatusInProgress:          "in_progress",
	CampaignStatusCompleted:           "completed",
	CampaignStatusCancelled:           "cancelled",
	CampaignStatusStopped:             "stopped",
}

// String returns the human-readable status.
func (s CampaignStatus) String() string {
	if label, ok := campaignStatusLabels[s]; ok {
		return label
	}
	return "unknown"
}

// Known reports whether s is one of the defined statuses.
func (s CampaignStatus) Known() bool {
	_, ok := campaignStatusLabels[s]
	return ok
}

// Terminal reports whether no vendor-reported status may replace s.
// Rejected campaigns are excluded: re-submission moves them back to
// temp_registered.
func (s CampaignStatus) Terminal() bool {
	switch s {
	case CampaignStatusCompleted, CampaignStatusCancelled, CampaignStatusStopped:
		return true
	}
	return false
}

// Message type ENUMs
type MessageType string

const (
	MessageTypeLMS MessageType = "LMS"
	MessageTypeMMS MessageType = "MMS"
	MessageTypeRCS MessageType = "RCS"
)

// RCSSubType is the RCS message layout (0-5).
type RCSSubType int

const (
	RCSTextShort     RCSSubType = 0
	RCSTextLong      RCSSubType = 1
	RCSImage         RCSSubType = 2
	RCSTemplateText  RCSSubType = 3
	RCSTemplateImage RCSSubType = 4
	RCSCarousel      RCSSubType = 5
)

// Template ENUMs
const (
	TemplateStatusPending  = "pending"
	TemplateStatusApproved = "approved"
	TemplateStatusRejected = "rejected"
)
