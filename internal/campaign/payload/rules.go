package payload

import (
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"fmt"
	"math"
	"strings"
)

// BillingType is the vendor's structural classification of a campaign.
type BillingType int

const (
	BillingLMS      BillingType = 0
	BillingRCSImage BillingType = 1
	BillingMMS      BillingType = 2
	BillingRCS      BillingType = 3
)

// NeedsFile reports whether mms.fileInfo may carry an image.
func (b BillingType) NeedsFile() bool {
	return b == BillingRCSImage || b == BillingMMS
}

// IsRCS reports whether the rcs array and rcsType are sent.
func (b BillingType) IsRCS() bool {
	return b == BillingRCSImage || b == BillingRCS
}

// BillingTypeFor derives the billing type from the message type and RCS
// sub-type. Only a carousel bills as an image-bearing RCS campaign; image
// presence is not consulted.
func BillingTypeFor(mt store.MessageType, sub *store.RCSSubType) (BillingType, error) {
	switch mt {
	case store.MessageTypeLMS:
		return BillingLMS, nil
	case store.MessageTypeMMS:
		return BillingMMS, nil
	case store.MessageTypeRCS:
		if sub == nil {
			return 0, validation.New("rcs_sub_type", "is required for RCS messages")
		}
		if _, ok := rcsLimits[*sub]; !ok {
			return 0, validation.New("rcs_sub_type", "must be between 0 and 5")
		}
		if *sub == store.RCSCarousel {
			return BillingRCSImage, nil
		}
		return BillingRCS, nil
	default:
		return 0, validation.New("message_type", "must be one of: LMS MMS RCS")
	}
}

// RCSLimits are the structural limits of one RCS sub-type.
type RCSLimits struct {
	MaxMessage     int
	MaxButtonLabel int
	MaxURLs        int
	ImageRequired  bool
}

var rcsLimits = map[store.RCSSubType]RCSLimits{
	store.RCSTextShort:     {MaxMessage: 100, MaxButtonLabel: 17, MaxURLs: 1},
	store.RCSTextLong:      {MaxMessage: 1300, MaxButtonLabel: 17, MaxURLs: 3},
	store.RCSImage:         {MaxMessage: 1300, MaxButtonLabel: 17, MaxURLs: 3, ImageRequired: true},
	store.RCSTemplateText:  {MaxMessage: 400, MaxButtonLabel: 17, MaxURLs: 2},
	store.RCSTemplateImage: {MaxMessage: 400, MaxButtonLabel: 17, MaxURLs: 2, ImageRequired: true},
	store.RCSCarousel:      {MaxMessage: 300, MaxButtonLabel: 17, MaxURLs: 2, ImageRequired: true},
}

// LimitsFor returns the limits of an RCS sub-type.
func LimitsFor(sub store.RCSSubType) (RCSLimits, bool) {
	l, ok := rcsLimits[sub]
	return l, ok
}

const (
	MaxCampaignName = 40
	MaxCompanyName  = 100
	MaxTitle        = 30
	MaxBody         = 1000

	MaxCarouselSlides = 6
	MinCarouselSlides = 2

	// MaxSendCount caps sndMosu.
	MaxSendCount   = 400000
	overshootRatio = 1.5
)

// ValidateCampaign checks the campaign-level bounds.
func ValidateCampaign(c store.Campaign) error {
	if strings.TrimSpace(c.Name) == "" {
		return validation.New("name", "is required")
	}
	if err := validation.MaxRunes("name", c.Name, MaxCampaignName); err != nil {
		return err
	}
	if strings.TrimSpace(c.CompanyName) == "" {
		return validation.New("company_name", "is required")
	}
	if err := validation.MaxRunes("company_name", c.CompanyName, MaxCompanyName); err != nil {
		return err
	}
	if c.GoalCount <= 0 {
		return validation.New("goal_count", "must be positive")
	}
	if c.GoalCount > MaxSendCount {
		return validation.New("goal_count", "must be at most %d", MaxSendCount)
	}
	if c.OvershootCount != nil {
		if *c.OvershootCount < c.GoalCount {
			return validation.New("overshoot_count", "must be at least goal_count")
		}
		if *c.OvershootCount > MaxSendCount {
			return validation.New("overshoot_count", "must be at most %d", MaxSendCount)
		}
	}
	return nil
}

// ValidateMessage checks the message against the general bounds and, for RCS,
// the sub-type limits.
func ValidateMessage(mt store.MessageType, sub *store.RCSSubType, m store.Message) error {
	billing, err := BillingTypeFor(mt, sub)
	if err != nil {
		return err
	}
	if err := validation.MaxRunes("message.title", m.Title, MaxTitle); err != nil {
		return err
	}
	if err := validation.MaxRunes("message.body", m.Body, MaxBody); err != nil {
		return err
	}

	switch mt {
	case store.MessageTypeLMS:
		if strings.TrimSpace(m.Body) == "" {
			return validation.New("message.body", "is required")
		}
		if m.Image() != "" {
			return validation.New("message.image_ref", "LMS messages cannot carry an image")
		}
		return nil
	case store.MessageTypeMMS:
		if strings.TrimSpace(m.Body) == "" {
			return validation.New("message.body", "is required")
		}
		return nil
	}

	limits := rcsLimits[*sub]
	if len(m.URLs) > limits.MaxURLs {
		return validation.New("message.urls", "at most %d URLs are allowed for this RCS type", limits.MaxURLs)
	}
	if err := validateButtons("message.buttons", m.Buttons.V, limits); err != nil {
		return err
	}

	if billing == BillingRCSImage {
		slides := m.Slides.V
		if len(slides) < MinCarouselSlides || len(slides) > MaxCarouselSlides {
			return validation.New("message.slides", "carousel needs between %d and %d slides", MinCarouselSlides, MaxCarouselSlides)
		}
		for i, s := range slides {
			field := fmt.Sprintf("message.slides[%d]", i)
			if strings.TrimSpace(s.Body) == "" {
				return validation.New(field+".body", "is required")
			}
			if err := validation.MaxRunes(field+".body", s.Body, limits.MaxMessage); err != nil {
				return err
			}
			if err := validation.MaxRunes(field+".title", s.Title, MaxTitle); err != nil {
				return err
			}
			if s.ImageRef == "" {
				return validation.New(field+".image_ref", "is required")
			}
			if err := validateButtons(field+".buttons", s.Buttons, limits); err != nil {
				return err
			}
		}
		return nil
	}

	if strings.TrimSpace(m.Body) == "" {
		return validation.New("message.body", "is required")
	}
	if err := validation.MaxRunes("message.body", m.Body, limits.MaxMessage); err != nil {
		return err
	}
	if limits.ImageRequired && m.Image() == "" {
		return validation.New("message.image_ref", "is required for this RCS type")
	}
	return nil
}

func validateButtons(field string, buttons []store.Button, limits RCSLimits) error {
	for i, b := range buttons {
		if strings.TrimSpace(b.Label) == "" {
			return validation.New(fmt.Sprintf("%s[%d].label", field, i), "is required")
		}
		if err := validation.MaxRunes(fmt.Sprintf("%s[%d].label", field, i), b.Label, limits.MaxButtonLabel); err != nil {
			return err
		}
	}
	return nil
}

// SendCount returns sndMosu and sndMosuFlag: the explicit overshoot count with
// flag 1, or min(ceil(goal*1.5), 400000) with flag 0.
func SendCount(goal int64, explicit *int64) (int64, int) {
	if explicit != nil {
		return *explicit, 1
	}
	n := int64(math.Ceil(float64(goal) * overshootRatio))
	if n > MaxSendCount {
		n = MaxSendCount
	}
	return n, 0
}
