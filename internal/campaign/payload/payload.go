package payload

import (
	"campaign-gateway/internal/campaign/schedule"
	"campaign-gateway/internal/campaign/targeting"
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/store"
	"campaign-gateway/internal/validation"
	"net/http"
	"net/url"
	"time"
)

// Body is the vendor create/update campaign body. Pointer and omitempty
// fields are absent from the JSON when unset; fileInfo and urlLink are always
// sent, as {} when empty.
type Body struct {
	CampaignName string      `json:"campaignName"`
	CompanyName  string      `json:"companyName"`
	Callback     string      `json:"callback"`
	BillingType  BillingType `json:"billingType"`
	SendGoal     int64       `json:"sndGoalCnt"`
	MMS          MMS         `json:"mms"`
	URLLink      URLLink     `json:"urlLink"`
	RCSType      *int        `json:"rcsType,omitempty"`
	RCS          []RCSCard   `json:"rcs,omitempty"`

	// demographic (ATS) targeting only
	ATSSendStart *int64  `json:"atsSndStartDate,omitempty"`
	SendMosu     *int64  `json:"sndMosu,omitempty"`
	SendMosuFlag *int    `json:"sndMosuFlag,omitempty"`
	SendQuery    *string `json:"sndMosuQuery,omitempty"`
	SendDesc     *string `json:"sndMosuDesc,omitempty"`

	// geofence targeting only
	GeofenceIDs     []int64 `json:"sndGeofenceId,omitempty"`
	CollectionStart *int64  `json:"collStartDate,omitempty"`
	CollectionEnd   *int64  `json:"collEndDate,omitempty"`
	CollectionSend  *int64  `json:"collSndDate,omitempty"`
}

type MMS struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	FileInfo FileInfo `json:"fileInfo"`
}

type FileInfo struct {
	List []FileRef `json:"list,omitempty"`
}

type FileRef struct {
	OrigID string `json:"origId"`
}

type URLLink struct {
	List []string `json:"list,omitempty"`
}

type RCSCard struct {
	Title   string      `json:"title,omitempty"`
	Message string      `json:"msg"`
	ImgID   string      `json:"imgOrigId,omitempty"`
	URLs    []string    `json:"urlLink,omitempty"`
	Buttons []RCSButton `json:"buttons,omitempty"`
}

type RCSButton struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Input is everything the assembler needs. SendAt is the validated
// demographic send time; Window the resolved geofence triple.
type Input struct {
	Campaign store.Campaign
	Message  store.Message
	SendAt   time.Time
	Window   schedule.Window
}

// Assemble validates the bounds and builds the vendor request: a create when
// the campaign has no vendor id, an update addressed by ?campaignId otherwise.
func Assemble(in Input) (vendor.Request, error) {
	c, m := in.Campaign, in.Message
	if err := ValidateCampaign(c); err != nil {
		return vendor.Request{}, err
	}
	if err := ValidateMessage(c.MessageType, c.RCSSubType, m); err != nil {
		return vendor.Request{}, err
	}
	billing, err := BillingTypeFor(c.MessageType, c.RCSSubType)
	if err != nil {
		return vendor.Request{}, err
	}

	body := &Body{
		CampaignName: c.Name,
		CompanyName:  c.CompanyName,
		Callback:     c.SenderNumber,
		BillingType:  billing,
		SendGoal:     c.GoalCount,
		MMS: MMS{
			Title:   m.Title,
			Message: m.Body,
		},
		URLLink: URLLink{List: append([]string(nil), m.URLs...)},
	}
	if image := primaryImage(billing, m); billing.NeedsFile() && image != "" {
		body.MMS.FileInfo.List = []FileRef{{OrigID: image}}
	}
	if billing.IsRCS() {
		rcsType := int(*c.RCSSubType)
		body.RCSType = &rcsType
		body.RCS = rcsCards(billing, m)
	}

	switch spec := c.Targeting.Spec.(type) {
	case targeting.Demographic:
		if err := applyDemographic(body, c, in.SendAt); err != nil {
			return vendor.Request{}, err
		}
	case targeting.Geofences:
		if err := applyGeofence(body, spec, in.Window); err != nil {
			return vendor.Request{}, err
		}
	default:
		return vendor.Request{}, validation.New("targeting", "is required")
	}

	req := vendor.Request{
		Method: http.MethodPost,
		Path:   vendor.PathCampaigns,
		Body:   body,
	}
	if c.HasVendorID() {
		req.Method = http.MethodPut
		req.Query = url.Values{"campaignId": []string{*c.VendorCampaignID}}
	}
	return req, nil
}

func applyDemographic(body *Body, c store.Campaign, sendAt time.Time) error {
	if sendAt.IsZero() {
		return validation.New("scheduled_at", "is required")
	}
	if c.FilterQuery == "" {
		return validation.New("targeting", "audience has not been estimated")
	}
	start := sendAt.Unix()
	mosu, flag := SendCount(c.GoalCount, c.OvershootCount)
	query, desc := c.FilterQuery, c.FilterDescription
	if desc == "" {
		desc = targeting.HTML(targeting.NoFilterDescription)
	}

	body.ATSSendStart = &start
	body.SendMosu = &mosu
	body.SendMosuFlag = &flag
	body.SendQuery = &query
	body.SendDesc = &desc
	return nil
}

func applyGeofence(body *Body, spec targeting.Geofences, w schedule.Window) error {
	if w.Start.IsZero() || w.End.IsZero() || w.Send.IsZero() {
		return validation.New("scheduled_at", "collection window is required")
	}
	ids := spec.IDs()
	if len(ids) == 0 {
		return validation.New("targeting.fences", "at least one geofence is required")
	}
	start, end, send := w.Start.Unix(), w.End.Unix(), w.Send.Unix()

	body.GeofenceIDs = ids
	body.CollectionStart = &start
	body.CollectionEnd = &end
	body.CollectionSend = &send
	return nil
}

// primaryImage is the message image, or the first carousel slide's.
func primaryImage(billing BillingType, m store.Message) string {
	if img := m.Image(); img != "" {
		return img
	}
	if billing == BillingRCSImage && len(m.Slides.V) > 0 {
		return m.Slides.V[0].ImageRef
	}
	return ""
}

func rcsCards(billing BillingType, m store.Message) []RCSCard {
	if billing == BillingRCSImage {
		cards := make([]RCSCard, 0, len(m.Slides.V))
		for _, s := range m.Slides.V {
			cards = append(cards, RCSCard{
				Title:   s.Title,
				Message: s.Body,
				ImgID:   s.ImageRef,
				Buttons: rcsButtons(s.Buttons),
			})
		}
		return cards
	}
	return []RCSCard{{
		Title:   m.Title,
		Message: m.Body,
		ImgID:   m.Image(),
		URLs:    append([]string(nil), m.URLs...),
		Buttons: rcsButtons(m.Buttons.V),
	}}
}

func rcsButtons(buttons []store.Button) []RCSButton {
	if len(buttons) == 0 {
		return nil
	}
	out := make([]RCSButton, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, RCSButton{Name: b.Label, URL: b.URL})
	}
	return out
}
