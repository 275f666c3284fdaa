package store

import (
	"campaign-gateway/internal/campaign/targeting"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	quoted := make([]string, 0, len(a))
	for _, item := range a {
		quoted = append(quoted, `"`+strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(item)+`"`)
	}
	// PostgreSQL array format: {"item1","item2"}
	return "{" + strings.Join(quoted, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}

	str = strings.TrimSuffix(strings.TrimPrefix(str, "{"), "}")
	if str == "" {
		*a = []string{}
		return nil
	}

	var (
		items   []string
		current strings.Builder
		quoted  bool
		escaped bool
	)
	for _, r := range str {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			items = append(items, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	items = append(items, current.String())
	*a = items
	return nil
}

// JSONColumn stores any JSON-serialisable value in a jsonb column.
type JSONColumn[T any] struct {
	V T
}

func (j JSONColumn[T]) Value() (driver.Value, error) {
	return json.Marshal(j.V)
}

func (j *JSONColumn[T]) Scan(value interface{}) error {
	var zero T
	if value == nil {
		j.V = zero
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		j.V = zero
		return nil
	}
	return json.Unmarshal(bytes, &j.V)
}

func (j JSONColumn[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.V)
}

func (j *JSONColumn[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &j.V)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("incompatible type for jsonb column")
	}
}

// TargetingColumn stores a targeting spec tagged with its mode.
type TargetingColumn struct {
	Spec targeting.Spec
}

func (t TargetingColumn) Value() (driver.Value, error) {
	if t.Spec == nil {
		return nil, nil
	}
	return targeting.Encode(t.Spec)
}

func (t *TargetingColumn) Scan(value interface{}) error {
	if value == nil {
		t.Spec = nil
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return err
	}
	spec, err := targeting.Decode(bytes)
	if err != nil {
		return err
	}
	t.Spec = spec
	return nil
}

func (t TargetingColumn) MarshalJSON() ([]byte, error) {
	if t.Spec == nil {
		return []byte("null"), nil
	}
	return targeting.Encode(t.Spec)
}

// Button is an RCS call-to-action button.
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Slide is one RCS carousel card.
type Slide struct {
	Title    string   `json:"title,omitempty"`
	Body     string   `json:"body"`
	ImageRef string   `json:"image_ref,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
}

// Campaign is a messaging campaign and its vendor link.
type Campaign struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	UserID            uuid.UUID       `db:"user_id" json:"user_id"`
	Name              string          `db:"name" json:"name"`
	CompanyName       string          `db:"company_name" json:"company_name"`
	MessageType       MessageType     `db:"message_type" json:"message_type"`
	RCSSubType        *RCSSubType     `db:"rcs_sub_type" json:"rcs_sub_type,omitempty"`
	TargetingMode     targeting.Mode  `db:"targeting_mode" json:"targeting_mode"`
	Targeting         TargetingColumn `db:"targeting" json:"targeting"`
	VendorCampaignID  *string         `db:"vendor_campaign_id" json:"vendor_campaign_id,omitempty"`
	Status            CampaignStatus  `db:"status" json:"status"`
	SenderNumber      string          `db:"sender_number" json:"sender_number"`
	GoalCount         int64           `db:"goal_count" json:"goal_count"`
	OvershootCount    *int64          `db:"overshoot_count" json:"overshoot_count,omitempty"`
	MaxAudience       int64           `db:"max_audience" json:"max_audience"`
	FilterQuery       string          `db:"filter_query" json:"-"`
	FilterDescription string          `db:"filter_description" json:"filter_description"`
	ScheduledAt       *time.Time      `db:"scheduled_at" json:"scheduled_at,omitempty"`
	CollectionStart   *time.Time      `db:"collection_start" json:"collection_start,omitempty"`
	CollectionEnd     *time.Time      `db:"collection_end" json:"collection_end,omitempty"`
	CollectionSend    *time.Time      `db:"collection_send" json:"collection_send,omitempty"`
	TemplateID        *uuid.UUID      `db:"template_id" json:"template_id,omitempty"`
	LastSyncedAt      *time.Time      `db:"last_synced_at" json:"last_synced_at,omitempty"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// HasVendorID reports whether the campaign is linked to a vendor campaign.
func (c Campaign) HasVendorID() bool {
	return c.VendorCampaignID != nil && *c.VendorCampaignID != ""
}

// StatusLabel is the derived human-readable status.
func (c Campaign) StatusLabel() string {
	return c.Status.String()
}

// Message is the content sent by a campaign.
type Message struct {
	ID         uuid.UUID            `db:"id" json:"id"`
	CampaignID uuid.UUID            `db:"campaign_id" json:"campaign_id"`
	Title      string               `db:"title" json:"title"`
	Body       string               `db:"body" json:"body"`
	ImageRef   *string              `db:"image_ref" json:"image_ref,omitempty"`
	URLs       StringArray          `db:"urls" json:"urls"`
	Buttons    JSONColumn[[]Button] `db:"buttons" json:"buttons"`
	Slides     JSONColumn[[]Slide]  `db:"slides" json:"slides"`
	CreatedAt  time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `db:"updated_at" json:"updated_at"`
}

// Image returns the image reference or an empty string.
func (m Message) Image() string {
	if m.ImageRef == nil {
		return ""
	}
	return *m.ImageRef
}

// Template is an approved message that campaigns clone at creation.
type Template struct {
	ID          uuid.UUID            `db:"id" json:"id"`
	UserID      uuid.UUID            `db:"user_id" json:"user_id"`
	Name        string               `db:"name" json:"name"`
	MessageType MessageType          `db:"message_type" json:"message_type"`
	RCSSubType  *RCSSubType          `db:"rcs_sub_type" json:"rcs_sub_type,omitempty"`
	Status      string               `db:"status" json:"status"`
	Title       string               `db:"title" json:"title"`
	Body        string               `db:"body" json:"body"`
	ImageRef    *string              `db:"image_ref" json:"image_ref,omitempty"`
	URLs        StringArray          `db:"urls" json:"urls"`
	Buttons     JSONColumn[[]Button] `db:"buttons" json:"buttons"`
	Slides      JSONColumn[[]Slide]  `db:"slides" json:"slides"`
	CreatedAt   time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at" json:"updated_at"`
}

// Clone copies the template content into a new message for a campaign.
func (t Template) Clone(campaignID uuid.UUID) Message {
	msg := Message{
		CampaignID: campaignID,
		Title:      t.Title,
		Body:       t.Body,
		URLs:       append(StringArray(nil), t.URLs...),
		Buttons:    JSONColumn[[]Button]{V: append([]Button(nil), t.Buttons.V...)},
		Slides:     JSONColumn[[]Slide]{V: append([]Slide(nil), t.Slides.V...)},
	}
	if t.ImageRef != nil {
		ref := *t.ImageRef
		msg.ImageRef = &ref
	}
	return msg
}
