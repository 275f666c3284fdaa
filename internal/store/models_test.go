package store

import (
	"campaign-gateway/internal/campaign/targeting"
	"testing"

	"github.com/google/uuid"
)

func TestStringArray_ValueAndScan(t *testing.T) {
	tests := []struct {
		name  string
		input StringArray
		want  string
	}{
		{name: "nil", input: nil, want: "{}"},
		{name: "plain", input: StringArray{"a", "b"}, want: `{"a","b"}`},
		{name: "comma and quote", input: StringArray{`x,y`, `say "hi"`}, want: `{"x,y","say \"hi\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.input.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if v != tt.want {
				t.Errorf("Value() = %v, want %v", v, tt.want)
			}

			var back StringArray
			if err := back.Scan(v); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(back) != len(tt.input) {
				t.Fatalf("Scan() = %v, want %v", back, tt.input)
			}
			for i := range back {
				if back[i] != tt.input[i] {
					t.Errorf("Scan()[%d] = %q, want %q", i, back[i], tt.input[i])
				}
			}
		})
	}
}

func TestStringArray_ScanUnquoted(t *testing.T) {
	var a StringArray
	if err := a.Scan([]byte("{one,two}")); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(a) != 2 || a[0] != "one" || a[1] != "two" {
		t.Errorf("Scan() = %v", a)
	}
}

func TestTargetingColumn_Scan(t *testing.T) {
	var col TargetingColumn
	if err := col.Scan([]byte(`{"mode":"geofence","geofences":{"fences":[{"id":4,"name":"Mall","targets":[]}]}}`)); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	fences, ok := col.Spec.(targeting.Geofences)
	if !ok {
		t.Fatalf("Spec = %T, want targeting.Geofences", col.Spec)
	}
	if ids := fences.IDs(); len(ids) != 1 || ids[0] != 4 {
		t.Errorf("IDs() = %v, want [4]", ids)
	}

	if err := col.Scan([]byte(`{"mode":"carrier-pigeon"}`)); err == nil {
		t.Errorf("Scan(unknown mode) error = nil, want error")
	}
}

func TestCampaignStatus_String(t *testing.T) {
	tests := []struct {
		status CampaignStatus
		want   string
	}{
		{CampaignStatusDraft, "draft"},
		{CampaignStatusTempRegistered, "temp_registered"},
		{CampaignStatusApprovalRequested, "approval_requested"},
		{CampaignStatusRejected, "rejected"},
		{CampaignStatusStopped, "stopped"},
		{CampaignStatus(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("CampaignStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}

	if CampaignStatusRejected.Terminal() {
		t.Errorf("rejected must not be terminal")
	}
	if !CampaignStatusCancelled.Terminal() {
		t.Errorf("cancelled must be terminal")
	}
}

func TestTemplate_Clone(t *testing.T) {
	ref := "file-1"
	tmpl := Template{
		Title:    "Hello",
		Body:     "World",
		ImageRef: &ref,
		URLs:     StringArray{"https://example.com"},
		Buttons:  JSONColumn[[]Button]{V: []Button{{Label: "Go", URL: "https://example.com"}}},
	}
	campaignID := uuid.New()

	msg := tmpl.Clone(campaignID)
	if msg.CampaignID != campaignID || msg.Title != "Hello" || msg.Image() != "file-1" {
		t.Errorf("Clone() = %+v", msg)
	}

	// copy-on-use: later template edits do not leak into the message
	tmpl.URLs[0] = "https://changed.example.com"
	*tmpl.ImageRef = "file-2"
	if msg.URLs[0] != "https://example.com" || msg.Image() != "file-1" {
		t.Errorf("Clone() shares state with the template: %+v", msg)
	}
}
