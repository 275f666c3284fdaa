package targeting

import (
	"campaign-gateway/internal/validation"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Mode is the targeting mode of a campaign.
type Mode string

const (
	ModeATS      Mode = "ats"
	ModeGeofence Mode = "geofence"
)

// Spec is the targeting of one campaign: either Demographic or Geofences, never both.
type Spec interface {
	Mode() Mode
	sealed()
}

// Gender restricts the audience by subscriber gender. The zero value means all.
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) isAll() bool {
	return g == "" || g == GenderAll
}

// AgeRange holds optional inclusive bounds within [MinAge, MaxAge].
type AgeRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

const (
	MinAge = 10
	MaxAge = 100
)

func (a AgeRange) specified() bool {
	return a.Min != nil || a.Max != nil
}

func (a AgeRange) validate(field string) error {
	if a.Min != nil && (*a.Min < MinAge || *a.Min > MaxAge) {
		return validation.New(field+".min", "must be between %d and %d", MinAge, MaxAge)
	}
	if a.Max != nil && (*a.Max < MinAge || *a.Max > MaxAge) {
		return validation.New(field+".max", "must be between %d and %d", MinAge, MaxAge)
	}
	if a.Min != nil && a.Max != nil && *a.Min >= *a.Max {
		return validation.New(field, "min must be lower than max")
	}
	return nil
}

// CategoryDomain is the vendor interest domain a category path belongs to.
type CategoryDomain string

const (
	DomainShopping CategoryDomain = "shopping"
	DomainApp      CategoryDomain = "app"
	DomainCall     CategoryDomain = "call"
)

// CategoryLevel is one level of a category path. Name is optional input; the
// compiler resolves it from the catalog.
type CategoryLevel struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// CategoryPath is a top/mid/sub category hierarchy of one to three levels.
type CategoryPath []CategoryLevel

// LocationType distinguishes home and work locations.
type LocationType string

const (
	LocationHome LocationType = "home"
	LocationWork LocationType = "work"
)

type LocationSelection struct {
	Code string       `json:"code"`
	Name string       `json:"name,omitempty"`
	Type LocationType `json:"type"`
}

// ProfilingType declares the shape of a profiling filter value.
type ProfilingType string

const (
	ProfilingBoolean ProfilingType = "boolean"
	ProfilingRange   ProfilingType = "range"
	ProfilingCode    ProfilingType = "code"
)

// ProfilingFilter is a behavioral signal. Value is a bool, a {gt,lt} object or
// one or more code strings depending on Type.
type ProfilingFilter struct {
	Code  string        `json:"code"`
	Name  string        `json:"name,omitempty"`
	Type  ProfilingType `json:"type"`
	Value any           `json:"value"`
}

// Demographic is ATS targeting: demographics plus interest, location and
// profiling signals compiled into a vendor filter expression.
type Demographic struct {
	Gender    Gender              `json:"gender,omitempty"`
	Age       AgeRange            `json:"age"`
	Regions   []string            `json:"regions,omitempty"`
	Shopping  []CategoryPath      `json:"shopping,omitempty"`
	App       []CategoryPath      `json:"app,omitempty"`
	Call      []CategoryPath      `json:"call,omitempty"`
	Locations []LocationSelection `json:"locations,omitempty"`
	Profiling []ProfilingFilter   `json:"profiling,omitempty"`
}

func (Demographic) Mode() Mode { return ModeATS }
func (Demographic) sealed()    {}

// GeofenceTarget describes who is collected inside a geofence.
type GeofenceTarget struct {
	Gender       Gender   `json:"gender,omitempty"`
	Age          AgeRange `json:"age"`
	DwellMinutes int      `json:"dwell_minutes"`
	RadiusMeters int      `json:"radius_meters"`
	Address      string   `json:"address"`
}

// Geofence is a fence saved at the vendor.
type Geofence struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Targets []GeofenceTarget `json:"targets"`
}

// Geofences is location-based targeting; it bypasses the filter compiler.
type Geofences struct {
	Fences []Geofence `json:"fences"`
}

func (Geofences) Mode() Mode { return ModeGeofence }
func (Geofences) sealed()    {}

// IDs returns the vendor ids of the fences in order.
func (g Geofences) IDs() []int64 {
	ids := make([]int64, 0, len(g.Fences))
	for _, f := range g.Fences {
		ids = append(ids, f.ID)
	}
	return ids
}

// Validate checks the structural rules of a targeting spec.
func Validate(s Spec) error {
	switch spec := s.(type) {
	case Demographic:
		return validateDemographic(spec)
	case Geofences:
		return validateGeofences(spec)
	case nil:
		return validation.New("targeting", "is required")
	default:
		return validation.New("targeting", "unsupported targeting %T", s)
	}
}

func validateGender(field string, g Gender) error {
	switch g {
	case "", GenderAll, GenderMale, GenderFemale:
		return nil
	}
	return validation.New(field, "must be one of: all male female")
}

func validateDemographic(d Demographic) error {
	if err := validateGender("targeting.gender", d.Gender); err != nil {
		return err
	}
	if err := d.Age.validate("targeting.age"); err != nil {
		return err
	}
	for domain, paths := range map[CategoryDomain][]CategoryPath{
		DomainShopping: d.Shopping,
		DomainApp:      d.App,
		DomainCall:     d.Call,
	} {
		for i, p := range paths {
			if len(p) == 0 || len(p) > 3 {
				return validation.New(fmt.Sprintf("targeting.%s[%d]", domain, i), "must have between 1 and 3 levels")
			}
			for _, level := range p {
				if strings.TrimSpace(level.Code) == "" {
					return validation.New(fmt.Sprintf("targeting.%s[%d]", domain, i), "category code is required")
				}
			}
		}
	}
	for i, loc := range d.Locations {
		if loc.Code == "" {
			return validation.New(fmt.Sprintf("targeting.locations[%d].code", i), "is required")
		}
		if loc.Type != LocationHome && loc.Type != LocationWork {
			return validation.New(fmt.Sprintf("targeting.locations[%d].type", i), "must be one of: home work")
		}
	}
	for i, p := range d.Profiling {
		if p.Code == "" {
			return validation.New(fmt.Sprintf("targeting.profiling[%d].code", i), "is required")
		}
		switch p.Type {
		case ProfilingBoolean, ProfilingRange, ProfilingCode:
		default:
			return validation.New(fmt.Sprintf("targeting.profiling[%d].type", i), "must be one of: boolean range code")
		}
	}
	return nil
}

func validateGeofences(g Geofences) error {
	if len(g.Fences) == 0 {
		return validation.New("targeting.fences", "at least one geofence is required")
	}
	for i, f := range g.Fences {
		field := fmt.Sprintf("targeting.fences[%d]", i)
		if f.ID <= 0 {
			return validation.New(field+".id", "must reference a saved geofence")
		}
		if len(f.Targets) == 0 {
			return validation.New(field+".targets", "at least one target is required")
		}
		for j, t := range f.Targets {
			tf := fmt.Sprintf("%s.targets[%d]", field, j)
			if err := validateGender(tf+".gender", t.Gender); err != nil {
				return err
			}
			if err := t.Age.validate(tf + ".age"); err != nil {
				return err
			}
			if t.DwellMinutes <= 0 {
				return validation.New(tf+".dwell_minutes", "must be positive")
			}
			if t.RadiusMeters <= 0 {
				return validation.New(tf+".radius_meters", "must be positive")
			}
			if strings.TrimSpace(t.Address) == "" {
				return validation.New(tf+".address", "is required")
			}
		}
	}
	return nil
}

type envelope struct {
	Mode        Mode         `json:"mode"`
	Demographic *Demographic `json:"demographic,omitempty"`
	Geofences   *Geofences   `json:"geofences,omitempty"`
}

// Encode serialises a spec with its mode tag so exactly one variant is stored.
func Encode(s Spec) ([]byte, error) {
	switch spec := s.(type) {
	case Demographic:
		return json.Marshal(envelope{Mode: ModeATS, Demographic: &spec})
	case Geofences:
		return json.Marshal(envelope{Mode: ModeGeofence, Geofences: &spec})
	default:
		return nil, fmt.Errorf("unsupported targeting %T", s)
	}
}

// Decode is the inverse of Encode.
func Decode(data []byte) (Spec, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode targeting: %w", err)
	}
	switch env.Mode {
	case ModeATS:
		if env.Demographic == nil {
			return Demographic{}, nil
		}
		return *env.Demographic, nil
	case ModeGeofence:
		if env.Geofences == nil {
			return nil, errors.New("geofence targeting without fences")
		}
		return *env.Geofences, nil
	default:
		return nil, fmt.Errorf("unknown targeting mode %q", env.Mode)
	}
}
