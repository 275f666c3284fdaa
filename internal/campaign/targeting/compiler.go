package targeting

import (
	"campaign-gateway/internal/clients/vendor"
	"campaign-gateway/internal/validation"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// NoFilterDescription describes a filter expression without conditions.
const NoFilterDescription = "all audience"

// ErrEmptyAudienceQuery means the vendor estimated an audience but returned no
// filter string, which it would reject at campaign creation.
var ErrEmptyAudienceQuery = errors.New("vendor returned an empty audience query")

// Estimator asks the vendor for its canonical filter string and audience size.
type Estimator interface {
	EstimateAudience(ctx context.Context, filter any) (vendor.AudienceEstimate, error)
}

type Option func(*Compiler)

// WithLenientRegions drops unknown region names instead of rejecting them.
func WithLenientRegions() Option {
	return func(c *Compiler) {
		c.lenientRegions = true
	}
}

// Compiler turns demographic targeting into a vendor filter expression.
type Compiler struct {
	catalog        CategoryCatalog
	estimator      Estimator
	lenientRegions bool
}

func New(catalog CategoryCatalog, estimator Estimator, opts ...Option) *Compiler {
	c := &Compiler{
		catalog:   catalog,
		estimator: estimator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compiled is the locally built expression and its descriptions.
type Compiled struct {
	Expression  Group
	Description string
	HTML        string
}

// Resolution adds the vendor canonical query and audience estimate. Query is
// the value submitted at campaign creation; Expression is only an input to it.
type Resolution struct {
	Compiled
	Query string
	Count int64
}

// Compile builds the filter expression. Conditions are emitted in the order
// age, gender, region, shopping, app, call, location, profiling.
func (c *Compiler) Compile(ctx context.Context, d Demographic) (Compiled, error) {
	if err := validateDemographic(d); err != nil {
		return Compiled{}, err
	}

	conds := make([]Condition, 0, 8)
	if cond, ok := ageCondition(d.Age); ok {
		conds = append(conds, cond)
	}
	if cond, ok := genderCondition(d.Gender); ok {
		conds = append(conds, cond)
	}

	region, ok, err := c.regionCondition(d.Regions)
	if err != nil {
		return Compiled{}, err
	}
	if ok {
		conds = append(conds, region)
	}

	for _, sel := range []struct {
		domain CategoryDomain
		meta   string
		paths  []CategoryPath
	}{
		{DomainShopping, MetaShopping, d.Shopping},
		{DomainApp, MetaApp, d.App},
		{DomainCall, MetaCall, d.Call},
	} {
		if len(sel.paths) == 0 {
			continue
		}
		cond, err := c.categoryCondition(ctx, sel.domain, sel.meta, sel.paths)
		if err != nil {
			return Compiled{}, err
		}
		conds = append(conds, cond)
	}

	conds = append(conds, locationConditions(d.Locations)...)

	for i, p := range d.Profiling {
		cond, err := profilingCondition(i, p)
		if err != nil {
			return Compiled{}, err
		}
		conds = append(conds, cond)
	}

	desc := describe(conds)
	return Compiled{
		Expression:  And(conds...),
		Description: desc,
		HTML:        HTML(desc),
	}, nil
}

// Resolve compiles d and asks the vendor to estimate it. Any estimator
// failure is returned: without the vendor query the campaign cannot be created.
func (c *Compiler) Resolve(ctx context.Context, d Demographic) (Resolution, error) {
	compiled, err := c.Compile(ctx, d)
	if err != nil {
		return Resolution{}, err
	}

	est, err := c.estimator.EstimateAudience(ctx, compiled.Expression)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to estimate audience: %w", err)
	}
	if est.Query == "" {
		return Resolution{}, ErrEmptyAudienceQuery
	}

	return Resolution{
		Compiled: compiled,
		Query:    est.Query,
		Count:    est.Count,
	}, nil
}

// HTML wraps a plain description for vendor-side rendering.
func HTML(desc string) string {
	return "<html><body><p>" + html.EscapeString(desc) + "</p></body></html>"
}

// DescribeGeofences renders geofence targeting for local display.
func DescribeGeofences(g Geofences) string {
	if len(g.Fences) == 0 {
		return NoFilterDescription
	}
	parts := make([]string, 0, len(g.Fences))
	for _, f := range g.Fences {
		name := f.Name
		if name == "" {
			name = "geofence " + strconv.FormatInt(f.ID, 10)
		}
		targets := make([]string, 0, len(f.Targets))
		for _, t := range f.Targets {
			var b strings.Builder
			if !t.Gender.isAll() {
				b.WriteString(string(t.Gender) + " ")
			}
			if t.Age.specified() {
				lo, hi := t.Age.bounds()
				fmt.Fprintf(&b, "age %d-%d ", lo, hi)
			}
			fmt.Fprintf(&b, "within %dm of %s, dwell %dmin", t.RadiusMeters, t.Address, t.DwellMinutes)
			targets = append(targets, b.String())
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", name, strings.Join(targets, "; ")))
	}
	return strings.Join(parts, ", ")
}

func describe(conds []Condition) string {
	if len(conds) == 0 {
		return NoFilterDescription
	}
	descs := make([]string, 0, len(conds))
	for _, c := range conds {
		descs = append(descs, c.Desc)
	}
	return strings.Join(descs, ", ")
}

func (a AgeRange) bounds() (int, int) {
	lo, hi := 0, MaxAge
	if a.Min != nil {
		lo = *a.Min
	}
	if a.Max != nil {
		hi = *a.Max
	}
	return lo, hi
}

func ageCondition(a AgeRange) (Condition, bool) {
	if !a.specified() {
		return Condition{}, false
	}
	lo, hi := a.bounds()
	return Condition{
		Data:     Range{GT: float64(lo), LT: float64(hi)},
		DataType: DataNumber,
		MetaType: MetaSubscriber,
		Code:     CodeAge,
		Desc:     fmt.Sprintf("age %d-%d", lo, hi),
	}, true
}

var genderCodes = map[Gender]string{
	GenderMale:   "1",
	GenderFemale: "2",
}

func genderCondition(g Gender) (Condition, bool) {
	if g.isAll() {
		return Condition{}, false
	}
	return Condition{
		Data:     []string{genderCodes[g]},
		DataType: DataCode,
		MetaType: MetaSubscriber,
		Code:     CodeGender,
		Desc:     string(g),
	}, true
}

func (c *Compiler) regionCondition(regions []string) (Condition, bool, error) {
	codes := make([]string, 0, len(regions))
	names := make([]string, 0, len(regions))
	for _, name := range regions {
		code, ok := RegionCode(name)
		if !ok {
			if c.lenientRegions {
				continue
			}
			return Condition{}, false, validation.New("targeting.regions", "unknown region %q", name)
		}
		codes = append(codes, code)
		names = append(names, strings.TrimSpace(name))
	}
	if len(codes) == 0 {
		return Condition{}, false, nil
	}
	return Condition{
		Data:     codes,
		DataType: DataCode,
		MetaType: MetaSubscriber,
		Code:     CodeRegion,
		Desc:     "region " + strings.Join(names, "/"),
	}, true, nil
}

func (c *Compiler) categoryCondition(ctx context.Context, domain CategoryDomain, meta string, paths []CategoryPath) (Condition, error) {
	values := make([]CategoryValue, 0, len(paths))
	descs := make([]string, 0, len(paths))
	for i, path := range paths {
		names := make([]string, len(path))
		for j, level := range path {
			name, err := c.categoryName(ctx, domain, level)
			if err != nil {
				return Condition{}, err
			}
			if name == "" {
				return Condition{}, validation.New(fmt.Sprintf("targeting.%s[%d]", domain, i), "unknown category code %q", level.Code)
			}
			names[j] = name
		}
		v := CategoryValue{Cat1: names[0]}
		if len(names) > 1 {
			v.Cat2 = names[1]
		}
		if len(names) > 2 {
			v.Cat3 = names[2]
		}
		values = append(values, v)
		descs = append(descs, strings.Join(names, ">"))
	}
	return Condition{
		Data:     values,
		DataType: DataCategory,
		MetaType: meta,
		Desc:     fmt.Sprintf("%s %s", domain, strings.Join(descs, "/")),
	}, nil
}

// categoryName prefers the catalog; a client-supplied name is only used when
// the catalog has no entry for the code.
func (c *Compiler) categoryName(ctx context.Context, domain CategoryDomain, level CategoryLevel) (string, error) {
	if c.catalog != nil {
		name, ok, err := c.catalog.CategoryName(ctx, domain, level.Code)
		if err != nil {
			return "", fmt.Errorf("failed to resolve category %s/%s: %w", domain, level.Code, err)
		}
		if ok && name != "" {
			return name, nil
		}
	}
	return strings.TrimSpace(level.Name), nil
}

func locationConditions(locs []LocationSelection) []Condition {
	var home, work []LocationSelection
	for _, l := range locs {
		if l.Type == LocationHome {
			home = append(home, l)
		} else {
			work = append(work, l)
		}
	}
	conds := make([]Condition, 0, 2)
	for _, group := range []struct {
		code  string
		label string
		locs  []LocationSelection
	}{
		{CodeHomeLocation, "home", home},
		{CodeWorkLocation, "work", work},
	} {
		if len(group.locs) == 0 {
			continue
		}
		codes := make([]string, 0, len(group.locs))
		names := make([]string, 0, len(group.locs))
		for _, l := range group.locs {
			codes = append(codes, l.Code)
			name := l.Name
			if name == "" {
				name = l.Code
			}
			names = append(names, name)
		}
		conds = append(conds, Condition{
			Data:     codes,
			DataType: DataCode,
			MetaType: MetaLocation,
			Code:     group.code,
			Desc:     group.label + " " + strings.Join(names, "/"),
		})
	}
	return conds
}

func profilingCondition(i int, p ProfilingFilter) (Condition, error) {
	field := fmt.Sprintf("targeting.profiling[%d].value", i)
	label := p.Name
	if label == "" {
		label = p.Code
	}
	cond := Condition{
		MetaType: MetaProfiling,
		Code:     p.Code,
	}

	switch p.Type {
	case ProfilingBoolean:
		b, err := coerceBool(p.Value)
		if err != nil {
			return Condition{}, validation.New(field, "%v", err)
		}
		cond.Data = b
		cond.DataType = DataBoolean
		cond.Desc = fmt.Sprintf("%s=%t", label, b)
	case ProfilingRange:
		r, err := coerceRange(p.Value)
		if err != nil {
			return Condition{}, validation.New(field, "%v", err)
		}
		cond.Data = r
		cond.DataType = DataNumber
		cond.Desc = fmt.Sprintf("%s %s-%s", label, formatNumber(r.GT), formatNumber(r.LT))
	case ProfilingCode:
		codes, err := coerceCodes(p.Value)
		if err != nil {
			return Condition{}, validation.New(field, "%v", err)
		}
		cond.Data = codes
		cond.DataType = DataCode
		cond.Desc = fmt.Sprintf("%s %s", label, strings.Join(codes, "/"))
	default:
		return Condition{}, validation.New(fmt.Sprintf("targeting.profiling[%d].type", i), "must be one of: boolean range code")
	}
	return cond, nil
}

func coerceBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, fmt.Errorf("expected a boolean, got %q", val)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected a boolean, got %T", v)
	}
}

func coerceRange(v any) (Range, error) {
	switch val := v.(type) {
	case Range:
		return val, nil
	case *Range:
		if val == nil {
			return Range{}, errors.New("range is required")
		}
		return *val, nil
	case map[string]any:
		gt, err := coerceNumber(val["gt"])
		if err != nil {
			return Range{}, fmt.Errorf("gt: %w", err)
		}
		lt, err := coerceNumber(val["lt"])
		if err != nil {
			return Range{}, fmt.Errorf("lt: %w", err)
		}
		return Range{GT: gt, LT: lt}, nil
	default:
		return Range{}, fmt.Errorf("expected a {gt, lt} object, got %T", v)
	}
}

func coerceNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("expected a number, got %q", n)
		}
		return f, nil
	case nil:
		return 0, errors.New("is required")
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func coerceCodes(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return nil, errors.New("at least one code is required")
		}
		return []string{val}, nil
	case []string:
		if len(val) == 0 {
			return nil, errors.New("at least one code is required")
		}
		return val, nil
	case []any:
		codes := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected code strings, got %T", item)
			}
			codes = append(codes, s)
		}
		if len(codes) == 0 {
			return nil, errors.New("at least one code is required")
		}
		return codes, nil
	default:
		return nil, fmt.Errorf("expected one or more codes, got %T", v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
