package targeting

import (
	"encoding/json"
)

// DataType is the vendor data type of a filter condition.
type DataType string

const (
	DataNumber   DataType = "number"
	DataCode     DataType = "code"
	DataBoolean  DataType = "boolean"
	DataCategory DataType = "category"
)

// Vendor meta types (domain tags).
const (
	MetaSubscriber = "svc"
	MetaShopping   = "shopping"
	MetaApp        = "app"
	MetaCall       = "call"
	MetaLocation   = "STREET"
	MetaProfiling  = "profiling"
)

// Vendor field keys.
const (
	CodeAge          = "cust_age"
	CodeGender       = "sex_cd"
	CodeRegion       = "ctpv_cd"
	CodeHomeLocation = "home_loc"
	CodeWorkLocation = "work_loc"
)

// Condition is one vendor filter condition.
type Condition struct {
	Data     any      `json:"data"`
	DataType DataType `json:"dataType"`
	MetaType string   `json:"metaType"`
	Code     string   `json:"code"`
	Desc     string   `json:"desc"`
	Not      bool     `json:"not"`
}

// Range is a numeric {gt, lt} condition value.
type Range struct {
	GT float64 `json:"gt"`
	LT float64 `json:"lt"`
}

// CategoryValue is a category path rendered with display names.
type CategoryValue struct {
	Cat1 string `json:"cat1"`
	Cat2 string `json:"cat2,omitempty"`
	Cat3 string `json:"cat3,omitempty"`
}

const (
	OpAnd = "AND"
	OpOr  = "OR"
)

// Group is a named logical container. It serialises as {"AND": [...]}.
type Group struct {
	Op         string
	Conditions []Condition
}

// And returns an AND container; the vendor requires the root to be one.
func And(conds ...Condition) Group {
	if conds == nil {
		conds = []Condition{}
	}
	return Group{Op: OpAnd, Conditions: conds}
}

func (g Group) MarshalJSON() ([]byte, error) {
	op := g.Op
	if op == "" {
		op = OpAnd
	}
	conds := g.Conditions
	if conds == nil {
		conds = []Condition{}
	}
	return json.Marshal(map[string][]Condition{op: conds})
}

func (g *Group) UnmarshalJSON(data []byte) error {
	var raw map[string][]Condition
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for op, conds := range raw {
		g.Op = op
		g.Conditions = conds
		if g.Conditions == nil {
			g.Conditions = []Condition{}
		}
	}
	return nil
}
