// Package filterquery translates user-facing car search forms into the
// normalized query sent to the search layer, and back into display-ready
// tags describing the active filters.
//
// Both directions are pure. A Query preserves insertion order, which makes
// tag order deterministic as long as callers construct queries in a stable
// order — ToQuery always emits known fields in schema order.
package filterquery

import "bytes"

// Form is the raw search form as the user filled it in. All values are kept
// as strings: numeric-looking fields are passed through untouched and
// validated by the search layer, never coerced here.
type Form struct {
	Brand        string `json:"brand" form:"brand"`
	Model        string `json:"model" form:"model"`
	Tab          string `json:"tab" form:"tab"` // "new" or "used" tab selection
	Category     string `json:"category" form:"category"`
	PriceFrom    string `json:"price_from" form:"price_from"`
	PriceTo      string `json:"price_to" form:"price_to"`
	YearFrom     string `json:"year_from" form:"year_from"`
	YearTo       string `json:"year_to" form:"year_to"`
	MileageFrom  string `json:"mileage_from" form:"mileage_from"`
	MileageTo    string `json:"mileage_to" form:"mileage_to"`
	EngineType   string `json:"engine_type" form:"engine_type"`
	Transmission string `json:"transmission" form:"transmission"`
	BodyType     string `json:"body_type" form:"body_type"`
	Color        string `json:"color" form:"color"`
	DriveUnit    string `json:"drive_unit" form:"drive_unit"`

	// Options is the multi-select extras list; included only when non-empty.
	Options []string `json:"options,omitempty" form:"options"`

	// Extra carries unknown keys verbatim, for forward compatibility with
	// filters this package does not know about yet.
	Extra map[string]string `json:"-" form:"-"`
}

// Known filter keys, in schema order.
const (
	KeyBrand        = "brand"
	KeyModel        = "model"
	KeyCategory     = "category"
	KeyPriceFrom    = "price_from"
	KeyPriceTo      = "price_to"
	KeyYearFrom     = "year_from"
	KeyYearTo       = "year_to"
	KeyMileageFrom  = "mileage_from"
	KeyMileageTo    = "mileage_to"
	KeyEngineType   = "engine_type"
	KeyTransmission = "transmission"
	KeyBodyType     = "body_type"
	KeyColor        = "color"
	KeyDriveUnit    = "drive_unit"
	KeyOptions      = "options"
)

// Category values as the search backend stores them.
const (
	CategoryNew  = "New Car"
	CategoryUsed = "Used Car"
)

// Param is a single normalized filter criterion. Value is either a string
// or, for multi-select keys, a []string.
type Param struct {
	Key   string
	Value any
}

// Query is the normalized, transmission-ready form of a Form: blank fields
// elided, the tab selection resolved to a category, insertion order
// preserved.
type Query []Param

// ToQuery normalizes a form into a query. Empty-string values are omitted
// entirely — an empty form yields an empty query, the valid "browse all"
// state. Known fields appear in schema order, followed by any extra keys.
func ToQuery(f Form) Query {
	q := make(Query, 0, 16)

	add := func(key, value string) {
		if value != "" {
			q = append(q, Param{Key: key, Value: value})
		}
	}

	add(KeyBrand, f.Brand)
	add(KeyModel, f.Model)
	add(KeyCategory, resolveCategory(f))
	add(KeyPriceFrom, f.PriceFrom)
	add(KeyPriceTo, f.PriceTo)
	add(KeyYearFrom, f.YearFrom)
	add(KeyYearTo, f.YearTo)
	add(KeyMileageFrom, f.MileageFrom)
	add(KeyMileageTo, f.MileageTo)
	add(KeyEngineType, f.EngineType)
	add(KeyTransmission, f.Transmission)
	add(KeyBodyType, f.BodyType)
	add(KeyColor, f.Color)
	add(KeyDriveUnit, f.DriveUnit)

	if len(f.Options) > 0 {
		q = append(q, Param{Key: KeyOptions, Value: append([]string(nil), f.Options...)})
	}

	for _, key := range sortedExtraKeys(f.Extra) {
		if f.Extra[key] != "" {
			q = append(q, Param{Key: key, Value: f.Extra[key]})
		}
	}

	return q
}

// resolveCategory maps the tab selection to its stored category value at
// submission time. An explicit category field wins over the tab.
func resolveCategory(f Form) string {
	if f.Category != "" {
		return f.Category
	}
	switch f.Tab {
	case "new":
		return CategoryNew
	case "used":
		return CategoryUsed
	}
	return ""
}

// Get returns the string value for key, or "" when absent or non-scalar.
func (q Query) Get(key string) string {
	for _, p := range q {
		if p.Key == key {
			if s, ok := p.Value.(string); ok {
				return s
			}
			return ""
		}
	}
	return ""
}

// Has reports whether key is present in the query.
func (q Query) Has(key string) bool {
	for _, p := range q {
		if p.Key == key {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the query as a JSON object with keys in query order.
// The standard library sorts map keys, which would destroy the ordering
// contract, so the object is assembled by hand.
func (q Query) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range q {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, p.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, p.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
