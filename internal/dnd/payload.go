package dnd

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// Well-known keys of the raw gesture data sent by the rendering surface.
const (
	KeyIndex     = "index"     // positional index of the dragged or target tab
	KeyComponent = "component" // explicit component id of the dragged item
	KeyTab       = "tab"       // id of the tab the drop landed on
	KeyVPos      = "vpos"      // normalized vertical position within the target tab
	KeySource    = "source"    // id of the container the drag started in
)

// Payload is raw gesture data: string keys mapped to opaque values.
// Values arrive either as Go values or decoded from JSON, so the typed
// accessors accept ints, floats, json.Number and numeric strings alike.
type Payload map[string]any

// Clone returns a shallow copy of p. A nil payload clones to an empty one.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has reports whether key is present with a non-nil value.
func (p Payload) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Keys returns the payload keys in sorted order.
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the value under key as a string.
func (p Payload) String(key string) (string, bool) {
	switch v := p[key].(type) {
	case string:
		return v, true
	case Component:
		return v.ComponentID(), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// Int returns the value under key as an int. Floats must be integral.
func (p Payload) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float32:
		return intFromFloat(float64(v))
	case float64:
		return intFromFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n), true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Float returns the value under key as a float64.
func (p Payload) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) {
			return f, true
		}
	}
	return 0, false
}

func intFromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt) rounds up to 2^63, itself out of range
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}
