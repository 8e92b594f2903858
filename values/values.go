// Package values holds the conversions shared by builtins and scripted
// callbacks. Values follow the JSON data model: nil, bool, int64, float64,
// string, []any and map[string]any.
package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

func ToInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if f < math.MinInt64 || f >= -math.MinInt64 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func ToFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	if i, ok := ToInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

func IsInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func IsFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// Normalize converts json.Number to int64 or float64, recursively.
func Normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		for i, e := range v {
			v[i] = Normalize(e)
		}
		return v
	case map[string]any:
		for k, e := range v {
			v[k] = Normalize(e)
		}
		return v
	}
	return v
}

// ParseJSON decodes a single JSON value, keeping integers as int64.
func ParseJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse %q: %w", data, err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("parse %q: trailing data", data)
	}
	return Normalize(v), nil
}

// Format renders v the way template output prints it: strings verbatim,
// everything else as JSON.
func Format(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
