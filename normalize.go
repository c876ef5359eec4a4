package toon

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"time"
)

// normalize maps an arbitrary host value onto the JSON data model (§4.1):
// nil, bool, a Go integer kind (passed through as given), int64 or
// float64 for floats, string, *Object, or Array. Recognized Go
// shapes are converted directly and recursively, preserving the iteration
// order of *Object and Array inputs and of map[string]interface{} (sorted,
// since a plain Go map carries no order of its own); anything else
// (structs, pointers, other map/slice element types) is routed through
// encoding/json so that struct tags and nested field order are honored.
// time.Time is special-cased to opts.TimeFormatter (default RFC3339Nano)
// since its zero-value JSON round trip (a quoted timestamp string) is
// already exactly what TOON wants, without a JSON hop.
func normalize(v Value, opts *EncodeOptions) (Value, error) {
	return normalizeDepth(v, 0, opts)
}

const maxNormalizeDepth = 10000

func normalizeDepth(v Value, depth int, opts *EncodeOptions) (Value, error) {
	if depth > maxNormalizeDepth {
		return nil, &EncodeError{Kind: ErrInvalidInput, Message: "value nesting too deep (possible cycle)"}
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return val, nil
	case string:
		return val, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return val, nil
	case float32:
		return normalizeFloat(float64(val)), nil
	case float64:
		return normalizeFloat(val), nil

	case time.Time:
		return formatTime(val, opts), nil

	case *Object:
		out := NewObjectWithCapacity(val.Len())
		for _, p := range val.Pairs() {
			nv, err := normalizeDepth(p.Value, depth+1, opts)
			if err != nil {
				return nil, err
			}
			out.Set(p.Key, nv)
		}
		return out, nil

	case Array:
		out := make(Array, len(val))
		for i, item := range val {
			nv, err := normalizeDepth(item, depth+1, opts)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil

	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewObjectWithCapacity(len(keys))
		for _, k := range keys {
			nv, err := normalizeDepth(val[k], depth+1, opts)
			if err != nil {
				return nil, err
			}
			out.Set(k, nv)
		}
		return out, nil

	default:
		return normalizeViaJSON(v, depth)
	}
}

// formatTime renders t with opts.TimeFormatter, or time.RFC3339Nano when
// no formatter was configured.
func formatTime(t time.Time, opts *EncodeOptions) string {
	if opts != nil && opts.TimeFormatter != nil {
		return opts.TimeFormatter(t)
	}
	return t.Format(time.RFC3339Nano)
}

// normalizeFloat applies the non-finite-to-null and negative-zero-to-zero
// rules, coercing whole numbers to int64 so encoding doesn't print a
// trailing ".0" for values like 3.0.
func normalizeFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f == 0 {
		return int64(0)
	}
	if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
		return int64(f)
	}
	return f
}

// normalizeViaJSON handles structs, pointers, and any other shape that
// isn't already one of the data model's native Go representations by
// round-tripping it through encoding/json: Marshal honors struct tags and
// field order, and the token-stream decode below preserves that order
// into Objects instead of losing it to a map[string]interface{} hop.
func normalizeViaJSON(v Value, depth int) (Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodeError{Kind: ErrInvalidInput, Message: "value cannot be normalized", Value: v, Cause: err}
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	val, err := decodeJSONValue(dec, depth)
	if err != nil {
		return nil, &EncodeError{Kind: ErrInvalidInput, Message: "value cannot be normalized", Value: v, Cause: err}
	}
	return val, nil
}

// decodeJSONValue reads one JSON value from dec's token stream and returns
// it as a Value, building *Object for objects so that field order survives
// (json.Decoder emits object keys in source order). Shared by normalize's
// struct fallback and by Object.UnmarshalJSON.
func decodeJSONValue(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxNormalizeDepth {
		return nil, &EncodeError{Kind: ErrInvalidInput, Message: "value nesting too deep (possible cycle)"}
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := keyTok.(string)
				val, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil

		case '[':
			var arr Array
			for dec.More() {
				val, err := decodeJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			if arr == nil {
				arr = Array{}
			}
			return arr, nil
		}
		return nil, nil

	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return normalizeFloat(f), nil

	case nil:
		return nil, nil
	case bool, string:
		return t, nil
	default:
		return t, nil
	}
}
