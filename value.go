package toon

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Value is any value drawn from the TOON/JSON data model: nil, bool, int64,
// float64, string, *Object, or []Value. The normalizer is the only place
// that should introduce values of other host-language types into the tree;
// everywhere else a Value is assumed to already be one of these.
type Value = interface{}

// Array is an ordered sequence of Values, as produced by the normalizer and
// by decoding.
type Array = []Value

// Pair is a single key/value entry of an Object, used by Sort and by
// iteration helpers that need both the key and its position.
type Pair struct {
	Key   string
	Value Value
}

// Object is an insertion-ordered string-keyed mapping. TOON's format
// depends on object and tabular-field order surviving a round trip, and a
// plain Go map cannot make that promise, so Object is the only object
// representation the codec ever produces internally; normalize() and the
// decoder both build Objects exclusively.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// NewObjectWithCapacity creates an empty Object pre-sized for n entries.
func NewObjectWithCapacity(n int) *Object {
	return &Object{keys: make([]string, 0, n), values: make(map[string]Value, n)}
}

// Get retrieves a value by key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Set adds or updates a key-value pair, appending new keys to the end.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	if o.values == nil {
		o.values = map[string]Value{}
	}
	o.values[key] = value
}

// Delete removes a key, if present.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The caller must not mutate the
// returned slice.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Pairs returns the entries in insertion order.
func (o *Object) Pairs() []Pair {
	pairs := make([]Pair, len(o.keys))
	for i, k := range o.keys {
		pairs[i] = Pair{Key: k, Value: o.values[k]}
	}
	return pairs
}

// Sort reorders the keys in place using less, which receives pairs rather
// than bare keys so callers can sort on value as well as key.
func (o *Object) Sort(less func(a, b Pair) bool) {
	pairs := o.Pairs()
	sort.SliceStable(pairs, func(i, j int) bool { return less(pairs[i], pairs[j]) })
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	o.keys = keys
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := enc.Encode(o.values[k]); err != nil {
			return nil, err
		}
		// json.Encoder.Encode appends a trailing newline; trim it.
		b := buf.Bytes()
		buf.Truncate(len(b) - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order using the
// token stream rather than decoding into a plain map first.
func (o *Object) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	val, err := decodeJSONValue(dec, 0)
	if err != nil {
		return err
	}
	obj, ok := val.(*Object)
	if !ok {
		return &DecodeError{Kind: ErrInvalidInput, Message: "expected JSON object"}
	}
	*o = *obj
	return nil
}

// isPrimitive reports whether v is nil, bool, a numeric kind, or a string.
func isPrimitive(v Value) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// isObject reports whether v is an *Object.
func isObject(v Value) bool {
	_, ok := v.(*Object)
	return ok
}

// isArray reports whether v is an Array.
func isArray(v Value) bool {
	_, ok := v.(Array)
	return ok
}
