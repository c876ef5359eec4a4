package toon

import (
	"strconv"
	"strings"
)

type arrayFormat int

const (
	arrayFormatEmpty arrayFormat = iota
	arrayFormatInline
	arrayFormatTabular
	arrayFormatList
)

// encodeArray writes a keyed (or root, key=="") array at depth, selecting
// its form per §4.3's form-selection rules.
func encodeArray(w *writer, key string, arr Array, depth int, opts *EncodeOptions) error {
	return encodeArrayWithPrefix(w, key, "", arr, depth, opts)
}

// encodeArrayWithPrefix is encodeArray generalized with a line prefix, so
// a nested array that is itself a list item can render as "- [N]: ..."
// by reusing the same form-selection logic.
func encodeArrayWithPrefix(w *writer, key, prefix string, arr Array, depth int, opts *EncodeOptions) error {
	switch detectArrayFormat(arr) {
	case arrayFormatEmpty:
		w.push(prefix+headerKey(key)+openBracket+"0"+closeBracket+colon, depth)
		return nil

	case arrayFormatInline:
		return encodeInlineArray(w, key, prefix, arr, depth, opts)

	case arrayFormatTabular:
		return encodeTabularArray(w, key, prefix, arr, depth, opts)

	default:
		return encodeListFormArray(w, key, prefix, arr, depth, opts)
	}
}

func headerKey(key string) string {
	return key
}

func delimiterMarker(opts *EncodeOptions) string {
	if opts.Delimiter == comma {
		return ""
	}
	return opts.Delimiter
}

func encodeInlineArray(w *writer, key, prefix string, arr Array, depth int, opts *EncodeOptions) error {
	values := make([]string, len(arr))
	for i, item := range arr {
		encoded, err := encodePrimitiveValue(item, opts)
		if err != nil {
			return err
		}
		values[i] = encoded
	}
	header := prefix + headerKey(key) + openBracket + strconv.Itoa(len(arr)) + delimiterMarker(opts) + closeBracket + colon + space
	w.push(header+strings.Join(values, opts.Delimiter), depth)
	return nil
}

func encodeTabularArray(w *writer, key, prefix string, arr Array, depth int, opts *EncodeOptions) error {
	fields := tabularFields(arr)

	encodedFields := make([]string, len(fields))
	for i, f := range fields {
		encodedFields[i] = encodeKey(f)
	}

	header := prefix + headerKey(key) + openBracket + strconv.Itoa(len(arr)) + delimiterMarker(opts) + closeBracket +
		openBrace + strings.Join(encodedFields, opts.Delimiter) + closeBrace + colon
	w.push(header, depth)

	for _, item := range arr {
		obj := item.(*Object)
		values := make([]string, len(fields))
		for i, f := range fields {
			fv, _ := obj.Get(f)
			encoded, err := encodePrimitiveValue(fv, opts)
			if err != nil {
				return err
			}
			values[i] = encoded
		}
		w.push(strings.Join(values, opts.Delimiter), depth+1)
	}
	return nil
}

func encodeListFormArray(w *writer, key, prefix string, arr Array, depth int, opts *EncodeOptions) error {
	header := prefix + headerKey(key) + openBracket + strconv.Itoa(len(arr)) + delimiterMarker(opts) + closeBracket + colon
	w.push(header, depth)

	for _, item := range arr {
		if err := encodeListItem(w, item, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

// encodeListItem writes one "- " line (and, for nested objects/arrays,
// its continuation lines) for an element of a list-form array.
func encodeListItem(w *writer, item Value, depth int, opts *EncodeOptions) error {
	if item == nil {
		w.push(listItemPrefix+nullLiteral, depth)
		return nil
	}

	if isPrimitive(item) {
		encoded, err := encodePrimitiveValue(item, opts)
		if err != nil {
			return err
		}
		w.push(listItemPrefix+encoded, depth)
		return nil
	}

	if arr, ok := item.(Array); ok {
		return encodeArrayWithPrefix(w, "", listItemPrefix, arr, depth, opts)
	}

	if obj, ok := item.(*Object); ok {
		return encodeObjectListItem(w, obj, depth, opts)
	}

	return &EncodeError{Kind: ErrInvalidInput, Message: "unsupported list item value", Value: item}
}

// encodeObjectListItem writes a map item of a list-form array: the first
// field shares the "- " marker's line, and any remaining fields continue
// as ordinary entries one level deeper.
func encodeObjectListItem(w *writer, obj *Object, depth int, opts *EncodeOptions) error {
	if obj.Len() == 0 {
		w.push(listItemPrefix+emptyObjectSentinel, depth)
		return nil
	}

	pairs := obj.Pairs()
	first := pairs[0]
	key := encodeKey(first.Key)

	switch val := first.Value.(type) {
	case *Object:
		if val.Len() == 0 {
			w.push(listItemPrefix+key+colon+space+emptyObjectSentinel, depth)
			break
		}
		// The first field's key sits on the marker line but logically at
		// the continuation-field level, so its children go two deeper.
		w.push(listItemPrefix+key+colon, depth)
		if err := encodeValue(w, "", val, depth+2, opts); err != nil {
			return err
		}
	case Array:
		if err := encodeArrayWithPrefix(w, key, listItemPrefix, val, depth, opts); err != nil {
			return err
		}
	default:
		encoded, err := encodeValueOrNullLiteral(first.Value, opts)
		if err != nil {
			return err
		}
		w.push(listItemPrefix+key+colon+space+encoded, depth)
	}

	for _, p := range pairs[1:] {
		if err := encodeValue(w, encodeKey(p.Key), p.Value, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

func encodeValueOrNullLiteral(v Value, opts *EncodeOptions) (string, error) {
	if v == nil {
		return nullLiteral, nil
	}
	return encodePrimitiveValue(v, opts)
}

// detectArrayFormat chooses among §4.3's array forms.
func detectArrayFormat(arr Array) arrayFormat {
	if len(arr) == 0 {
		return arrayFormatEmpty
	}
	if allPrimitivesArray(arr) {
		return arrayFormatInline
	}
	if allUniformObjects(arr) {
		return arrayFormatTabular
	}
	return arrayFormatList
}

func allPrimitivesArray(arr Array) bool {
	for _, item := range arr {
		if !isPrimitive(item) {
			return false
		}
	}
	return true
}

// allUniformObjects reports whether every element is an *Object, all
// share the same key set, and every field value is a primitive.
func allUniformObjects(arr Array) bool {
	first, ok := arr[0].(*Object)
	if !ok {
		return false
	}
	keySet := make(map[string]bool, first.Len())
	for _, k := range first.Keys() {
		keySet[k] = true
	}

	for _, item := range arr {
		obj, ok := item.(*Object)
		if !ok || obj.Len() != len(keySet) {
			return false
		}
		for _, k := range obj.Keys() {
			if !keySet[k] {
				return false
			}
			v, _ := obj.Get(k)
			if !isPrimitive(v) {
				return false
			}
		}
	}
	return true
}

// tabularFields computes the header field order: union of field
// insertion order across rows, each new field appended the first time it
// is seen scanning rows left to right.
func tabularFields(arr Array) []string {
	seen := map[string]bool{}
	var fields []string
	for _, item := range arr {
		obj := item.(*Object)
		for _, k := range obj.Keys() {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	return fields
}
