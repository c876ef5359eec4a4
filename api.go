package toon

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
)

// Version is the current version of the TOON library.
const Version = "2.0.0"

// Marshal encodes a Go value to TOON format and writes it to w.
//
// v can be any JSON-compatible value: nil, bool, a numeric type, string,
// a slice, map[string]interface{}, *Object, or a struct (struct tags and
// field order are honored the same way encoding/json honors them).
//
// Example:
//
//	data := map[string]interface{}{"tags": []interface{}{"go", "toon"}}
//	var buf bytes.Buffer
//	err := toon.Marshal(data, &buf)
//	// buf contains: tags[2]: go,toon
//
// With options:
//
//	err := toon.Marshal(data, &buf, toon.WithIndent(4), toon.WithDelimiter("\t"))
func Marshal(v interface{}, w io.Writer, opts ...EncodeOption) error {
	encOpts := applyEncodeOptions(opts...)
	if err := validateEncodeOptions(encOpts); err != nil {
		return err
	}

	normalized, err := normalize(v, encOpts)
	if err != nil {
		return err
	}

	result, err := encode(normalized, encOpts)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(result))
	return err
}

// MarshalToString encodes a Go value to TOON format and returns it as a
// string. It wraps Marshal.
func MarshalToString(v interface{}, opts ...EncodeOption) (string, error) {
	var buf bytes.Buffer
	if err := Marshal(v, &buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Unmarshal decodes TOON data from r into v, which must be a pointer.
//
// Example:
//
//	input := strings.NewReader("name: Alice\nage: 30")
//	var result map[string]interface{}
//	err := toon.Unmarshal(input, &result)
//
// With options:
//
//	err := toon.Unmarshal(input, &result, toon.WithStrict(false))
func Unmarshal(r io.Reader, v interface{}, opts ...DecodeOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	decOpts := applyDecodeOptions(opts...)
	if err := validateDecodeOptions(decOpts); err != nil {
		return err
	}

	result, err := decode(string(data), decOpts)
	if err != nil {
		return err
	}

	return assignResult(result, v)
}

// UnmarshalFromString decodes a TOON string into v. It wraps Unmarshal.
func UnmarshalFromString(s string, v interface{}, opts ...DecodeOption) error {
	return Unmarshal(strings.NewReader(s), v, opts...)
}

// assignResult delivers a decoded Value to v. *Value and *Object targets
// are assigned directly; everything else (including *Array) is populated via a
// round trip through encoding/json (using Object's order-preserving
// Marshaler), which gets struct tags, pointers, and arbitrary map/slice
// element types for free.
func assignResult(result Value, v interface{}) error {
	switch target := v.(type) {
	case *Value:
		*target = result
		return nil
	case *Object:
		if obj, ok := result.(*Object); ok {
			*target = *obj
			return nil
		}
		return &DecodeError{Kind: ErrInvalidInput, Message: "cannot assign non-object result to *Object"}
	}

	b, err := json.Marshal(result)
	if err != nil {
		return &DecodeError{Kind: ErrInvalidInput, Message: "decoded value could not be re-encoded as JSON", Cause: err}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &DecodeError{Kind: ErrInvalidInput, Message: "decoded value does not match target type", Cause: err}
	}
	return nil
}
