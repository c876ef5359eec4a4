// Package toon implements TOON (Token-Oriented Object Notation), a
// textual encoding of the JSON data model designed to minimize the
// number of tokens a large language model spends reading structured
// data, while staying human-readable and round-trippable back to the
// original value.
//
// # Format overview
//
// TOON is indentation-structured like YAML, with three array forms
// chosen automatically based on shape:
//
//   - Inline, for arrays of primitives: tags[2]: go,toon
//   - Tabular, for arrays of uniform objects: users[2]{name,age}:
//     followed by one delimiter-joined row per element
//   - List, for everything else: one "- " item per line
//
// # Public API
//
// The package exposes two operations, plus string convenience
// wrappers:
//
//	Marshal(v interface{}, w io.Writer, opts ...EncodeOption) error
//	MarshalToString(v interface{}, opts ...EncodeOption) (string, error)
//	Unmarshal(r io.Reader, v interface{}, opts ...DecodeOption) error
//	UnmarshalFromString(s string, v interface{}, opts ...DecodeOption) error
//
// v can be any JSON-compatible Go value: nil, bool, a numeric type,
// string, a slice, a map[string]interface{}, a struct (struct tags and
// field order are honored the way encoding/json honors them), or an
// *Object built directly for explicit key-order control.
//
// # Basic usage
//
//	data := map[string]interface{}{
//	    "name": "Ada",
//	    "age":  30,
//	    "tags": []string{"go", "toon"},
//	}
//	out, err := toon.MarshalToString(data)
//	// out == "age: 30\nname: Ada\ntags[2]: go,toon"
//
//	var result map[string]interface{}
//	err = toon.UnmarshalFromString("name: Ada\nage: 30\n", &result)
//
// # Options
//
// Marshal and Unmarshal take functional options:
//
//	out, err := toon.MarshalToString(data,
//	    toon.WithIndent(4),
//	    toon.WithDelimiter("|"),
//	    toon.WithKeyFolding(toon.KeyFoldSafe),
//	)
//
//	var v interface{}
//	err := toon.UnmarshalFromString(text, &v,
//	    toon.WithStrict(false),
//	    toon.WithExpandPaths(toon.ExpandPathsSafe),
//	)
//
// # Object
//
// A plain Go map has no order of its own, so decode results and any
// value that needs explicit key order use *Object:
//
//	obj := toon.NewObject()
//	obj.Set("first", 1)
//	obj.Set("second", 2)
//	out, err := toon.MarshalToString(obj)
//
// # Error handling
//
// EncodeError and DecodeError carry an ErrorKind so callers can branch
// on the failure category instead of matching message text:
//
//	if err := toon.Unmarshal(r, &v); err != nil {
//	    var decErr *toon.DecodeError
//	    if errors.As(err, &decErr) && decErr.Kind == toon.ErrLengthMismatch {
//	        // declared [N] didn't match the actual row/element count
//	    }
//	}
//
// # Package layout
//
// The codec is a pipeline of small, independently testable files:
// normalize.go and keyfold.go prepare the value tree for encoding;
// encode.go, encode_object.go, encode_array.go and literal.go emit it;
// scanner.go, cursor.go and parser.go parse TOON text back into a tree;
// pathexpand.go reverses key folding on decode. value.go, options.go
// and errors.go hold the shared data model, option records and error
// taxonomy; api.go is the public entry point.
package toon
