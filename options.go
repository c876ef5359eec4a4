package toon

import (
	"fmt"
	"time"
)

// KeyFoldMode controls whether the encoder collapses single-key object
// chains into dotted keys (§4.2).
type KeyFoldMode string

const (
	KeyFoldOff  KeyFoldMode = "off"
	KeyFoldSafe KeyFoldMode = "safe"
)

// ExpandPathsMode controls whether the decoder re-expands dotted keys back
// into nested objects (§4.8).
type ExpandPathsMode string

const (
	ExpandPathsOff  ExpandPathsMode = "off"
	ExpandPathsSafe ExpandPathsMode = "safe"
)

// unboundedFlattenDepth is the sentinel FlattenDepth value meaning "no
// limit"; applyEncodeOptions substitutes it for any FlattenDepth <= 0.
const unboundedFlattenDepth = 1<<31 - 1

// EncodeOptions configures Marshal and MarshalToString.
type EncodeOptions struct {
	// Indent is the number of spaces added per nesting level. Default 2.
	Indent int
	// Delimiter separates inline and tabular row values: "," "\t" or "|".
	// Default ",".
	Delimiter string
	// KeyFolding selects whether single-key object chains are collapsed to
	// dotted keys on encode. Default KeyFoldOff.
	KeyFolding KeyFoldMode
	// FlattenDepth caps how many chain levels KeyFolding may collapse.
	// Zero/unset means unbounded. Ignored when KeyFolding is off.
	FlattenDepth int
	// QuoteStrings forces every string value to be quoted, even when the
	// unquoted form would be unambiguous. Default false.
	QuoteStrings bool
	// Strict rejects encode-time ambiguities (currently: key collisions
	// introduced by key folding) instead of silently keeping the
	// unflattened key. Default true.
	Strict bool
	// TimeFormatter renders a time.Time value encountered directly (not
	// nested inside a struct, which goes through encoding/json's own
	// RFC3339 rendering) into the string normalize() emits for it.
	// Defaults to time.RFC3339Nano formatting when nil.
	TimeFormatter func(time.Time) string
}

// EncodeOption mutates an EncodeOptions in place; see With* constructors.
type EncodeOption func(*EncodeOptions)

// WithIndent sets the per-level indent width.
func WithIndent(n int) EncodeOption {
	return func(o *EncodeOptions) { o.Indent = n }
}

// WithDelimiter sets the active delimiter ("," "\t" or "|").
func WithDelimiter(d string) EncodeOption {
	return func(o *EncodeOptions) { o.Delimiter = d }
}

// WithKeyFolding enables or disables key folding.
func WithKeyFolding(mode KeyFoldMode) EncodeOption {
	return func(o *EncodeOptions) { o.KeyFolding = mode }
}

// WithFlattenDepth caps how many levels key folding may collapse.
func WithFlattenDepth(n int) EncodeOption {
	return func(o *EncodeOptions) { o.FlattenDepth = n }
}

// WithQuoteStrings forces all string values to be quoted.
func WithQuoteStrings(b bool) EncodeOption {
	return func(o *EncodeOptions) { o.QuoteStrings = b }
}

// WithEncodeStrict toggles strict-mode encode validation.
func WithEncodeStrict(b bool) EncodeOption {
	return func(o *EncodeOptions) { o.Strict = b }
}

// WithTimeFormatter sets the function used to render a bare time.Time
// value. Passing nil restores the default RFC3339Nano rendering.
func WithTimeFormatter(f func(time.Time) string) EncodeOption {
	return func(o *EncodeOptions) { o.TimeFormatter = f }
}

// DecodeOptions configures Unmarshal and UnmarshalFromString.
type DecodeOptions struct {
	// IndentSize is the expected number of spaces per nesting level.
	// Default 2.
	IndentSize int
	// Strict enforces declared array/row lengths, field arity,
	// indentation multiples, and duplicate-key rejection. Default true.
	Strict bool
	// ExpandPaths selects whether dotted keys are expanded back into
	// nested objects after parsing. Default ExpandPathsOff.
	ExpandPaths ExpandPathsMode
}

// DecodeOption mutates a DecodeOptions in place; see With* constructors.
type DecodeOption func(*DecodeOptions)

// WithIndentSize sets the expected indent width used to compute depth.
func WithIndentSize(n int) DecodeOption {
	return func(o *DecodeOptions) { o.IndentSize = n }
}

// WithStrict toggles strict-mode decode validation.
func WithStrict(b bool) DecodeOption {
	return func(o *DecodeOptions) { o.Strict = b }
}

// WithExpandPaths enables or disables path expansion.
func WithExpandPaths(mode ExpandPathsMode) DecodeOption {
	return func(o *DecodeOptions) { o.ExpandPaths = mode }
}

// validateEncodeOptions checks an already-defaulted EncodeOptions for
// internal consistency.
func validateEncodeOptions(opts *EncodeOptions) error {
	if opts.Indent < 0 {
		return &EncodeError{Kind: ErrInvalidInput, Message: "indent must be non-negative", Value: opts.Indent}
	}
	if !isValidDelimiter(opts.Delimiter) {
		return &EncodeError{
			Kind:    ErrUnknownDelimiter,
			Message: fmt.Sprintf("invalid delimiter %q, must be one of: %q, %q, %q", opts.Delimiter, comma, tab, pipe),
			Value:   opts.Delimiter,
		}
	}
	if opts.KeyFolding != KeyFoldOff && opts.KeyFolding != KeyFoldSafe {
		return &EncodeError{Kind: ErrInvalidInput, Message: fmt.Sprintf("invalid keyFolding mode %q", opts.KeyFolding)}
	}
	return nil
}

// validateDecodeOptions checks an already-defaulted DecodeOptions for
// internal consistency.
func validateDecodeOptions(opts *DecodeOptions) error {
	if opts.IndentSize < 1 {
		return &DecodeError{Kind: ErrIndentError, Message: "indentSize must be positive"}
	}
	if opts.ExpandPaths != ExpandPathsOff && opts.ExpandPaths != ExpandPathsSafe {
		return &DecodeError{Kind: ErrInvalidInput, Message: fmt.Sprintf("invalid expandPaths mode %q", opts.ExpandPaths)}
	}
	return nil
}

// defaultEncodeOptions returns the options documented in §4's "Options
// (encoder)" line.
func defaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		Indent:       defaultIndent,
		Delimiter:    defaultDelimiter,
		KeyFolding:   KeyFoldOff,
		FlattenDepth: unboundedFlattenDepth,
		QuoteStrings: false,
		Strict:       true,
	}
}

// defaultDecodeOptions returns the options documented in §4's "Options
// (decoder)" line.
func defaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{
		IndentSize:  defaultIndent,
		Strict:      true,
		ExpandPaths: ExpandPathsOff,
	}
}

// applyEncodeOptions builds an EncodeOptions from defaults plus the given
// functional options.
func applyEncodeOptions(opts ...EncodeOption) *EncodeOptions {
	o := defaultEncodeOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.FlattenDepth <= 0 {
		o.FlattenDepth = unboundedFlattenDepth
	}
	return o
}

// applyDecodeOptions builds a DecodeOptions from defaults plus the given
// functional options.
func applyDecodeOptions(opts ...DecodeOption) *DecodeOptions {
	o := defaultDecodeOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}
