package toon

import "fmt"

// ErrorKind classifies why an encode or decode operation failed. It does
// not change how an error prints; it lets callers branch on the failure
// category with errors.As + Kind instead of matching message text.
type ErrorKind int

const (
	// ErrUnspecified is the zero value; used by errors that predate the
	// kind taxonomy or that don't fit a more specific bucket.
	ErrUnspecified ErrorKind = iota

	// ErrInvalidInput: encoder found a value outside the JSON domain that
	// could not be normalized, or a cyclic reference.
	ErrInvalidInput
	// ErrLengthMismatch: strict decode, declared [N] disagrees with the
	// actual row or element count.
	ErrLengthMismatch
	// ErrFieldArityMismatch: strict decode, a tabular row's token count
	// does not match the declared field count.
	ErrFieldArityMismatch
	// ErrIndentError: strict decode, indentation is not a multiple of the
	// configured width, or the input contains an impossible outdent.
	ErrIndentError
	// ErrUnterminatedString: a quoted string runs past the end of its
	// line or the end of input without a closing quote.
	ErrUnterminatedString
	// ErrInvalidEscape: a quoted string contains an unknown escape
	// sequence.
	ErrInvalidEscape
	// ErrUnknownDelimiter: an array header declares a delimiter outside
	// the closed set (comma, tab, pipe).
	ErrUnknownDelimiter
	// ErrDuplicateKey: strict decode, an object contains the same key
	// twice.
	ErrDuplicateKey
	// ErrPathExpansionConflict: expanding a dotted key would overwrite a
	// sibling of an incompatible shape.
	ErrPathExpansionConflict
)

// EncodeError represents an error that occurred during encoding.
type EncodeError struct {
	Kind    ErrorKind
	Message string
	Value   Value
	Cause   error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Value)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EncodeError) Unwrap() error {
	return e.Cause
}

// DecodeError represents an error that occurred during decoding.
type DecodeError struct {
	Kind    ErrorKind
	Message string
	Input   string
	Line    int
	Column  int
	Token   string
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	msg := e.Message

	if e.Line > 0 || e.Column > 0 {
		if e.Line > 0 && e.Column > 0 {
			msg = fmt.Sprintf("%s at line %d, column %d", msg, e.Line, e.Column)
		} else if e.Line > 0 {
			msg = fmt.Sprintf("%s at line %d", msg, e.Line)
		} else {
			msg = fmt.Sprintf("%s at column %d", msg, e.Column)
		}
	}

	if e.Token != "" {
		msg = fmt.Sprintf("%s (token: '%s')", msg, e.Token)
	}

	if e.Context != "" {
		msg = fmt.Sprintf("%s\n\nContext:\n%s", msg, e.Context)
	}

	return msg
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}