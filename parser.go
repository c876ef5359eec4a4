package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// fieldKind classifies a parsed "KEY...:" header line (§4.7).
type fieldKind int

const (
	fieldScalar fieldKind = iota
	fieldObject
	fieldArrayInline
	fieldArrayBody
	fieldTabular
)

// fieldHeader is the parsed shape of one header line: a key (possibly
// empty, for a keyless root array), what kind of value follows, and
// whatever the bracket/brace syntax supplied (declared length, the
// delimiter marker, tabular field names, or inline token text).
type fieldHeader struct {
	Key       string
	Kind      fieldKind
	Length    int
	Delimiter string
	Fields    []string
	Inline    string
}

// parseDocument parses a full TOON document per the grammar in §4.7,
// dispatching on the first non-blank line: a bare list-item line means
// the whole document is a list-form array; a line matching the header
// grammar means the document is an object (or a keyless root array);
// otherwise the document is a single scalar value.
func parseDocument(c *cursor, opts *DecodeOptions) (Value, error) {
	if c.eof() {
		return NewObject(), nil
	}
	line, _ := c.peek()

	if strings.HasPrefix(line.Content, listItemPrefix) {
		return parseListFormArray(c, line.Depth, opts)
	}

	if header, err := parseFieldHeader(line.Content); err == nil {
		if header.Key == "" {
			c.advance()
			return resolveFieldValue(c, header, line.Depth+1, opts)
		}
		return parseObjectBody(c, line.Depth, opts)
	}

	c.advance()
	return parseValue(line.Content)
}

// parseObjectBody reads sibling "KEY...:" lines at exactly depth into an
// Object until a shallower line or EOF is reached.
func parseObjectBody(c *cursor, depth int, opts *DecodeOptions) (*Object, error) {
	obj := NewObject()
	seen := map[string]bool{}

	for {
		line, ok := c.peek()
		if !ok || line.Depth < depth {
			break
		}
		if line.Depth > depth {
			if opts.Strict {
				return nil, &DecodeError{Kind: ErrIndentError, Message: "unexpected indentation", Line: line.LineNumber}
			}
			break
		}
		if strings.HasPrefix(line.Content, listItemPrefix) {
			break
		}

		header, err := parseFieldHeader(line.Content)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			break
		}
		if header.Key == "" {
			if opts.Strict {
				return nil, &DecodeError{Kind: ErrInvalidInput, Message: "expected a field key", Line: line.LineNumber}
			}
			c.advance()
			continue
		}
		if seen[header.Key] && opts.Strict {
			return nil, &DecodeError{Kind: ErrDuplicateKey, Message: fmt.Sprintf("duplicate key %q", header.Key), Line: line.LineNumber}
		}
		seen[header.Key] = true
		c.advance()

		val, err := resolveFieldValue(c, header, depth+1, opts)
		if err != nil {
			return nil, err
		}
		obj.Set(header.Key, val)
	}

	return obj, nil
}

// resolveFieldValue reads whatever a header's Kind says follows it: an
// inline scalar/array needs nothing more; an object, list-form array, or
// tabular array reads its body at childDepth.
func resolveFieldValue(c *cursor, header *fieldHeader, childDepth int, opts *DecodeOptions) (Value, error) {
	switch header.Kind {
	case fieldScalar:
		return parseValue(header.Inline)

	case fieldObject:
		return parseObjectBody(c, childDepth, opts)

	case fieldArrayInline:
		if header.Length == 0 {
			return Array{}, nil
		}
		tokens, err := splitDelimited(header.Inline, header.Delimiter)
		if err != nil {
			return nil, err
		}
		if len(tokens) != header.Length && opts.Strict {
			return nil, &DecodeError{Kind: ErrLengthMismatch, Message: fmt.Sprintf("declared length %d, got %d values", header.Length, len(tokens))}
		}
		arr := make(Array, len(tokens))
		for i, t := range tokens {
			v, err := parseValue(t)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return arr, nil

	case fieldArrayBody:
		arr, err := parseListFormArray(c, childDepth, opts)
		if err != nil {
			return nil, err
		}
		if opts.Strict && len(arr) != header.Length {
			return nil, &DecodeError{Kind: ErrLengthMismatch, Message: fmt.Sprintf("declared length %d, got %d items", header.Length, len(arr))}
		}
		return arr, nil

	case fieldTabular:
		return parseTabularRows(c, childDepth, header.Fields, header.Length, header.Delimiter, opts)

	default:
		return nil, &DecodeError{Kind: ErrInvalidInput, Message: "unrecognized header form"}
	}
}

// parseListFormArray reads consecutive "- " items at exactly depth.
func parseListFormArray(c *cursor, depth int, opts *DecodeOptions) (Array, error) {
	var arr Array
	for {
		line, ok := c.peek()
		if !ok || line.Depth != depth || !strings.HasPrefix(line.Content, listItemPrefix) {
			break
		}
		item, err := parseListItem(c, depth, opts)
		if err != nil {
			return nil, err
		}
		arr = append(arr, item)
	}
	if arr == nil {
		arr = Array{}
	}
	return arr, nil
}

// parseListItem reads one "- " line, plus (for an object item with more
// than one field) its continuation field lines one level deeper.
func parseListItem(c *cursor, depth int, opts *DecodeOptions) (Value, error) {
	line, _ := c.advance()
	rest := line.Content[len(listItemPrefix):]

	header, err := parseFieldHeader(rest)
	if err != nil {
		return parseValue(rest)
	}

	if header.Key == "" {
		return resolveFieldValue(c, header, depth+1, opts)
	}

	obj := NewObject()
	childDepth := depth + 1
	if header.Kind == fieldObject {
		// Nested-object children of the marker-line field sit one level
		// below the continuation fields, mirroring the emitter.
		childDepth = depth + 2
	}
	val, err := resolveFieldValue(c, header, childDepth, opts)
	if err != nil {
		return nil, err
	}
	obj.Set(header.Key, val)

	seen := map[string]bool{header.Key: true}
	for {
		line, ok := c.peek()
		if !ok || line.Depth != depth+1 || strings.HasPrefix(line.Content, listItemPrefix) {
			break
		}
		h2, err := parseFieldHeader(line.Content)
		if err != nil {
			break
		}
		if h2.Key == "" {
			break
		}
		if seen[h2.Key] && opts.Strict {
			return nil, &DecodeError{Kind: ErrDuplicateKey, Message: fmt.Sprintf("duplicate key %q", h2.Key), Line: line.LineNumber}
		}
		seen[h2.Key] = true
		c.advance()
		v2, err := resolveFieldValue(c, h2, depth+2, opts)
		if err != nil {
			return nil, err
		}
		obj.Set(h2.Key, v2)
	}

	return obj, nil
}

// parseTabularRows reads up to length delimiter-joined rows at exactly
// depth, assembling each into an Object keyed by fields in order.
func parseTabularRows(c *cursor, depth int, fields []string, length int, delim string, opts *DecodeOptions) (Array, error) {
	arr := make(Array, 0, length)

	for i := 0; i < length; i++ {
		line, ok := c.peek()
		if !ok || line.Depth != depth {
			break
		}
		c.advance()

		tokens, err := splitDelimited(line.Content, delim)
		if err != nil {
			return nil, err
		}
		if len(tokens) != len(fields) && opts.Strict {
			return nil, &DecodeError{
				Kind:    ErrFieldArityMismatch,
				Message: fmt.Sprintf("row has %d values, expected %d", len(tokens), len(fields)),
				Line:    line.LineNumber,
			}
		}

		obj := NewObjectWithCapacity(len(fields))
		for j, f := range fields {
			raw := ""
			if j < len(tokens) {
				raw = tokens[j]
			}
			v, err := parseValue(raw)
			if err != nil {
				return nil, err
			}
			obj.Set(f, v)
		}
		arr = append(arr, obj)
	}

	if opts.Strict && len(arr) != length {
		return nil, &DecodeError{Kind: ErrLengthMismatch, Message: fmt.Sprintf("declared length %d, got %d rows", length, len(arr))}
	}
	return arr, nil
}

// parseFieldHeader parses content as a "KEY:", "KEY[N]:", or
// "KEY[N]{fields}:" header line. It returns an error (without consuming
// anything, since it operates on a plain string) when content doesn't
// match the header grammar at all, signaling the caller to treat the
// line as a bare scalar instead.
func parseFieldHeader(content string) (*fieldHeader, error) {
	key, rest, err := scanKeyToken(content)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(rest, openBracket) {
		return parseArrayHeader(key, rest)
	}
	if strings.HasPrefix(rest, colon) {
		remainder := rest[1:]
		if remainder == "" {
			return &fieldHeader{Key: key, Kind: fieldObject}, nil
		}
		remainder = strings.TrimPrefix(remainder, space)
		return &fieldHeader{Key: key, Kind: fieldScalar, Inline: remainder}, nil
	}
	return nil, &DecodeError{Kind: ErrInvalidInput, Message: "expected ':' or '[' after key"}
}

// parseArrayHeader parses the "[N]", "[N]{fields}", and trailing ":"
// portion of a header, given that rest starts with "[".
func parseArrayHeader(key, rest string) (*fieldHeader, error) {
	i := 1
	digitsStart := i
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return nil, &DecodeError{Kind: ErrInvalidInput, Message: "expected array length inside '[]'"}
	}
	length, _ := strconv.Atoi(rest[digitsStart:i])

	delim := comma
	if i < len(rest) && (rest[i] == '\t' || rest[i] == '|') {
		delim = string(rest[i])
		i++
	} else if i < len(rest) && rest[i] != ']' {
		return nil, &DecodeError{Kind: ErrUnknownDelimiter, Message: fmt.Sprintf("unknown delimiter %q in array header", rest[i])}
	}
	if i >= len(rest) || rest[i] != ']' {
		return nil, &DecodeError{Kind: ErrInvalidInput, Message: "expected ']'"}
	}
	i++

	var fields []string
	if i < len(rest) && rest[i] == '{' {
		closeIdx := strings.IndexByte(rest[i:], '}')
		if closeIdx < 0 {
			return nil, &DecodeError{Kind: ErrInvalidInput, Message: "unterminated tabular field list"}
		}
		inner := rest[i+1 : i+closeIdx]
		i += closeIdx + 1

		parts, err := splitDelimited(inner, delim)
		if err != nil {
			return nil, err
		}
		fields = make([]string, len(parts))
		for j, p := range parts {
			fields[j], err = decodeFieldName(p)
			if err != nil {
				return nil, err
			}
		}
	}

	if i >= len(rest) || rest[i] != ':' {
		return nil, &DecodeError{Kind: ErrInvalidInput, Message: "expected ':'"}
	}
	remainder := rest[i+1:]

	if len(fields) > 0 {
		return &fieldHeader{Key: key, Kind: fieldTabular, Length: length, Delimiter: delim, Fields: fields}, nil
	}
	if remainder == "" {
		if length == 0 {
			return &fieldHeader{Key: key, Kind: fieldArrayInline, Length: 0}, nil
		}
		return &fieldHeader{Key: key, Kind: fieldArrayBody, Length: length, Delimiter: delim}, nil
	}
	remainder = strings.TrimPrefix(remainder, space)
	return &fieldHeader{Key: key, Kind: fieldArrayInline, Length: length, Delimiter: delim, Inline: remainder}, nil
}

// scanKeyToken reads a key token (quoted or unquoted) from the start of
// content, or recognizes a keyless root array header ("[..."). It
// returns an error, without consuming anything, when content starts with
// neither — the signal that this line isn't a header at all.
func scanKeyToken(content string) (string, string, error) {
	if content == "" {
		return "", "", &DecodeError{Kind: ErrInvalidInput, Message: "empty line"}
	}
	if content[0] == '[' {
		return "", content, nil
	}
	if content[0] == '"' {
		n, err := scanQuotedSpan(content)
		if err != nil {
			return "", "", err
		}
		key, err := unescapeValidated(content[1 : n-1])
		if err != nil {
			return "", "", err
		}
		return key, content[n:], nil
	}

	first := rune(content[0])
	if !(isLetter(first) || first == '_') {
		return "", "", &DecodeError{Kind: ErrInvalidInput, Message: "line does not start with a key"}
	}
	i := 1
	for i < len(content) && isKeyChar(rune(content[i])) {
		i++
	}
	return content[:i], content[i:], nil
}

func isKeyChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '.'
}

// decodeFieldName decodes one tabular field-list entry, which may be a
// quoted string covering the whole token or a bare identifier.
func decodeFieldName(token string) (string, error) {
	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return unescapeValidated(token[1 : len(token)-1])
	}
	return token, nil
}

// scanQuotedSpan returns the length of the quoted string starting at
// s[0] (which must be '"'), including both quote characters.
func scanQuotedSpan(s string) (int, error) {
	i := 1
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == '"' {
			return i + 1, nil
		}
		i++
	}
	return 0, &DecodeError{Kind: ErrUnterminatedString, Message: "unterminated string"}
}

// splitDelimited splits s on delim at top level, treating quoted spans
// (including any delimiter characters or escapes inside them) as atomic.
func splitDelimited(s string, delim string) ([]string, error) {
	var tokens []string
	start := 0
	i := 0
	for i < len(s) {
		if s[i] == '"' {
			n, err := scanQuotedSpan(s[i:])
			if err != nil {
				return nil, err
			}
			i += n
			continue
		}
		if strings.HasPrefix(s[i:], delim) {
			tokens = append(tokens, s[start:i])
			i += len(delim)
			start = i
			continue
		}
		i++
	}
	tokens = append(tokens, s[start:])
	return tokens, nil
}
