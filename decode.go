package toon

// decode parses input into a Value: scan into lines, parse the
// recursive-descent grammar, then optionally expand folded keys back
// into nested objects.
func decode(input string, opts *DecodeOptions) (Value, error) {
	lines, err := scan(input, opts.IndentSize, opts.Strict)
	if err != nil {
		return nil, err
	}

	c := newCursor(lines)
	val, err := parseDocument(c, opts)
	if err != nil {
		return nil, err
	}

	if !c.eof() && opts.Strict {
		line, _ := c.peek()
		return nil, &DecodeError{Kind: ErrIndentError, Message: "unexpected trailing content", Line: line.LineNumber}
	}

	if opts.ExpandPaths == ExpandPathsSafe {
		val, err = expandPaths(val, opts.Strict)
		if err != nil {
			return nil, err
		}
	}

	return val, nil
}
