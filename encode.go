package toon

// encode renders an already-normalized value as a TOON document.
func encode(v Value, opts *EncodeOptions) (string, error) {
	v, err := foldKeys(v, opts)
	if err != nil {
		return "", err
	}

	w := newWriter(opts.Indent)
	if err := encodeValue(w, "", v, 0, opts); err != nil {
		return "", err
	}
	return w.String(), nil
}

// encodeValue dispatches on v's normalized type and writes its TOON
// rendering to w. key is the enclosing map key ("" at array-item or root
// position).
func encodeValue(w *writer, key string, v Value, depth int, opts *EncodeOptions) error {
	if v == nil {
		w.push(entryPrefix(key)+nullLiteral, depth)
		return nil
	}

	if isPrimitive(v) {
		encoded, err := encodePrimitiveValue(v, opts)
		if err != nil {
			return err
		}
		w.push(entryPrefix(key)+encoded, depth)
		return nil
	}

	if obj, ok := v.(*Object); ok {
		return encodeObject(w, key, obj, depth, opts)
	}

	if arr, ok := v.(Array); ok {
		return encodeArray(w, key, arr, depth, opts)
	}

	return &EncodeError{Kind: ErrInvalidInput, Message: "unsupported normalized value", Value: v}
}

// encodePrimitiveValue renders v, honoring QuoteStrings.
func encodePrimitiveValue(v Value, opts *EncodeOptions) (string, error) {
	if opts.QuoteStrings {
		if s, ok := v.(string); ok {
			return doubleQuote + escapeString(s) + doubleQuote, nil
		}
	}
	return encodePrimitive(v, opts.Delimiter)
}

// entryPrefix returns "key: " for a keyed entry, or "" for a bare value
// (array item or document root).
func entryPrefix(key string) string {
	if key == "" {
		return ""
	}
	return key + colon + space
}
