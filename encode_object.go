package toon

// emptyObjectSentinel is the inline rendering of an empty object (§4.3,
// form 5): "key: {}" when keyed, bare "{}" at the document root.
const emptyObjectSentinel = openBrace + closeBrace

// encodeObject writes obj's entries at depth, one per line, preceded by a
// "key:" header (and a depth bump) when obj is itself a keyed entry
// rather than the document root.
func encodeObject(w *writer, key string, obj *Object, depth int, opts *EncodeOptions) error {
	if obj.Len() == 0 {
		if key != "" {
			w.push(key+colon+space+emptyObjectSentinel, depth)
		} else {
			w.push(emptyObjectSentinel, depth)
		}
		return nil
	}

	if key != "" {
		w.push(key+colon, depth)
		depth++
	}

	for _, p := range obj.Pairs() {
		if err := encodeValue(w, encodeKey(p.Key), p.Value, depth, opts); err != nil {
			return err
		}
	}
	return nil
}
