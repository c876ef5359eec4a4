package toon

// expandPaths walks v and, for every Object, expands dotted keys back
// into nested Objects (§4.8). Non-dotted keys are placed first so that
// expansion only fills in around them; a dotted key whose expansion
// would collide with an already-placed entry is either rejected (strict)
// or kept as its original literal dotted key (lenient).
func expandPaths(v Value, strict bool) (Value, error) {
	switch val := v.(type) {
	case *Object:
		return expandObject(val, strict)
	case Array:
		out := make(Array, len(val))
		for i, item := range val {
			nv, err := expandPaths(item, strict)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return v, nil
	}
}

type dottedEntry struct {
	key      string
	segments []string
	value    Value
}

func expandObject(obj *Object, strict bool) (*Object, error) {
	result := NewObject()
	var dotted []dottedEntry

	for _, p := range obj.Pairs() {
		val, err := expandPaths(p.Value, strict)
		if err != nil {
			return nil, err
		}
		if segs, ok := expandableSegments(p.Key); ok {
			dotted = append(dotted, dottedEntry{key: p.Key, segments: segs, value: val})
		} else {
			result.Set(p.Key, val)
		}
	}

	for _, d := range dotted {
		placed, err := setPath(result, d.segments, d.value, strict)
		if err != nil {
			return nil, err
		}
		if !placed {
			result.Set(d.key, d.value)
		}
	}

	return result, nil
}

// expandableSegments splits key on "." and reports whether it qualifies
// for path expansion: at least two segments, every one a valid
// identifier.
func expandableSegments(key string) ([]string, bool) {
	segs := splitDots(key)
	if len(segs) < 2 {
		return nil, false
	}
	for _, s := range segs {
		if !isValidIdentifier(s) {
			return nil, false
		}
	}
	return segs, true
}

func splitDots(key string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			segs = append(segs, key[start:i])
			start = i + 1
		}
	}
	segs = append(segs, key[start:])
	return segs
}

// setPath descends obj by segments, creating intermediate Objects as
// needed, and assigns val at the end of the chain. It returns false
// (with a nil error) when a collision is encountered in lenient mode,
// signaling the caller to keep the original dotted key instead; in
// strict mode a collision is a PathExpansionConflict error.
func setPath(obj *Object, segments []string, val Value, strict bool) (bool, error) {
	head := segments[0]

	if len(segments) == 1 {
		if _, exists := obj.Get(head); exists {
			if strict {
				return false, &DecodeError{Kind: ErrPathExpansionConflict, Message: "path expansion conflict at " + head}
			}
			return false, nil
		}
		obj.Set(head, val)
		return true, nil
	}

	existing, exists := obj.Get(head)
	if exists {
		child, isObj := existing.(*Object)
		if !isObj {
			if strict {
				return false, &DecodeError{Kind: ErrPathExpansionConflict, Message: "path segment " + head + " collides with a non-object value"}
			}
			return false, nil
		}
		return setPath(child, segments[1:], val, strict)
	}

	child := NewObject()
	placed, err := setPath(child, segments[1:], val, strict)
	if err != nil || !placed {
		return placed, err
	}
	obj.Set(head, child)
	return true, nil
}
