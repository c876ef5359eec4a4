package toon

import (
	"fmt"
	"strings"
)

// foldKeys applies key folding (§4.2) to v: every Object in the tree has
// its single-key wrapper chains collapsed into dotted-key entries, up to
// opts.FlattenDepth segments. Arrays and primitives pass through
// unchanged except for recursing into their elements.
func foldKeys(v Value, opts *EncodeOptions) (Value, error) {
	if opts.KeyFolding != KeyFoldSafe {
		return v, nil
	}
	return foldValue(v, opts)
}

func foldValue(v Value, opts *EncodeOptions) (Value, error) {
	switch val := v.(type) {
	case *Object:
		return foldObject(val, opts)
	case Array:
		out := make(Array, len(val))
		for i, item := range val {
			fv, err := foldValue(item, opts)
			if err != nil {
				return nil, err
			}
			out[i] = fv
		}
		return out, nil
	default:
		return v, nil
	}
}

// foldCandidate is one entry of an Object with its collapse already
// computed: the pre-collapse key/value (children folded) and the dotted
// key/terminal value the collapse produced.
type foldCandidate struct {
	origKey string
	origVal Value
	key     string
	val     Value
}

// foldObject folds each entry of obj independently: the entry's key is
// extended into a dotted chain for as long as the (unfolded) child is a
// single-key Object with an identifier-safe key and the chain hasn't hit
// FlattenDepth, then the value at the end of the chain is folded in turn
// (so folding happens at every depth of the tree). A collapse whose
// dotted key collides with another entry's key is an error in strict
// mode; lenient mode keeps that entry unflattened instead.
func foldObject(obj *Object, opts *EncodeOptions) (*Object, error) {
	cands := make([]foldCandidate, 0, obj.Len())
	counts := make(map[string]int, obj.Len())
	for _, p := range obj.Pairs() {
		key, terminal := collapseChain(p.Key, p.Value, opts.FlattenDepth)
		val, err := foldValue(terminal, opts)
		if err != nil {
			return nil, err
		}
		folded := val
		if key != p.Key {
			if folded, err = foldValue(p.Value, opts); err != nil {
				return nil, err
			}
		}
		cands = append(cands, foldCandidate{origKey: p.Key, origVal: folded, key: key, val: val})
		counts[key]++
	}

	out := NewObjectWithCapacity(len(cands))
	for _, c := range cands {
		if counts[c.key] > 1 && c.key != c.origKey {
			if opts.Strict {
				return nil, &EncodeError{
					Kind:    ErrInvalidInput,
					Message: fmt.Sprintf("key folding would produce duplicate key %q", c.key),
				}
			}
			out.Set(c.origKey, c.origVal)
			continue
		}
		out.Set(c.key, c.val)
	}
	return out, nil
}

// collapseChain extends key with successive single-key segments drawn
// from val for as long as each segment is a valid identifier and the
// total chain length stays within maxDepth, returning the dotted key and
// the value at the end of the chain.
func collapseChain(key string, val Value, maxDepth int) (string, Value) {
	if !isValidIdentifier(key) {
		return key, val
	}

	segments := []string{key}
	cur := val
	for len(segments) < maxDepth {
		obj, ok := cur.(*Object)
		if !ok || obj.Len() != 1 {
			break
		}
		only := obj.Pairs()[0]
		if !isValidIdentifier(only.Key) {
			break
		}
		segments = append(segments, only.Key)
		cur = only.Value
	}
	if len(segments) == 1 {
		return key, val
	}
	return strings.Join(segments, "."), cur
}
