package toon

import "testing"

func mustDecode(t *testing.T, input string, opts ...DecodeOption) Value {
	t.Helper()
	o := applyDecodeOptions(opts...)
	v, err := decode(input, o)
	if err != nil {
		t.Fatalf("decode(%q) error: %v", input, err)
	}
	return v
}

func decodeKind(t *testing.T, input string, opts ...DecodeOption) ErrorKind {
	t.Helper()
	o := applyDecodeOptions(opts...)
	_, err := decode(input, o)
	if err == nil {
		t.Fatalf("decode(%q): expected error", input)
	}
	decErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("decode(%q): expected *DecodeError, got %#v", input, err)
	}
	return decErr.Kind
}

func TestDecodePrimitiveObject(t *testing.T) {
	obj := mustDecode(t, "name: Ada\nage: 30").(*Object)
	if name, _ := obj.Get("name"); name != "Ada" {
		t.Errorf("name = %v", name)
	}
	if age, _ := obj.Get("age"); age != int64(30) {
		t.Errorf("age = %v (%T)", age, age)
	}
	keys := obj.Keys()
	if keys[0] != "name" || keys[1] != "age" {
		t.Errorf("key order = %v, want [name age]", keys)
	}
}

func TestDecodeTabularArray(t *testing.T) {
	input := "items[2]{id,name,qty,price}:\n  A1,Widget,2,9.99\n  B2,Gadget,1,14.5"
	obj := mustDecode(t, input).(*Object)
	items, _ := obj.Get("items")
	arr := items.(Array)
	if len(arr) != 2 {
		t.Fatalf("len = %d, want 2", len(arr))
	}
	row := arr[0].(*Object)
	if id, _ := row.Get("id"); id != "A1" {
		t.Errorf("id = %v", id)
	}
	if qty, _ := row.Get("qty"); qty != int64(2) {
		t.Errorf("qty = %v (%T)", qty, qty)
	}
	if price, _ := row.Get("price"); price != 9.99 {
		t.Errorf("price = %v", price)
	}
}

func TestDecodeInlineArray(t *testing.T) {
	obj := mustDecode(t, "tags[3]: a,b,c").(*Object)
	tags, _ := obj.Get("tags")
	arr := tags.(Array)
	if len(arr) != 3 || arr[0] != "a" || arr[2] != "c" {
		t.Fatalf("tags = %#v", arr)
	}
}

func TestDecodeListForm(t *testing.T) {
	input := "mix[3]:\n  - 1\n  - two\n  - k: 3"
	obj := mustDecode(t, input).(*Object)
	mix, _ := obj.Get("mix")
	arr := mix.(Array)
	if len(arr) != 3 {
		t.Fatalf("len = %d, want 3", len(arr))
	}
	if arr[0] != int64(1) || arr[1] != "two" {
		t.Errorf("items = %#v", arr)
	}
	item := arr[2].(*Object)
	if k, _ := item.Get("k"); k != int64(3) {
		t.Errorf("k = %v", k)
	}
}

func TestDecodeListItemWithContinuationFields(t *testing.T) {
	input := "rows[2]:\n  - a: 1\n    b: 2\n  - a: 3"
	obj := mustDecode(t, input).(*Object)
	rows, _ := obj.Get("rows")
	arr := rows.(Array)
	first := arr[0].(*Object)
	if first.Len() != 2 {
		t.Fatalf("first item keys = %v, want [a b]", first.Keys())
	}
	if b, _ := first.Get("b"); b != int64(2) {
		t.Errorf("b = %v", b)
	}
	second := arr[1].(*Object)
	if second.Len() != 1 {
		t.Errorf("second item keys = %v, want [a]", second.Keys())
	}
}

func TestDecodeListItemNestedObjectFirstField(t *testing.T) {
	input := "rows[1]:\n  - k:\n      x: 1\n    y: 2"
	obj := mustDecode(t, input).(*Object)
	rows, _ := obj.Get("rows")
	item := rows.(Array)[0].(*Object)
	if item.Len() != 2 {
		t.Fatalf("item keys = %v, want [k y]", item.Keys())
	}
	kv, _ := item.Get("k")
	inner := kv.(*Object)
	if inner.Len() != 1 {
		t.Fatalf("k's keys = %v, want [x] only", inner.Keys())
	}
	if x, _ := inner.Get("x"); x != int64(1) {
		t.Errorf("k.x = %v", x)
	}
	if y, _ := item.Get("y"); y != int64(2) {
		t.Errorf("y = %v (must be a sibling of k, not nested in it)", y)
	}
}

func TestDecodeNestedObject(t *testing.T) {
	obj := mustDecode(t, "a:\n  b:\n    c: 1").(*Object)
	av, _ := obj.Get("a")
	bv, _ := av.(*Object).Get("b")
	cv, _ := bv.(*Object).Get("c")
	if cv != int64(1) {
		t.Fatalf("c = %v", cv)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	obj, ok := mustDecode(t, "").(*Object)
	if !ok || obj.Len() != 0 {
		t.Fatalf("empty input should decode to an empty object, got %#v", obj)
	}
}

func TestDecodeEmptyObjectSentinel(t *testing.T) {
	if obj, ok := mustDecode(t, "{}").(*Object); !ok || obj.Len() != 0 {
		t.Errorf("root {} should decode to empty object")
	}

	obj := mustDecode(t, "meta: {}").(*Object)
	meta, _ := obj.Get("meta")
	if inner, ok := meta.(*Object); !ok || inner.Len() != 0 {
		t.Errorf("meta = %#v, want empty object", meta)
	}

	obj = mustDecode(t, "mix[1]:\n  - {}").(*Object)
	mix, _ := obj.Get("mix")
	if inner, ok := mix.(Array)[0].(*Object); !ok || inner.Len() != 0 {
		t.Errorf("list item = %#v, want empty object", mix.(Array)[0])
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	obj := mustDecode(t, "items[0]:").(*Object)
	items, _ := obj.Get("items")
	if arr, ok := items.(Array); !ok || len(arr) != 0 {
		t.Fatalf("items = %#v, want empty array", items)
	}
}

func TestDecodeZeroLengthTabularHeader(t *testing.T) {
	obj := mustDecode(t, "rows[0]{a,b}:").(*Object)
	rows, _ := obj.Get("rows")
	if arr, ok := rows.(Array); !ok || len(arr) != 0 {
		t.Fatalf("rows = %#v, want empty array", rows)
	}
}

func TestDecodeRootArrayHeader(t *testing.T) {
	arr, ok := mustDecode(t, "[3]: a,b,c").(Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("got %#v, want 3-element array", arr)
	}
}

func TestDecodeRootListForm(t *testing.T) {
	arr, ok := mustDecode(t, "- 1\n- 2").(Array)
	if !ok || len(arr) != 2 || arr[1] != int64(2) {
		t.Fatalf("got %#v, want [1 2]", arr)
	}
}

func TestDecodeRootPrimitives(t *testing.T) {
	if v := mustDecode(t, "42"); v != int64(42) {
		t.Errorf("42 -> %v (%T)", v, v)
	}
	if v := mustDecode(t, "null"); v != nil {
		t.Errorf("null -> %v", v)
	}
	if v := mustDecode(t, `"a: b"`); v != "a: b" {
		t.Errorf("quoted root -> %v", v)
	}
}

func TestDecodeCRLFAndBlankLines(t *testing.T) {
	input := "name: Ada\r\n\r\nage: 30\r\n"
	obj := mustDecode(t, input).(*Object)
	if obj.Len() != 2 {
		t.Fatalf("keys = %v, want 2 entries", obj.Keys())
	}
}

func TestDecodeQuotedKeys(t *testing.T) {
	obj := mustDecode(t, `"has space": 1`).(*Object)
	if v, ok := obj.Get("has space"); !ok || v != int64(1) {
		t.Fatalf("quoted key value = %v, %v", v, ok)
	}
}

func TestDecodePipeDelimiter(t *testing.T) {
	obj := mustDecode(t, "tags[2|]: a,x|b").(*Object)
	tags, _ := obj.Get("tags")
	arr := tags.(Array)
	if arr[0] != "a,x" || arr[1] != "b" {
		t.Fatalf("tags = %#v, want [a,x b]", arr)
	}

	obj = mustDecode(t, "rows[1|]{a|b}:\n  1|2").(*Object)
	rows, _ := obj.Get("rows")
	row := rows.(Array)[0].(*Object)
	if b, _ := row.Get("b"); b != int64(2) {
		t.Errorf("b = %v", b)
	}
}

func TestDecodeTabDelimiter(t *testing.T) {
	obj := mustDecode(t, "tags[2\t]: a\tb").(*Object)
	tags, _ := obj.Get("tags")
	arr := tags.(Array)
	if len(arr) != 2 || arr[0] != "a" || arr[1] != "b" {
		t.Fatalf("tags = %#v", arr)
	}
}

func TestDecodeQuotedFieldContainingDelimiter(t *testing.T) {
	input := "items[1]{id,note}:\n  A1,\"two, words\""
	obj := mustDecode(t, input).(*Object)
	items, _ := obj.Get("items")
	row := items.(Array)[0].(*Object)
	if note, _ := row.Get("note"); note != "two, words" {
		t.Fatalf("note = %v", note)
	}
}

func TestDecodeStrictLengthMismatch(t *testing.T) {
	if kind := decodeKind(t, "tags[2]: a,b,c"); kind != ErrLengthMismatch {
		t.Errorf("inline: kind = %v", kind)
	}
	if kind := decodeKind(t, "items[2]:\n  - a"); kind != ErrLengthMismatch {
		t.Errorf("list body: kind = %v", kind)
	}
	if kind := decodeKind(t, "rows[2]{a}:\n  1"); kind != ErrLengthMismatch {
		t.Errorf("tabular rows: kind = %v", kind)
	}
}

func TestDecodeStrictFieldArityMismatch(t *testing.T) {
	if kind := decodeKind(t, "rows[1]{a,b}:\n  1,2,3"); kind != ErrFieldArityMismatch {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeStrictIndentErrors(t *testing.T) {
	if kind := decodeKind(t, "a:\n   b: 1"); kind != ErrIndentError {
		t.Errorf("odd indent: kind = %v", kind)
	}
	if kind := decodeKind(t, "a:\n\tb: 1"); kind != ErrIndentError {
		t.Errorf("tab indent: kind = %v", kind)
	}
	if kind := decodeKind(t, "a: 1\n  b: 2"); kind != ErrIndentError {
		t.Errorf("impossible indent jump: kind = %v", kind)
	}
}

func TestDecodeStrictDuplicateKey(t *testing.T) {
	if kind := decodeKind(t, "a: 1\na: 2"); kind != ErrDuplicateKey {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeStrictTrailingContent(t *testing.T) {
	if kind := decodeKind(t, "hello\nworld"); kind != ErrIndentError {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeUnknownDelimiterInHeader(t *testing.T) {
	if kind := decodeKind(t, "a: 1\ntags[2;]: x;y"); kind != ErrUnknownDelimiter {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeUnterminatedString(t *testing.T) {
	if kind := decodeKind(t, `s: "abc`); kind != ErrUnterminatedString {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeInvalidEscape(t *testing.T) {
	if kind := decodeKind(t, `s: "a\qb"`); kind != ErrInvalidEscape {
		t.Errorf("kind = %v", kind)
	}
}

func TestDecodeLenientLengthMismatch(t *testing.T) {
	obj := mustDecode(t, "tags[2]: a,b,c", WithStrict(false)).(*Object)
	tags, _ := obj.Get("tags")
	if arr := tags.(Array); len(arr) != 3 {
		t.Fatalf("lenient should keep actual length, got %#v", arr)
	}
}

func TestDecodeLenientDuplicateKeyKeepsLast(t *testing.T) {
	obj := mustDecode(t, "a: 1\na: 2", WithStrict(false)).(*Object)
	if v, _ := obj.Get("a"); v != int64(2) {
		t.Fatalf("a = %v, want 2 (last assignment wins)", v)
	}
	if obj.Len() != 1 {
		t.Fatalf("keys = %v, want a single entry", obj.Keys())
	}
}

func TestDecodeLenientOddIndent(t *testing.T) {
	obj := mustDecode(t, "a:\n   b: 1", WithStrict(false)).(*Object)
	av, _ := obj.Get("a")
	inner, ok := av.(*Object)
	if !ok {
		t.Fatalf("a = %#v, want object", av)
	}
	if v, _ := inner.Get("b"); v != int64(1) {
		t.Fatalf("b = %v", v)
	}
}

func TestDecodeIndentSizeOption(t *testing.T) {
	obj := mustDecode(t, "a:\n    b: 1", WithIndentSize(4)).(*Object)
	av, _ := obj.Get("a")
	if v, _ := av.(*Object).Get("b"); v != int64(1) {
		t.Fatalf("b = %v", v)
	}
}
