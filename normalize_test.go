package toon

import (
	"math"
	"testing"
	"time"
)

func mustNormalize(t *testing.T, v Value, opts *EncodeOptions) Value {
	t.Helper()
	if opts == nil {
		opts = defaultEncodeOptions()
	}
	out, err := normalize(v, opts)
	if err != nil {
		t.Fatalf("normalize(%v) error: %v", v, err)
	}
	return out
}

func TestNormalizePrimitives(t *testing.T) {
	if got := mustNormalize(t, nil, nil); got != nil {
		t.Errorf("nil -> %v, want nil", got)
	}
	if got := mustNormalize(t, true, nil); got != true {
		t.Errorf("bool -> %v, want true", got)
	}
	if got := mustNormalize(t, "hi", nil); got != "hi" {
		t.Errorf("string -> %v, want hi", got)
	}
}

func TestNormalizeNonFiniteBecomesNull(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := mustNormalize(t, f, nil); got != nil {
			t.Errorf("normalize(%v) = %v, want nil", f, got)
		}
	}
}

func TestNormalizeNegativeZeroBecomesPositiveZero(t *testing.T) {
	got := mustNormalize(t, math.Copysign(0, -1), nil)
	i, ok := got.(int64)
	if !ok || i != 0 {
		t.Fatalf("normalize(-0.0) = %v (%T), want int64(0)", got, got)
	}
}

func TestNormalizeWholeFloatBecomesInt64(t *testing.T) {
	got := mustNormalize(t, 3.0, nil)
	if i, ok := got.(int64); !ok || i != 3 {
		t.Fatalf("normalize(3.0) = %v (%T), want int64(3)", got, got)
	}
}

func TestNormalizeFractionalFloatStaysFloat(t *testing.T) {
	got := mustNormalize(t, 3.5, nil)
	if f, ok := got.(float64); !ok || f != 3.5 {
		t.Fatalf("normalize(3.5) = %v (%T), want float64(3.5)", got, got)
	}
}

func TestNormalizeMapSortsKeys(t *testing.T) {
	got := mustNormalize(t, map[string]interface{}{"b": 1, "a": 2}, nil)
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", got)
	}
	keys := obj.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", keys)
	}
}

func TestNormalizeObjectPreservesOrder(t *testing.T) {
	src := NewObject()
	src.Set("z", 1)
	src.Set("a", 2)
	got := mustNormalize(t, src, nil)
	obj := got.(*Object)
	keys := obj.Keys()
	if keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("Keys() = %v, want [z a]", keys)
	}
}

func TestNormalizeArray(t *testing.T) {
	got := mustNormalize(t, []interface{}{1, "two", 3.0}, nil)
	arr, ok := got.(Array)
	if !ok || len(arr) != 3 {
		t.Fatalf("expected 3-element Array, got %#v", got)
	}
	if arr[2] != int64(3) {
		t.Fatalf("arr[2] = %v, want int64(3)", arr[2])
	}
}

func TestNormalizeStructViaJSON(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	got := mustNormalize(t, point{X: 1, Y: 2}, nil)
	obj, ok := got.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", got)
	}
	x, _ := obj.Get("x")
	y, _ := obj.Get("y")
	if x != int64(1) || y != int64(2) {
		t.Fatalf("struct fields = %v, %v, want 1, 2", x, y)
	}
}

func TestNormalizeCyclicObjectFails(t *testing.T) {
	obj := NewObject()
	obj.Set("self", obj)

	_, err := normalize(obj, defaultEncodeOptions())
	if err == nil {
		t.Fatalf("expected error for cyclic reference")
	}
	encErr, ok := err.(*EncodeError)
	if !ok || encErr.Kind != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput EncodeError, got %#v", err)
	}
}

func TestNormalizeTimeDefaultFormatter(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got := mustNormalize(t, ts, nil)
	s, ok := got.(string)
	if !ok || s != ts.Format(time.RFC3339Nano) {
		t.Fatalf("normalize(time.Time) = %v, want RFC3339Nano string", got)
	}
}

func TestNormalizeTimeCustomFormatter(t *testing.T) {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	opts := applyEncodeOptions(WithTimeFormatter(func(t time.Time) string {
		return t.Format("2006-01-02")
	}))
	got := mustNormalize(t, ts, opts)
	if got != "2024-01-02" {
		t.Fatalf("normalize(time.Time) with custom formatter = %v, want 2024-01-02", got)
	}
}
