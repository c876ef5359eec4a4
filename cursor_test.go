package toon

import "testing"

func TestCursorSkipsBlanksOnAdvance(t *testing.T) {
	lines := []ParsedLine{
		{Content: "a", LineNumber: 1},
		{Blank: true, LineNumber: 2},
		{Content: "b", LineNumber: 3},
	}
	c := newCursor(lines)

	line, ok := c.advance()
	if !ok || line.Content != "a" {
		t.Fatalf("first advance = %#v, %v, want a, true", line, ok)
	}
	line, ok = c.advance()
	if !ok || line.Content != "b" {
		t.Fatalf("second advance = %#v, %v, want b, true (blank skipped)", line, ok)
	}
	if !c.eof() {
		t.Fatalf("expected eof after consuming all non-blank lines")
	}
}

func TestCursorLeadingBlanksSkippedOnConstruction(t *testing.T) {
	lines := []ParsedLine{
		{Blank: true, LineNumber: 1},
		{Content: "a", LineNumber: 2},
	}
	c := newCursor(lines)
	line, ok := c.peek()
	if !ok || line.Content != "a" {
		t.Fatalf("peek = %#v, %v, want a, true", line, ok)
	}
}

func TestCursorPeekDoesNotConsume(t *testing.T) {
	lines := []ParsedLine{{Content: "a", LineNumber: 1}}
	c := newCursor(lines)
	c.peek()
	c.peek()
	line, ok := c.advance()
	if !ok || line.Content != "a" {
		t.Fatalf("advance after repeated peek = %#v, %v, want a, true", line, ok)
	}
	if !c.eof() {
		t.Fatalf("expected eof after single advance")
	}
}

func TestCursorEmptyInput(t *testing.T) {
	c := newCursor(nil)
	if !c.eof() {
		t.Fatalf("expected eof on empty input")
	}
	if _, ok := c.peek(); ok {
		t.Fatalf("peek on empty input should report false")
	}
	if _, ok := c.advance(); ok {
		t.Fatalf("advance on empty input should report false")
	}
	if c.lastLineNumber() != 0 {
		t.Fatalf("lastLineNumber on empty input = %d, want 0", c.lastLineNumber())
	}
}

func TestCursorLastLineNumber(t *testing.T) {
	lines := []ParsedLine{
		{Content: "a", LineNumber: 5},
		{Content: "b", LineNumber: 9},
	}
	c := newCursor(lines)
	c.advance()
	if got := c.lastLineNumber(); got != 9 {
		t.Fatalf("lastLineNumber = %d, want 9", got)
	}
	c.advance()
	if got := c.lastLineNumber(); got != 9 {
		t.Fatalf("lastLineNumber at eof = %d, want 9 (last line)", got)
	}
}
