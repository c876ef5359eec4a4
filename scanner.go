package toon

import "strings"

// ParsedLine is one physical line of input plus the layout information
// the parser needs: its indentation depth, the raw leading-space count,
// and the content with that leading whitespace stripped (§4.5).
type ParsedLine struct {
	Raw        string
	Content    string
	Indent     int
	Depth      int
	LineNumber int
	Blank      bool
}

// scan splits input into ParsedLines, computing depth from the
// configured indent width. Trailing all-blank lines are dropped; an
// interior blank line is kept (marked Blank) so the cursor can skip it
// while still reporting its line number in errors.
func scan(input string, indentWidth int, strict bool) ([]ParsedLine, error) {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	rawLines := strings.Split(input, "\n")

	for len(rawLines) > 0 && strings.TrimSpace(rawLines[len(rawLines)-1]) == "" {
		rawLines = rawLines[:len(rawLines)-1]
	}

	lines := make([]ParsedLine, 0, len(rawLines))
	for i, raw := range rawLines {
		lineNumber := i + 1

		if strings.TrimSpace(raw) == "" {
			lines = append(lines, ParsedLine{Raw: raw, LineNumber: lineNumber, Blank: true})
			continue
		}

		indent, tabFound := countIndent(raw)
		if tabFound && strict {
			return nil, &DecodeError{Kind: ErrIndentError, Message: "tabs are not allowed in indentation", Line: lineNumber}
		}
		if indentWidth > 0 && indent%indentWidth != 0 && strict {
			return nil, &DecodeError{Kind: ErrIndentError, Message: "indentation is not a multiple of the configured width", Line: lineNumber}
		}

		depth := 0
		if indentWidth > 0 {
			depth = indent / indentWidth
		}

		lines = append(lines, ParsedLine{
			Raw:        raw,
			Content:    raw[indentLen(raw):],
			Indent:     indent,
			Depth:      depth,
			LineNumber: lineNumber,
		})
	}

	return lines, nil
}

// countIndent returns the number of leading-space columns (tabs counted
// as one column each) and whether a tab was seen.
func countIndent(s string) (int, bool) {
	n := 0
	tabFound := false
	for _, ch := range s {
		switch ch {
		case ' ':
			n++
		case '\t':
			tabFound = true
			n++
		default:
			return n, tabFound
		}
	}
	return n, tabFound
}

// indentLen returns the byte length of s's leading run of spaces/tabs.
func indentLen(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
