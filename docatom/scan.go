package docatom

import "unicode/utf8"

// This file holds the low-level, hand-written line scanners the atomizer
// and mode detector share. None of them use regexp: each walks bytes
// directly, in the style of scandown's fence/ruler/delimiter scanners.

// trimIndent returns line with up to 3 leading spaces removed (tabs count
// as a stop, matching CommonMark's "up to three spaces" leeway) along with
// the number of bytes trimmed.
func trimIndent(line string) (rest string, n int) {
	for n < len(line) && n < 3 && line[n] == ' ' {
		n++
	}
	return line[n:], n
}

// isBlankLine reports whether line (no terminator) is empty or all
// whitespace.
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r':
		default:
			return false
		}
	}
	return true
}

// matchHR reports whether line is a thematic break: three or more of the
// same character among '-', '*', '_', each optionally separated by spaces,
// and nothing else on the line.
func matchHR(line string) bool {
	rest, _ := trimIndent(line)
	if rest == "" {
		return false
	}
	var mark byte
	count := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case ' ', '\t', '\r':
			continue
		case '-', '*', '_':
			if mark == 0 {
				mark = rest[i]
			} else if rest[i] != mark {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// matchFenceOpen reports whether line opens a code fence (``` or ~~~, at
// least 3 of the same rune), returning the fence marker run for later
// matching by matchFenceClose.
func matchFenceOpen(line string) (ok bool, marker string) {
	rest, _ := trimIndent(line)
	if len(rest) < 3 {
		return false, ""
	}
	mark := rest[0]
	if mark != '`' && mark != '~' {
		return false, ""
	}
	i := 0
	for i < len(rest) && rest[i] == mark {
		i++
	}
	if i < 3 {
		return false, ""
	}
	if mark == '`' {
		// backtick fences cannot have a backtick in the info string
		for j := i; j < len(rest); j++ {
			if rest[j] == '`' {
				return false, ""
			}
		}
	}
	return true, rest[:i]
}

// matchFenceClose reports whether line closes a fence opened with marker:
// a line with (after up to 3-space indent) only the same fence character,
// run length at least as long as marker, and nothing else.
func matchFenceClose(line, marker string) bool {
	rest, _ := trimIndent(line)
	mark := marker[0]
	i := 0
	for i < len(rest) && rest[i] == mark {
		i++
	}
	if i < len(marker) {
		return false
	}
	return isBlankLine(rest[i:])
}

// matchATXHeading reports whether line is an ATX heading: 1-6 '#'
// characters, then either end-of-line or a space, then an optional title
// with optional trailing closing '#' run stripped.
func matchATXHeading(line string) (ok bool, depth int, title string) {
	rest, _ := trimIndent(line)
	i := 0
	for i < len(rest) && rest[i] == '#' {
		i++
	}
	if i == 0 || i > 6 {
		return false, 0, ""
	}
	if i < len(rest) && rest[i] != ' ' && rest[i] != '\t' {
		return false, 0, ""
	}
	depth = i
	title = trimSpace(rest[i:])
	title = stripTrailingHashes(title)
	return true, depth, title
}

// stripTrailingHashes removes a trailing run of '#' characters (ATX
// closing sequence) along with the whitespace before it, if any.
func stripTrailingHashes(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == '#' {
		end--
	}
	if end == len(s) {
		return s
	}
	return trimSpace(s[:end])
}

// matchPseudoHeading detects a short bold-only line ("**Title**") or an
// all-caps line that stands alone as a section marker.
func matchPseudoHeading(line string) (ok bool, title string) {
	rest, _ := trimIndent(line)
	rest = trimSpace(rest)
	if rest == "" {
		return false, ""
	}
	if t, ok := matchBoldOnly(rest); ok {
		return true, t
	}
	if isAllCapsHeading(rest) {
		return true, rest
	}
	return false, ""
}

// matchBoldOnly reports whether s is exactly "**text**" or "__text__" with
// non-empty text and no further occurrence of the same marker inside.
func matchBoldOnly(s string) (title string, ok bool) {
	for _, marker := range [2]string{"**", "__"} {
		if len(s) > 2*len(marker) && hasPrefixByte(s, marker) && hasSuffixByte(s, marker) {
			inner := s[len(marker) : len(s)-len(marker)]
			if inner == "" {
				continue
			}
			if !containsByte(inner, marker) {
				return inner, true
			}
		}
	}
	return "", false
}

func hasPrefixByte(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func hasSuffixByte(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func containsByte(s, sub string) bool {
	if len(sub) == 0 || len(s) < len(sub) {
		return false
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

// isAllCapsHeadingChar reports whether r is one of the characters allowed
// in an all-caps pseudo-heading line: A-Z, 0-9, space, and the punctuation
// set -:,'".() .
func isAllCapsHeadingChar(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return true
	case r == '-', r == ':', r == ',', r == '\'', r == '"', r == '.', r == '(', r == ')':
		return true
	}
	return false
}

// isAllCapsHeading reports whether s is short (<= 80 bytes), consists
// entirely of characters in [A-Z0-9 \-:,'".()], and contains at least one
// letter. Lowercase letters are not in the class, so a single lowercase
// word disqualifies the whole line.
func isAllCapsHeading(s string) bool {
	if len(s) == 0 || len(s) > 80 {
		return false
	}
	letters := 0
	for _, r := range s {
		if !isAllCapsHeadingChar(r) {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	return letters > 0
}

// matchListStart reports whether line begins an unordered or ordered list
// item: "-", "*", "+", or "N." / "N)" followed by a space.
func matchListStart(line string) bool {
	rest, _ := trimIndent(line)
	if rest == "" {
		return false
	}
	switch rest[0] {
	case '-', '*', '+':
		return len(rest) > 1 && (rest[1] == ' ' || rest[1] == '\t')
	}
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 {
		return false
	}
	if i >= len(rest) {
		return false
	}
	if rest[i] != '.' && rest[i] != ')' {
		return false
	}
	i++
	return i < len(rest) && (rest[i] == ' ' || rest[i] == '\t')
}

// matchBlockquote reports whether line begins a blockquote: up to 3
// leading spaces, '>', a space, then a non-space.
func matchBlockquote(line string) bool {
	rest, _ := trimIndent(line)
	if len(rest) < 3 || rest[0] != '>' || rest[1] != ' ' {
		return false
	}
	return rest[2] != ' ' && rest[2] != '\t'
}

// matchTableRow reports whether line looks like a pipe-delimited table row:
// it is non-blank and contains at least one '|' anywhere. Backslash escapes
// are not considered.
func matchTableRow(line string) bool {
	rest, _ := trimIndent(line)
	if rest == "" {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] == '|' {
			return true
		}
	}
	return false
}

// matchTableSeparator reports whether line is a table header separator:
// cells made only of '-', ':' and '|', with at least one '-'.
func matchTableSeparator(line string) bool {
	rest, _ := trimIndent(line)
	if rest == "" {
		return false
	}
	dashes := 0
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '-':
			dashes++
		case ':', '|', ' ', '\t', '\r':
		default:
			return false
		}
	}
	return dashes > 0
}

// containsInlineLink reports whether text contains at least one
// "[label](target)" inline link shape anywhere.
func containsInlineLink(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		j := i + 1
		depth := 1
		for j < len(text) && depth > 0 {
			switch text[j] {
			case '[':
				depth++
			case ']':
				depth--
			case '\n':
				depth = -1
			}
			j++
		}
		if depth != 0 {
			continue
		}
		if j < len(text) && text[j] == '(' {
			k := j + 1
			for k < len(text) && text[k] != ')' && text[k] != '\n' {
				k++
			}
			if k < len(text) && text[k] == ')' && k > j+1 {
				return true
			}
		}
	}
	return false
}

// trimSpace trims ASCII space/tab/CR from both ends; the set of cut bytes
// is fixed and small, so no need for strings.TrimSpace.
func trimSpace(s string) string {
	start := 0
	for start < len(s) && isSpaceByte(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isSpaceByte(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

// countWords counts whitespace-delimited words in s.
func countWords(s string) int {
	n := 0
	inWord := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			inWord = false
		default:
			if !inWord {
				n++
				inWord = true
			}
		}
	}
	return n
}

// countChars counts runes in s.
func countChars(s string) int {
	return utf8.RuneCountInString(s)
}
