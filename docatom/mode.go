package docatom

// Mode classifies a whole document as markdown-like or plain.
type Mode int

// Mode values. ModeAuto is not a real mode; pass it to Atomize to request
// auto-detection via DetectMode.
const (
	ModeAuto Mode = iota - 1
	Plain
	Markdown
)

// DetectMode counts how many of six structural signals appear anywhere in
// text (at least one match each): ATX headings, fenced code markers, list
// items, blockquotes, inline links, and horizontal rules. Two or more
// distinct signals mean Markdown, otherwise Plain.
func DetectMode(text string) Mode {
	hits := 0
	if hasATXHeadingSignal(text) {
		hits++
	}
	if hasFenceSignal(text) {
		hits++
	}
	if hasListSignal(text) {
		hits++
	}
	if hasBlockquoteSignal(text) {
		hits++
	}
	if hasInlineLinkSignal(text) {
		hits++
	}
	if hasHRSignal(text) {
		hits++
	}
	if hits >= 2 {
		return Markdown
	}
	return Plain
}

func hasATXHeadingSignal(text string) bool {
	for _, line := range splitLinesNoTerm(text) {
		if ok, _, title := matchATXHeading(line); ok && title != "" {
			return true
		}
	}
	return false
}

func hasFenceSignal(text string) bool {
	for _, line := range splitLinesNoTerm(text) {
		if ok, _ := matchFenceOpen(line); ok {
			return true
		}
	}
	return false
}

func hasListSignal(text string) bool {
	for _, line := range splitLinesNoTerm(text) {
		if matchListStart(line) {
			return true
		}
	}
	return false
}

func hasBlockquoteSignal(text string) bool {
	for _, line := range splitLinesNoTerm(text) {
		if matchBlockquote(line) {
			return true
		}
	}
	return false
}

func hasInlineLinkSignal(text string) bool {
	return containsInlineLink(text)
}

func hasHRSignal(text string) bool {
	for _, line := range splitLinesNoTerm(text) {
		if matchHR(line) {
			return true
		}
	}
	return false
}

// splitLinesNoTerm splits text into lines without their line terminators,
// used only by the mode detector (which never needs byte spans).
func splitLinesNoTerm(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			lines = append(lines, text[start:end])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
