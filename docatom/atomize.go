package docatom

import "fmt"

// sectionFrame is one entry of the heading stack: an open heading or
// pseudo-heading awaiting a sibling or shallower heading to close it.
type sectionFrame struct {
	depth int
	title string
	id    SectionID
}

type lineSpan struct {
	// start, end bound the line's content, excluding any terminator.
	start, end int
	// termEnd is end plus the terminator bytes ("\n" or "\r\n"), or end
	// itself for a final unterminated line.
	termEnd int
}

func splitLines(text string) []lineSpan {
	var lines []lineSpan
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		end := i
		if end > start && text[end-1] == '\r' {
			end--
		}
		lines = append(lines, lineSpan{start: start, end: end, termEnd: i + 1})
		start = i + 1
	}
	if start < len(text) {
		lines = append(lines, lineSpan{start: start, end: len(text), termEnd: len(text)})
	}
	return lines
}

// InvariantError marks a panic value as an internal invariant violation
// raised by this package, rather than an ordinary bug-free panic (index
// out of range, nil deref, …). cmd/docsplit's recover checks for this via
// errors.As before mapping to its dedicated exit code.
type InvariantError struct{ msg string }

func (e *InvariantError) Error() string { return e.msg }

func panicInvariant(format string, args ...interface{}) {
	panic(&InvariantError{msg: fmt.Sprintf("docatom: invariant violated: "+format, args...)})
}

// Invariantf builds an *InvariantError for packages layered on docatom that
// share the same fatal-bug convention (panic, recovered at the cmd
// boundary).
func Invariantf(format string, args ...interface{}) *InvariantError {
	return &InvariantError{msg: fmt.Sprintf(format, args...)}
}

// Atomize scans text into a flat stream of Atoms plus the registry mapping
// each assigned SectionID to the index of its defining heading atom. mode
// selects the grammar; pass ModeAuto to run DetectMode first.
//
// Atomize panics (wrapping InvariantError) if the resulting atom stream would
// violate byte-coverage or ordering invariants; such a panic indicates a
// bug in this package, not bad input.
func Atomize(text string, mode Mode) ([]Atom, SectionRegistry) {
	if mode == ModeAuto {
		mode = DetectMode(text)
	}
	markdown := mode == Markdown

	lines := splitLines(text)
	var atoms []Atom
	registry := SectionRegistry{}
	var stack []sectionFrame
	nextID := SectionID(1)

	sectionIDs := func() []SectionID {
		if len(stack) == 0 {
			return nil
		}
		ids := make([]SectionID, len(stack))
		for i, f := range stack {
			ids[i] = f.id
		}
		return ids
	}
	sectionTitles := func() []string {
		if len(stack) == 0 {
			return nil
		}
		titles := make([]string, len(stack))
		for i, f := range stack {
			titles[i] = f.title
		}
		return titles
	}
	topID := func() SectionID {
		if len(stack) == 0 {
			return 0
		}
		return stack[len(stack)-1].id
	}
	lineText := func(idx int) string { return text[lines[idx].start:lines[idx].end] }

	pushHeading := func(depth int, title string) SectionID {
		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		id := nextID
		nextID++
		stack = append(stack, sectionFrame{depth: depth, title: title, id: id})
		return id
	}

	i := 0
	for i < len(lines) {
		ln := lines[i]
		lt := lineText(i)

		switch {
		case isBlankLine(lt):
			blankText := text[ln.start:ln.termEnd]
			atoms = append(atoms, Atom{
				Type: Blank, StartByte: ln.start, EndByte: ln.termEnd,
				StartLine: i, EndLine: i, Text: blankText,
				WeightChars: countChars(blankText), WeightWords: countWords(blankText),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
			})
			i++

		case matchHR(lt):
			hrText := text[ln.start:ln.termEnd]
			atoms = append(atoms, Atom{
				Type: HR, StartByte: ln.start, EndByte: ln.termEnd,
				StartLine: i, EndLine: i, Text: hrText,
				WeightChars: countChars(hrText), WeightWords: countWords(hrText),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
				CanCutBefore: true, BoundaryStrength: 0.9,
			})
			i++

		case isFenceOpen(lt):
			_, marker := matchFenceOpen(lt)
			j := i + 1
			for j < len(lines) && !matchFenceClose(lineText(j), marker) {
				j++
			}
			endLine := j
			if endLine >= len(lines) {
				endLine = len(lines) - 1
			}
			startByte, endByte := ln.start, spanEnd(lines, endLine, len(text))
			fenceText := text[startByte:endByte]
			atoms = append(atoms, Atom{
				Type: CodeFence, StartByte: startByte, EndByte: endByte,
				StartLine: i, EndLine: endLine, Text: fenceText,
				WeightChars: countChars(fenceText), WeightWords: countWords(fenceText),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
				CanCutBefore: true, BoundaryStrength: 0.6,
			})
			i = endLine + 1

		case markdown && isATXHeading(lt):
			_, depth, title := matchATXHeading(lt)
			id := pushHeading(depth, title)
			atomIdx := len(atoms)
			headingText := text[ln.start:ln.termEnd]
			atoms = append(atoms, Atom{
				Type: Heading, StartByte: ln.start, EndByte: ln.termEnd,
				StartLine: i, EndLine: i, Text: headingText,
				WeightChars: countChars(headingText), WeightWords: countWords(headingText),
				Depth: depth, SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(),
				SectionNodeID: id, CanCutBefore: true, BoundaryStrength: 1.0,
			})
			registry[id] = atomIdx
			i++

		case isPseudoHeading(lt):
			_, title := matchPseudoHeading(lt)
			depth := 1
			if len(stack) > 0 {
				depth = stack[len(stack)-1].depth + 1
				if depth > 6 {
					depth = 6
				}
			}
			id := pushHeading(depth, title)
			atomIdx := len(atoms)
			pseudoText := text[ln.start:ln.termEnd]
			atoms = append(atoms, Atom{
				Type: PseudoHeading, StartByte: ln.start, EndByte: ln.termEnd,
				StartLine: i, EndLine: i, Text: pseudoText,
				WeightChars: countChars(pseudoText), WeightWords: countWords(pseudoText),
				Depth: depth, SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(),
				SectionNodeID: id, CanCutBefore: true, BoundaryStrength: 0.95,
			})
			registry[id] = atomIdx
			i++

		case markdown && matchTableRow(lt) && i+1 < len(lines) && matchTableSeparator(lineText(i+1)):
			j := i + 2
			for j < len(lines) && matchTableRow(lineText(j)) && !isBlankLine(lineText(j)) {
				j++
			}
			endLine := j - 1
			startByte, endByte := ln.start, lines[endLine].termEnd
			body := text[startByte:endByte]
			atoms = append(atoms, Atom{
				Type: Table, StartByte: startByte, EndByte: endByte,
				StartLine: i, EndLine: endLine, Text: body,
				WeightChars: countChars(body), WeightWords: countWords(body),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
				CanCutBefore: true, BoundaryStrength: 0.6,
			})
			i = j

		case matchListStart(lt):
			j := i + 1
			for j < len(lines) {
				next := lineText(j)
				if isBlankLine(next) {
					break
				}
				if matchListStart(next) || hasContinuationIndent(next) {
					j++
					continue
				}
				break
			}
			endLine := j - 1
			startByte, endByte := ln.start, lines[endLine].termEnd
			body := text[startByte:endByte]
			atoms = append(atoms, Atom{
				Type: List, StartByte: startByte, EndByte: endByte,
				StartLine: i, EndLine: endLine, Text: body,
				WeightChars: countChars(body), WeightWords: countWords(body),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
				CanCutBefore: true, BoundaryStrength: 0.5,
			})
			i = j

		default:
			j := i + 1
			for j < len(lines) {
				next := lineText(j)
				if isBlankLine(next) || matchHR(next) || isFenceOpen(next) || isPseudoHeading(next) || matchListStart(next) {
					break
				}
				if markdown && (isATXHeading(next) || (matchTableRow(next) && j+1 < len(lines) && matchTableSeparator(lineText(j+1)))) {
					break
				}
				j++
			}
			endLine := j - 1
			startByte, endByte := ln.start, lines[endLine].termEnd
			body := text[startByte:endByte]
			atoms = append(atoms, Atom{
				Type: Paragraph, StartByte: startByte, EndByte: endByte,
				StartLine: i, EndLine: endLine, Text: body,
				WeightChars: countChars(body), WeightWords: countWords(body),
				SectionPath: sectionTitles(), SectionPathIDs: sectionIDs(), SectionNodeID: topID(),
				BoundaryStrength: 0.1,
			})
			i = j
		}
	}

	// Paragraph fallback eligibility: a paragraph can anchor a cut only if
	// it opens the document or immediately follows a blank/hr atom.
	for idx := range atoms {
		if atoms[idx].Type != Paragraph {
			continue
		}
		if idx == 0 {
			atoms[idx].CanCutBefore = true
			continue
		}
		switch atoms[idx-1].Type {
		case Blank, HR:
			atoms[idx].CanCutBefore = true
		}
	}

	for idx := range atoms {
		atoms[idx].Idx = idx
	}

	validateAtoms(text, atoms)
	validateRegistry(atoms, registry)

	return atoms, registry
}

func isFenceOpen(line string) bool { ok, _ := matchFenceOpen(line); return ok }
func isATXHeading(line string) bool {
	ok, _, _ := matchATXHeading(line)
	return ok
}
func isPseudoHeading(line string) bool { ok, _ := matchPseudoHeading(line); return ok }

// hasContinuationIndent reports whether line is indented enough to be a
// wrapped continuation of the preceding list item: at least two leading
// spaces followed by a non-space.
func hasContinuationIndent(line string) bool {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i >= 2 && i < len(line)
}

func spanEnd(lines []lineSpan, idx, textLen int) int {
	if idx < 0 || idx >= len(lines) {
		return textLen
	}
	return lines[idx].termEnd
}

// validateAtoms checks the coverage and ordering invariants the rest of
// the package assumes hold for every atom stream: atoms are contiguous,
// non-overlapping, cover all of text in order, and Idx is sequential.
func validateAtoms(text string, atoms []Atom) {
	prevEnd := 0
	for idx, a := range atoms {
		if a.Idx != idx {
			panicInvariant("atom %d has Idx %d", idx, a.Idx)
		}
		if a.StartByte != prevEnd {
			panicInvariant("atom %d starts at byte %d, expected %d", idx, a.StartByte, prevEnd)
		}
		if a.EndByte < a.StartByte {
			panicInvariant("atom %d has EndByte %d < StartByte %d", idx, a.EndByte, a.StartByte)
		}
		if a.Text != text[a.StartByte:a.EndByte] {
			panicInvariant("atom %d Text does not match its byte span", idx)
		}
		prevEnd = a.EndByte
	}
	if prevEnd != len(text) {
		panicInvariant("atom stream covers %d of %d bytes", prevEnd, len(text))
	}
}

// validateRegistry checks the section registry against the atom stream:
// every mapped atom index is in range, names a heading or pseudo-heading
// whose own section id is the mapped id, and the assigned ids form the
// contiguous run 1..len(registry).
func validateRegistry(atoms []Atom, registry SectionRegistry) {
	for id, atomIdx := range registry {
		if atomIdx < 0 || atomIdx >= len(atoms) {
			panicInvariant("section %d maps to atom %d, out of range [0,%d)", id, atomIdx, len(atoms))
		}
		a := atoms[atomIdx]
		if a.Type != Heading && a.Type != PseudoHeading {
			panicInvariant("section %d maps to %v atom %d", id, a.Type, atomIdx)
		}
		if a.SectionNodeID != id {
			panicInvariant("section %d maps to atom %d with node id %d", id, atomIdx, a.SectionNodeID)
		}
	}
	for id := SectionID(1); int(id) <= len(registry); id++ {
		if _, ok := registry[id]; !ok {
			panicInvariant("section ids are not contiguous: %d missing of %d assigned", id, len(registry))
		}
	}
}
