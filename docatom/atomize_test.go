package docatom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/docsplit/docatom"
)

func types(atoms []docatom.Atom) []docatom.AtomType {
	ts := make([]docatom.AtomType, len(atoms))
	for i, a := range atoms {
		ts[i] = a.Type
	}
	return ts
}

func Test_Atomize_twoHeadings(t *testing.T) {
	text := "# One\n\nFirst paragraph.\n\n## Two\n\nSecond paragraph.\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 7)
	assert.Equal(t, []docatom.AtomType{
		docatom.Heading, docatom.Blank, docatom.Paragraph,
		docatom.Blank, docatom.Heading, docatom.Blank, docatom.Paragraph,
	}, types(atoms))

	assert.Equal(t, 1, atoms[0].Depth)
	assert.Equal(t, 2, atoms[4].Depth)
	assert.True(t, atoms[0].CanCutBefore)
	assert.True(t, atoms[4].CanCutBefore)

	assert.Equal(t, []string{"One"}, atoms[2].SectionPath)
	assert.Equal(t, []string{"One", "Two"}, atoms[6].SectionPath)
	assert.Equal(t, atoms[0].SectionNodeID, atoms[2].SectionNodeID)
	assert.Equal(t, atoms[4].SectionNodeID, atoms[6].SectionNodeID)

	require.Len(t, registry, 2)
	assert.Equal(t, 0, registry[atoms[0].SectionNodeID])
	assert.Equal(t, 4, registry[atoms[4].SectionNodeID])

	for idx, a := range atoms {
		assert.Equal(t, idx, a.Idx)
	}
}

func Test_Atomize_pseudoHeading(t *testing.T) {
	text := "**Section**\n\nBody text here.\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.PseudoHeading, atoms[0].Type)
	assert.Equal(t, "**Section**\n", atoms[0].Text)
	assert.True(t, atoms[0].CanCutBefore)
	assert.Equal(t, 1, atoms[0].Depth)
	require.Len(t, registry, 1)
}

func Test_Atomize_fenceHidesHeadingLookalike(t *testing.T) {
	text := "# Title\n\n```\n# not a heading\n```\n\nAfter.\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 5)
	assert.Equal(t, []docatom.AtomType{
		docatom.Heading, docatom.Blank, docatom.CodeFence, docatom.Blank, docatom.Paragraph,
	}, types(atoms))
	assert.Contains(t, atoms[2].Text, "# not a heading")
}

func Test_Atomize_unterminatedFenceAtEOF(t *testing.T) {
	text := "# T\n\n```\nfoo\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.CodeFence, atoms[2].Type)
	assert.Equal(t, len(text), atoms[2].EndByte)
}

func Test_Atomize_headingDepthNesting(t *testing.T) {
	text := "# A\n\n## B\n\n### C\n\n## D\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	var headings []docatom.Atom
	for _, a := range atoms {
		if a.Type == docatom.Heading {
			headings = append(headings, a)
		}
	}
	require.Len(t, headings, 4)
	assert.Equal(t, []int{1, 2, 3, 2}, []int{headings[0].Depth, headings[1].Depth, headings[2].Depth, headings[3].Depth})
	assert.Equal(t, []string{"A", "D"}, headings[3].SectionPath)
	assert.NotEqual(t, headings[1].SectionNodeID, headings[3].SectionNodeID)
	assert.Len(t, registry, 4)
}

func Test_Atomize_table(t *testing.T) {
	text := "# T\n\n| A | B |\n|---|---|\n| 1 | 2 |\n\nAfter.\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 5)
	assert.Equal(t, docatom.Table, atoms[2].Type)
	assert.True(t, atoms[2].CanCutBefore)
	assert.Equal(t, 2, atoms[2].StartLine)
	assert.Equal(t, 4, atoms[2].EndLine)
}

func Test_Atomize_emptyInput(t *testing.T) {
	atoms, registry := docatom.Atomize("", docatom.Markdown)
	assert.Empty(t, atoms)
	assert.Empty(t, registry)
}

func Test_Atomize_paragraphFallbackEligibility(t *testing.T) {
	text := "First para.\nstill first.\n\nSecond para.\n"
	atoms, _ := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.Paragraph, atoms[0].Type)
	assert.True(t, atoms[0].CanCutBefore, "first atom in stream is always cuttable")
	assert.Equal(t, docatom.Blank, atoms[1].Type)
	assert.True(t, atoms[2].CanCutBefore, "paragraph following a blank is cuttable")
}

func Test_Atomize_plainModeIgnoresMarkdownSignals(t *testing.T) {
	text := "# Not a heading in plain mode\n\nstill just text\n"
	atoms, registry := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.Paragraph, atoms[0].Type)
	assert.Empty(t, registry)
}

func Test_Atomize_byteCoverageIsExact(t *testing.T) {
	text := "# A\nbody\n\n- one\n- two\n\n> quote\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	prevEnd := 0
	for _, a := range atoms {
		assert.Equal(t, prevEnd, a.StartByte)
		assert.Equal(t, text[a.StartByte:a.EndByte], a.Text)
		prevEnd = a.EndByte
	}
	assert.Equal(t, len(text), prevEnd)
}

func Test_Atomize_allCapsPseudoHeading(t *testing.T) {
	text := "INTRODUCTION\n\nBody text.\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.PseudoHeading, atoms[0].Type)
	require.Len(t, registry, 1)
}

func Test_Atomize_strayLowercaseWordIsNotPseudoHeading(t *testing.T) {
	text := "HELLO WORLD ABOUT b\n\nBody text.\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.Paragraph, atoms[0].Type, "a single lowercase letter disqualifies an all-caps line")
}

func Test_Atomize_mostlyLowercaseLineIsNotPseudoHeading(t *testing.T) {
	text := "Not Really All Caps Here\n\nBody text.\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.Paragraph, atoms[0].Type)
	assert.Equal(t, docatom.Blank, atoms[1].Type)
	assert.Equal(t, docatom.Paragraph, atoms[2].Type)
}

func Test_Atomize_allCapsPseudoHeadingInPlainMode(t *testing.T) {
	text := "INTRODUCTION\n\nBody text.\n"
	atoms, registry := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.PseudoHeading, atoms[0].Type)
	assert.True(t, atoms[0].CanCutBefore)
	require.Len(t, registry, 1)
}

func Test_Atomize_boldPseudoHeadingInPlainMode(t *testing.T) {
	text := "**Section**\n\nBody text here.\n"
	atoms, registry := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 3)
	assert.Equal(t, docatom.PseudoHeading, atoms[0].Type)
	require.Len(t, registry, 1)
}

func Test_Atomize_fencedCodeInPlainMode(t *testing.T) {
	text := "Intro.\n\n```\nsome code\n```\n\nAfter.\n"
	atoms, _ := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 5)
	assert.Equal(t, []docatom.AtomType{
		docatom.Paragraph, docatom.Blank, docatom.CodeFence, docatom.Blank, docatom.Paragraph,
	}, types(atoms))
	assert.Contains(t, atoms[2].Text, "some code")
	assert.True(t, atoms[2].CanCutBefore)
}

func Test_Atomize_listInPlainMode(t *testing.T) {
	text := "Intro.\n\n- one\n- two\n\nAfter.\n"
	atoms, _ := docatom.Atomize(text, docatom.Plain)

	require.Len(t, atoms, 5)
	assert.Equal(t, []docatom.AtomType{
		docatom.Paragraph, docatom.Blank, docatom.List, docatom.Blank, docatom.Paragraph,
	}, types(atoms))
	assert.True(t, atoms[2].CanCutBefore)
}

func Test_Atomize_headingWeightsCountFullText(t *testing.T) {
	text := "# A Heading Here\n\nbody\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Equal(t, docatom.Heading, atoms[0].Type)
	assert.Equal(t, len(atoms[0].Text), atoms[0].WeightChars)
	assert.Equal(t, 4, atoms[0].WeightWords, "# A Heading Here -> 4 whitespace-delimited tokens")
}

func Test_Atomize_pseudoHeadingWeightsCountFullText(t *testing.T) {
	text := "**Section**\n\nbody\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Equal(t, docatom.PseudoHeading, atoms[0].Type)
	assert.Equal(t, len(atoms[0].Text), atoms[0].WeightChars)
	assert.Equal(t, 1, atoms[0].WeightWords, "**Section** is a single whitespace-delimited token")
}

func Test_Atomize_blankAndHRWeights(t *testing.T) {
	text := "para one\n\n---\n\npara two\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 5)
	blank := atoms[1]
	require.Equal(t, docatom.Blank, blank.Type)
	assert.Equal(t, len(blank.Text), blank.WeightChars)
	assert.Equal(t, countWordsHelper(blank.Text), blank.WeightWords)

	hr := atoms[2]
	require.Equal(t, docatom.HR, hr.Type)
	assert.True(t, hr.CanCutBefore)
	assert.Equal(t, len(hr.Text), hr.WeightChars)
	assert.Equal(t, countWordsHelper(hr.Text), hr.WeightWords)
}

func Test_Atomize_boundaryStrengths(t *testing.T) {
	text := "# H\n\n**P**\n\n---\n\n```\nc\n```\n\n| a |\n|---|\n\n- x\n\npar\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	want := map[docatom.AtomType]float64{
		docatom.Heading:       1.0,
		docatom.PseudoHeading: 0.95,
		docatom.HR:            0.9,
		docatom.CodeFence:     0.6,
		docatom.Table:         0.6,
		docatom.List:          0.5,
		docatom.Paragraph:     0.1,
		docatom.Blank:         0.0,
	}
	seen := map[docatom.AtomType]bool{}
	for _, a := range atoms {
		assert.Equal(t, want[a.Type], a.BoundaryStrength, "%v atom %v", a.Type, a.Idx)
		seen[a.Type] = true
	}
	for typ := range want {
		assert.True(t, seen[typ], "input should exercise %v", typ)
	}
}

func Test_Atomize_listContinuationIndent(t *testing.T) {
	text := "- one\n  wrapped continuation\n- two\nnot part of the list\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 2)
	require.Equal(t, docatom.List, atoms[0].Type)
	assert.Equal(t, 0, atoms[0].StartLine)
	assert.Equal(t, 2, atoms[0].EndLine)
	assert.Equal(t, docatom.Paragraph, atoms[1].Type)
}

func Test_Atomize_singleSpaceIsNotListContinuation(t *testing.T) {
	text := "- one\n x\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	require.Len(t, atoms, 2)
	assert.Equal(t, docatom.List, atoms[0].Type)
	assert.Equal(t, docatom.Paragraph, atoms[1].Type)
}

func Test_Atomize_paragraphReatomizesToItself(t *testing.T) {
	text := "# H\n\nfirst paragraph line\nsecond paragraph line\n\n- list\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)

	for _, a := range atoms {
		if a.Type != docatom.Paragraph {
			continue
		}
		again, _ := docatom.Atomize(a.Text, docatom.Markdown)
		require.Len(t, again, 1)
		assert.Equal(t, docatom.Paragraph, again[0].Type)
		assert.Equal(t, a.Text, again[0].Text)
	}
}

func Test_DetectMode_stableUnderReconstruction(t *testing.T) {
	for _, text := range []string{
		"# Title\n\n- one\n- two\n",
		"plain text\nwith no structure\n",
		"**Intro**\n\nHello world.\n",
	} {
		atoms, _ := docatom.Atomize(text, docatom.ModeAuto)
		var rebuilt string
		for _, a := range atoms {
			rebuilt += a.Text
		}
		assert.Equal(t, text, rebuilt)
		assert.Equal(t, docatom.DetectMode(text), docatom.DetectMode(rebuilt))
	}
}

// countWordsHelper independently counts whitespace-delimited tokens for
// assertions, without importing the package's own unexported countWords.
func countWordsHelper(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		switch r {
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
