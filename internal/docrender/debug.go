// Package docrender holds the CLI's output adapters: the atom/segment
// debug table, the JSON payload writer, the Mermaid section-hierarchy
// renderer, and the per-segment Markdown-to-HTML renderer.
package docrender

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/docpart"
	"github.com/jcorbin/docsplit/internal/docio"
)

// previewSet collapses every atom's text to its first maxWords
// whitespace-delimited words, joined by single spaces, holding one token
// per atom in a shared docio.PreviewArena so the debug table for a large
// document does not allocate one string per atom.
type previewSet struct {
	arena docio.PreviewArena
}

// wordLimitScanner wraps a bufio.Scanner split on words, exposing only its
// first limit tokens as docio.Scanner while remembering whether more
// tokens existed beyond the limit.
type wordLimitScanner struct {
	sc       *bufio.Scanner
	limit    int
	n        int
	overflow bool
}

func (w *wordLimitScanner) Scan() bool {
	if w.n >= w.limit {
		w.overflow = w.sc.Scan()
		return false
	}
	if !w.sc.Scan() {
		return false
	}
	w.n++
	return true
}

func (w *wordLimitScanner) Bytes() []byte { return w.sc.Bytes() }

// build appends one preview token for text to the set, pushing an
// overflow marker onto the token's bytes if text has more than maxWords
// words.
func (p *previewSet) build(text string, maxWords int) {
	w := &wordLimitScanner{sc: bufio.NewScanner(strings.NewReader(text)), limit: maxWords}
	w.sc.Split(bufio.ScanWords)
	docio.CopyScannerWith(&p.arena, w, []byte(" "))
	if w.overflow {
		p.arena.WriteString(" …")
	}
	p.arena.Push()
}

// WriteAtomTable writes one line per atom: index, type, byte span, section
// node id, cut eligibility, and a word-truncated text preview.
func WriteAtomTable(w io.Writer, atoms []docatom.Atom, maxPreviewWords int) error {
	var p previewSet
	for _, a := range atoms {
		p.build(a.Text, maxPreviewWords)
	}
	for _, a := range atoms {
		cut := "."
		if a.CanCutBefore {
			cut = "*"
		}
		_, err := fmt.Fprintf(w, "%3d %c %-14v [%6d:%6d] sec=%-4d words=%-4d %s\n",
			a.Idx, cut[0], a.Type, a.StartByte, a.EndByte, a.SectionNodeID, a.WeightWords,
			p.arena.Text(a.Idx))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSegmentTable writes one line per segment: index, atom range, word
// weight, and the cut type that opened it.
func WriteSegmentTable(w io.Writer, result docpart.PartitionResult) error {
	for i, s := range result.Segments {
		if _, err := fmt.Fprintf(w, "%3d atoms[%d:%d) words=%d cut=%v\n", i, s.StartAtom, s.EndAtom, s.WeightWords, s.CutType); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "objective: %+v\n", result.Objective)
	return err
}
