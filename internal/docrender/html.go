package docrender

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/russross/blackfriday"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/docpart"
)

// mdExtensions is the renderer's extension bitset: GFM-ish
// conveniences without the heavier DefinitionLists/Tables extensions.
const mdExtensions = 0 |
	blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

// RenderSegmentsHTML renders each segment's source text to its own HTML
// file under dir, named "segment-000.html", "segment-001.html", …, written
// atomically via renameio.
func RenderSegmentsHTML(dir string, text string, atoms []docatom.Atom, segments []docpart.Segment) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{})

	byteAt := func(atomIdx int) int {
		if atomIdx >= len(atoms) {
			return len(text)
		}
		return atoms[atomIdx].StartByte
	}

	for i, s := range segments {
		start, end := byteAt(s.StartAtom), byteAt(s.EndAtom)
		src := text[start:end]
		md := blackfriday.New(blackfriday.WithExtensions(mdExtensions))
		doc := md.Parse([]byte(src))

		var buf bytes.Buffer
		doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			return renderer.RenderNode(&buf, n, entering)
		})

		path := filepath.Join(dir, fmt.Sprintf("segment-%03d.html", i))
		if err := writeFileAtomic(path, buf.Bytes()); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return nil
}

func writeFileAtomic(path string, b []byte) (rerr error) {
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		pf.Cleanup()
	}()
	_, err = pf.Write(b)
	return err
}
