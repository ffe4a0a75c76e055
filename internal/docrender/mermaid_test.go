package docrender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/internal/docrender"
)

func Test_RenderMermaid_nestedHeadings(t *testing.T) {
	text := "# A\n\n## B\n\npar\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	out := docrender.RenderMermaid(atoms, registry, docrender.DefaultMermaidOptions(), nil)
	assert.Contains(t, out, "```mermaid")
	assert.Contains(t, out, "flowchart TD")
	assert.Contains(t, out, `S1["A"]`)
	assert.Contains(t, out, `S2["B"]`)
	assert.Contains(t, out, "S1 --> S2")
}

func Test_RenderMermaid_excludesPseudoHeadingsWhenDisabled(t *testing.T) {
	text := "**Intro**\n\npar\n"
	atoms, registry := docatom.Atomize(text, docatom.Markdown)

	opts := docrender.DefaultMermaidOptions()
	opts.IncludePseudoHeadings = false
	out := docrender.RenderMermaid(atoms, registry, opts, nil)
	assert.NotContains(t, out, "Intro")
}
