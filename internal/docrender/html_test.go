package docrender_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/docpart"
	"github.com/jcorbin/docsplit/internal/docrender"
)

func Test_RenderSegmentsHTML_oneFilePerSegment(t *testing.T) {
	dir, err := ioutil.TempDir("", "docrender-html-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	text := "# A\n\nfirst paragraph\n\n# B\n\nsecond **bold** paragraph\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)
	cands := docpart.BuildCutCandidates(atoms, docpart.DefaultPolicy())
	result, err := docpart.PartitionInto(atoms, cands, 2, docpart.DefaultWeights())
	require.NoError(t, err)

	require.NoError(t, docrender.RenderSegmentsHTML(dir, text, atoms, result.Segments))

	seg0, err := ioutil.ReadFile(filepath.Join(dir, "segment-000.html"))
	require.NoError(t, err)
	assert.Contains(t, string(seg0), "<h1")
	assert.Contains(t, string(seg0), "first paragraph")
	assert.NotContains(t, string(seg0), "second")

	seg1, err := ioutil.ReadFile(filepath.Join(dir, "segment-001.html"))
	require.NoError(t, err)
	assert.Contains(t, string(seg1), ">B</h1>")
	assert.Contains(t, string(seg1), "<strong>bold</strong>")
}

func Test_RenderSegmentsHTML_createsOutputDir(t *testing.T) {
	base, err := ioutil.TempDir("", "docrender-html-test")
	require.NoError(t, err)
	defer os.RemoveAll(base)
	dir := filepath.Join(base, "nested", "out")

	text := "# A\n\npar\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)
	result, err := docpart.PartitionInto(atoms, nil, 1, docpart.DefaultWeights())
	require.NoError(t, err)

	require.NoError(t, docrender.RenderSegmentsHTML(dir, text, atoms, result.Segments))

	names, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "segment-000.html", names[0].Name())
}
