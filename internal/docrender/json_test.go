package docrender_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/docsplit/docatom"
	"github.com/jcorbin/docsplit/docpart"
	"github.com/jcorbin/docsplit/internal/docrender"
)

// Test_BuildPayload_schema asserts on the wire field names (N, objective,
// cuts, segments with seg_idx/start_atom/end_atom_excl/words/
// start_path_ids/start_path_titles), not the Go struct's field names.
func Test_BuildPayload_schema(t *testing.T) {
	text := "# A\n\npar1\n\n# B\n\npar2\n"
	atoms, _ := docatom.Atomize(text, docatom.Markdown)
	cands := docpart.BuildCutCandidates(atoms, docpart.DefaultPolicy())
	result, err := docpart.PartitionInto(atoms, cands, 2, docpart.DefaultWeights())
	require.NoError(t, err)

	b, err := json.Marshal(docrender.BuildPayload(result))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	assert.EqualValues(t, 2, m["N"])
	obj, ok := m["objective"].([]interface{})
	require.True(t, ok)
	assert.Len(t, obj, 3)

	cuts, ok := m["cuts"].([]interface{})
	require.True(t, ok)
	require.Len(t, cuts, 1)
	assert.EqualValues(t, result.Segments[1].StartAtom, cuts[0])

	segs, ok := m["segments"].([]interface{})
	require.True(t, ok)
	require.Len(t, segs, 2)

	seg0, ok := segs[0].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 0, seg0["seg_idx"])
	assert.EqualValues(t, 0, seg0["start_atom"])
	assert.EqualValues(t, result.Segments[0].EndAtom, seg0["end_atom_excl"])
	assert.EqualValues(t, result.Segments[0].WeightWords, seg0["words"])
	assert.Contains(t, seg0, "start_path_ids")
	assert.Contains(t, seg0, "start_path_titles")
	assert.Equal(t, []interface{}{"A"}, seg0["start_path_titles"])
}
