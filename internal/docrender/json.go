package docrender

import (
	"encoding/json"

	"github.com/google/renameio"

	"github.com/jcorbin/docsplit/docpart"
)

// jsonSegment is one entry of the "segments" array in the --split-json-out
// payload.
type jsonSegment struct {
	SegIdx         int      `json:"seg_idx"`
	StartAtom      int      `json:"start_atom"`
	EndAtomExcl    int      `json:"end_atom_excl"`
	Words          int      `json:"words"`
	StartPathIDs   []int    `json:"start_path_ids"`
	StartPathTitle []string `json:"start_path_titles"`
}

// jsonPayload is the --split-json-out document: N, objective (as a
// 3-element list), cuts (atom indices), and segments.
type jsonPayload struct {
	N         int           `json:"N"`
	Objective [3]float64    `json:"objective"`
	Cuts      []int         `json:"cuts"`
	Segments  []jsonSegment `json:"segments"`
}

// BuildPayload assembles the JSON-serializable view of an atomize+partition
// run: N is len(result.Segments), cuts is the partition's chosen cut atom
// indices, and each segment carries the section path snapshot of its start
// atom.
func BuildPayload(result docpart.PartitionResult) interface{} {
	cuts := result.Cuts
	if cuts == nil {
		cuts = []int{}
	}
	payload := jsonPayload{
		N: len(result.Segments),
		Objective: [3]float64{
			float64(result.Objective.NonHeadingCuts),
			float64(result.Objective.MaxSegmentWords),
			result.Objective.PenaltySum,
		},
		Cuts:     cuts,
		Segments: make([]jsonSegment, len(result.Segments)),
	}
	for i, s := range result.Segments {
		pathIDs := make([]int, len(s.StartPathIDs))
		for j, id := range s.StartPathIDs {
			pathIDs[j] = int(id)
		}
		payload.Segments[i] = jsonSegment{
			SegIdx:         s.SegIdx,
			StartAtom:      s.StartAtom,
			EndAtomExcl:    s.EndAtom,
			Words:          s.WeightWords,
			StartPathIDs:   pathIDs,
			StartPathTitle: s.StartPathTitles,
		}
	}
	return payload
}

// WriteJSON atomically writes the JSON encoding of a partition run to path,
// via renameio so a crash mid-write never leaves a truncated file in place.
func WriteJSON(path string, result docpart.PartitionResult) (rerr error) {
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

	enc := json.NewEncoder(pf)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildPayload(result))
}
