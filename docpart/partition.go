package docpart

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jcorbin/docsplit/docatom"
)

// ErrInfeasible is returned by PartitionInto when n segments cannot be
// formed from the given candidates: fewer usable candidates than the n-1
// cuts required.
var ErrInfeasible = errors.New("docpart: infeasible partition")

// ErrInvalidN is returned by PartitionInto when n < 1; that is a caller
// error, not a property of the document, so it is kept distinct from
// ErrInfeasible (which the CLI's relaxation protocol retries on).
var ErrInvalidN = errors.New("docpart: segment count must be at least 1")

// Weights tunes the DP's cut-cost function: a per-tier penalty table plus a
// flat penalty applied to every non-heading cut regardless of tier.
// Heading cuts are tier 0: they cost TierPenalties[0] (0 by default) and are
// excluded from NonHeadingCuts and NonHeadingPenalty.
type Weights struct {
	// TierPenalties maps cutTier(atom) (0..3) to its penalty. Tier 0 is
	// heading, 1 pseudo-heading, 2 hr, 3 everything else (list, table,
	// code, paragraph, or any other non-heading type).
	TierPenalties [4]float64
	// NonHeadingPenalty is added once per non-heading cut, on top of its
	// tier penalty.
	NonHeadingPenalty float64
}

// DefaultWeights is the cost model's stated default: tier penalties
// {0: 0.0, 1: 0.2, 2: 0.5, 3: 1.0} for {heading, pseudo_heading, hr, other},
// plus a non_heading_penalty of 1.0 applied to every interior cut that isn't
// a heading. List/table/code share tier 3 with paragraph, so none of them
// is preferred over another on tier alone; the lexicographic objective's
// first component (fewest non-heading cuts) and second (max segment words)
// dominate tier in practice.
func DefaultWeights() Weights {
	return Weights{
		TierPenalties:     [4]float64{0: 0.0, 1: 0.2, 2: 0.5, 3: 1.0},
		NonHeadingPenalty: 1.0,
	}
}

// cutTier classifies an atom's type into the 0..3 tier the cost model
// penalizes by: heading → 0, pseudo-heading → 1, hr → 2, anything else → 3.
func cutTier(t docatom.AtomType) int {
	switch t {
	case docatom.Heading:
		return 0
	case docatom.PseudoHeading:
		return 1
	case docatom.HR:
		return 2
	default:
		return 3
	}
}

// cutCost returns the non-heading count and tier penalty for a candidate
// of type t: the count is 0 iff t is Heading, and the penalty is the tier
// penalty alone (NonHeadingPenalty is folded in separately by the caller,
// since it applies to the objective's third component, not the first).
func (w Weights) cutCost(t docatom.AtomType) (nonHeading int, penalty float64) {
	tier := cutTier(t)
	if tier == 0 {
		return 0, w.TierPenalties[0]
	}
	return 1, w.TierPenalties[tier]
}

// Objective is the lexicographic triple PartitionInto minimizes: fewest
// non-heading cuts first, then the smallest worst-case segment size, then
// the smallest total penalty.
type Objective struct {
	NonHeadingCuts  int
	MaxSegmentWords int
	PenaltySum      float64
}

// Less reports whether o sorts before other in the lexicographic order
// PartitionInto optimizes.
func (o Objective) Less(other Objective) bool {
	if o.NonHeadingCuts != other.NonHeadingCuts {
		return o.NonHeadingCuts < other.NonHeadingCuts
	}
	if o.MaxSegmentWords != other.MaxSegmentWords {
		return o.MaxSegmentWords < other.MaxSegmentWords
	}
	return o.PenaltySum < other.PenaltySum
}

// Segment is one contiguous run of atoms, [StartAtom, EndAtom).
type Segment struct {
	SegIdx             int
	StartAtom, EndAtom int
	WeightWords        int

	// CutType is the type of the atom at StartAtom. For the first segment
	// it records the type but does not count as a cut.
	CutType docatom.AtomType

	// StartPathIDs and StartPathTitles snapshot the section path of the
	// atom at StartAtom; both are nil for an empty segment.
	StartPathIDs    []docatom.SectionID
	StartPathTitles []string
}

// PartitionResult is the outcome of PartitionInto: the n-1 chosen cut atom
// indices in increasing order, the n segments they delimit, and the
// achieved objective.
type PartitionResult struct {
	Cuts      []int
	Segments  []Segment
	Objective Objective
}

// PartitionInto selects n-1 cut points from candidates (plus the implicit
// document start and end) that split atoms into n segments minimizing
// Objective, via the same dynamic program as the rest of this package's
// lexicographic scheme. Ties are broken deterministically toward the
// earliest (smallest index) candidate.
//
// It returns ErrInvalidN if n < 1, and ErrInfeasible if fewer than n-1
// usable candidates exist. Candidates are deduplicated, sorted, and
// clipped to the open range (0, len(atoms)) before use.
func PartitionInto(atoms []docatom.Atom, candidates []Candidate, n int, weights Weights) (PartitionResult, error) {
	if n < 1 {
		return PartitionResult{}, fmt.Errorf("%w, got %v", ErrInvalidN, n)
	}
	if len(atoms) == 0 {
		if n == 1 {
			return PartitionResult{Segments: []Segment{{}}}, nil
		}
		return PartitionResult{}, fmt.Errorf("%w: no atoms to partition", ErrInfeasible)
	}

	candidates = normalizeCandidates(candidates, len(atoms))

	pos := make([]int, 0, len(candidates)+2)
	typeAt := make([]docatom.AtomType, 0, len(candidates)+2)
	pos = append(pos, 0)
	typeAt = append(typeAt, atoms[0].Type)
	for _, c := range candidates {
		pos = append(pos, c.AtomIdx)
		typeAt = append(typeAt, c.Type)
	}
	pos = append(pos, len(atoms))
	typeAt = append(typeAt, docatom.AtomType(0))
	m := len(pos) - 1

	if n-1 > m-1 {
		return PartitionResult{}, fmt.Errorf("%w: need %v cuts, only %v candidates available", ErrInfeasible, n-1, m-1)
	}

	prefixWords := make([]int, len(atoms)+1)
	for i, a := range atoms {
		prefixWords[i+1] = prefixWords[i] + a.WeightWords
	}
	segWords := func(fromAtom, toAtom int) int { return prefixWords[toAtom] - prefixWords[fromAtom] }

	const noParent = -1
	type cell struct {
		obj      Objective
		feasible bool
	}
	dp := make([][]cell, n+1)
	parent := make([][]int, n+1)
	for k := range dp {
		dp[k] = make([]cell, m+1)
		parent[k] = make([]int, m+1)
		for j := range parent[k] {
			parent[k][j] = noParent
		}
	}
	dp[0][0] = cell{feasible: true}

	for k := 1; k <= n; k++ {
		for j := k; j <= m; j++ {
			var best cell
			bestI := noParent
			for i := k - 1; i < j; i++ {
				if !dp[k-1][i].feasible {
					continue
				}
				words := segWords(pos[i], pos[j])
				var nonHeading int
				var tierPenalty float64
				if i > 0 {
					nonHeading, tierPenalty = weights.cutCost(typeAt[i])
				}
				cutPenalty := tierPenalty + weights.NonHeadingPenalty*float64(nonHeading)
				cand := Objective{
					NonHeadingCuts:  dp[k-1][i].obj.NonHeadingCuts + nonHeading,
					MaxSegmentWords: maxInt(dp[k-1][i].obj.MaxSegmentWords, words),
					PenaltySum:      dp[k-1][i].obj.PenaltySum + cutPenalty,
				}
				if !best.feasible || cand.Less(best.obj) {
					best = cell{obj: cand, feasible: true}
					bestI = i
				}
			}
			dp[k][j] = best
			parent[k][j] = bestI
		}
	}

	if !dp[n][m].feasible {
		return PartitionResult{}, fmt.Errorf("%w: no valid combination of %v cuts balances the document", ErrInfeasible, n-1)
	}

	boundaries := make([]int, n+1)
	j := m
	for k := n; k >= 0; k-- {
		boundaries[k] = pos[j]
		if k == 0 {
			break
		}
		j = parent[k][j]
		if j == noParent {
			panic(docatom.Invariantf("docpart: invariant violated: no parent boundary for segment %v of %v", k, n))
		}
	}
	if boundaries[0] != 0 {
		panic(docatom.Invariantf("docpart: invariant violated: reconstruction ended at atom %v, not 0", boundaries[0]))
	}

	cuts := make([]int, 0, n-1)
	segments := make([]Segment, n)
	for i := 0; i < n; i++ {
		start, end := boundaries[i], boundaries[i+1]
		segments[i] = Segment{
			SegIdx:          i,
			StartAtom:       start,
			EndAtom:         end,
			WeightWords:     segWords(start, end),
			CutType:         atoms[start].Type,
			StartPathIDs:    atoms[start].SectionPathIDs,
			StartPathTitles: atoms[start].SectionPath,
		}
		if i > 0 {
			cuts = append(cuts, start)
		}
	}

	return PartitionResult{Cuts: cuts, Segments: segments, Objective: dp[n][m].obj}, nil
}

// normalizeCandidates sorts candidates by atom index, drops duplicates, and
// clips any index outside the open interior range (0, numAtoms).
func normalizeCandidates(candidates []Candidate, numAtoms int) []Candidate {
	cands := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.AtomIdx > 0 && c.AtomIdx < numAtoms {
			cands = append(cands, c)
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].AtomIdx < cands[j].AtomIdx })
	out := cands[:0]
	for i, c := range cands {
		if i == 0 || c.AtomIdx != cands[i-1].AtomIdx {
			out = append(out, c)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
