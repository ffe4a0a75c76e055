// Package docpart selects cut candidates from an atom stream and runs the
// lexicographic dynamic-program that balances them into N segments.
package docpart

import "github.com/jcorbin/docsplit/docatom"

// Policy controls which structurally-cuttable atom types the candidate
// builder admits as actual cut points. Heading atoms are always admitted;
// every other cuttable type is gated by one of these flags.
type Policy struct {
	AllowPseudoHeading     bool
	AllowHR                bool
	AllowListTableCode     bool
	AllowParagraphFallback bool
}

// DefaultPolicy is the strict policy used without any --split-relax or
// --split-no-* flags: headings, pseudo-headings, and thematic breaks.
// List/table/code and paragraph cuts are left to the --split-relax stages,
// which unlock them progressively.
func DefaultPolicy() Policy {
	return Policy{AllowPseudoHeading: true, AllowHR: true}
}

// Candidate is one admissible cut point: a new segment may start at the
// atom with index AtomIdx.
type Candidate struct {
	AtomIdx int
	Type    docatom.AtomType
}

// BuildCutCandidates walks atoms in order and returns every index at which
// policy admits a structural cut. Atom 0 is never included here: it is
// always the start of the first segment regardless of its type or policy,
// handled directly by PartitionInto.
func BuildCutCandidates(atoms []docatom.Atom, policy Policy) []Candidate {
	var cands []Candidate
	for i, a := range atoms {
		if i == 0 || !a.CanCutBefore {
			continue
		}
		switch a.Type {
		case docatom.Heading:
			cands = append(cands, Candidate{AtomIdx: i, Type: a.Type})
		case docatom.PseudoHeading:
			if policy.AllowPseudoHeading {
				cands = append(cands, Candidate{AtomIdx: i, Type: a.Type})
			}
		case docatom.HR:
			if policy.AllowHR {
				cands = append(cands, Candidate{AtomIdx: i, Type: a.Type})
			}
		case docatom.List, docatom.Table, docatom.CodeFence:
			if policy.AllowListTableCode {
				cands = append(cands, Candidate{AtomIdx: i, Type: a.Type})
			}
		case docatom.Paragraph:
			if policy.AllowParagraphFallback {
				cands = append(cands, Candidate{AtomIdx: i, Type: a.Type})
			}
		}
	}
	return cands
}
