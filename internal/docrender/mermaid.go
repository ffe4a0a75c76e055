package docrender

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jcorbin/docsplit/docatom"
)

// MermaidOptions controls RenderMermaid's output.
type MermaidOptions struct {
	Direction             string // TD, LR, RL, BT
	IncludePseudoHeadings bool
	IncludeSectionStats   bool
	MaxLabelLen           int
}

// DefaultMermaidOptions is the diagram default: top-down flow, pseudo
// headings included, labels longer than 80 bytes cut to their first 79
// bytes plus "…".
func DefaultMermaidOptions() MermaidOptions {
	return MermaidOptions{Direction: "TD", IncludePseudoHeadings: true, MaxLabelLen: 80}
}

var mermaidPalette = [][3]string{
	{"#E3F2FD", "#1E88E5", "#0D47A1"},
	{"#E8F5E9", "#43A047", "#1B5E20"},
	{"#FFF3E0", "#FB8C00", "#E65100"},
	{"#F3E5F5", "#8E24AA", "#4A148C"},
	{"#FFFDE7", "#FBC02D", "#F57F17"},
}

// RenderMermaid renders a Mermaid flowchart of the section hierarchy
// implied by atoms' SectionPathIDs and registry (section id -> defining
// atom index). If cuts is non-nil, it gives the sorted StartAtom index of
// every segment after the first, and sections are colored by the segment
// that contains their defining atom.
func RenderMermaid(atoms []docatom.Atom, registry docatom.SectionRegistry, opts MermaidOptions, cuts []int) string {
	if opts.Direction == "" {
		opts = DefaultMermaidOptions()
	}

	type node struct {
		id        docatom.SectionID
		label     string
		parent    docatom.SectionID
		hasParent bool
	}
	nodes := map[docatom.SectionID]node{}
	var order []docatom.SectionID

	for id, atomIdx := range registry {
		if atomIdx < 0 || atomIdx >= len(atoms) {
			continue
		}
		a := atoms[atomIdx]
		if a.Type == docatom.PseudoHeading && !opts.IncludePseudoHeadings {
			continue
		}
		if a.Type != docatom.Heading && a.Type != docatom.PseudoHeading {
			continue
		}
		label := fmt.Sprintf("section_%v", id)
		if len(a.SectionPath) > 0 {
			label = a.SectionPath[len(a.SectionPath)-1]
		}
		if opts.IncludeSectionStats {
			label = fmt.Sprintf("%s (atom %d, words=%d)", label, atomIdx, a.WeightWords)
		}
		if len(label) > opts.MaxLabelLen && opts.MaxLabelLen > 0 {
			label = label[:opts.MaxLabelLen-1] + "…"
		}
		n := node{id: id, label: escapeMermaidLabel(label)}
		if len(a.SectionPathIDs) >= 2 {
			n.parent = a.SectionPathIDs[len(a.SectionPathIDs)-2]
			n.hasParent = true
		}
		nodes[id] = n
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	var out strings.Builder
	out.WriteString("```mermaid\n")
	fmt.Fprintf(&out, "flowchart %s\n", opts.Direction)
	for _, id := range order {
		n := nodes[id]
		fmt.Fprintf(&out, "    S%d[\"%s\"]\n", id, n.label)
	}
	for _, id := range order {
		n := nodes[id]
		if n.hasParent {
			if _, ok := nodes[n.parent]; ok {
				fmt.Fprintf(&out, "    S%d --> S%d\n", n.parent, id)
			}
		}
	}
	if cuts != nil {
		segOf := func(atomIdx int) int {
			i := sort.SearchInts(cuts, atomIdx+1)
			return i
		}
		for _, id := range order {
			atomIdx := registry[id]
			seg := segOf(atomIdx)
			colors := mermaidPalette[seg%len(mermaidPalette)]
			fmt.Fprintf(&out, "    style S%d fill:%s,stroke:%s,color:%s\n", id, colors[0], colors[1], colors[2])
		}
	}
	out.WriteString("```\n")
	return out.String()
}

func escapeMermaidLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
