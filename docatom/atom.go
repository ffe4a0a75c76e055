// Package docatom implements the mode detector and atomizer: the block
// lexer that turns raw document text into a linear stream of typed atoms
// carrying byte/line spans, word/char weights, and an inferred section
// hierarchy.
package docatom

// AtomType classifies a single Atom.
type AtomType int

// AtomType constants, in the dispatch precedence the atomizer applies them.
const (
	noAtomType AtomType = iota // zero value should never escape the package
	Blank
	HR
	CodeFence
	Heading
	PseudoHeading
	Table
	List
	Paragraph
)

// SectionID identifies a section node (a heading or pseudo-heading). Zero
// means "no enclosing section" — the atom precedes any heading.
type SectionID int

// Atom is the smallest indivisible block unit produced by the atomizer.
type Atom struct {
	Idx int

	Type AtomType

	// StartByte, EndByte is the half-open byte range into the original
	// text. EndByte is the start of the line after the atom's last line,
	// or the end of the text.
	StartByte, EndByte int

	// StartLine, EndLine are 0-based, inclusive.
	StartLine, EndLine int

	// Text is original[StartByte:EndByte], retained directly since Go
	// strings are immutable views into their backing array.
	Text string

	WeightChars int
	WeightWords int

	// Depth is the heading nesting depth in [1..6] for Heading and
	// PseudoHeading atoms, 0 otherwise.
	Depth int

	// SectionPath is the ordered tuple of ancestor section titles under
	// which this atom lies, excluding the root.
	SectionPath []string

	// SectionPathIDs is the ordered tuple of ancestor section node ids.
	// When the atom itself is a heading, its own id is the last element.
	SectionPathIDs []SectionID

	// SectionNodeID is the id of the nearest enclosing section: the
	// atom's own id if it is a heading, zero only for atoms preceding any
	// heading.
	SectionNodeID SectionID

	// CanCutBefore is true if starting a new segment at this atom is a
	// valid structural cut.
	CanCutBefore bool

	// BoundaryStrength is a [0,1] debug-only strength; it does not affect
	// partitioning.
	BoundaryStrength float64

	// Keywords is reserved for future use; may be empty.
	Keywords []string
}

// SectionRegistry maps every assigned section node id to the index of its
// defining heading/pseudo-heading atom.
type SectionRegistry map[SectionID]int

// Empty reports whether the atom spans zero bytes.
func (a Atom) Empty() bool { return a.EndByte == a.StartByte }
