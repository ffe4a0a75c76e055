package docatom

import (
	"fmt"
	"io"
)

// Format writes a type string representing the receiver code.
func (t AtomType) Format(f fmt.State, _ rune) {
	switch t {
	case noAtomType:
		io.WriteString(f, "None")
	case Blank:
		io.WriteString(f, "Blank")
	case HR:
		io.WriteString(f, "HR")
	case CodeFence:
		io.WriteString(f, "CodeFence")
	case Heading:
		io.WriteString(f, "Heading")
	case PseudoHeading:
		io.WriteString(f, "PseudoHeading")
	case Table:
		io.WriteString(f, "Table")
	case List:
		io.WriteString(f, "List")
	case Paragraph:
		io.WriteString(f, "Paragraph")
	default:
		fmt.Fprintf(f, "InvalidAtomType%v", int(t))
	}
}

// String returns the mode's name, for diagnostics.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "Auto"
	case Plain:
		return "Plain"
	case Markdown:
		return "Markdown"
	default:
		return fmt.Sprintf("InvalidMode%v", int(m))
	}
}

// Format writes a textual representation of the receiver, providing
// improved fmt.Printf display. Produces a verbose "Type[a:b] attr=value"
// form when formatted with "%+v", a terse "Type[a:b]" form otherwise.
func (a Atom) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "%v[%v:%v]", a.Type, a.StartByte, a.EndByte)
	if !f.Flag('+') {
		return
	}
	switch a.Type {
	case Heading, PseudoHeading:
		fmt.Fprintf(f, " depth=%v section=%v", a.Depth, a.SectionNodeID)
	}
	fmt.Fprintf(f, " words=%v cut=%v", a.WeightWords, a.CanCutBefore)
	if len(a.SectionPath) > 0 {
		fmt.Fprintf(f, " path=%v", a.SectionPath)
	}
}
