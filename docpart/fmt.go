package docpart

import "fmt"

// Format writes a textual representation of the receiver, providing
// improved fmt.Printf display. Produces a "[a:b) words=w cut=T" form when
// formatted with "%+v", a terse "[a:b)" form otherwise.
func (s Segment) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "[%v:%v)", s.StartAtom, s.EndAtom)
	if f.Flag('+') {
		fmt.Fprintf(f, " words=%v cut=%v", s.WeightWords, s.CutType)
	}
}

// Format writes the receiver as its three components in the order they're
// compared: non-heading cuts, worst segment size, penalty sum.
func (o Objective) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "cuts=%v max=%v penalty=%v", o.NonHeadingCuts, o.MaxSegmentWords, o.PenaltySum)
}

// Format writes the objective followed by every segment, one per line
// prefixed with its index, when "%+v"; otherwise it writes only the segment
// count and the objective.
func (r PartitionResult) Format(f fmt.State, c rune) {
	if f.Flag('+') {
		fmt.Fprintf(f, "%+v\n", r.Objective)
		for i, s := range r.Segments {
			fmt.Fprintf(f, "%v. %+v\n", i, s)
		}
		return
	}
	fmt.Fprintf(f, "%v segments %v", len(r.Segments), r.Objective)
}
