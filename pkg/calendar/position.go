package calendar

import (
	"fmt"
	"iter"
)

// Neighbor is an element of the scanned sequence together with its index.
type Neighbor[E Event] struct {
	Index int
	Event E
}

// Position describes how a candidate span relates to its neighbors in an
// ascending, non-overlapping sequence.
//
//	|  A   |%|   B   |%%%%%%%|   C   |%|   D  |%%%%%%%%%|  E  |
//	               |<--- x --->|
//	                 |<-------- y -------->|
//	                                            |<- z ->|
//
// For y: OverlapsEndOf=B, OverlapsCompletely=[C], OverlapsStartOf=D.
// At most one head relation (StartsAdjacentTo, OverlapsEndOf) and at most one
// tail relation (EndsAdjacentTo, OverlapsStartOf) is set. Enclosing excludes
// every other field.
type Position[E Event] struct {
	// StartsAdjacentTo ends exactly where the candidate starts
	StartsAdjacentTo *Neighbor[E]
	// EndsAdjacentTo starts exactly where the candidate ends
	EndsAdjacentTo *Neighbor[E]
	// OverlapsStartOf has its start covered by the candidate's tail
	OverlapsStartOf *Neighbor[E]
	// OverlapsEndOf has its end covered by the candidate's head
	OverlapsEndOf *Neighbor[E]
	// OverlapsCompletely lists neighbors contained in the candidate, in sequence order
	OverlapsCompletely []Neighbor[E]
	// Enclosing contains the candidate and differs from it
	Enclosing *Neighbor[E]
}

// ExtendEnd returns the preceding neighbor that absorbs the candidate's head
func (p Position[E]) ExtendEnd() *Neighbor[E] {
	if p.StartsAdjacentTo != nil {
		return p.StartsAdjacentTo
	}
	return p.OverlapsEndOf
}

// PrependStart returns the following neighbor that absorbs the candidate's tail
func (p Position[E]) PrependStart() *Neighbor[E] {
	if p.EndsAdjacentTo != nil {
		return p.EndsAdjacentTo
	}
	return p.OverlapsStartOf
}

// Disjoint reports whether the candidate touches no neighbor at all
func (p Position[E]) Disjoint() bool {
	return p.ExtendEnd() == nil && p.PrependStart() == nil &&
		len(p.OverlapsCompletely) == 0 && p.Enclosing == nil
}

// ResolvePosition scans an ascending, non-overlapping sequence once and
// classifies how candidate relates to its neighbors. The scan stops as soon
// as the classification is complete; later elements are never pulled.
func ResolvePosition[E Event](seq iter.Seq[E], candidate Event) (Position[E], error) {
	var pos Position[E]
	if seq == nil {
		return pos, ErrNilSequence
	}
	if isNil(candidate) {
		return pos, ErrNilCandidate
	}
	c := candidate.Span()
	if !c.Valid() {
		return pos, fmt.Errorf("%w: candidate %s", ErrNonPositiveDuration, c)
	}

	next, stop := iter.Pull(seq)
	defer stop()

	index := -1
	advance := func() (Neighbor[E], bool, error) {
		e, ok := next()
		if !ok {
			return Neighbor[E]{}, false, nil
		}
		index++
		if isNil(e) {
			return Neighbor[E]{}, false, fmt.Errorf("%w: index %d", ErrNilEvent, index)
		}
		return Neighbor[E]{Index: index, Event: e}, true, nil
	}

	// skip everything that ends before the candidate starts (A)
	n, ok, err := advance()
	for ok && n.Event.Span().WayBefore(c) {
		n, ok, err = advance()
	}
	if err != nil || !ok {
		return pos, err
	}

	head := n.Event.Span()
	switch {
	case c.StartsAdjacentTo(head):
		pos.StartsAdjacentTo = ref(n)
		n, ok, err = advance()
	case head.EndOverlappedBy(c):
		pos.OverlapsEndOf = ref(n)
		n, ok, err = advance()
	case head.Encloses(c):
		pos.Enclosing = ref(n)
		return pos, nil
	}
	if err != nil || !ok {
		return pos, err
	}

	// contained neighbors (C in y)
	for n.Event.Span().CompletelyOverlappedBy(c) {
		pos.OverlapsCompletely = append(pos.OverlapsCompletely, n)
		n, ok, err = advance()
		if err != nil || !ok {
			return pos, err
		}
	}

	tail := n.Event.Span()
	switch {
	case c.EndsAdjacentTo(tail):
		pos.EndsAdjacentTo = ref(n)
	case c.EndOverlappedBy(tail):
		pos.OverlapsStartOf = ref(n)
	}
	// anything further is disjoint from the candidate
	return pos, nil
}

// ref copies n so that the scan variable can be reused
func ref[E Event](n Neighbor[E]) *Neighbor[E] {
	return &n
}
