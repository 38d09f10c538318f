package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Verb tells the caller how to change its store
type Verb int

const (
	// Insert creates a new record shaped like Target covering Span
	Insert Verb = iota
	// Update persists Span as the new start and duration of Target
	Update
	// Delete removes Target
	Delete
)

func (v Verb) String() string {
	switch v {
	case Insert:
		return "insert"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("verb(%d)", int(v))
	}
}

// Command is a value description of one storage change. Planners never
// mutate the events they are given; Span carries the values to persist.
//
//   - Insert: Target is the added candidate, or the enclosing event a split
//     remainder inherits its scope from. Span is the span of the new record.
//   - Update: Target is an existing event, Span its new start and duration.
//   - Delete: Target is an existing event, Span its current span.
type Command[E Event] struct {
	Verb   Verb
	Target E
	Span   Span
}

func (c Command[E]) String() string {
	return fmt.Sprintf("%s %s", c.Verb, c.Span)
}

// PlanAdd returns the ordered commands that add candidate to the sequence,
// merging it with adjacent or overlapping neighbors so that the sequence
// stays ascending and non-overlapping. Deletes of contained neighbors come
// first.
//
// PlanAdd panics with an error wrapping ErrInconsistent if the sequence was
// not valid to begin with and a merge would produce a non-positive duration.
func PlanAdd[E Event](seq iter.Seq[E], candidate E) ([]Command[E], error) {
	pos, err := ResolvePosition(seq, candidate)
	if err != nil {
		return nil, err
	}
	// already covered by one neighbor
	if pos.Enclosing != nil {
		return []Command[E]{}, nil
	}

	c := candidate.Span()
	cmds := make([]Command[E], 0, len(pos.OverlapsCompletely)+2)
	for _, n := range pos.OverlapsCompletely {
		cmds = append(cmds, deleteOf(n))
	}

	extendEnd, prependStart := pos.ExtendEnd(), pos.PrependStart()
	switch {
	case extendEnd != nil && prependStart != nil:
		// the candidate bridges two neighbors (B, C)
		merged := mustSpan("bridge merge", extendEnd.Event.Span().Start, prependStart.Event.Span().End())
		cmds = append(cmds,
			deleteOf(*prependStart),
			Command[E]{Verb: Update, Target: extendEnd.Event, Span: merged},
		)
	case extendEnd != nil:
		extended := mustSpan("extend end", extendEnd.Event.Span().Start, c.End())
		cmds = append(cmds, Command[E]{Verb: Update, Target: extendEnd.Event, Span: extended})
	case prependStart != nil:
		prepended := mustSpan("prepend start", c.Start, prependStart.Event.Span().End())
		cmds = append(cmds, Command[E]{Verb: Update, Target: prependStart.Event, Span: prepended})
	default:
		cmds = append(cmds, Command[E]{Verb: Insert, Target: candidate, Span: c})
	}
	return cmds, nil
}

// PlanRemove returns the ordered commands that vacate the span of candidate.
// The candidate need not match an existing event: contained neighbors are
// deleted, partially covered ones are clipped and an enclosing one is
// trimmed or split in two.
func PlanRemove[E Event](seq iter.Seq[E], candidate Event) ([]Command[E], error) {
	pos, err := ResolvePosition(seq, candidate)
	if err != nil {
		return nil, err
	}
	c := candidate.Span()
	if pos.Enclosing != nil {
		return vacateEnclosing(*pos.Enclosing, c), nil
	}

	cmds := make([]Command[E], 0, len(pos.OverlapsCompletely)+2)
	for _, n := range pos.OverlapsCompletely {
		cmds = append(cmds, deleteOf(n))
	}
	if n := pos.OverlapsEndOf; n != nil {
		clipped := mustSpan("clip end", n.Event.Span().Start, c.Start)
		cmds = append(cmds, Command[E]{Verb: Update, Target: n.Event, Span: clipped})
	}
	if n := pos.OverlapsStartOf; n != nil {
		clipped := mustSpan("clip start", c.End(), n.Event.Span().End())
		cmds = append(cmds, Command[E]{Verb: Update, Target: n.Event, Span: clipped})
	}
	return cmds, nil
}

// vacateEnclosing cuts c out of the single neighbor containing it
func vacateEnclosing[E Event](n Neighbor[E], c Span) []Command[E] {
	s := n.Event.Span()
	switch {
	case s.Start.Equal(c.Start):
		return []Command[E]{
			{Verb: Update, Target: n.Event, Span: mustSpan("clip start", c.End(), s.End())},
		}
	case s.End().Equal(c.End()):
		return []Command[E]{
			{Verb: Update, Target: n.Event, Span: mustSpan("clip end", s.Start, c.Start)},
		}
	default:
		return []Command[E]{
			{Verb: Update, Target: n.Event, Span: mustSpan("split head", s.Start, c.Start)},
			{Verb: Insert, Target: n.Event, Span: mustSpan("split tail", c.End(), s.End())},
		}
	}
}

func deleteOf[E Event](n Neighbor[E]) Command[E] {
	return Command[E]{Verb: Delete, Target: n.Event, Span: n.Event.Span()}
}

// mustSpan panics when a planned span would not have a positive duration.
// That only happens when the input sequence broke its invariant; carrying on
// would corrupt the calendar.
func mustSpan(op string, start, end time.Time) Span {
	s := NewSpan(start, end)
	if !s.Valid() {
		panic(fmt.Errorf("%w: %s produced duration %s", ErrInconsistent, op, s.Duration))
	}
	return s
}
