package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Validate checks that no element is nil, every duration is strictly positive
// and every element starts strictly after the previous one ends. Touching
// elements are rejected: adjacency is never a valid resting state.
//
// It returns the first offending element as a *SequenceInvalidError.
// Planners never call Validate; callers use it before or after applying
// commands.
func Validate[E Event](seq iter.Seq[E]) error {
	if seq == nil {
		return ErrNilSequence
	}

	var (
		lastEnd time.Time
		hasLast bool
		index   int
	)
	for e := range seq {
		if isNil(e) {
			return invalidAt(index, "null at index %d")
		}
		s := e.Span()
		if !s.Valid() {
			return invalidAt(index, "non-positive duration at index %d")
		}
		if hasLast && !s.Start.After(lastEnd) {
			return invalidAt(index, "out of order or overlapping/adjacent at index %d")
		}
		lastEnd, hasLast = s.End(), true
		index++
	}
	return nil
}

func invalidAt(index int, format string) *SequenceInvalidError {
	return &SequenceInvalidError{Index: index, Reason: fmt.Sprintf(format, index)}
}
