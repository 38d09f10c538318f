package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSequence is returned when no sequence is supplied
	ErrNilSequence = errors.New("calendar: sequence is nil")

	// ErrNilCandidate is returned when no candidate event is supplied
	ErrNilCandidate = errors.New("calendar: candidate is nil")

	// ErrNilEvent is returned when the scan hits a nil element
	ErrNilEvent = errors.New("calendar: nil event in sequence")

	// ErrNonPositiveDuration is returned for a candidate whose duration is not strictly positive
	ErrNonPositiveDuration = errors.New("calendar: non-positive duration")

	// ErrSequenceInvalid is matched by every *SequenceInvalidError
	ErrSequenceInvalid = errors.New("calendar: sequence invalid")

	// ErrInconsistent is the panic value of a planner whose input broke the
	// ascending, non-overlapping precondition.
	ErrInconsistent = errors.New("calendar: internal consistency failure")
)

// SequenceInvalidError reports the first element breaking the ascending,
// non-overlapping, positive-duration invariant.
type SequenceInvalidError struct {
	Index  int
	Reason string
}

func (e *SequenceInvalidError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSequenceInvalid, e.Reason)
}

func (e *SequenceInvalidError) Unwrap() error {
	return ErrSequenceInvalid
}
