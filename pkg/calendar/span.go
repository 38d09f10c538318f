package calendar

import (
	"fmt"
	"reflect"
	"time"
)

// Event is anything exposing a start instant and a positive duration.
// Availability slots, bookings and plain spans all qualify.
type Event interface {
	Span() Span
}

// Span is a contiguous span of time. The end is derived and never stored.
type Span struct {
	Start    time.Time
	Duration time.Duration
}

// NewSpan builds a span from a start and an end instant
func NewSpan(start, end time.Time) Span {
	return Span{Start: start, Duration: end.Sub(start)}
}

// End returns Start + Duration
func (s Span) End() time.Time {
	return s.Start.Add(s.Duration)
}

// Span lets a bare Span be used wherever an Event is expected.
func (s Span) Span() Span {
	return s
}

// Valid reports whether the duration is strictly positive
func (s Span) Valid() bool {
	return s.Duration > 0
}

// Equal reports whether both spans cover exactly the same instants
func (s Span) Equal(o Span) bool {
	return s.Start.Equal(o.Start) && s.Duration == o.Duration
}

func (s Span) String() string {
	return fmt.Sprintf("[%s, %s)", s.Start.Format(time.RFC3339), s.End().Format(time.RFC3339))
}

// isNil catches both untyped nil and typed nil pointers hidden in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
