package calendar

// Relation predicates between two spans. All of them are pure and total for
// spans with positive durations. Boundaries are compared with time.Time.Equal,
// so spans in different locations compare by instant.

// WayBefore reports whether s ends strictly before o starts
func (s Span) WayBefore(o Span) bool {
	return s.End().Before(o.Start)
}

// WayAfter reports whether s starts strictly after o ends
func (s Span) WayAfter(o Span) bool {
	return s.Start.After(o.End())
}

// StartsAdjacentTo reports whether s starts exactly where o ends
func (s Span) StartsAdjacentTo(o Span) bool {
	return o.End().Equal(s.Start)
}

// EndsAdjacentTo reports whether s ends exactly where o starts
func (s Span) EndsAdjacentTo(o Span) bool {
	return s.End().Equal(o.Start)
}

// EndOverlappedBy reports whether o crosses the end of s: it starts inside s
// and ends after s ends.
func (s Span) EndOverlappedBy(o Span) bool {
	return o.Start.After(s.Start) && o.Start.Before(s.End()) && o.End().After(s.End())
}

// StartOverlappedBy reports whether o crosses the start of s: it starts
// before s and ends inside s.
func (s Span) StartOverlappedBy(o Span) bool {
	return o.Start.Before(s.Start) && o.End().After(s.Start) && o.End().Before(s.End())
}

// CompletelyOverlappedBy reports whether s lies within o. Equal spans count.
func (s Span) CompletelyOverlappedBy(o Span) bool {
	return !s.Start.Before(o.Start) && !s.End().After(o.End())
}

// Encloses reports whether o lies within s without being equal to it
func (s Span) Encloses(o Span) bool {
	return o.CompletelyOverlappedBy(s) && !s.Equal(o)
}

// Overlaps reports whether s and o share at least one instant.
// Touching spans do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start.Before(o.End()) && o.Start.Before(s.End())
}
