package calendar

import (
	"slices"
	"time"
)

var day = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

type testEvent struct {
	Name string
	S    Span
}

func (e *testEvent) Span() Span {
	return e.S
}

// at returns the instant hh:mm on the fixture day
func at(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func ev(name string, start time.Time, d time.Duration) *testEvent {
	return &testEvent{Name: name, S: Span{Start: start, Duration: d}}
}

// baseEvents is A..E: one hour each starting at 00:00, 01:30, 03:00, 05:00, 07:00
func baseEvents() []*testEvent {
	return []*testEvent{
		ev("A", at(0, 0), time.Hour),
		ev("B", at(1, 30), time.Hour),
		ev("C", at(3, 0), time.Hour),
		ev("D", at(5, 0), time.Hour),
		ev("E", at(7, 0), time.Hour),
	}
}

// apply executes cmds against a copy of events the way a store would
func apply(events []*testEvent, cmds []Command[*testEvent]) []*testEvent {
	out := make([]*testEvent, 0, len(events)+1)
	spans := make(map[*testEvent]Span, len(events))
	for _, e := range events {
		spans[e] = e.S
	}
	deleted := make(map[*testEvent]bool)
	var inserted []*testEvent
	for _, c := range cmds {
		switch c.Verb {
		case Insert:
			inserted = append(inserted, &testEvent{Name: c.Target.Name + "+", S: c.Span})
		case Update:
			spans[c.Target] = c.Span
		case Delete:
			deleted[c.Target] = true
		}
	}
	for _, e := range events {
		if deleted[e] {
			continue
		}
		out = append(out, &testEvent{Name: e.Name, S: spans[e]})
	}
	out = append(out, inserted...)
	slices.SortFunc(out, func(a, b *testEvent) int {
		return a.S.Start.Compare(b.S.Start)
	})
	return out
}
