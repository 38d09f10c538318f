package calendar

import (
	"iter"
	"slices"
)

// Calendar wraps one fixed ascending slice of events. It is a convenience
// over the package functions and holds no logic of its own.
type Calendar[E Event] struct {
	events []E
}

// New wraps events. The slice is not copied; a nil slice is an empty calendar.
func New[E Event](events []E) *Calendar[E] {
	return &Calendar[E]{events: events}
}

// Events returns the wrapped slice
func (c *Calendar[E]) Events() []E {
	return c.events
}

// All iterates the wrapped events in order
func (c *Calendar[E]) All() iter.Seq[E] {
	return slices.Values(c.events)
}

// Len returns the number of wrapped events
func (c *Calendar[E]) Len() int {
	return len(c.events)
}

// ResolvePosition classifies candidate against the wrapped events
func (c *Calendar[E]) ResolvePosition(candidate Event) (Position[E], error) {
	return ResolvePosition(c.All(), candidate)
}

// PlanAdd plans the commands that merge candidate into the wrapped events
func (c *Calendar[E]) PlanAdd(candidate E) ([]Command[E], error) {
	return PlanAdd(c.All(), candidate)
}

// PlanRemove plans the commands that cut candidate out of the wrapped events
func (c *Calendar[E]) PlanRemove(candidate Event) ([]Command[E], error) {
	return PlanRemove(c.All(), candidate)
}

// Validate checks that the wrapped events are ascending and non-touching
func (c *Calendar[E]) Validate() error {
	return Validate(c.All())
}
