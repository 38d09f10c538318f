package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanAdd(t *testing.T) {
	tests := map[string]struct {
		candidate *testEvent
		want      func(base []*testEvent, c *testEvent) []Command[*testEvent]
	}{
		"complete overlap": {
			candidate: ev("Y", at(2, 30), 180*time.Minute),
			want: func(b []*testEvent, _ *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
					{Verb: Delete, Target: b[3], Span: b[3].S},
					{Verb: Update, Target: b[1], Span: NewSpan(at(1, 30), at(6, 0))},
				}
			},
		},
		"bridge merge": {
			candidate: ev("Y", at(2, 30), 45*time.Minute),
			want: func(b []*testEvent, _ *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
					{Verb: Update, Target: b[1], Span: NewSpan(at(1, 30), at(4, 0))},
				}
			},
		},
		"tail extend only": {
			candidate: ev("Y", at(2, 45), 15*time.Minute),
			want: func(b []*testEvent, _ *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[2], Span: NewSpan(at(2, 45), at(4, 0))},
				}
			},
		},
		"head extend only": {
			candidate: ev("Y", at(1, 45), 60*time.Minute),
			want: func(b []*testEvent, _ *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[1], Span: NewSpan(at(1, 30), at(2, 45))},
				}
			},
		},
		"pure insert": {
			candidate: ev("Y", at(4, 15), time.Minute),
			want: func(_ []*testEvent, c *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Insert, Target: c, Span: c.S},
				}
			},
		},
		"equal span replaces neighbor": {
			candidate: ev("Y", at(3, 0), time.Hour),
			want: func(b []*testEvent, c *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
					{Verb: Insert, Target: c, Span: c.S},
				}
			},
		},
		"contained neighbors without touching others": {
			candidate: ev("Y", at(2, 45), 2*time.Hour),
			want: func(b []*testEvent, c *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
					{Verb: Insert, Target: c, Span: c.S},
				}
			},
		},
		"enclosed by neighbor": {
			candidate: ev("Y", at(3, 15), 15*time.Minute),
			want: func([]*testEvent, *testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base := baseEvents()
			got, err := PlanAdd(slices.Values(base), tt.candidate)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want(base, tt.candidate), got); diff != "" {
				t.Errorf("PlanAdd() mismatch (-want +got):\n%s", diff)
			}
			require.NoError(t, Validate(slices.Values(apply(base, got))))
		})
	}
}

func TestPlanAdd_DoesNotMutateInput(t *testing.T) {
	base := baseEvents()
	before := make([]Span, 0, len(base))
	for _, e := range base {
		before = append(before, e.S)
	}
	candidate := ev("Y", at(2, 30), 180*time.Minute)

	_, err := PlanAdd(slices.Values(base), candidate)
	require.NoError(t, err)

	for i, e := range base {
		assert.True(t, before[i].Equal(e.S), "event %s changed", e.Name)
	}
	assert.True(t, candidate.S.Equal(Span{Start: at(2, 30), Duration: 180 * time.Minute}))
}

func TestPlanRemove(t *testing.T) {
	tests := map[string]struct {
		candidate Span
		want      func(base []*testEvent) []Command[*testEvent]
	}{
		"remove overlapping tail": {
			candidate: Span{Start: at(1, 0), Duration: time.Hour},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[1], Span: NewSpan(at(2, 0), at(2, 30))},
				}
			},
		},
		"remove exact neighbor": {
			candidate: Span{Start: at(3, 0), Duration: time.Hour},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
				}
			},
		},
		"clip both sides": {
			candidate: Span{Start: at(2, 0), Duration: 3*time.Hour + 30*time.Minute},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Delete, Target: b[2], Span: b[2].S},
					{Verb: Update, Target: b[1], Span: NewSpan(at(1, 30), at(2, 0))},
					{Verb: Update, Target: b[3], Span: NewSpan(at(5, 30), at(6, 0))},
				}
			},
		},
		"clip end only": {
			candidate: Span{Start: at(2, 0), Duration: 45 * time.Minute},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[1], Span: NewSpan(at(1, 30), at(2, 0))},
				}
			},
		},
		"gap": {
			candidate: Span{Start: at(4, 15), Duration: 30 * time.Minute},
			want: func([]*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{}
			},
		},
		"adjacent on both sides": {
			candidate: Span{Start: at(2, 30), Duration: 30 * time.Minute},
			want: func([]*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{}
			},
		},
		"split enclosing": {
			candidate: Span{Start: at(3, 15), Duration: 30 * time.Minute},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[2], Span: NewSpan(at(3, 0), at(3, 15))},
					{Verb: Insert, Target: b[2], Span: NewSpan(at(3, 45), at(4, 0))},
				}
			},
		},
		"trim enclosing head": {
			candidate: Span{Start: at(3, 0), Duration: 15 * time.Minute},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[2], Span: NewSpan(at(3, 15), at(4, 0))},
				}
			},
		},
		"trim enclosing tail": {
			candidate: Span{Start: at(3, 45), Duration: 15 * time.Minute},
			want: func(b []*testEvent) []Command[*testEvent] {
				return []Command[*testEvent]{
					{Verb: Update, Target: b[2], Span: NewSpan(at(3, 0), at(3, 45))},
				}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base := baseEvents()
			got, err := PlanRemove(slices.Values(base), tt.candidate)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want(base), got); diff != "" {
				t.Errorf("PlanRemove() mismatch (-want +got):\n%s", diff)
			}
			require.NoError(t, Validate(slices.Values(apply(base, got))))
		})
	}
}

func TestPlan_Errors(t *testing.T) {
	t.Run("add nil candidate", func(t *testing.T) {
		_, err := PlanAdd(slices.Values(baseEvents()), nil)
		assert.ErrorIs(t, err, ErrNilCandidate)
	})

	t.Run("add zero duration", func(t *testing.T) {
		_, err := PlanAdd(slices.Values(baseEvents()), ev("Y", at(4, 15), 0))
		assert.ErrorIs(t, err, ErrNonPositiveDuration)
	})

	t.Run("remove nil sequence", func(t *testing.T) {
		_, err := PlanRemove[*testEvent](nil, Span{Start: at(4, 15), Duration: time.Minute})
		assert.ErrorIs(t, err, ErrNilSequence)
	})
}

func TestPlanAdd_PanicsOnInconsistentSequence(t *testing.T) {
	// X ends at 03:00 but starts at 04:00, which a valid sequence never allows
	broken := []*testEvent{
		ev("X", at(4, 0), -time.Hour),
	}
	candidate := ev("Y", at(3, 0), 30*time.Minute)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrInconsistent)
	}()
	_, _ = PlanAdd(slices.Values(broken), candidate)
	t.Fatal("PlanAdd did not panic")
}

func TestVerb_String(t *testing.T) {
	assert.Equal(t, "insert", Insert.String())
	assert.Equal(t, "update", Update.String())
	assert.Equal(t, "delete", Delete.String())
	assert.Equal(t, "verb(7)", Verb(7).String())
}
