package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

const slotsJSON = `[
	{"id": 1, "start": "2030-01-02T09:00:00Z", "duration": "1h"},
	{"id": 2, "start": "2030-01-02T11:00:00Z", "duration": "1h"}
]`

func at(hh, mm int) time.Time {
	return time.Date(2030, 1, 2, hh, mm, 0, 0, time.UTC)
}

func TestDecodeSlots(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(`[{"start": "2030-01-02T09:00:00Z", "duration": "45m"}]`))
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].ID)
	assert.Equal(t, 45*time.Minute, slots[0].Duration)

	_, err = decodeSlots(strings.NewReader(`[{"start": "2030-01-02T09:00:00Z", "duration": "soon"}]`))
	assert.Error(t, err)
}

func TestPlan_AddBridgesNeighbors(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(slotsJSON))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, plan(&out, slots, calendar.Span{Start: at(10, 0), Duration: time.Hour}, false))

	assert.Contains(t, out.String(), "commands (2):")
	assert.Contains(t, out.String(), "delete #2")
	assert.Contains(t, out.String(), "update #1")
	assert.Contains(t, out.String(), "result (1):")

	// исходные слоты не меняются
	assert.Equal(t, time.Hour, slots[0].Duration)
}

func TestPlan_RemoveSplits(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(`[{"id": 5, "start": "2030-01-02T09:00:00Z", "duration": "3h"}]`))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, plan(&out, slots, calendar.Span{Start: at(10, 0), Duration: time.Hour}, true))

	assert.Contains(t, out.String(), "update #5")
	assert.Contains(t, out.String(), "insert #5")
	assert.Contains(t, out.String(), "result (2):")
	assert.Contains(t, out.String(), "#6")
}

func TestApplyInMemory(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(slotsJSON))
	require.NoError(t, err)

	cmds, err := calendar.PlanRemove(slices.Values(slots), calendar.Span{Start: at(9, 30), Duration: 2 * time.Hour})
	require.NoError(t, err)

	result := applyInMemory(slots, cmds)
	require.Len(t, result, 2)
	assert.Equal(t, at(9, 0), result[0].StartAt)
	assert.Equal(t, 30*time.Minute, result[0].Duration)
	assert.Equal(t, at(11, 30), result[1].StartAt)
	assert.Equal(t, 30*time.Minute, result[1].Duration)
}

func TestPlan_RejectsInvalidCalendar(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(`[
		{"start": "2030-01-02T09:00:00Z", "duration": "1h"},
		{"start": "2030-01-02T09:30:00Z", "duration": "1h"}
	]`))
	require.NoError(t, err)

	err = plan(&bytes.Buffer{}, slots, calendar.Span{Start: at(12, 0), Duration: time.Hour}, false)
	assert.ErrorIs(t, err, calendar.ErrSequenceInvalid)
}

func TestCheck(t *testing.T) {
	slots, err := decodeSlots(strings.NewReader(slotsJSON))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, check(&out, slots))
	assert.Equal(t, "ok: 2 slots\n", out.String())

	slots[1].StartAt = at(10, 0)
	out.Reset()
	err = check(&out, slots)
	assert.ErrorIs(t, err, errCalendarInvalid)
	assert.Contains(t, out.String(), "index 1")
}
