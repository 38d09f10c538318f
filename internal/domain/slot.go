package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

// Scope identifies one calendar: a company address. Slots of different
// scopes never interact.
type Scope struct {
	CompanyID int64
	AddressID int64
}

// LockKey is the key under which changes to this calendar are serialized
func (s Scope) LockKey() string {
	return fmt.Sprintf("%d:%d", s.CompanyID, s.AddressID)
}

// AvailabilitySlot is a contiguous span during which an address accepts bookings.
// Slots of one scope form an ascending sequence that never overlaps or touches.
type AvailabilitySlot struct {
	ID        int64
	Scope     Scope
	StartAt   time.Time
	Duration  time.Duration
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Span makes the slot usable by the calendar engine
func (s *AvailabilitySlot) Span() calendar.Span {
	return calendar.Span{Start: s.StartAt, Duration: s.Duration}
}

// EndAt returns the instant the slot ends (exclusive)
func (s *AvailabilitySlot) EndAt() time.Time {
	return s.StartAt.Add(s.Duration)
}

// IsPersisted returns true once the slot has been stored
func (s *AvailabilitySlot) IsPersisted() bool {
	return s.ID > 0
}

// DurationMinutes returns the slot length in whole minutes
func (s *AvailabilitySlot) DurationMinutes() int {
	return int(s.Duration / time.Minute)
}

// SlotCommand is a calendar command against availability slots
type SlotCommand = calendar.Command[*AvailabilitySlot]

// AppliedCommand is what was actually written to storage for one command
type AppliedCommand struct {
	Verb     calendar.Verb
	SlotID   int64
	StartAt  time.Time
	Duration time.Duration
}

// Operation names the calendar operation that produced a change
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)
