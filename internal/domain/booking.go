package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// Booking is the part of a booking the calendar cares about: which span of
// which scope it occupies. Bookings are owned by the booking service and only
// read here.
type Booking struct {
	ID              int64
	CompanyID       int64
	AddressID       int64
	StartAt         time.Time
	DurationMinutes int
	Status          BookingStatus
}

// IsActive returns true if the booking is in an active state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser &&
		b.Status != StatusCancelledByCompany &&
		b.Status != StatusNoShow
}

// Span makes the booking comparable with availability slots
func (b *Booking) Span() calendar.Span {
	return calendar.Span{Start: b.StartAt, Duration: time.Duration(b.DurationMinutes) * time.Minute}
}

// InactiveStatuses список статусов неактивных бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}
