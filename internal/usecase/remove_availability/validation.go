package remove_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.AddressID <= 0 {
		return fmt.Errorf("%w: addressID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return nil
}

// countActiveBookings подсчитывает активные бронирования, пересекающие интервал.
// Бронирование, которое только касается границы, не мешает удалению.
func countActiveBookings(from, to time.Time, bookings []*domain.Booking) int {
	count := 0
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		span := booking.Span()
		if span.Start.Before(to) && span.End().After(from) {
			count++
		}
	}
	return count
}

// toResponse конвертирует примененные команды в ответ
func toResponse(scope domain.Scope, applied []domain.AppliedCommand) *Response {
	cmds := make([]Command, 0, len(applied))
	for _, a := range applied {
		cmds = append(cmds, Command{
			Verb:            a.Verb.String(),
			SlotID:          a.SlotID,
			Start:           a.StartAt,
			DurationMinutes: int(a.Duration / time.Minute),
		})
	}
	return &Response{
		CompanyID: scope.CompanyID,
		AddressID: scope.AddressID,
		Commands:  cmds,
	}
}
