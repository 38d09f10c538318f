package add_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/calendar"
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

// validateAgainstSettings проверяет интервал по настройкам календаря
func validateAgainstSettings(span calendar.Span, settings *domain.CalendarSettings, now time.Time) error {
	if !settings.IsAligned(span.Start) {
		return fmt.Errorf("%w: start must be a multiple of %d minutes", ErrInvalidTimeSlot, settings.StepMinutes)
	}

	if span.Duration%settings.Step() != 0 {
		return fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidTimeSlot, settings.StepMinutes)
	}

	if span.Duration < time.Duration(settings.MinDurationMinutes)*time.Minute {
		return fmt.Errorf("%w: minimum is %d minutes", ErrTooShort, settings.MinDurationMinutes)
	}

	if span.Start.Before(now) {
		return ErrInPast
	}

	// Если HorizonDays = 0, нет ограничений
	if settings.HasHorizon() && span.End().After(now.AddDate(0, 0, settings.HorizonDays)) {
		return fmt.Errorf("%w: availability can be published %d days ahead", ErrBeyondHorizon, settings.HorizonDays)
	}

	return nil
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
