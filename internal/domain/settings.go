package domain

import "time"

// CalendarSettings constrains what may be added to a calendar.
// Supports hierarchical configuration:
// 1. Address-wide (company_id, address_id)
// 2. Company-wide (company_id, NULL)
// 3. Service defaults from config.toml
type CalendarSettings struct {
	ID                 int64
	CompanyID          int64
	AddressID          *int64 // NULL = settings for all addresses
	StepMinutes        int    // starts and durations must be multiples of the step
	MinDurationMinutes int
	HorizonDays        int // 0 = unlimited
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsCompanyWide returns true if these settings apply to every address of the company
func (s *CalendarSettings) IsCompanyWide() bool {
	return s.AddressID == nil
}

// IsDefault returns true for settings that were never stored
func (s *CalendarSettings) IsDefault() bool {
	return s.ID == 0
}

// HasHorizon returns true if there's a limit on how far ahead availability can be published
func (s *CalendarSettings) HasHorizon() bool {
	return s.HorizonDays > 0
}

// Step returns StepMinutes as a duration
func (s *CalendarSettings) Step() time.Duration {
	return time.Duration(s.StepMinutes) * time.Minute
}

// IsAligned reports whether t falls on the step grid of the day in t's location
func (s *CalendarSettings) IsAligned(t time.Time) bool {
	if s.StepMinutes <= 1 {
		return t.Second() == 0 && t.Nanosecond() == 0
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)%s.Step() == 0
}

// DefaultSettings builds settings from service defaults for companyID
func DefaultSettings(companyID int64, stepMinutes, minDurationMinutes, horizonDays int) *CalendarSettings {
	return &CalendarSettings{
		CompanyID:          companyID,
		StepMinutes:        stepMinutes,
		MinDurationMinutes: minDurationMinutes,
		HorizonDays:        horizonDays,
	}
}
