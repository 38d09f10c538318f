package domain

// Default configuration values
const (
	DefaultStepMinutes        = 15
	DefaultMinDurationMinutes = 15
	DefaultHorizonDays        = 90
)

// Business validation constants
const (
	MinStepMinutes        = 1
	MaxStepMinutes        = 240
	MinDurationMinutes    = 1
	MaxDurationMinutes    = 7 * 24 * 60 // one week in a single request
	MinHorizonDays        = 0
	MaxHorizonDays        = 365
	MaxListPeriodDays     = 92
	MaxCheckedSlotsPerRun = 10000
)
