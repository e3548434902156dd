package domain

// Default scheduling values
const (
	DefaultSlotDurationMinutes = 30

	// Availability lookahead bounds
	DefaultMaxLookaheadDays  = 365
	DefaultMaxQualifyingDays = 7
)

// Business validation constants
const (
	MinWeekday = 0 // воскресенье
	MaxWeekday = 6

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxExtraServices            = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
