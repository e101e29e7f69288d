package pricing

import "errors"

// Each validation step fails with its own sentinel so callers can surface a
// precise message.
var (
	ErrBadDateTime        = errors.New("invalid date or time value")
	ErrEndNotAfterStart   = errors.New("end time must be after start time")
	ErrCrossDay           = errors.New("start and end must fall on the event date")
	ErrOutsideHours       = errors.New("booking is outside venue hours")
	ErrFractionalDuration = errors.New("duration must be a whole number of hours")
	ErrWeekendMinimum     = errors.New("weekend events require a minimum duration")
	ErrSetupOnShowing     = errors.New("showings cannot include setup hours")
	ErrNegativeSetup      = errors.New("extra setup hours cannot be negative")
)
