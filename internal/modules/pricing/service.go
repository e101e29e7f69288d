package pricing

import (
	"time"

	"venuebook/internal/config"
	"venuebook/internal/domain"
)

// Input is the boundary shape of a quote request. EventDate is "YYYY-MM-DD";
// StartTime and EndTime are either "HH:MM" wall-clock times on the event date
// or full "YYYY-MM-DDTHH:MM" local date-times. An end of "00:00" (or a
// date-time equal to the following midnight) is the 24:00 closing edge.
type Input struct {
	EventDate       string
	StartTime       string
	EndTime         string
	ExtraSetupHours int
	Type            domain.BookingType
}

// Quote is a full price breakdown. All money is integer cents; floating
// currency never enters the calculation.
type Quote struct {
	DayType         domain.DayType `json:"day_type"`
	HourlyRateCents int64          `json:"hourly_rate_cents"`
	Hours           int            `json:"hours"`
	BaseAmountCents int64          `json:"base_amount_cents"`
	ExtraSetupHours int            `json:"extra_setup_hours"`
	ExtraSetupCents int64          `json:"extra_setup_cents"`
	DepositCents    int64          `json:"deposit_cents"`
	TotalCents      int64          `json:"total_cents"`

	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

type Service struct {
	cfg config.Pricing
}

func NewService(cfg config.Pricing) *Service {
	return &Service{cfg: cfg}
}

const datetimeLayout = "2006-01-02T15:04"

// Calculate validates the request and produces a quote. Validation runs in a
// fixed order, each step failing with its own sentinel: parse, ordering,
// same-day, venue hours, whole-hour duration, then type-specific rules.
func (s *Service) Calculate(in Input) (*Quote, error) {
	date, err := domain.ParseDate(in.EventDate)
	if err != nil {
		return nil, ErrBadDateTime
	}
	startMin, err := parseWhen(date, in.StartTime, false)
	if err != nil {
		return nil, err
	}
	endMin, err := parseWhen(date, in.EndTime, true)
	if err != nil {
		return nil, err
	}

	if endMin <= startMin {
		return nil, ErrEndNotAfterStart
	}

	// Both values must sit on the event date; the sole exception is an end of
	// exactly the following midnight, normalized to 24:00 by parseWhen.
	if startMin < 0 || startMin >= 24*60 || endMin <= 0 || endMin > 24*60 {
		return nil, ErrCrossDay
	}

	if startMin < s.cfg.OpeningHour*60 || endMin > s.cfg.ClosingHour*60 {
		return nil, ErrOutsideHours
	}

	duration := endMin - startMin
	if duration%60 != 0 {
		return nil, ErrFractionalDuration
	}
	hours := duration / 60

	start := date.At(domain.ClockFromMinutes(startMin))
	end := date.At(domain.Clock{}).Add(time.Duration(endMin) * time.Minute)
	dayType := domain.DayTypeOf(date)

	if in.Type == domain.BookingShowing {
		if in.ExtraSetupHours != 0 {
			return nil, ErrSetupOnShowing
		}
		// Showings are priced outside this engine: hours are computed,
		// every money field stays zero.
		return &Quote{DayType: dayType, Hours: hours, Start: start, End: end}, nil
	}

	if dayType == domain.DayWeekend && hours < s.cfg.WeekendMinimumHrs {
		return nil, ErrWeekendMinimum
	}
	if in.ExtraSetupHours < 0 {
		return nil, ErrNegativeSetup
	}

	rate := s.cfg.WeekdayRate
	if dayType == domain.DayWeekend {
		rate = s.cfg.WeekendRate
	}

	q := &Quote{
		DayType:         dayType,
		HourlyRateCents: rate * 100,
		Hours:           hours,
		ExtraSetupHours: in.ExtraSetupHours,
		DepositCents:    s.cfg.Deposit * 100,
		Start:           start,
		End:             end,
	}
	q.BaseAmountCents = int64(hours) * q.HourlyRateCents
	q.ExtraSetupCents = int64(in.ExtraSetupHours) * s.cfg.ExtraSetupRate * 100
	q.TotalCents = q.BaseAmountCents + q.ExtraSetupCents + q.DepositCents
	return q, nil
}

// parseWhen resolves a time value to minutes relative to the event date's
// midnight. Bare "HH:MM" values sit on the event date by construction; full
// date-times may land anywhere, in which case the offset falls outside
// [0, 1440] and the same-day check rejects it. An end of midnight (bare
// "00:00" or the following day's 00:00) normalizes to 24:00.
func parseWhen(date domain.Date, s string, isEnd bool) (int, error) {
	if c, cerr := domain.ParseClock(s); cerr == nil {
		m := c.Minutes()
		if isEnd && m == 0 {
			return 24 * 60, nil
		}
		return m, nil
	}

	t, terr := time.ParseInLocation(datetimeLayout, s, time.Local)
	if terr != nil {
		return 0, ErrBadDateTime
	}
	return int(t.Sub(date.Midnight()).Minutes()), nil
}
