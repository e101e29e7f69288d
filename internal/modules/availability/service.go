package availability

import (
	"context"

	"venuebook/internal/domain"
)

// DayStatus summarizes a calendar date for event booking.
type DayStatus string

const (
	DayOpen    DayStatus = "open"
	DayBlocked DayStatus = "blocked"
	DayBooked  DayStatus = "booked"
)

// Slot is one bookable showing start on a date. Times are "HH:MM" wall-clock
// strings; slot comparison never goes through timezone-aware instants.
type Slot struct {
	Start     string `json:"start_time"`
	End       string `json:"end_time"`
	Available bool   `json:"available"`
}

// DaySlots is the slot-level availability of a date. When the day is closed
// (blocked date or confirmed event) Slots is empty and Reason says why.
type DaySlots struct {
	Date   string    `json:"date"`
	Closed bool      `json:"closed"`
	Reason DayStatus `json:"reason,omitempty"`
	Slots  []Slot    `json:"slots"`
}

type Service struct {
	bookings BookingReader
	blocked  BlockedDateReader
	schedule ScheduleReader
}

func NewService(bookings BookingReader, blocked BlockedDateReader, schedule ScheduleReader) *Service {
	return &Service{bookings: bookings, blocked: blocked, schedule: schedule}
}

// EventDateStatus classifies a date for event booking. excludeID skips one
// booking (the one being edited) in the conflict check.
func (s *Service) EventDateStatus(ctx context.Context, date domain.Date, excludeID int64) (DayStatus, error) {
	bd, err := s.blocked.FindByDate(ctx, date)
	if err != nil {
		return "", err
	}
	if bd != nil {
		return DayBlocked, nil
	}

	booked, err := s.bookings.BlockingEventExists(ctx, date, excludeID)
	if err != nil {
		return "", err
	}
	if booked {
		return DayBooked, nil
	}
	return DayOpen, nil
}

// CheckEventDate returns nil when the date admits a new event, or a typed
// conflict error otherwise.
func (s *Service) CheckEventDate(ctx context.Context, date domain.Date, excludeID int64) error {
	status, err := s.EventDateStatus(ctx, date, excludeID)
	if err != nil {
		return err
	}
	switch status {
	case DayBlocked:
		return ErrDateBlocked
	case DayBooked:
		return ErrDateBooked
	}
	return nil
}

// ShowingSlots expands the date's enabled weekly windows into fixed-length
// slots and marks each available or not. A blocked date or a confirmed event
// closes the whole day: events take priority over showings.
func (s *Service) ShowingSlots(ctx context.Context, date domain.Date) (*DaySlots, error) {
	out := &DaySlots{Date: date.String(), Slots: []Slot{}}

	status, err := s.EventDateStatus(ctx, date, 0)
	if err != nil {
		return nil, err
	}
	if status != DayOpen {
		out.Closed = true
		out.Reason = status
		return out, nil
	}

	windows, err := s.schedule.WindowsForDay(ctx, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return out, nil
	}

	cfg, err := s.schedule.Config(ctx)
	if err != nil {
		return nil, err
	}

	taken := map[string]int{}
	if !cfg.Unlimited() {
		showings, err := s.bookings.ListShowingsOnDate(ctx, date)
		if err != nil {
			return nil, err
		}
		for _, b := range showings {
			taken[domain.ClockOf(b.StartTime).String()]++
		}
	}

	for _, w := range windows {
		for _, start := range expandWindow(w, cfg.DefaultDurationMinutes) {
			slot := Slot{
				Start:     start.String(),
				End:       domain.ClockFromMinutes(start.Minutes() + cfg.DefaultDurationMinutes).String(),
				Available: true,
			}
			if !cfg.Unlimited() && taken[slot.Start] >= cfg.MaxSlotsPerWindow {
				slot.Available = false
			}
			out.Slots = append(out.Slots, slot)
		}
	}
	return out, nil
}

// CheckShowingSlot returns nil when a new showing may start at the given time
// on the date. The day-level checks run first; then the slot is full once the
// non-cancelled showings at that exact start reach the configured cap. An
// unlimited cap removes the window-level cap only, never the exact-start
// conflict check: two appointments can never share the same minute.
func (s *Service) CheckShowingSlot(ctx context.Context, date domain.Date, start domain.Clock) error {
	if err := s.CheckEventDate(ctx, date, 0); err != nil {
		return err
	}

	cfg, err := s.schedule.Config(ctx)
	if err != nil {
		return err
	}
	limit := cfg.MaxSlotsPerWindow
	if cfg.Unlimited() {
		limit = 1
	}

	showings, err := s.bookings.ListShowingsOnDate(ctx, date)
	if err != nil {
		return err
	}
	count := 0
	for _, b := range showings {
		if domain.ClockOf(b.StartTime).String() == start.String() {
			count++
		}
	}
	if count >= limit {
		return ErrSlotTaken
	}
	return nil
}

// expandWindow yields slot starts from the window's start in duration-sized
// steps, stopping before any slot whose end would pass the window end. No
// partial trailing slot is ever produced.
func expandWindow(w domain.ShowingWindow, durationMin int) []domain.Clock {
	if durationMin <= 0 {
		return nil
	}
	var starts []domain.Clock
	for m := w.StartTime.Minutes(); m+durationMin <= w.EndTime.Minutes(); m += durationMin {
		starts = append(starts, domain.ClockFromMinutes(m))
	}
	return starts
}
