package availability

import (
	"context"

	"venuebook/internal/domain"
)

// BookingReader is the slice of the booking store the resolver needs.
type BookingReader interface {
	BlockingEventExists(ctx context.Context, date domain.Date, excludeID int64) (bool, error)
	ListShowingsOnDate(ctx context.Context, date domain.Date) ([]domain.Booking, error)
}

type BlockedDateReader interface {
	FindByDate(ctx context.Context, date domain.Date) (*domain.BlockedDate, error)
}

type ScheduleReader interface {
	WindowsForDay(ctx context.Context, dayOfWeek int) ([]domain.ShowingWindow, error)
	Config(ctx context.Context) (*domain.ShowingConfig, error)
}
