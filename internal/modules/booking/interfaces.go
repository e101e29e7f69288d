package booking

import (
	"context"

	"venuebook/internal/domain"
)

// BookingRepository is the persistence surface the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	ListRange(ctx context.Context, from, to domain.Date, bookingType domain.BookingType) ([]domain.Booking, error)
}

// AvailabilityChecker guards every create and edit against the calendar.
type AvailabilityChecker interface {
	CheckEventDate(ctx context.Context, date domain.Date, excludeID int64) error
	CheckShowingSlot(ctx context.Context, date domain.Date, start domain.Clock) error
}

// AddOnReader resolves catalog entries when line items are captured.
type AddOnReader interface {
	GetActiveByIDs(ctx context.Context, ids []int64) ([]domain.AddOn, error)
}

// ConfigReader supplies the showing slot length.
type ConfigReader interface {
	Config(ctx context.Context) (*domain.ShowingConfig, error)
}

// NotificationSender delivers booking notifications. Calls are
// fire-and-forget: the service ignores every returned error because the
// booking write has already succeeded.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error
}
