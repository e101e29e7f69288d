package payment

import (
	"context"

	"venuebook/internal/domain"
)

// Gateway creates hosted checkout sessions with an external payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
}

type CheckoutParams struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"checkout_url"`
}

type bookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
}

// tokenResolver re-validates a management token on every balance-payment
// call. Tokens are never cached as proof of ongoing validity.
type tokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.Booking, error)
}
