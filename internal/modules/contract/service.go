package contract

import (
	"context"
	"errors"
	"strings"
	"time"

	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

type bookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
}

// Service records contract acceptance on event bookings. The canonical
// contract (version + rendered text) it holds is what gets frozen onto a
// booking at first acceptance.
type Service struct {
	bookings bookingStore
	version  int
	text     string
}

func NewService(bookings bookingStore, version int, text string) *Service {
	return &Service{bookings: bookings, version: version, text: text}
}

// Current returns the canonical contract the venue presently offers.
func (s *Service) Current() (version int, text string) {
	return s.version, s.text
}

// Accept marks the contract accepted by the named signer. The first
// acceptance freezes the current version and full text onto the booking;
// re-accepting may update the signer name but never touches the frozen
// version or text, so the legal wording a signer agreed to stays immutable
// even after the canonical contract is edited.
func (s *Service) Accept(ctx context.Context, bookingID int64, signerName string) (*domain.Booking, error) {
	signerName = strings.TrimSpace(signerName)
	if signerName == "" {
		return nil, ErrSignerRequired
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.Type != domain.BookingEvent {
		return nil, ErrNotEvent
	}

	if b.ContractText == "" {
		b.ContractVersion = s.version
		b.ContractText = s.text
	}

	now := time.Now()
	b.ContractAccepted = true
	b.ContractAcceptedAt = &now
	b.ContractSignerName = signerName

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
