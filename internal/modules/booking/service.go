package booking

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/domain"
	"venuebook/internal/modules/availability"
	"venuebook/internal/modules/pricing"
	"venuebook/internal/repository"

	"github.com/google/uuid"
)

type Service struct {
	bookings BookingRepository
	addons   AddOnReader
	avail    AvailabilityChecker
	schedule ConfigReader
	pricer   *pricing.Service
	notifs   NotificationSender
	tokenTTL time.Duration
}

func NewService(
	bookings BookingRepository,
	addons AddOnReader,
	avail AvailabilityChecker,
	schedule ConfigReader,
	pricer *pricing.Service,
	notifs NotificationSender,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		bookings: bookings,
		addons:   addons,
		avail:    avail,
		schedule: schedule,
		pricer:   pricer,
		notifs:   notifs,
		tokenTTL: tokenTTL,
	}
}

// CreateEvent runs the full intake pipeline: availability, pricing, add-on
// capture, token mint, persist, notify.
func (s *Service) CreateEvent(ctx context.Context, req CreateEventRequest) (*domain.Booking, error) {
	date, err := domain.ParseDate(req.EventDate)
	if err != nil {
		return nil, ErrValidation
	}

	if err := s.avail.CheckEventDate(ctx, date, 0); err != nil {
		return nil, err
	}

	quote, err := s.pricer.Calculate(pricing.Input{
		EventDate:       req.EventDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		ExtraSetupHours: req.ExtraSetupHours,
		Type:            domain.BookingEvent,
	})
	if err != nil {
		return nil, err
	}

	items, err := s.captureAddOns(ctx, req.AddOns)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Type:            domain.BookingEvent,
		Status:          domain.StatusPending,
		EventDate:       date,
		StartTime:       quote.Start,
		EndTime:         quote.End,
		DayType:         quote.DayType,
		HourlyRateCents: quote.HourlyRateCents,
		EventHours:      quote.Hours,
		BaseAmountCents: quote.BaseAmountCents,
		ExtraSetupHours: quote.ExtraSetupHours,
		ExtraSetupCents: quote.ExtraSetupCents,
		DepositCents:    quote.DepositCents,
		TotalCents:      quote.TotalCents,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		EventType:       req.EventType,
		GuestCount:      req.GuestCount,
		TablesRequested: req.TablesRequested,
		ChairsRequested: req.ChairsRequested,
		SetupNotes:      req.SetupNotes,
		AddOns:          items,
	}
	s.mintToken(b)

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, availability.ErrDateBooked
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b)
	}
	return b, nil
}

// CreateShowing books a viewing appointment into a generated slot. Showings
// carry no pricing: every money field stays zero.
func (s *Service) CreateShowing(ctx context.Context, req CreateShowingRequest) (*domain.Booking, error) {
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, ErrValidation
	}
	start, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrValidation
	}

	if err := s.avail.CheckShowingSlot(ctx, date, start); err != nil {
		return nil, err
	}

	cfg, err := s.schedule.Config(ctx)
	if err != nil {
		return nil, err
	}

	startAt := date.At(start)
	b := &domain.Booking{
		Type:          domain.BookingShowing,
		Status:        domain.StatusPending,
		EventDate:     date,
		StartTime:     startAt,
		EndTime:       startAt.Add(time.Duration(cfg.DefaultDurationMinutes) * time.Minute),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	}
	s.mintToken(b)

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b)
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *Service) ListRange(ctx context.Context, fromStr, toStr, typeStr string) ([]domain.Booking, error) {
	from, err := domain.ParseDate(fromStr)
	if err != nil {
		return nil, ErrValidation
	}
	to, err := domain.ParseDate(toStr)
	if err != nil {
		return nil, ErrValidation
	}
	var bookingType domain.BookingType
	if typeStr != "" {
		if bookingType, err = domain.ParseBookingType(typeStr); err != nil {
			return nil, ErrValidation
		}
	}
	return s.bookings.ListRange(ctx, from, to, bookingType)
}

// TransitionStatus moves a booking to a target status. The target must be in
// the closed set for the booking's type. Cancelling an already-cancelled
// booking is an idempotent no-op; any other move out of a terminal status is
// rejected. Confirming an event re-checks the date so two pending bookings
// for the same day cannot both confirm.
func (s *Service) TransitionStatus(ctx context.Context, id int64, target string) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(b.Type, target)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	if status == b.Status {
		return b, nil
	}
	if b.Status == domain.StatusCancelled || b.Status == domain.StatusCompleted {
		return nil, ErrTerminalStatus
	}

	if b.Type == domain.BookingEvent && status == domain.StatusConfirmed {
		if err := s.avail.CheckEventDate(ctx, b.EventDate, b.ID); err != nil {
			return nil, err
		}
	}

	b.Status = status
	if status == domain.StatusCancelled {
		now := time.Now()
		b.CancelledAt = &now
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, availability.ErrDateBooked
		}
		return nil, err
	}

	if status == domain.StatusCancelled && s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b)
	}
	return b, nil
}

// UpdateEvent applies an explicit patch to an event booking and re-validates
// every invariant as if the booking were being created fresh. A patched
// add-on list fully replaces the old one, with prices re-captured from the
// current catalog.
func (s *Service) UpdateEvent(ctx context.Context, id int64, patch EventPatch) (*domain.Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Type != domain.BookingEvent {
		return nil, ErrValidation
	}

	dateStr := b.EventDate.String()
	startStr := domain.ClockOf(b.StartTime).String()
	endStr := domain.ClockOf(b.EndTime).String()
	setupHours := b.ExtraSetupHours

	reprice := false
	if patch.EventDate != nil {
		dateStr, reprice = *patch.EventDate, true
	}
	if patch.StartTime != nil {
		startStr, reprice = *patch.StartTime, true
	}
	if patch.EndTime != nil {
		endStr, reprice = *patch.EndTime, true
	}
	if patch.ExtraSetupHours != nil {
		setupHours, reprice = *patch.ExtraSetupHours, true
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	if patch.Status != nil {
		status, err := domain.ParseStatus(b.Type, *patch.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		// A patched status obeys the same rules as an explicit transition:
		// restating the current status is a no-op, leaving a terminal one is
		// rejected.
		if status != b.Status {
			if b.Status == domain.StatusCancelled || b.Status == domain.StatusCompleted {
				return nil, ErrTerminalStatus
			}
			b.Status = status
			if status == domain.StatusCancelled {
				now := time.Now()
				b.CancelledAt = &now
			}
		}
	}

	// Same checks as a fresh create, excluding this booking from the
	// conflict scan.
	if err := s.avail.CheckEventDate(ctx, date, b.ID); err != nil {
		return nil, err
	}

	if reprice {
		quote, err := s.pricer.Calculate(pricing.Input{
			EventDate:       dateStr,
			StartTime:       startStr,
			EndTime:         endStr,
			ExtraSetupHours: setupHours,
			Type:            domain.BookingEvent,
		})
		if err != nil {
			return nil, err
		}
		b.EventDate = date
		b.StartTime = quote.Start
		b.EndTime = quote.End
		b.DayType = quote.DayType
		b.HourlyRateCents = quote.HourlyRateCents
		b.EventHours = quote.Hours
		b.BaseAmountCents = quote.BaseAmountCents
		b.ExtraSetupHours = quote.ExtraSetupHours
		b.ExtraSetupCents = quote.ExtraSetupCents
		b.DepositCents = quote.DepositCents
		b.TotalCents = quote.TotalCents
	}

	applyContactPatch(b, patch)

	if patch.AddOns != nil {
		items, err := s.captureAddOns(ctx, *patch.AddOns)
		if err != nil {
			return nil, err
		}
		b.AddOns = items
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, availability.ErrDateBooked
		}
		return nil, err
	}
	return b, nil
}

func applyContactPatch(b *domain.Booking, patch EventPatch) {
	if patch.CustomerName != nil {
		b.CustomerName = *patch.CustomerName
	}
	if patch.CustomerEmail != nil {
		b.CustomerEmail = *patch.CustomerEmail
	}
	if patch.CustomerPhone != nil {
		b.CustomerPhone = *patch.CustomerPhone
	}
	if patch.EventType != nil {
		b.EventType = *patch.EventType
	}
	if patch.GuestCount != nil {
		b.GuestCount = *patch.GuestCount
	}
	if patch.TablesRequested != nil {
		b.TablesRequested = *patch.TablesRequested
	}
	if patch.ChairsRequested != nil {
		b.ChairsRequested = *patch.ChairsRequested
	}
	if patch.SetupNotes != nil {
		b.SetupNotes = *patch.SetupNotes
	}
}

// ResolveToken returns the booking behind a management token. An expired
// token is a distinct condition from an unknown one so the caller can render
// different messaging.
func (s *Service) ResolveToken(ctx context.Context, token string) (*domain.Booking, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	b, err := s.bookings.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.ManagementTokenExpiresAt != nil && b.ManagementTokenExpiresAt.Before(time.Now()) {
		return nil, ErrTokenExpired
	}
	return b, nil
}

// CancelByToken is the customer self-service cancel. The token is re-resolved
// here even if the caller just looked it up; possession of a booking record
// is never proof of ongoing validity.
func (s *Service) CancelByToken(ctx context.Context, token string) (*domain.Booking, error) {
	b, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.StatusCancelled {
		return b, nil
	}
	return s.TransitionStatus(ctx, b.ID, string(domain.StatusCancelled))
}

func (s *Service) mintToken(b *domain.Booking) {
	b.ManagementToken = uuid.NewString()
	expires := time.Now().Add(s.tokenTTL)
	b.ManagementTokenExpiresAt = &expires
}

func (s *Service) captureAddOns(ctx context.Context, selections []AddOnSelection) ([]domain.BookingAddOn, error) {
	if len(selections) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(selections))
	for _, sel := range selections {
		if sel.Quantity < 1 {
			return nil, ErrValidation
		}
		ids = append(ids, sel.AddOnID)
	}

	catalog, err := s.addons.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.AddOn, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	items := make([]domain.BookingAddOn, 0, len(selections))
	for _, sel := range selections {
		a, ok := byID[sel.AddOnID]
		if !ok {
			return nil, ErrUnknownAddOn
		}
		items = append(items, domain.BookingAddOn{
			AddOnID:             a.ID,
			Name:                a.Name,
			Quantity:            sel.Quantity,
			PriceAtBookingCents: a.PriceCents,
		})
	}
	return items, nil
}
