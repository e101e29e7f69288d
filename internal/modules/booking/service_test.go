package booking

import (
	"context"
	"testing"
	"time"

	"venuebook/internal/config"
	"venuebook/internal/domain"
	"venuebook/internal/modules/availability"
	"venuebook/internal/modules/pricing"
	"venuebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ListRange(ctx context.Context, from, to domain.Date, bookingType domain.BookingType) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to, bookingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockAvailabilityChecker struct {
	mock.Mock
}

func (m *MockAvailabilityChecker) CheckEventDate(ctx context.Context, date domain.Date, excludeID int64) error {
	args := m.Called(ctx, date, excludeID)
	return args.Error(0)
}

func (m *MockAvailabilityChecker) CheckShowingSlot(ctx context.Context, date domain.Date, start domain.Clock) error {
	args := m.Called(ctx, date, start)
	return args.Error(0)
}

type MockAddOnReader struct {
	mock.Mock
}

func (m *MockAddOnReader) GetActiveByIDs(ctx context.Context, ids []int64) ([]domain.AddOn, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AddOn), args.Error(1)
}

type MockConfigReader struct {
	mock.Mock
}

func (m *MockConfigReader) Config(ctx context.Context) (*domain.ShowingConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShowingConfig), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type testDeps struct {
	bookings *MockBookingRepository
	addons   *MockAddOnReader
	avail    *MockAvailabilityChecker
	schedule *MockConfigReader
	notifs   *MockNotificationSender
}

func newTestService() (*Service, *testDeps) {
	d := &testDeps{
		bookings: new(MockBookingRepository),
		addons:   new(MockAddOnReader),
		avail:    new(MockAvailabilityChecker),
		schedule: new(MockConfigReader),
		notifs:   new(MockNotificationSender),
	}
	pricer := pricing.NewService(config.DefaultPricing())
	svc := NewService(d.bookings, d.addons, d.avail, d.schedule, pricer, d.notifs, 30*24*time.Hour)
	return svc, d
}

// 2024-06-07 is a Friday.
var friday = domain.NewDate(2024, time.June, 7)

func TestService_CreateEvent_Success(t *testing.T) {
	svc, d := newTestService()

	d.avail.On("CheckEventDate", mock.Anything, friday, int64(0)).Return(nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventDate:     "2024-06-07",
		StartTime:     "18:00",
		EndTime:       "23:00",
		CustomerName:  "Dana Wells",
		CustomerEmail: "dana@example.com",
		GuestCount:    80,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.DayWeekend, b.DayType)
	assert.Equal(t, int64(87500), b.BaseAmountCents)
	assert.Equal(t, int64(107500), b.TotalCents)
	assert.NotEmpty(t, b.ManagementToken)
	assert.NotNil(t, b.ManagementTokenExpiresAt)
	d.notifs.AssertCalled(t, "NotifyBookingCreated", mock.Anything, mock.Anything)
}

func TestService_CreateEvent_DateBooked(t *testing.T) {
	svc, d := newTestService()

	d.avail.On("CheckEventDate", mock.Anything, friday, int64(0)).Return(availability.ErrDateBooked)

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventDate:     "2024-06-07",
		StartTime:     "18:00",
		EndTime:       "23:00",
		CustomerName:  "Dana Wells",
		CustomerEmail: "dana@example.com",
	})

	assert.ErrorIs(t, err, availability.ErrDateBooked)
	d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateEvent_RaceLosesToUniqueIndex(t *testing.T) {
	svc, d := newTestService()

	// The availability check passed but a concurrent confirm won the insert.
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(0)).Return(nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrUniqueViolation)

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventDate:     "2024-06-07",
		StartTime:     "18:00",
		EndTime:       "23:00",
		CustomerName:  "Dana Wells",
		CustomerEmail: "dana@example.com",
	})

	assert.ErrorIs(t, err, availability.ErrDateBooked)
}

func TestService_CreateEvent_AddOnPriceCapture(t *testing.T) {
	svc, d := newTestService()

	d.avail.On("CheckEventDate", mock.Anything, friday, int64(0)).Return(nil)
	d.addons.On("GetActiveByIDs", mock.Anything, []int64{3}).Return([]domain.AddOn{
		{ID: 3, Name: "PA system", PriceCents: 7500, Active: true},
	}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventDate:     "2024-06-07",
		StartTime:     "18:00",
		EndTime:       "23:00",
		CustomerName:  "Dana Wells",
		CustomerEmail: "dana@example.com",
		AddOns:        []AddOnSelection{{AddOnID: 3, Quantity: 2}},
	})

	assert.NoError(t, err)
	assert.Len(t, b.AddOns, 1)
	assert.Equal(t, int64(7500), b.AddOns[0].PriceAtBookingCents)
	assert.Equal(t, 2, b.AddOns[0].Quantity)
	// Line items stay separate from the quoted total.
	assert.Equal(t, int64(107500), b.TotalCents)
}

func TestService_CreateEvent_UnknownAddOn(t *testing.T) {
	svc, d := newTestService()

	d.avail.On("CheckEventDate", mock.Anything, friday, int64(0)).Return(nil)
	d.addons.On("GetActiveByIDs", mock.Anything, []int64{42}).Return([]domain.AddOn{}, nil)

	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		EventDate:     "2024-06-07",
		StartTime:     "18:00",
		EndTime:       "23:00",
		CustomerName:  "Dana Wells",
		CustomerEmail: "dana@example.com",
		AddOns:        []AddOnSelection{{AddOnID: 42, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrUnknownAddOn)
}

func TestService_CreateShowing_Success(t *testing.T) {
	svc, d := newTestService()

	// 2024-06-03 is a Monday.
	monday := domain.NewDate(2024, time.June, 3)
	d.avail.On("CheckShowingSlot", mock.Anything, monday, domain.Clock{Hour: 17, Minute: 30}).Return(nil)
	d.schedule.On("Config", mock.Anything).Return(&domain.ShowingConfig{DefaultDurationMinutes: 30, MaxSlotsPerWindow: 1}, nil)
	d.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.CreateShowing(context.Background(), CreateShowingRequest{
		Date:          "2024-06-03",
		StartTime:     "17:30",
		CustomerName:  "Omar Reed",
		CustomerEmail: "omar@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingShowing, b.Type)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, int64(0), b.TotalCents)
	assert.Equal(t, 30*time.Minute, b.EndTime.Sub(b.StartTime))
	assert.NotEmpty(t, b.ManagementToken)
}

func TestService_CreateShowing_SlotTaken(t *testing.T) {
	svc, d := newTestService()

	monday := domain.NewDate(2024, time.June, 3)
	d.avail.On("CheckShowingSlot", mock.Anything, monday, domain.Clock{Hour: 17, Minute: 30}).Return(availability.ErrSlotTaken)

	_, err := svc.CreateShowing(context.Background(), CreateShowingRequest{
		Date:          "2024-06-03",
		StartTime:     "17:30",
		CustomerName:  "Omar Reed",
		CustomerEmail: "omar@example.com",
	})

	assert.ErrorIs(t, err, availability.ErrSlotTaken)
}

func TestService_TransitionStatus_ConfirmRechecksDate(t *testing.T) {
	svc, d := newTestService()

	existing := &domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusPending,
		EventDate: friday,
	}
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(7)).Return(nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.TransitionStatus(context.Background(), 7, "confirmed")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	d.avail.AssertCalled(t, "CheckEventDate", mock.Anything, friday, int64(7))
}

func TestService_TransitionStatus_ConfirmLosesRace(t *testing.T) {
	svc, d := newTestService()

	existing := &domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusPending,
		EventDate: friday,
	}
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(7)).Return(nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(repository.ErrUniqueViolation)

	_, err := svc.TransitionStatus(context.Background(), 7, "confirmed")
	assert.ErrorIs(t, err, availability.ErrDateBooked)
}

func TestService_TransitionStatus_InvalidForType(t *testing.T) {
	svc, d := newTestService()

	// Events never complete; that status belongs to showings.
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		Type:   domain.BookingEvent,
		Status: domain.StatusPending,
	}, nil)

	_, err := svc.TransitionStatus(context.Background(), 7, "completed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_TransitionStatus_CancelCancelledIsIdempotent(t *testing.T) {
	svc, d := newTestService()

	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		Type:   domain.BookingEvent,
		Status: domain.StatusCancelled,
	}, nil)

	b, err := svc.TransitionStatus(context.Background(), 7, "cancelled")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_TransitionStatus_TerminalRejected(t *testing.T) {
	svc, d := newTestService()

	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		Type:   domain.BookingEvent,
		Status: domain.StatusCancelled,
	}, nil)

	_, err := svc.TransitionStatus(context.Background(), 7, "confirmed")
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestService_TransitionStatus_CancelNotifies(t *testing.T) {
	svc, d := newTestService()

	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusConfirmed,
		EventDate: friday,
	}, nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	d.notifs.On("NotifyBookingCancelled", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.TransitionStatus(context.Background(), 7, "cancelled")
	assert.NoError(t, err)
	assert.NotNil(t, b.CancelledAt)
	d.notifs.AssertCalled(t, "NotifyBookingCancelled", mock.Anything, mock.Anything)
}

func TestService_UpdateEvent_RepricesOnTimeChange(t *testing.T) {
	svc, d := newTestService()

	existing := &domain.Booking{
		ID:              7,
		Type:            domain.BookingEvent,
		Status:          domain.StatusPending,
		EventDate:       friday,
		StartTime:       friday.At(domain.Clock{Hour: 18}),
		EndTime:         friday.At(domain.Clock{Hour: 23}),
		TotalCents:      107500,
		ExtraSetupHours: 0,
	}
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(7)).Return(nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	end := "00:00"
	b, err := svc.UpdateEvent(context.Background(), 7, EventPatch{EndTime: &end})
	assert.NoError(t, err)
	// 18:00-24:00 on a weekend: 6 hours at $175.
	assert.Equal(t, 6, b.EventHours)
	assert.Equal(t, int64(105000), b.BaseAmountCents)
	assert.Equal(t, int64(125000), b.TotalCents)
}

func TestService_UpdateEvent_ContactOnlyKeepsPrice(t *testing.T) {
	svc, d := newTestService()

	existing := &domain.Booking{
		ID:         7,
		Type:       domain.BookingEvent,
		Status:     domain.StatusPending,
		EventDate:  friday,
		StartTime:  friday.At(domain.Clock{Hour: 18}),
		EndTime:    friday.At(domain.Clock{Hour: 23}),
		TotalCents: 107500,
	}
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(7)).Return(nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	name := "New Name"
	b, err := svc.UpdateEvent(context.Background(), 7, EventPatch{CustomerName: &name})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", b.CustomerName)
	assert.Equal(t, int64(107500), b.TotalCents)
}

func TestService_UpdateEvent_MovedDateConflicts(t *testing.T) {
	svc, d := newTestService()

	saturday := domain.NewDate(2024, time.June, 8)
	existing := &domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusPending,
		EventDate: friday,
		StartTime: friday.At(domain.Clock{Hour: 18}),
		EndTime:   friday.At(domain.Clock{Hour: 23}),
	}
	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(existing, nil)
	d.avail.On("CheckEventDate", mock.Anything, saturday, int64(7)).Return(availability.ErrDateBooked)

	newDate := "2024-06-08"
	_, err := svc.UpdateEvent(context.Background(), 7, EventPatch{EventDate: &newDate})
	assert.ErrorIs(t, err, availability.ErrDateBooked)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateEvent_StatusCannotLeaveTerminal(t *testing.T) {
	svc, d := newTestService()

	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusCancelled,
		EventDate: friday,
		StartTime: friday.At(domain.Clock{Hour: 18}),
		EndTime:   friday.At(domain.Clock{Hour: 23}),
	}, nil)

	// A patch cannot resurrect a cancelled booking any more than an explicit
	// transition can.
	status := "confirmed"
	_, err := svc.UpdateEvent(context.Background(), 7, EventPatch{Status: &status})
	assert.ErrorIs(t, err, ErrTerminalStatus)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateEvent_StatusCancelSetsTimestamp(t *testing.T) {
	svc, d := newTestService()

	d.bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:        7,
		Type:      domain.BookingEvent,
		Status:    domain.StatusPending,
		EventDate: friday,
		StartTime: friday.At(domain.Clock{Hour: 18}),
		EndTime:   friday.At(domain.Clock{Hour: 23}),
	}, nil)
	d.avail.On("CheckEventDate", mock.Anything, friday, int64(7)).Return(nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	status := "cancelled"
	b, err := svc.UpdateEvent(context.Background(), 7, EventPatch{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.NotNil(t, b.CancelledAt)
}

func TestService_ResolveToken(t *testing.T) {
	svc, d := newTestService()

	future := time.Now().Add(time.Hour)
	d.bookings.On("GetByToken", mock.Anything, "good").Return(&domain.Booking{
		ID:                       7,
		ManagementToken:          "good",
		ManagementTokenExpiresAt: &future,
	}, nil)

	b, err := svc.ResolveToken(context.Background(), "good")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), b.ID)
}

func TestService_ResolveToken_ExpiredVsUnknown(t *testing.T) {
	svc, d := newTestService()

	past := time.Now().Add(-time.Hour)
	d.bookings.On("GetByToken", mock.Anything, "stale").Return(&domain.Booking{
		ID:                       7,
		ManagementToken:          "stale",
		ManagementTokenExpiresAt: &past,
	}, nil)
	d.bookings.On("GetByToken", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.ResolveToken(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = svc.ResolveToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ResolveToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CancelByToken_Idempotent(t *testing.T) {
	svc, d := newTestService()

	future := time.Now().Add(time.Hour)
	d.bookings.On("GetByToken", mock.Anything, "good").Return(&domain.Booking{
		ID:                       7,
		Status:                   domain.StatusCancelled,
		Type:                     domain.BookingEvent,
		ManagementToken:          "good",
		ManagementTokenExpiresAt: &future,
	}, nil)

	b, err := svc.CancelByToken(context.Background(), "good")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, b.Status)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
