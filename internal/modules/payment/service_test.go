package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"venuebook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type MockTokenResolver struct {
	mock.Mock
}

func (m *MockTokenResolver) ResolveToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

const testSecret = "whsec_test"

func sign(payload []byte) string {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newTestService() (*Service, *MockBookingStore, *MockTokenResolver, *MockGateway) {
	bookings := new(MockBookingStore)
	tokens := new(MockTokenResolver)
	gateway := new(MockGateway)
	svc := NewService(bookings, tokens, gateway, testSecret, nil)
	return svc, bookings, tokens, gateway
}

func TestCreateDepositCheckout(t *testing.T) {
	svc, bookings, _, gateway := newTestService()

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:           7,
		Type:         domain.BookingEvent,
		DepositCents: 20000,
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p CheckoutParams) bool {
		return p.AmountCents == 20000 && p.Metadata["purpose"] == "deposit" && p.Metadata["booking_id"] == "7"
	})).Return(&CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/cs_123"}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	session, err := svc.CreateDepositCheckout(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
}

func TestCreateDepositCheckout_ShowingRejected(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:   7,
		Type: domain.BookingShowing,
	}, nil)

	_, err := svc.CreateDepositCheckout(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotEvent)
}

func TestCreateBalanceCheckout(t *testing.T) {
	svc, bookings, tokens, gateway := newTestService()

	tokens.On("ResolveToken", mock.Anything, "tok").Return(&domain.Booking{
		ID:              7,
		Type:            domain.BookingEvent,
		TotalCents:      107500,
		AmountPaidCents: 20000,
	}, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(p CheckoutParams) bool {
		return p.AmountCents == 87500 && p.Metadata["purpose"] == "balance"
	})).Return(&CheckoutSession{ID: "cs_456", URL: "https://checkout.stripe.com/cs_456"}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	session, err := svc.CreateBalanceCheckout(context.Background(), "tok")
	assert.NoError(t, err)
	assert.Equal(t, "cs_456", session.ID)
}

func TestCreateBalanceCheckout_NothingDue(t *testing.T) {
	svc, _, tokens, _ := newTestService()

	tokens.On("ResolveToken", mock.Anything, "tok").Return(&domain.Booking{
		ID:              7,
		Type:            domain.BookingEvent,
		TotalCents:      107500,
		AmountPaidCents: 107500,
	}, nil)

	_, err := svc.CreateBalanceCheckout(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNothingDue)
}

func depositWebhookPayload(sessionID string) []byte {
	return []byte(fmt.Sprintf(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": %q,
			"amount_total": 20000,
			"payment_status": "paid",
			"metadata": {"booking_id": "7", "purpose": "deposit"}
		}}
	}`, sessionID))
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	svc, _, _, _ := newTestService()

	payload := depositWebhookPayload("cs_123")
	err := svc.HandleWebhook(context.Background(), payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	err = svc.HandleWebhook(context.Background(), payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandleWebhook_DepositConfirmsPendingEvent(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	b := &domain.Booking{
		ID:           7,
		Type:         domain.BookingEvent,
		Status:       domain.StatusPending,
		DepositCents: 20000,
		TotalCents:   107500,
	}
	bookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	payload := depositWebhookPayload("cs_123")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	assert.Equal(t, int64(20000), b.AmountPaidCents)
	assert.Equal(t, "stripe", b.PaymentMethod)
	assert.Equal(t, "cs_123", b.StripeSessionID)
}

func TestHandleWebhook_RetryIsIdempotent(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	// Already applied: same session, same payment status.
	b := &domain.Booking{
		ID:                  7,
		Type:                domain.BookingEvent,
		Status:              domain.StatusConfirmed,
		PaymentMethod:       "stripe",
		StripeSessionID:     "cs_123",
		StripePaymentStatus: "paid",
		AmountPaidCents:     20000,
	}
	bookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	payload := depositWebhookPayload("cs_123")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), b.AmountPaidCents)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleWebhook_SecondDepositSessionDoesNotDoubleCount(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	// The deposit was settled through an earlier session; a completed session
	// with a fresh id must not be applied on top.
	b := &domain.Booking{
		ID:                  7,
		Type:                domain.BookingEvent,
		Status:              domain.StatusConfirmed,
		PaymentMethod:       "stripe",
		StripeSessionID:     "cs_123",
		StripePaymentStatus: "paid",
		DepositCents:        20000,
		TotalCents:          107500,
		AmountPaidCents:     20000,
	}
	bookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	payload := depositWebhookPayload("cs_456")
	err := svc.HandleWebhook(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), b.AmountPaidCents)
	assert.Equal(t, "cs_123", b.StripeSessionID)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleWebhook_SecondBalanceSessionDoesNotDoubleCount(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	b := &domain.Booking{
		ID:                  7,
		Type:                domain.BookingEvent,
		Status:              domain.StatusConfirmed,
		PaymentMethod:       "stripe",
		StripeSessionID:     "cs_456",
		StripePaymentStatus: "paid",
		DepositCents:        20000,
		TotalCents:          107500,
		AmountPaidCents:     107500,
	}
	bookings.On("GetByID", mock.Anything, int64(7)).Return(b, nil)

	payload := []byte(`{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_789",
			"amount_total": 87500,
			"payment_status": "paid",
			"metadata": {"booking_id": "7", "purpose": "balance"}
		}}
	}`)
	err := svc.HandleWebhook(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, int64(107500), b.AmountPaidCents)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestHandleWebhook_IgnoresOtherEventTypes(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	payload := []byte(`{"type": "payment_intent.created", "data": {"object": {}}}`)
	err := svc.HandleWebhook(context.Background(), payload, sign(payload))
	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
