package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

const (
	purposeDeposit = "deposit"
	purposeBalance = "balance"
)

type Service struct {
	bookings      bookingStore
	tokens        tokenResolver
	gateway       Gateway
	webhookSecret string
	loggerf       func(format string, args ...interface{})
}

func NewService(bookings bookingStore, tokens tokenResolver, gateway Gateway, webhookSecret string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings:      bookings,
		tokens:        tokens,
		gateway:       gateway,
		webhookSecret: webhookSecret,
		loggerf:       loggerf,
	}
}

// CreateDepositCheckout opens a checkout session for an event booking's
// deposit. A gateway failure aborts here; the booking itself stays as it was.
func (s *Service) CreateDepositCheckout(ctx context.Context, bookingID int64) (*CheckoutSession, error) {
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

	return s.checkout(ctx, b, b.DepositCents, purposeDeposit,
		fmt.Sprintf("Event deposit, %s", b.EventDate))
}

// CreateBalanceCheckout opens a checkout session for the amount still owed,
// reached through the customer's management token.
func (s *Service) CreateBalanceCheckout(ctx context.Context, token string) (*CheckoutSession, error) {
	b, err := s.tokens.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if b.Type != domain.BookingEvent {
		return nil, ErrNotEvent
	}
	balance := b.BalanceCents()
	if balance <= 0 {
		return nil, ErrNothingDue
	}

	return s.checkout(ctx, b, balance, purposeBalance,
		fmt.Sprintf("Event balance, %s", b.EventDate))
}

func (s *Service) checkout(ctx context.Context, b *domain.Booking, amountCents int64, purpose, description string) (*CheckoutSession, error) {
	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		AmountCents: amountCents,
		Currency:    "usd",
		Description: description,
		Metadata: map[string]string{
			"booking_id": strconv.FormatInt(b.ID, 10),
			"purpose":    purpose,
		},
	})
	if err != nil {
		return nil, err
	}

	b.StripeSessionID = session.ID
	if uerr := s.bookings.Update(ctx, b); uerr != nil {
		s.loggerf("level=error msg=failed to record checkout session booking_id=%d err=%v", b.ID, uerr)
	}
	return session, nil
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID            string            `json:"id"`
			AmountTotal   int64             `json:"amount_total"`
			PaymentStatus string            `json:"payment_status"`
			Metadata      map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook verifies and applies a gateway callback. Completed checkout
// sessions add to the amount paid; a completed deposit confirms a pending
// event. The update is idempotent per session id.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if !s.verifySignature(payload, sigHeader) {
		return ErrInvalidSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("decode webhook payload: %w", err)
	}
	if event.Type != "checkout.session.completed" {
		s.loggerf("level=info msg=ignoring webhook event type=%s", event.Type)
		return nil
	}

	obj := event.Data.Object
	bookingID, err := strconv.ParseInt(obj.Metadata["booking_id"], 10, 64)
	if err != nil {
		return fmt.Errorf("webhook missing booking_id metadata")
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	// Stripe retries webhooks; a session already applied must not pay twice.
	if b.PaymentMethod == "stripe" && b.StripeSessionID == obj.ID && b.StripePaymentStatus == obj.PaymentStatus {
		return nil
	}

	// A distinct completed session for a purpose that is already settled is a
	// duplicate payment, not a top-up; it must not inflate the amount paid.
	if purposeSettled(b, obj.Metadata["purpose"]) {
		s.loggerf("level=info msg=ignoring duplicate payment session booking_id=%d session=%s purpose=%s",
			b.ID, obj.ID, obj.Metadata["purpose"])
		return nil
	}

	b.StripeSessionID = obj.ID
	b.StripePaymentStatus = obj.PaymentStatus
	b.PaymentMethod = "stripe"
	b.AmountPaidCents += obj.AmountTotal

	if obj.Metadata["purpose"] == purposeDeposit &&
		b.Type == domain.BookingEvent && b.Status == domain.StatusPending {
		b.Status = domain.StatusConfirmed
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			// Another event was confirmed on this date first; record the
			// payment without confirming so an admin can resolve it.
			b.Status = domain.StatusPending
			if rerr := s.bookings.Update(ctx, b); rerr != nil {
				return rerr
			}
			s.loggerf("level=error msg=deposit paid but date already confirmed booking_id=%d", b.ID)
			return nil
		}
		return err
	}

	s.loggerf("level=info msg=payment applied booking_id=%d amount_cents=%d purpose=%s",
		b.ID, obj.AmountTotal, obj.Metadata["purpose"])
	return nil
}

func purposeSettled(b *domain.Booking, purpose string) bool {
	switch purpose {
	case purposeDeposit:
		return b.DepositCents > 0 && b.AmountPaidCents >= b.DepositCents
	case purposeBalance:
		return b.BalanceCents() <= 0
	}
	return false
}

// verifySignature checks the Stripe-Signature header: "t=<ts>,v1=<hex hmac>"
// where the hmac is SHA-256 over "<ts>.<payload>" with the webhook secret.
func (s *Service) verifySignature(payload []byte, sigHeader string) bool {
	if s.webhookSecret == "" || sigHeader == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(sigHeader, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}
