package domain

import (
	"fmt"
	"strings"
	"time"
)

type BookingType string

const (
	BookingEvent   BookingType = "event"
	BookingShowing BookingType = "showing"
)

func ParseBookingType(s string) (BookingType, error) {
	switch BookingType(strings.ToLower(strings.TrimSpace(s))) {
	case BookingEvent:
		return BookingEvent, nil
	case BookingShowing:
		return BookingShowing, nil
	}
	return "", fmt.Errorf("unknown booking type %q", s)
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseStatus validates a status value against the closed set for the booking
// type. Events move pending -> confirmed/cancelled, showings move
// pending -> completed/cancelled. Anything else is rejected, never coerced.
func ParseStatus(t BookingType, s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case BookingEvent:
		switch status {
		case StatusPending, StatusConfirmed, StatusCancelled:
			return status, nil
		}
	case BookingShowing:
		switch status {
		case StatusPending, StatusCompleted, StatusCancelled:
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status %q for %s booking", s, t)
}

type DayType string

const (
	DayWeekday DayType = "weekday"
	DayWeekend DayType = "weekend"
)

// DayTypeOf classifies a date for pricing. Friday counts as weekend together
// with Saturday and Sunday; this is venue policy, not an accident.
func DayTypeOf(d Date) DayType {
	switch d.Weekday() {
	case time.Sunday, time.Friday, time.Saturday:
		return DayWeekend
	default:
		return DayWeekday
	}
}

type Booking struct {
	ID     int64         `json:"id"`
	Type   BookingType   `json:"booking_type"`
	Status BookingStatus `json:"status"`

	EventDate Date      `json:"event_date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Pricing breakdown, integer cents throughout. Zeroed for showings.
	DayType             DayType `json:"day_type,omitempty"`
	HourlyRateCents     int64   `json:"hourly_rate_cents"`
	EventHours          int     `json:"event_hours"`
	BaseAmountCents     int64   `json:"base_amount_cents"`
	ExtraSetupHours     int     `json:"extra_setup_hours"`
	ExtraSetupCents     int64   `json:"extra_setup_cents"`
	DepositCents        int64   `json:"deposit_cents"`
	TotalCents          int64   `json:"total_cents"`
	AmountPaidCents     int64   `json:"amount_paid_cents"`
	PaymentMethod       string  `json:"payment_method,omitempty"`
	StripePaymentStatus string  `json:"stripe_payment_status,omitempty"`
	StripeSessionID     string  `json:"-"`

	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	// Event-only detail.
	EventType       string `json:"event_type,omitempty"`
	GuestCount      int    `json:"guest_count,omitempty"`
	TablesRequested int    `json:"tables_requested,omitempty"`
	ChairsRequested int    `json:"chairs_requested,omitempty"`
	SetupNotes      string `json:"setup_notes,omitempty"`

	ContractAccepted   bool       `json:"contract_accepted"`
	ContractAcceptedAt *time.Time `json:"contract_accepted_at,omitempty"`
	ContractSignerName string     `json:"contract_signer_name,omitempty"`
	ContractVersion    int        `json:"contract_version,omitempty"`
	ContractText       string     `json:"contract_text,omitempty"`

	ManagementToken          string     `json:"-"`
	ManagementTokenExpiresAt *time.Time `json:"-"`

	AddOns []BookingAddOn `json:"add_ons,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// Blocks reports whether this booking closes its date to other bookings.
// Only confirmed events block; pending and cancelled ones do not.
func (b *Booking) Blocks() bool {
	return b.Type == BookingEvent && b.Status == StatusConfirmed
}

// BalanceCents is the amount still owed on the booking.
func (b *Booking) BalanceCents() int64 { return b.TotalCents - b.AmountPaidCents }
