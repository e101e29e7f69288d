package domain

import "time"

// AddOn is a catalog item (tables, linens, AV gear) offered with event
// bookings. Items referenced by any booking are deactivated instead of
// deleted so historical bookings keep their line items.
type AddOn struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Active     bool      `json:"active"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingAddOn is a line item on a booking. PriceAtBookingCents freezes the
// catalog price at the time the item was added; later catalog edits never
// change what an existing booking owes.
type BookingAddOn struct {
	ID                  int64  `json:"id"`
	BookingID           int64  `json:"booking_id"`
	AddOnID             int64  `json:"add_on_id"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	PriceAtBookingCents int64  `json:"price_at_booking_cents"`
}
