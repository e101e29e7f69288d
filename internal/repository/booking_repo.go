package repository

import (
	"context"
	"time"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Type      string `gorm:"column:booking_type;index:idx_bookings_date_type"`
	Status    string `gorm:"column:status;index"`
	EventDate string `gorm:"column:event_date;index:idx_bookings_date_type"`

	StartTime time.Time `gorm:"column:start_time"`
	EndTime   time.Time `gorm:"column:end_time"`

	DayType             string `gorm:"column:day_type"`
	HourlyRateCents     int64  `gorm:"column:hourly_rate_cents"`
	EventHours          int    `gorm:"column:event_hours"`
	BaseAmountCents     int64  `gorm:"column:base_amount_cents"`
	ExtraSetupHours     int    `gorm:"column:extra_setup_hours"`
	ExtraSetupCents     int64  `gorm:"column:extra_setup_cents"`
	DepositCents        int64  `gorm:"column:deposit_cents"`
	TotalCents          int64  `gorm:"column:total_cents"`
	AmountPaidCents     int64  `gorm:"column:amount_paid_cents"`
	PaymentMethod       string `gorm:"column:payment_method"`
	StripePaymentStatus string `gorm:"column:stripe_payment_status"`
	StripeSessionID     string `gorm:"column:stripe_session_id"`

	CustomerName  string `gorm:"column:customer_name"`
	CustomerEmail string `gorm:"column:customer_email"`
	CustomerPhone string `gorm:"column:customer_phone"`

	EventType       string `gorm:"column:event_type"`
	GuestCount      int    `gorm:"column:guest_count"`
	TablesRequested int    `gorm:"column:tables_requested"`
	ChairsRequested int    `gorm:"column:chairs_requested"`
	SetupNotes      string `gorm:"column:setup_notes;type:text"`

	ContractAccepted   bool       `gorm:"column:contract_accepted"`
	ContractAcceptedAt *time.Time `gorm:"column:contract_accepted_at"`
	ContractSignerName string     `gorm:"column:contract_signer_name"`
	ContractVersion    int        `gorm:"column:contract_version"`
	ContractText       string     `gorm:"column:contract_text;type:text"`

	ManagementToken          *string    `gorm:"column:management_token;uniqueIndex"`
	ManagementTokenExpiresAt *time.Time `gorm:"column:management_token_expires_at"`

	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type bookingAddOnModel struct {
	ID                  int64  `gorm:"column:id;primaryKey"`
	BookingID           int64  `gorm:"column:booking_id;index"`
	AddOnID             int64  `gorm:"column:add_on_id"`
	Name                string `gorm:"column:name"`
	Quantity            int    `gorm:"column:quantity"`
	PriceAtBookingCents int64  `gorm:"column:price_at_booking_cents"`
}

func (bookingAddOnModel) TableName() string { return "booking_add_ons" }

func toDomainBooking(m bookingModel, items []bookingAddOnModel) (*domain.Booking, error) {
	date, err := domain.ParseDate(m.EventDate)
	if err != nil {
		return nil, err
	}

	var token string
	if m.ManagementToken != nil {
		token = *m.ManagementToken
	}

	b := &domain.Booking{
		ID:                       m.ID,
		Type:                     domain.BookingType(m.Type),
		Status:                   domain.BookingStatus(m.Status),
		EventDate:                date,
		StartTime:                m.StartTime,
		EndTime:                  m.EndTime,
		DayType:                  domain.DayType(m.DayType),
		HourlyRateCents:          m.HourlyRateCents,
		EventHours:               m.EventHours,
		BaseAmountCents:          m.BaseAmountCents,
		ExtraSetupHours:          m.ExtraSetupHours,
		ExtraSetupCents:          m.ExtraSetupCents,
		DepositCents:             m.DepositCents,
		TotalCents:               m.TotalCents,
		AmountPaidCents:          m.AmountPaidCents,
		PaymentMethod:            m.PaymentMethod,
		StripePaymentStatus:      m.StripePaymentStatus,
		StripeSessionID:          m.StripeSessionID,
		CustomerName:             m.CustomerName,
		CustomerEmail:            m.CustomerEmail,
		CustomerPhone:            m.CustomerPhone,
		EventType:                m.EventType,
		GuestCount:               m.GuestCount,
		TablesRequested:          m.TablesRequested,
		ChairsRequested:          m.ChairsRequested,
		SetupNotes:               m.SetupNotes,
		ContractAccepted:         m.ContractAccepted,
		ContractAcceptedAt:       m.ContractAcceptedAt,
		ContractSignerName:       m.ContractSignerName,
		ContractVersion:          m.ContractVersion,
		ContractText:             m.ContractText,
		ManagementToken:          token,
		ManagementTokenExpiresAt: m.ManagementTokenExpiresAt,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
		CancelledAt:              m.CancelledAt,
	}
	for _, it := range items {
		b.AddOns = append(b.AddOns, domain.BookingAddOn{
			ID:                  it.ID,
			BookingID:           it.BookingID,
			AddOnID:             it.AddOnID,
			Name:                it.Name,
			Quantity:            it.Quantity,
			PriceAtBookingCents: it.PriceAtBookingCents,
		})
	}
	return b, nil
}

func toBookingModel(b *domain.Booking) bookingModel {
	var token *string
	if b.ManagementToken != "" {
		v := b.ManagementToken
		token = &v
	}

	return bookingModel{
		ID:                       b.ID,
		Type:                     string(b.Type),
		Status:                   string(b.Status),
		EventDate:                b.EventDate.String(),
		StartTime:                b.StartTime,
		EndTime:                  b.EndTime,
		DayType:                  string(b.DayType),
		HourlyRateCents:          b.HourlyRateCents,
		EventHours:               b.EventHours,
		BaseAmountCents:          b.BaseAmountCents,
		ExtraSetupHours:          b.ExtraSetupHours,
		ExtraSetupCents:          b.ExtraSetupCents,
		DepositCents:             b.DepositCents,
		TotalCents:               b.TotalCents,
		AmountPaidCents:          b.AmountPaidCents,
		PaymentMethod:            b.PaymentMethod,
		StripePaymentStatus:      b.StripePaymentStatus,
		StripeSessionID:          b.StripeSessionID,
		CustomerName:             b.CustomerName,
		CustomerEmail:            b.CustomerEmail,
		CustomerPhone:            b.CustomerPhone,
		EventType:                b.EventType,
		GuestCount:               b.GuestCount,
		TablesRequested:          b.TablesRequested,
		ChairsRequested:          b.ChairsRequested,
		SetupNotes:               b.SetupNotes,
		ContractAccepted:         b.ContractAccepted,
		ContractAcceptedAt:       b.ContractAcceptedAt,
		ContractSignerName:       b.ContractSignerName,
		ContractVersion:          b.ContractVersion,
		ContractText:             b.ContractText,
		ManagementToken:          token,
		ManagementTokenExpiresAt: b.ManagementTokenExpiresAt,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
		CancelledAt:              b.CancelledAt,
	}
}

// Create inserts the booking and its add-on line items in one transaction.
// A violation of the one-confirmed-event-per-day index surfaces as
// ErrUniqueViolation.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		for i := range b.AddOns {
			item := bookingAddOnModel{
				BookingID:           m.ID,
				AddOnID:             b.AddOns[i].AddOnID,
				Name:                b.AddOns[i].Name,
				Quantity:            b.AddOns[i].Quantity,
				PriceAtBookingCents: b.AddOns[i].PriceAtBookingCents,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			b.AddOns[i].ID = item.ID
			b.AddOns[i].BookingID = m.ID
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	b.ID = m.ID
	b.CreatedAt = m.CreatedAt
	b.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	items, err := r.addOnsFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m, items)
}

// GetByToken looks a booking up by its management token. The unique index on
// the column guarantees at most one match.
func (r *BookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Where("management_token = ?", token).First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	items, err := r.addOnsFor(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return toDomainBooking(m, items)
}

// Update persists every mutable field of the booking and replaces its add-on
// list wholesale (delete-all-then-recreate, matching how edits capture
// current catalog prices).
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("booking_id = ?", b.ID).Delete(&bookingAddOnModel{}).Error; err != nil {
			return err
		}
		for i := range b.AddOns {
			item := bookingAddOnModel{
				BookingID:           b.ID,
				AddOnID:             b.AddOns[i].AddOnID,
				Name:                b.AddOns[i].Name,
				Quantity:            b.AddOns[i].Quantity,
				PriceAtBookingCents: b.AddOns[i].PriceAtBookingCents,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			b.AddOns[i].ID = item.ID
			b.AddOns[i].BookingID = b.ID
		}
		return nil
	})
	return translate(err)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	updates := map[string]any{"status": string(status)}
	if status == domain.StatusCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates).Error
	return translate(err)
}

// UpdatePayment records a payment-gateway result on the booking.
func (r *BookingRepository) UpdatePayment(ctx context.Context, id int64, stripeStatus string, amountPaidCents int64, method string) error {
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"stripe_payment_status": stripeStatus,
		"amount_paid_cents":     amountPaidCents,
		"payment_method":        method,
	}).Error
	return translate(err)
}

// BlockingEventExists reports whether a confirmed event occupies the date.
// excludeID skips the booking being edited.
func (r *BookingRepository) BlockingEventExists(ctx context.Context, date domain.Date, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("booking_type = ? AND event_date = ? AND status = ?",
			string(domain.BookingEvent), date.String(), string(domain.StatusConfirmed))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// ListShowingsOnDate returns all non-cancelled showings for the date.
func (r *BookingRepository) ListShowingsOnDate(ctx context.Context, date domain.Date) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("booking_type = ? AND event_date = ? AND status <> ?",
			string(domain.BookingShowing), date.String(), string(domain.StatusCancelled)).
		Order("start_time").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	return r.toDomainList(models)
}

// ListRange returns bookings whose event date falls in [from, to], optionally
// filtered by type. Used by the admin calendar.
func (r *BookingRepository) ListRange(ctx context.Context, from, to domain.Date, bookingType domain.BookingType) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("event_date >= ? AND event_date <= ?", from.String(), to.String())
	if bookingType != "" {
		q = q.Where("booking_type = ?", string(bookingType))
	}
	var models []bookingModel
	if err := q.Order("event_date, start_time").Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	return r.toDomainList(models)
}

func (r *BookingRepository) addOnsFor(ctx context.Context, bookingID int64) ([]bookingAddOnModel, error) {
	var items []bookingAddOnModel
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (r *BookingRepository) toDomainList(models []bookingModel) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		b, err := toDomainBooking(m, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

// IsAddOnReferenced reports whether any booking line item points at the
// catalog entry. Referenced add-ons are deactivated, never deleted.
func (r *BookingRepository) IsAddOnReferenced(ctx context.Context, addOnID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&bookingAddOnModel{}).
		Where("add_on_id = ?", addOnID).Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}
