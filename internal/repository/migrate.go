package repository

import "gorm.io/gorm"

// AutoMigrate creates the schema plus the partial unique index that enforces
// the one-confirmed-event-per-day rule at the store level. The application
// still checks availability before writing; the index closes the race between
// two concurrent confirmations of the same date.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&bookingModel{},
		&bookingAddOnModel{},
		&addOnModel{},
		&blockedDateModel{},
		&showingWindowModel{},
		&showingConfigModel{},
		&adminUserModel{},
	)
	if err != nil {
		return err
	}

	// Partial index syntax is shared by PostgreSQL and SQLite.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_confirmed_event_per_day
		 ON bookings (event_date)
		 WHERE booking_type = 'event' AND status = 'confirmed'`,
	).Error
}
