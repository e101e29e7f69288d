package domain

import "time"

// BlockedDate makes a date unbookable for both events and showings.
// At most one record exists per date.
type BlockedDate struct {
	ID        int64     `json:"id"`
	Date      Date      `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
