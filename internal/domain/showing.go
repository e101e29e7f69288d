package domain

// ShowingWindow is a recurring weekly window during which showing
// appointments may be booked. Unique per (DayOfWeek, StartTime, EndTime).
type ShowingWindow struct {
	ID        int64 `json:"id"`
	DayOfWeek int   `json:"day_of_week"` // 0=Sunday .. 6=Saturday
	StartTime Clock `json:"start_time"`
	EndTime   Clock `json:"end_time"`
	Enabled   bool  `json:"enabled"`
}

// ShowingConfigKey is the key of the single showing configuration row.
const ShowingConfigKey = "default"

// UnlimitedSlots marks MaxSlotsPerWindow as uncapped.
const UnlimitedSlots = 999

type ShowingConfig struct {
	Key                    string `json:"key"`
	DefaultDurationMinutes int    `json:"default_duration_minutes"`
	MaxSlotsPerWindow      int    `json:"max_slots_per_window"`
}

func (c ShowingConfig) Unlimited() bool { return c.MaxSlotsPerWindow >= UnlimitedSlots }

// DefaultShowingConfig is used until an admin saves an explicit one.
func DefaultShowingConfig() ShowingConfig {
	return ShowingConfig{
		Key:                    ShowingConfigKey,
		DefaultDurationMinutes: 30,
		MaxSlotsPerWindow:      1,
	}
}
