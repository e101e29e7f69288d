package repository

import (
	"context"
	"errors"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type ShowingRepository struct {
	db *gorm.DB
}

func NewShowingRepository(db *gorm.DB) *ShowingRepository {
	return &ShowingRepository{db: db}
}

type showingWindowModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	DayOfWeek int    `gorm:"column:day_of_week;uniqueIndex:idx_window_day_times"`
	StartTime string `gorm:"column:start_time;uniqueIndex:idx_window_day_times"`
	EndTime   string `gorm:"column:end_time;uniqueIndex:idx_window_day_times"`
	Enabled   bool   `gorm:"column:enabled"`
}

func (showingWindowModel) TableName() string { return "showing_windows" }

type showingConfigModel struct {
	Key                    string `gorm:"column:config_key;primaryKey"`
	DefaultDurationMinutes int    `gorm:"column:default_duration_minutes"`
	MaxSlotsPerWindow      int    `gorm:"column:max_slots_per_window"`
}

func (showingConfigModel) TableName() string { return "showing_config" }

func toDomainWindow(m showingWindowModel) (*domain.ShowingWindow, error) {
	start, err := domain.ParseClock(m.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseClock(m.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.ShowingWindow{
		ID:        m.ID,
		DayOfWeek: m.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		Enabled:   m.Enabled,
	}, nil
}

func (r *ShowingRepository) CreateWindow(ctx context.Context, w *domain.ShowingWindow) error {
	m := showingWindowModel{
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		Enabled:   w.Enabled,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	w.ID = m.ID
	return nil
}

func (r *ShowingRepository) SetWindowEnabled(ctx context.Context, id int64, enabled bool) error {
	tx := r.db.WithContext(ctx).Model(&showingWindowModel{}).Where("id = ?", id).Update("enabled", enabled)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShowingRepository) DeleteWindow(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&showingWindowModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShowingRepository) ListWindows(ctx context.Context) ([]domain.ShowingWindow, error) {
	var models []showingWindowModel
	err := r.db.WithContext(ctx).Order("day_of_week, start_time").Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	return windowsToDomain(models)
}

// WindowsForDay returns the enabled windows for a weekday (0=Sunday).
func (r *ShowingRepository) WindowsForDay(ctx context.Context, dayOfWeek int) ([]domain.ShowingWindow, error) {
	var models []showingWindowModel
	err := r.db.WithContext(ctx).
		Where("day_of_week = ? AND enabled = ?", dayOfWeek, true).
		Order("start_time").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	return windowsToDomain(models)
}

func windowsToDomain(models []showingWindowModel) ([]domain.ShowingWindow, error) {
	out := make([]domain.ShowingWindow, 0, len(models))
	for _, m := range models {
		w, err := toDomainWindow(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, nil
}

// Config returns the singleton showing configuration, falling back to the
// built-in default when no row has been saved yet.
func (r *ShowingRepository) Config(ctx context.Context) (*domain.ShowingConfig, error) {
	var m showingConfigModel
	err := r.db.WithContext(ctx).Where("config_key = ?", domain.ShowingConfigKey).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg := domain.DefaultShowingConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return &domain.ShowingConfig{
		Key:                    m.Key,
		DefaultDurationMinutes: m.DefaultDurationMinutes,
		MaxSlotsPerWindow:      m.MaxSlotsPerWindow,
	}, nil
}

func (r *ShowingRepository) SaveConfig(ctx context.Context, cfg *domain.ShowingConfig) error {
	m := showingConfigModel{
		Key:                    domain.ShowingConfigKey,
		DefaultDurationMinutes: cfg.DefaultDurationMinutes,
		MaxSlotsPerWindow:      cfg.MaxSlotsPerWindow,
	}
	return translate(r.db.WithContext(ctx).Save(&m).Error)
}
