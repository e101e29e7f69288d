package schedule

import (
	"context"
	"errors"

	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

type blockedDateStore interface {
	Create(ctx context.Context, bd *domain.BlockedDate) error
	List(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
}

type windowStore interface {
	CreateWindow(ctx context.Context, w *domain.ShowingWindow) error
	ListWindows(ctx context.Context) ([]domain.ShowingWindow, error)
	SetWindowEnabled(ctx context.Context, id int64, enabled bool) error
	DeleteWindow(ctx context.Context, id int64) error
	Config(ctx context.Context) (*domain.ShowingConfig, error)
	SaveConfig(ctx context.Context, cfg *domain.ShowingConfig) error
}

// Service is the admin surface over the venue calendar: blocked dates, weekly
// showing windows, and the showing slot configuration.
type Service struct {
	blocked blockedDateStore
	windows windowStore
}

func NewService(blocked blockedDateStore, windows windowStore) *Service {
	return &Service{blocked: blocked, windows: windows}
}

func (s *Service) BlockDate(ctx context.Context, dateStr, reason string) (*domain.BlockedDate, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, ErrValidation
	}

	bd := &domain.BlockedDate{Date: date, Reason: reason}
	if err := s.blocked.Create(ctx, bd); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDateAlreadyBlocked
		}
		return nil, err
	}
	return bd, nil
}

func (s *Service) ListBlockedDates(ctx context.Context, fromStr, toStr string) ([]domain.BlockedDate, error) {
	from, err := domain.ParseDate(fromStr)
	if err != nil {
		return nil, ErrValidation
	}
	to, err := domain.ParseDate(toStr)
	if err != nil {
		return nil, ErrValidation
	}
	return s.blocked.List(ctx, from, to)
}

func (s *Service) UnblockDate(ctx context.Context, id int64) error {
	err := s.blocked.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) AddWindow(ctx context.Context, dayOfWeek int, startStr, endStr string, enabled bool) (*domain.ShowingWindow, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrValidation
	}
	start, err := domain.ParseClock(startStr)
	if err != nil {
		return nil, ErrValidation
	}
	end, err := domain.ParseClock(endStr)
	if err != nil {
		return nil, ErrValidation
	}
	if !start.Before(end) {
		return nil, ErrValidation
	}

	w := &domain.ShowingWindow{DayOfWeek: dayOfWeek, StartTime: start, EndTime: end, Enabled: enabled}
	if err := s.windows.CreateWindow(ctx, w); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrWindowExists
		}
		return nil, err
	}
	return w, nil
}

func (s *Service) ListWindows(ctx context.Context) ([]domain.ShowingWindow, error) {
	return s.windows.ListWindows(ctx)
}

func (s *Service) SetWindowEnabled(ctx context.Context, id int64, enabled bool) error {
	err := s.windows.SetWindowEnabled(ctx, id, enabled)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) DeleteWindow(ctx context.Context, id int64) error {
	err := s.windows.DeleteWindow(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *Service) Config(ctx context.Context) (*domain.ShowingConfig, error) {
	return s.windows.Config(ctx)
}

// UpdateConfig saves the singleton showing configuration. MaxSlotsPerWindow
// of 999 or more means unlimited.
func (s *Service) UpdateConfig(ctx context.Context, durationMinutes, maxSlots int) (*domain.ShowingConfig, error) {
	if durationMinutes <= 0 || maxSlots <= 0 {
		return nil, ErrValidation
	}
	cfg := &domain.ShowingConfig{
		Key:                    domain.ShowingConfigKey,
		DefaultDurationMinutes: durationMinutes,
		MaxSlotsPerWindow:      maxSlots,
	}
	if err := s.windows.SaveConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
