package repository

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type BlockedDateRepository struct {
	db *gorm.DB
}

func NewBlockedDateRepository(db *gorm.DB) *BlockedDateRepository {
	return &BlockedDateRepository{db: db}
}

type blockedDateModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Date      string    `gorm:"column:date;uniqueIndex"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (blockedDateModel) TableName() string { return "blocked_dates" }

func (r *BlockedDateRepository) Create(ctx context.Context, bd *domain.BlockedDate) error {
	m := blockedDateModel{Date: bd.Date.String(), Reason: bd.Reason}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	bd.ID = m.ID
	bd.CreatedAt = m.CreatedAt
	return nil
}

// FindByDate returns (nil, nil) when the date is not blocked.
func (r *BlockedDateRepository) FindByDate(ctx context.Context, date domain.Date) (*domain.BlockedDate, error) {
	var m blockedDateModel
	err := r.db.WithContext(ctx).Where("date = ?", date.String()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate(err)
	}
	return toDomainBlockedDate(m)
}

func (r *BlockedDateRepository) List(ctx context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	var models []blockedDateModel
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.String(), to.String()).
		Order("date").
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.BlockedDate, 0, len(models))
	for _, m := range models {
		bd, err := toDomainBlockedDate(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *bd)
	}
	return out, nil
}

func (r *BlockedDateRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&blockedDateModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toDomainBlockedDate(m blockedDateModel) (*domain.BlockedDate, error) {
	date, err := domain.ParseDate(m.Date)
	if err != nil {
		return nil, err
	}
	return &domain.BlockedDate{ID: m.ID, Date: date, Reason: m.Reason, CreatedAt: m.CreatedAt}, nil
}
