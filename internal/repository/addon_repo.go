package repository

import (
	"context"
	"time"

	"venuebook/internal/domain"

	"gorm.io/gorm"
)

type AddOnRepository struct {
	db *gorm.DB
}

func NewAddOnRepository(db *gorm.DB) *AddOnRepository {
	return &AddOnRepository{db: db}
}

type addOnModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Name       string    `gorm:"column:name"`
	PriceCents int64     `gorm:"column:price_cents"`
	Active     bool      `gorm:"column:active"`
	SortOrder  int       `gorm:"column:sort_order"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (addOnModel) TableName() string { return "add_ons" }

func toDomainAddOn(m addOnModel) domain.AddOn {
	return domain.AddOn{
		ID:         m.ID,
		Name:       m.Name,
		PriceCents: m.PriceCents,
		Active:     m.Active,
		SortOrder:  m.SortOrder,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *AddOnRepository) Create(ctx context.Context, a *domain.AddOn) error {
	m := addOnModel{Name: a.Name, PriceCents: a.PriceCents, Active: a.Active, SortOrder: a.SortOrder}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*a = toDomainAddOn(m)
	return nil
}

func (r *AddOnRepository) Update(ctx context.Context, a *domain.AddOn) error {
	m := addOnModel{
		ID:         a.ID,
		Name:       a.Name,
		PriceCents: a.PriceCents,
		Active:     a.Active,
		SortOrder:  a.SortOrder,
		CreatedAt:  a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return translate(err)
	}
	a.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *AddOnRepository) GetByID(ctx context.Context, id int64) (*domain.AddOn, error) {
	var m addOnModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	a := toDomainAddOn(m)
	return &a, nil
}

func (r *AddOnRepository) List(ctx context.Context, activeOnly bool) ([]domain.AddOn, error) {
	q := r.db.WithContext(ctx).Model(&addOnModel{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var models []addOnModel
	if err := q.Order("sort_order, id").Find(&models).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]domain.AddOn, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainAddOn(m))
	}
	return out, nil
}

// GetActiveByIDs resolves a list of catalog ids, skipping inactive entries.
func (r *AddOnRepository) GetActiveByIDs(ctx context.Context, ids []int64) ([]domain.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []addOnModel
	err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&models).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]domain.AddOn, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainAddOn(m))
	}
	return out, nil
}

func (r *AddOnRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&addOnModel{}, id)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AddOnRepository) Deactivate(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Model(&addOnModel{}).Where("id = ?", id).Update("active", false)
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
