package catalog

import (
	"context"
	"errors"
	"strings"

	"venuebook/internal/domain"
	"venuebook/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("add-on not found")
)

type addOnStore interface {
	Create(ctx context.Context, a *domain.AddOn) error
	Update(ctx context.Context, a *domain.AddOn) error
	GetByID(ctx context.Context, id int64) (*domain.AddOn, error)
	List(ctx context.Context, activeOnly bool) ([]domain.AddOn, error)
	Delete(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
}

type referenceChecker interface {
	IsAddOnReferenced(ctx context.Context, addOnID int64) (bool, error)
}

// Service manages the add-on catalog. Bookings keep frozen per-line prices,
// so catalog edits never change what an existing booking owes.
type Service struct {
	addons addOnStore
	refs   referenceChecker
}

func NewService(addons addOnStore, refs referenceChecker) *Service {
	return &Service{addons: addons, refs: refs}
}

func (s *Service) Create(ctx context.Context, name string, priceCents int64, sortOrder int) (*domain.AddOn, error) {
	name = strings.TrimSpace(name)
	if name == "" || priceCents < 0 {
		return nil, ErrValidation
	}
	a := &domain.AddOn{Name: name, PriceCents: priceCents, Active: true, SortOrder: sortOrder}
	if err := s.addons.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, name string, priceCents int64, sortOrder int, active bool) (*domain.AddOn, error) {
	name = strings.TrimSpace(name)
	if name == "" || priceCents < 0 {
		return nil, ErrValidation
	}

	a, err := s.addons.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	a.Name = name
	a.PriceCents = priceCents
	a.SortOrder = sortOrder
	a.Active = active
	if err := s.addons.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.AddOn, error) {
	return s.addons.List(ctx, activeOnly)
}

// Remove deletes an unreferenced add-on outright; one referenced by any
// booking is deactivated instead so historical line items keep a valid
// catalog entry behind them. Returns true when the add-on was hard-deleted.
func (s *Service) Remove(ctx context.Context, id int64) (deleted bool, err error) {
	referenced, err := s.refs.IsAddOnReferenced(ctx, id)
	if err != nil {
		return false, err
	}

	if referenced {
		err = s.addons.Deactivate(ctx, id)
	} else {
		err = s.addons.Delete(ctx, id)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return !referenced, nil
}
