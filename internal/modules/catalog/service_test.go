package catalog

import (
	"context"
	"testing"

	"venuebook/internal/domain"
	"venuebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAddOnStore struct {
	mock.Mock
}

func (m *MockAddOnStore) Create(ctx context.Context, a *domain.AddOn) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddOnStore) Update(ctx context.Context, a *domain.AddOn) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAddOnStore) GetByID(ctx context.Context, id int64) (*domain.AddOn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AddOn), args.Error(1)
}

func (m *MockAddOnStore) List(ctx context.Context, activeOnly bool) ([]domain.AddOn, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AddOn), args.Error(1)
}

func (m *MockAddOnStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddOnStore) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReferenceChecker struct {
	mock.Mock
}

func (m *MockReferenceChecker) IsAddOnReferenced(ctx context.Context, addOnID int64) (bool, error) {
	args := m.Called(ctx, addOnID)
	return args.Bool(0), args.Error(1)
}

func TestCreate(t *testing.T) {
	store := new(MockAddOnStore)
	svc := NewService(store, new(MockReferenceChecker))

	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	a, err := svc.Create(context.Background(), "  PA system  ", 7500, 4)
	assert.NoError(t, err)
	assert.Equal(t, "PA system", a.Name)
	assert.True(t, a.Active)

	_, err = svc.Create(context.Background(), "   ", 7500, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), "Tables", -1, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemove_UnreferencedIsDeleted(t *testing.T) {
	store := new(MockAddOnStore)
	refs := new(MockReferenceChecker)
	svc := NewService(store, refs)

	refs.On("IsAddOnReferenced", mock.Anything, int64(3)).Return(false, nil)
	store.On("Delete", mock.Anything, int64(3)).Return(nil)

	deleted, err := svc.Remove(context.Background(), 3)
	assert.NoError(t, err)
	assert.True(t, deleted)
	store.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestRemove_ReferencedIsDeactivated(t *testing.T) {
	store := new(MockAddOnStore)
	refs := new(MockReferenceChecker)
	svc := NewService(store, refs)

	refs.On("IsAddOnReferenced", mock.Anything, int64(3)).Return(true, nil)
	store.On("Deactivate", mock.Anything, int64(3)).Return(nil)

	deleted, err := svc.Remove(context.Background(), 3)
	assert.NoError(t, err)
	assert.False(t, deleted)
	store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemove_NotFound(t *testing.T) {
	store := new(MockAddOnStore)
	refs := new(MockReferenceChecker)
	svc := NewService(store, refs)

	refs.On("IsAddOnReferenced", mock.Anything, int64(99)).Return(false, nil)
	store.On("Delete", mock.Anything, int64(99)).Return(repository.ErrNotFound)

	_, err := svc.Remove(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
