package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equipreserve/internal/domain"
	"equipreserve/internal/repository"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Insert(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentRepository) SetAvailability(ctx context.Context, id string, available bool) (*domain.Equipment, error) {
	args := m.Called(ctx, id, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func TestService_Create_DefaultsToAvailable(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	e, err := service.Create(context.Background(), CreateEquipmentRequest{
		Name: "  Projector  ",
		Type: "projector",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Projector", e.Name)
	assert.True(t, e.Available)
}

func TestService_Create_ExplicitUnavailable(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("Insert", mock.Anything, mock.Anything).Return(nil)

	available := false
	e, err := service.Create(context.Background(), CreateEquipmentRequest{
		Name:      "Broken TV",
		Type:      "tv",
		Available: &available,
	})

	assert.NoError(t, err)
	assert.False(t, e.Available)
}

func TestService_Create_BlankName(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	_, err := service.Create(context.Background(), CreateEquipmentRequest{
		Name: "   ",
		Type: "projector",
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestService_Update_PreservesAvailability(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("GetByID", mock.Anything, "eq-1").Return(&domain.Equipment{ID: "eq-1", Name: "Old", Type: "tv", Available: false}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.Equipment) bool {
		return !e.Available
	})).Return(nil)

	e, err := service.Update(context.Background(), "eq-1", UpdateEquipmentRequest{
		Name: "Renamed",
		Type: "tv",
	})

	assert.NoError(t, err)
	assert.False(t, e.Available)
	repo.AssertExpectations(t)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := service.Update(context.Background(), "ghost", UpdateEquipmentRequest{
		Name: "Renamed",
		Type: "tv",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := service.GetByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SetAvailability(t *testing.T) {
	repo := new(MockEquipmentRepository)
	service := NewService(repo)

	repo.On("SetAvailability", mock.Anything, "eq-1", false).Return(&domain.Equipment{ID: "eq-1", Available: false}, nil)

	e, err := service.SetAvailability(context.Background(), "eq-1", false)

	assert.NoError(t, err)
	assert.False(t, e.Available)
}
