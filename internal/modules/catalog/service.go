package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"equipreserve/internal/domain"
	"equipreserve/internal/repository"
)

type Service struct {
	equipment EquipmentRepository
}

func NewService(equipment EquipmentRepository) *Service {
	return &Service{equipment: equipment}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, req CreateEquipmentRequest) (*domain.Equipment, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" {
		return nil, ErrValidation
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	e := &domain.Equipment{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		Location:    req.Location,
		Available:   available,
	}

	if err := s.equipment.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update replaces the descriptive fields of an equipment record. The
// available flag is only overridden when the request carries it
// explicitly; the reservation ledger remains its normal owner.
func (s *Service) Update(ctx context.Context, id string, req UpdateEquipmentRequest) (*domain.Equipment, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" {
		return nil, ErrValidation
	}

	current, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	available := current.Available
	if req.Available != nil {
		available = *req.Available
	}

	e := &domain.Equipment{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Description: req.Description,
		Location:    req.Location,
		Available:   available,
	}

	if err := s.equipment.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes an equipment record. Deleting an id that is already
// gone is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.equipment.Delete(ctx, id)
}

func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (*domain.Equipment, error) {
	e, err := s.equipment.SetAvailability(ctx, id, available)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
