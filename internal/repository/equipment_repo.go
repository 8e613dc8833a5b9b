package repository

import (
	"context"

	"equipreserve/internal/domain"
	"equipreserve/internal/store"
)

type EquipmentRepository struct {
	col collection[domain.Equipment]
}

func NewEquipmentRepository(s *store.Store) *EquipmentRepository {
	return &EquipmentRepository{col: collection[domain.Equipment]{
		store: s,
		name:  equipmentCollection,
		seed:  defaultEquipment,
	}}
}

func (r *EquipmentRepository) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	return r.col.all(ctx)
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *EquipmentRepository) Insert(ctx context.Context, e *domain.Equipment) error {
	return r.col.mutate(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		return append(items, *e), nil
	})
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	return r.col.mutate(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		for i := range items {
			if items[i].ID == e.ID {
				items[i] = *e
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Delete removes the record with the given id; deleting an absent id
// is a no-op.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

func (r *EquipmentRepository) SetAvailability(ctx context.Context, id string, available bool) (*domain.Equipment, error) {
	var updated domain.Equipment
	err := r.col.mutate(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Available = available
				updated = items[i]
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
