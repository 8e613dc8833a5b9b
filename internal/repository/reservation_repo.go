package repository

import (
	"context"

	"equipreserve/internal/domain"
	"equipreserve/internal/store"
)

type ReservationRepository struct {
	col collection[domain.Reservation]
}

func NewReservationRepository(s *store.Store) *ReservationRepository {
	return &ReservationRepository{col: collection[domain.Reservation]{
		store: s,
		name:  reservationsCollection,
	}}
}

func (r *ReservationRepository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	return r.col.all(ctx)
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
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

func (r *ReservationRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Reservation, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0)
	for _, item := range items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ReservationRepository) GetByEquipmentID(ctx context.Context, equipmentID string) ([]domain.Reservation, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0)
	for _, item := range items {
		if item.EquipmentID == equipmentID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ReservationRepository) GetByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0)
	for _, item := range items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

// HasActiveForEquipment reports whether any active reservation other
// than excludeID holds the given equipment.
func (r *ReservationRepository) HasActiveForEquipment(ctx context.Context, equipmentID, excludeID string) (bool, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.EquipmentID == equipmentID && item.Status == domain.ReservationActive && item.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReservationRepository) Insert(ctx context.Context, res *domain.Reservation) error {
	return r.col.mutate(ctx, func(items []domain.Reservation) ([]domain.Reservation, error) {
		return append(items, *res), nil
	})
}

func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.col.mutate(ctx, func(items []domain.Reservation) ([]domain.Reservation, error) {
		for i := range items {
			if items[i].ID == res.ID {
				items[i] = *res
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.Reservation) ([]domain.Reservation, error) {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out, nil
	})
}

func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error) {
	var updated domain.Reservation
	err := r.col.mutate(ctx, func(items []domain.Reservation) ([]domain.Reservation, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
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
