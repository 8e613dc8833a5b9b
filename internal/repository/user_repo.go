package repository

import (
	"context"

	"equipreserve/internal/domain"
	"equipreserve/internal/store"
)

type UserRepository struct {
	col collection[domain.User]
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{col: collection[domain.User]{
		store: s,
		name:  usersCollection,
		seed:  defaultUsers,
	}}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.col.all(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
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

// GetByEmail matches the stored email exactly, case included.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	items, err := r.col.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Email == email {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.User) error {
	return r.col.mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		return append(items, *u), nil
	})
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.col.mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		for i := range items {
			if items[i].ID == u.ID {
				items[i] = *u
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Delete removes the record with the given id; deleting an absent id
// is a no-op.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []domain.User) ([]domain.User, error) {
		out := items[:0]
		for _, item := range items {
			if item.ID != id {
				out = append(out, item)
			}
		}
		return out, nil
	})
}
