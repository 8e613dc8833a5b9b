package repository

import (
	"context"
	"errors"

	"equipreserve/internal/store"
)

// ErrNotFound is returned by id lookups that miss. Callers that want
// "absent is fine" semantics check for it explicitly.
var ErrNotFound = errors.New("record not found")

// saveRetries bounds how often a read-modify-write cycle is replayed
// after losing an optimistic-version race.
const saveRetries = 3

// collection is a typed view over one named slot in the entity store.
// Every operation loads the full record array, works on it in memory,
// and writes the full array back, the way the store has always been
// used.
type collection[T any] struct {
	store *store.Store
	name  string
	seed  store.SeedFunc
}

func (c collection[T]) load(ctx context.Context) ([]T, int64, error) {
	col, err := c.store.Load(ctx, c.name, c.seed)
	if err != nil {
		return nil, 0, err
	}
	var items []T
	if err := col.Decode(&items); err != nil {
		return nil, 0, err
	}
	return items, col.Version, nil
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

// mutate runs a read-modify-write cycle against the collection,
// replaying it when the save loses an optimistic-version race.
func (c collection[T]) mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	var err error
	for attempt := 0; attempt < saveRetries; attempt++ {
		var (
			items   []T
			version int64
		)
		items, version, err = c.load(ctx)
		if err != nil {
			return err
		}
		items, err = fn(items)
		if err != nil {
			return err
		}
		err = c.store.Save(ctx, c.name, version, items)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			return err
		}
	}
	return err
}
