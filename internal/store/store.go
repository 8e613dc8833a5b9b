package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrCorrupted is returned when a stored collection is not valid JSON
	// and corruption reset is disabled.
	ErrCorrupted = errors.New("collection data is corrupted")

	// ErrVersionConflict is returned when a save carries a stale version,
	// meaning another writer updated the collection in between. Callers
	// are expected to reload and retry.
	ErrVersionConflict = errors.New("collection version conflict")
)

// Store persists named collections of records as whole JSON arrays,
// one row per collection. Every save rewrites the full array and bumps
// a monotonic version used for optimistic concurrency control.
type Store struct {
	db                *gorm.DB
	resetOnCorruption bool
}

type Option func(*Store)

// WithCorruptionReset controls what happens when a collection's stored
// JSON no longer parses: reset the slot to its seed (default), or
// surface ErrCorrupted to the caller.
func WithCorruptionReset(enabled bool) Option {
	return func(s *Store) { s.resetOnCorruption = enabled }
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, resetOnCorruption: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type collectionRow struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Data      string    `gorm:"column:data"`
	Version   int64     `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (collectionRow) TableName() string { return "collections" }

// Collection is a loaded snapshot: the raw JSON array plus the version
// a subsequent Save must present.
type Collection struct {
	Name    string
	Version int64
	Data    json.RawMessage
}

func (c *Collection) Decode(out any) error {
	if err := json.Unmarshal(c.Data, out); err != nil {
		return fmt.Errorf("collection %q: %w", c.Name, ErrCorrupted)
	}
	return nil
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&collectionRow{})
}

type txKey struct{}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// InTx runs fn with every store call made through the derived context
// bound to a single database transaction. Nested calls join the
// transaction already in flight.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// SeedFunc produces the default records for a collection. It is only
// invoked when the collection does not exist yet (or has to be reset),
// so building the defaults may be expensive.
type SeedFunc func() any

// Load reads a named collection, seeding it with seed on first access.
// seed may be nil for an empty collection.
func (s *Store) Load(ctx context.Context, name string, seed SeedFunc) (*Collection, error) {
	var row collectionRow
	err := s.conn(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.seedCollection(ctx, name, seed)
	}
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(row.Data)) {
		if !s.resetOnCorruption {
			return nil, fmt.Errorf("collection %q: %w", name, ErrCorrupted)
		}
		log.Printf("store: collection %q holds unparseable data, resetting to seed", name)
		return s.overwrite(ctx, name, seed, row.Version)
	}

	return &Collection{Name: name, Version: row.Version, Data: json.RawMessage(row.Data)}, nil
}

// Save replaces the full contents of a collection. version must match
// the version returned by the Load this mutation was derived from.
func (s *Store) Save(ctx context.Context, name string, version int64, records any) error {
	data, err := marshalRecords(records)
	if err != nil {
		return err
	}

	res := s.conn(ctx).Model(&collectionRow{}).
		Where("name = ? AND version = ?", name, version).
		Updates(map[string]any{
			"data":       data,
			"version":    version + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "40001" {
			// serialization failure under postgres, same remedy as a stale version
			return fmt.Errorf("collection %q: %w", name, ErrVersionConflict)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection %q: %w", name, ErrVersionConflict)
	}
	return nil
}

func (s *Store) seedCollection(ctx context.Context, name string, seed SeedFunc) (*Collection, error) {
	data, err := marshalSeed(seed)
	if err != nil {
		return nil, err
	}

	row := collectionRow{Name: name, Data: data, Version: 1, UpdatedAt: time.Now().UTC()}
	if err := s.conn(ctx).Create(&row).Error; err != nil {
		// lost the first-write race: another caller seeded it, read theirs
		var existing collectionRow
		if readErr := s.conn(ctx).First(&existing, "name = ?", name).Error; readErr == nil {
			return &Collection{Name: name, Version: existing.Version, Data: json.RawMessage(existing.Data)}, nil
		}
		return nil, err
	}
	return &Collection{Name: name, Version: row.Version, Data: json.RawMessage(row.Data)}, nil
}

func (s *Store) overwrite(ctx context.Context, name string, seed SeedFunc, oldVersion int64) (*Collection, error) {
	data, err := marshalSeed(seed)
	if err != nil {
		return nil, err
	}

	res := s.conn(ctx).Model(&collectionRow{}).
		Where("name = ?", name).
		Updates(map[string]any{
			"data":       data,
			"version":    oldVersion + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	return &Collection{Name: name, Version: oldVersion + 1, Data: json.RawMessage(data)}, nil
}

func marshalSeed(seed SeedFunc) (string, error) {
	if seed == nil {
		return "[]", nil
	}
	return marshalRecords(seed())
}

func marshalRecords(records any) (string, error) {
	if records == nil {
		return "[]", nil
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
