package ledger

import (
	"context"

	"equipreserve/internal/domain"
)

// ReservationRepository defines the storage operations the ledger needs
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	HasActiveForEquipment(ctx context.Context, equipmentID, excludeID string) (bool, error)
	Insert(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}

// EquipmentRepository is the slice of the catalog's storage the ledger
// uses to keep the availability flag in sync.
type EquipmentRepository interface {
	GetAll(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	SetAvailability(ctx context.Context, id string, available bool) (*domain.Equipment, error)
}

// UserReader resolves reservation owners for integrity checks and
// name display.
type UserReader interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TxRunner runs fn with all storage operations made through the given
// context bound to one transaction. The entity store implements it.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
