package catalog

import (
	"context"

	"equipreserve/internal/domain"
)

// EquipmentRepository defines the storage operations the catalog needs
type EquipmentRepository interface {
	GetAll(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	Insert(ctx context.Context, e *domain.Equipment) error
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) (*domain.Equipment, error)
}
