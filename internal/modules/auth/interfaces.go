package auth

import (
	"context"

	"equipreserve/internal/domain"
)

// UserDirectory is the slice of the directory service auth relies on.
type UserDirectory interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type tokenGenerator interface {
	GenerateToken(userID string, role string) (string, error)
}
