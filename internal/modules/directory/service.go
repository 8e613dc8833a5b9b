package directory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"equipreserve/internal/domain"
	"equipreserve/internal/repository"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" || !role.Valid() {
		return nil, ErrValidation
	}

	if err := s.validateEmailUnique(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	pub := u.Public()
	return &pub, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest) (*domain.User, error) {
	role := domain.UserRole(req.Role)
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || !role.Valid() {
		return nil, ErrValidation
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.validateEmailUnique(ctx, req.Email, id); err != nil {
		return nil, err
	}

	hash := current.PasswordHash
	if req.Password != "" {
		newHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(newHash)
	}

	u := &domain.User{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pub := u.Public()
	return &pub, nil
}

// Delete removes a user record. Deleting an id that is already gone is
// not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Authenticate returns the user matching the email when the password
// verifies against the stored hash, ErrInvalidCredentials otherwise.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pub := u.Public()
	return &pub, nil
}

// The uniqueness check is an exact, case-sensitive match on the stored
// email, excluding the record being updated.
func (s *Service) validateEmailUnique(ctx context.Context, email, selfID string) error {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrDuplicateEmail
	}
	return nil
}
