package auth

import (
	"context"
	"errors"

	"equipreserve/internal/domain"
	"equipreserve/internal/modules/directory"
)

// Service wraps the directory's credential check with token issuing.
type Service struct {
	users UserDirectory
	jwt   tokenGenerator
}

type LoginResult struct {
	User  *domain.User
	Token string
}

func NewService(users UserDirectory, jwt tokenGenerator) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
