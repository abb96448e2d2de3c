package service

import (
	"context"
	"fmt"

	"usersvc/internal/auth"
	errs "usersvc/internal/errors"
	"usersvc/internal/model"
	"usersvc/internal/repository"
)

// AuthService handles credential verification and token issuance.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, subject string) (*model.User, error)
}

type authService struct {
	repo       repository.UserRepository
	hasher     *auth.Hasher
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, hasher *auth.Hasher, jwtService *auth.JWTService) AuthService {
	return &authService{
		repo:       repo,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues a bearer token with the user's
// email as subject. An unknown email and a wrong password yield the same
// ErrInvalidCredentials, so callers cannot enumerate accounts.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return "", errs.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.HashedPassword) {
		return "", errs.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// CurrentUser resolves a verified token subject to its user record. The token
// outliving its user yields ErrInvalidCredentials; a deactivated user yields
// ErrUserInactive.
func (s *authService) CurrentUser(ctx context.Context, subject string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errs.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errs.ErrUserInactive
	}
	return user, nil
}
