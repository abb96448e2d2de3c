package service

import (
	"context"
	"fmt"

	"usersvc/internal/auth"
	"usersvc/internal/cache"
	errs "usersvc/internal/errors"
	"usersvc/internal/model"
	"usersvc/internal/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Email    *string
	Password *string
	IsActive *bool
}

// UserService exposes the user business rules.
type UserService interface {
	CreateUser(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
	ListUsers(ctx context.Context, offset, limit int) ([]model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.Hasher
	cache  *cache.UserCache
}

// NewUserService builds a UserService with repository, hasher and cache.
func NewUserService(repo repository.UserRepository, hasher *auth.Hasher, cache *cache.UserCache) UserService {
	return &userService{repo: repo, hasher: hasher, cache: cache}
}

// CreateUser registers a new user. The lookup is a friendly early exit; the
// unique index in the store is what actually guarantees uniqueness when two
// registrations race past the check.
func (s *userService) CreateUser(ctx context.Context, email, password string) (*model.User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, errs.ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	s.cache.Put(ctx, user)
	return user, nil
}

// UpdateUser applies only the fields present in the patch. A changed email is
// re-checked against other users before the write; the same email owned by the
// same id is a no-op and passes.
func (s *userService) UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.ErrUserNotFound
	}

	if patch.Email != nil && *patch.Email != user.Email {
		other, err := s.repo.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, errs.ErrEmailTaken
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil {
		hashed, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.HashedPassword = hashed
	}

	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return user, nil
}

// DeleteUser removes the user and reports whether it existed. A nonexistent id
// is (false, nil), not an error.
func (s *userService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.cache.Invalidate(ctx, id)
	}
	return deleted, nil
}

func (s *userService) ListUsers(ctx context.Context, offset, limit int) ([]model.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, offset, limit)
}
