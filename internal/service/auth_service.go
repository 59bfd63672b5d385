package service

import (
	"context"
	"errors"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

// AuthService authenticates bearer tokens and gates the admin API on the
// caller's stored role.
type AuthService struct {
	verifier IdentityVerifier
	users    *repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(verifier IdentityVerifier, users *repository.UserRepository) *AuthService {
	return &AuthService{verifier: verifier, users: users}
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperrors.ErrTokenRequired
	}
	return s.verifier.Verify(ctx, token)
}

// AuthorizeAdmin loads the profile of uid and requires the admin role.
// A verified identity without a profile document is ErrAccountNotFound.
func (s *AuthService) AuthorizeAdmin(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrAdminOnly
	}
	return user, nil
}
