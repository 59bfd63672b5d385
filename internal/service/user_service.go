package service

import (
	"context"

	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

const entityUser = "user"

// UserService handles user profile administration.
type UserService struct {
	repo *repository.UserRepository
	bus  *events.Bus
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.UserRepository, bus *events.Bus) *UserService {
	return &UserService{repo: repo, bus: bus}
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a user profile.
func (s *UserService) GetByID(ctx context.Context, uid string) (*model.User, error) {
	return s.repo.GetByID(ctx, uid)
}

// Delete removes a user profile.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventDeleted, Entity: entityUser, EntityID: uid})
	return nil
}

// GrantAdmin gives uid the admin role, creating its profile when missing.
// It reports whether the profile was created.
func (s *UserService) GrantAdmin(ctx context.Context, uid, name, email string) (bool, error) {
	return s.repo.UpsertAdmin(ctx, uid, name, email)
}
