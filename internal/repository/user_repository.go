package repository

import (
	"context"
	"errors"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// UserRepository handles user profile data access.
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// List returns every user, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	snaps, err := r.store.List(ctx, config.Collection.Users)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.User](snaps)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// GetByID retrieves a user by uid.
func (r *UserRepository) GetByID(ctx context.Context, uid string) (*model.User, error) {
	snap, err := r.store.Get(ctx, config.Collection.Users, uid)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrUserNotFound)
	}
	return decodeOne[model.User](snap)
}

// Delete removes a user profile document. The identity provider account is untouched.
func (r *UserRepository) Delete(ctx context.Context, uid string) error {
	err := r.store.Delete(ctx, config.Collection.Users, uid)
	return notFoundAs(err, apperrors.ErrUserNotFound)
}

// UpsertAdmin grants the admin role to uid, creating the profile if needed.
// Empty name or email leave existing values alone. It reports whether the
// profile was created.
func (r *UserRepository) UpsertAdmin(ctx context.Context, uid, name, email string) (bool, error) {
	created := false

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		fields := map[string]any{"role": model.RoleAdmin}
		if name != "" {
			fields["name"] = name
		}
		if email != "" {
			fields["email"] = email
		}

		_, err := tx.Get(config.Collection.Users, uid)
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			created = true
			fields["createdAt"] = docstore.ServerTimestamp
			return tx.Create(config.Collection.Users, uid, fields)
		case err != nil:
			return err
		}

		created = false
		return tx.Update(config.Collection.Users, uid, fields)
	})
	return created, err
}
