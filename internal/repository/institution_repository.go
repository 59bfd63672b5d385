package repository

import (
	"context"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// InstitutionRepository handles institution data access.
type InstitutionRepository struct {
	store docstore.Store
}

// NewInstitutionRepository creates a new InstitutionRepository.
func NewInstitutionRepository(store docstore.Store) *InstitutionRepository {
	return &InstitutionRepository{store: store}
}

// List returns every institution, newest first.
func (r *InstitutionRepository) List(ctx context.Context) ([]model.Institution, error) {
	snaps, err := r.store.List(ctx, config.Collection.Institutions)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Institution](snaps)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// GetByID retrieves an institution by its ID.
func (r *InstitutionRepository) GetByID(ctx context.Context, id string) (*model.Institution, error) {
	snap, err := r.store.Get(ctx, config.Collection.Institutions, id)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrInstitutionNotFound)
	}
	return decodeOne[model.Institution](snap)
}

// Create inserts a new institution and returns its generated ID.
func (r *InstitutionRepository) Create(ctx context.Context, inst *model.Institution) (string, error) {
	return r.store.Add(ctx, config.Collection.Institutions, map[string]any{
		"name":        inst.Name,
		"location":    inst.Location,
		"type":        inst.Type,
		"description": inst.Description,
		"createdAt":   docstore.ServerTimestamp,
	})
}

// Update merges fields into an existing institution.
func (r *InstitutionRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.Update(ctx, config.Collection.Institutions, id, fields)
	return notFoundAs(err, apperrors.ErrInstitutionNotFound)
}

// Delete removes an institution. Institutions that still have faculties are
// kept and ErrInstitutionHasFaculties is returned.
func (r *InstitutionRepository) Delete(ctx context.Context, id string) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if _, err := tx.Get(config.Collection.Institutions, id); err != nil {
			return notFoundAs(err, apperrors.ErrInstitutionNotFound)
		}

		faculties, err := tx.Where(config.Collection.Faculties, "institutionId", id)
		if err != nil {
			return err
		}
		if len(faculties) > 0 {
			return apperrors.ErrInstitutionHasFaculties
		}

		return tx.Delete(config.Collection.Institutions, id)
	})
}
