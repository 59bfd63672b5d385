package repository

import (
	"context"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// AdmissionRepository handles admission data access.
type AdmissionRepository struct {
	store docstore.Store
}

// NewAdmissionRepository creates a new AdmissionRepository.
func NewAdmissionRepository(store docstore.Store) *AdmissionRepository {
	return &AdmissionRepository{store: store}
}

// List returns every admission, newest first.
func (r *AdmissionRepository) List(ctx context.Context) ([]model.Admission, error) {
	snaps, err := r.store.List(ctx, config.Collection.Admissions)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Admission](snaps)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// Publish marks every listed admission as published in one commit. If any
// admission is missing nothing is written and ErrAdmissionNotFound is returned.
// ids must already be deduplicated.
func (r *AdmissionRepository) Publish(ctx context.Context, ids []string) error {
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		for _, id := range ids {
			if err := tx.Update(config.Collection.Admissions, id, map[string]any{
				"published": true,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	return notFoundAs(err, apperrors.ErrAdmissionNotFound)
}
