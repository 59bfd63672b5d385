package repository

import (
	"context"
	"errors"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// CompanyRepository handles company data access.
type CompanyRepository struct {
	store docstore.Store
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(store docstore.Store) *CompanyRepository {
	return &CompanyRepository{store: store}
}

// List returns every company, newest first.
func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	snaps, err := r.store.List(ctx, config.Collection.Companies)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Company](snaps)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// Resolve finds a company by document ID, falling back to an exact name match.
// When several companies share the name, the one with the smallest ID wins.
func (r *CompanyRepository) Resolve(ctx context.Context, idOrName string) (*model.Company, model.CompanyMatch, error) {
	snap, err := r.store.Get(ctx, config.Collection.Companies, idOrName)
	switch {
	case err == nil:
		company, err := decodeOne[model.Company](snap)
		return company, model.CompanyMatchByID, err
	case !errors.Is(err, docstore.ErrNotFound):
		return nil, "", err
	}

	matches, err := r.store.Where(ctx, config.Collection.Companies, "name", idOrName)
	if err != nil {
		return nil, "", err
	}
	if len(matches) == 0 {
		return nil, "", apperrors.ErrCompanyNotFound
	}
	company, err := decodeOne[model.Company](matches[0])
	return company, model.CompanyMatchByName, err
}

// SetStatus writes the approval flag and status of a company.
func (r *CompanyRepository) SetStatus(ctx context.Context, id string, approved bool, status model.CompanyStatus) error {
	err := r.store.Update(ctx, config.Collection.Companies, id, map[string]any{
		"approved": approved,
		"status":   string(status),
	})
	return notFoundAs(err, apperrors.ErrCompanyNotFound)
}
