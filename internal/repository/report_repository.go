package repository

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// ReportRepository computes collection totals.
type ReportRepository struct {
	store docstore.Store
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(store docstore.Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// Summary counts institutions, companies, users and admissions concurrently.
func (r *ReportRepository) Summary(ctx context.Context) (*model.ReportSummary, error) {
	var summary model.ReportSummary

	g, ctx := errgroup.WithContext(ctx)
	count := func(collection string, dst *int64) {
		g.Go(func() error {
			n, err := r.store.Count(ctx, collection)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(config.Collection.Institutions, &summary.TotalInstitutions)
	count(config.Collection.Companies, &summary.TotalCompanies)
	count(config.Collection.Users, &summary.TotalUsers)
	count(config.Collection.Admissions, &summary.TotalAdmissions)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}
