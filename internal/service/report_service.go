package service

import (
	"context"

	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

// ReportService handles the admin reports page.
type ReportService struct {
	repo *repository.ReportRepository
}

// NewReportService creates a new ReportService.
func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Summary returns collection totals as of now. Nothing is cached.
func (s *ReportService) Summary(ctx context.Context) (*model.ReportSummary, error) {
	return s.repo.Summary(ctx)
}
