package service

import (
	"context"

	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

const entityCompany = "company"

// CompanyService handles company review.
type CompanyService struct {
	repo *repository.CompanyRepository
	bus  *events.Bus
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(repo *repository.CompanyRepository, bus *events.Bus) *CompanyService {
	return &CompanyService{repo: repo, bus: bus}
}

// List returns all companies, newest first.
func (s *CompanyService) List(ctx context.Context) ([]model.Company, error) {
	return s.repo.List(ctx)
}

// Approve marks the company identified by id or exact name as approved.
func (s *CompanyService) Approve(ctx context.Context, idOrName string) (model.CompanyMatch, error) {
	return s.setStatus(ctx, idOrName, true, model.CompanyStatusApproved, model.EventApproved)
}

// Suspend marks the company identified by id or exact name as suspended.
func (s *CompanyService) Suspend(ctx context.Context, idOrName string) (model.CompanyMatch, error) {
	return s.setStatus(ctx, idOrName, false, model.CompanyStatusSuspended, model.EventSuspended)
}

func (s *CompanyService) setStatus(ctx context.Context, idOrName string, approved bool, status model.CompanyStatus, action model.EventAction) (model.CompanyMatch, error) {
	company, match, err := s.repo.Resolve(ctx, idOrName)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetStatus(ctx, company.ID, approved, status); err != nil {
		return "", err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: action, Entity: entityCompany, EntityID: company.ID})
	return match, nil
}
