package service

import (
	"context"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

const entityInstitution = "institution"

// InstitutionService handles institution business logic.
type InstitutionService struct {
	repo *repository.InstitutionRepository
	bus  *events.Bus
}

// NewInstitutionService creates a new InstitutionService.
func NewInstitutionService(repo *repository.InstitutionRepository, bus *events.Bus) *InstitutionService {
	return &InstitutionService{repo: repo, bus: bus}
}

// List returns all institutions, newest first.
func (s *InstitutionService) List(ctx context.Context) ([]model.Institution, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves an institution.
func (s *InstitutionService) GetByID(ctx context.Context, id string) (*model.Institution, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores a new institution and returns its ID.
func (s *InstitutionService) Create(ctx context.Context, req model.CreateInstitutionRequest) (string, error) {
	id, err := s.repo.Create(ctx, &model.Institution{
		Name:        req.Name,
		Location:    req.Location,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		return "", err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventCreated, Entity: entityInstitution, EntityID: id})
	return id, nil
}

// Update applies a partial update. An update that names no field is rejected.
func (s *InstitutionService) Update(ctx context.Context, id string, req model.UpdateInstitutionRequest) error {
	fields := req.Fields()
	if len(fields) == 0 {
		return apperrors.ErrEmptyUpdate
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventUpdated, Entity: entityInstitution, EntityID: id})
	return nil
}

// Delete removes an institution that has no faculties.
func (s *InstitutionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventDeleted, Entity: entityInstitution, EntityID: id})
	return nil
}
