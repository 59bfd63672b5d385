package service

import (
	"context"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

const entityAdmission = "admission"

// AdmissionService handles admission listing and publishing.
type AdmissionService struct {
	repo *repository.AdmissionRepository
	bus  *events.Bus
}

// NewAdmissionService creates a new AdmissionService.
func NewAdmissionService(repo *repository.AdmissionRepository, bus *events.Bus) *AdmissionService {
	return &AdmissionService{repo: repo, bus: bus}
}

// List returns all admissions, newest first.
func (s *AdmissionService) List(ctx context.Context) ([]model.Admission, error) {
	return s.repo.List(ctx)
}

// Publish marks the given admissions as published in one commit and returns
// how many distinct admissions were published.
func (s *AdmissionService) Publish(ctx context.Context, ids []string) (int, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return 0, apperrors.ErrNoAdmissionIDs
	}
	if len(unique) > model.MaxPublishBatch {
		return 0, apperrors.ErrTooManyIDs
	}

	if err := s.repo.Publish(ctx, unique); err != nil {
		return 0, err
	}

	for _, id := range unique {
		s.bus.Publish(ctx, model.AdminEvent{Action: model.EventPublished, Entity: entityAdmission, EntityID: id})
	}
	return len(unique), nil
}

// dedupe drops empty and repeated ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
