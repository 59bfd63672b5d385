package service

import (
	"context"
	"errors"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/model"
	"github.com/careerpath/admin-backend/internal/repository"
)

const (
	entityFaculty = "faculty"
	entityCourse  = "course"
)

// FacultyService handles faculties and the courses they own.
type FacultyService struct {
	repo *repository.FacultyRepository
	bus  *events.Bus
}

// NewFacultyService creates a new FacultyService.
func NewFacultyService(repo *repository.FacultyRepository, bus *events.Bus) *FacultyService {
	return &FacultyService{repo: repo, bus: bus}
}

// ListByInstitution returns the faculties referencing institutionID. Faculties
// whose institution no longer exists are still listed.
func (s *FacultyService) ListByInstitution(ctx context.Context, institutionID string) ([]model.Faculty, error) {
	return s.repo.ListByInstitution(ctx, institutionID)
}

// GetByID retrieves a faculty with its embedded course summaries.
func (s *FacultyService) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a faculty to an institution and returns its ID.
func (s *FacultyService) Create(ctx context.Context, institutionID string, req model.CreateFacultyRequest) (string, error) {
	id, err := s.repo.Create(ctx, institutionID, req.Name)
	if err != nil {
		return "", err
	}

	s.bus.Publish(ctx, model.AdminEvent{
		Action: model.EventCreated, Entity: entityFaculty, EntityID: id, ParentID: institutionID,
	})
	return id, nil
}

// Update applies a partial update. An update that names no field is rejected.
func (s *FacultyService) Update(ctx context.Context, id string, req model.UpdateFacultyRequest) error {
	fields := req.Fields()
	if len(fields) == 0 {
		return apperrors.ErrEmptyUpdate
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventUpdated, Entity: entityFaculty, EntityID: id})
	return nil
}

// Delete removes a faculty that has no courses.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{Action: model.EventDeleted, Entity: entityFaculty, EntityID: id})
	return nil
}

// AddCourse creates a course under a faculty.
func (s *FacultyService) AddCourse(ctx context.Context, facultyID string, req model.CreateCourseRequest) (*model.Course, error) {
	course, err := s.repo.AddCourse(ctx, facultyID, req.Name)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, model.AdminEvent{
		Action: model.EventCreated, Entity: entityCourse, EntityID: course.ID, ParentID: facultyID,
	})
	return course, nil
}

// DeleteCourse removes a course from a faculty.
func (s *FacultyService) DeleteCourse(ctx context.Context, facultyID, courseID string) error {
	if err := s.repo.DeleteCourse(ctx, facultyID, courseID); err != nil {
		return err
	}

	s.bus.Publish(ctx, model.AdminEvent{
		Action: model.EventDeleted, Entity: entityCourse, EntityID: courseID, ParentID: facultyID,
	})
	return nil
}

// Reconcile rebuilds one faculty's embedded course list. It reports whether
// anything had to change.
func (s *FacultyService) Reconcile(ctx context.Context, facultyID string) (bool, error) {
	changed, err := s.repo.ReconcileCourses(ctx, facultyID)
	if err != nil {
		return false, err
	}
	if changed {
		s.bus.Publish(ctx, model.AdminEvent{Action: model.EventUpdated, Entity: entityFaculty, EntityID: facultyID})
	}
	return changed, nil
}

// ReconcileAll reconciles every faculty and returns how many were repaired.
// Faculties deleted while the pass runs are skipped.
func (s *FacultyService) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		changed, err := s.Reconcile(ctx, id)
		if errors.Is(err, apperrors.ErrFacultyNotFound) {
			continue
		}
		if err != nil {
			return repaired, err
		}
		if changed {
			repaired++
		}
	}
	return repaired, nil
}
