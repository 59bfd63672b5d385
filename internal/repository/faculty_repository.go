package repository

import (
	"context"
	"sort"

	"github.com/careerpath/admin-backend/internal/apperrors"
	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/docstore"
	"github.com/careerpath/admin-backend/internal/model"
)

// FacultyRepository handles faculty data access and keeps each faculty's
// embedded course summaries in step with the courses collection.
type FacultyRepository struct {
	store docstore.Store
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(store docstore.Store) *FacultyRepository {
	return &FacultyRepository{store: store}
}

// ListByInstitution returns the faculties of one institution, newest first.
func (r *FacultyRepository) ListByInstitution(ctx context.Context, institutionID string) ([]model.Faculty, error) {
	snaps, err := r.store.Where(ctx, config.Collection.Faculties, "institutionId", institutionID)
	if err != nil {
		return nil, err
	}
	items, err := decodeAll[model.Faculty](snaps)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// ListIDs returns the IDs of every faculty.
func (r *FacultyRepository) ListIDs(ctx context.Context) ([]string, error) {
	snaps, err := r.store.List(ctx, config.Collection.Faculties)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(snaps))
	for i, snap := range snaps {
		ids[i] = snap.ID
	}
	return ids, nil
}

// GetByID retrieves a faculty by its ID.
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*model.Faculty, error) {
	snap, err := r.store.Get(ctx, config.Collection.Faculties, id)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrFacultyNotFound)
	}
	return decodeOne[model.Faculty](snap)
}

// Create adds a faculty with an empty course list under an existing institution.
func (r *FacultyRepository) Create(ctx context.Context, institutionID, name string) (string, error) {
	id := r.store.NewID(config.Collection.Faculties)

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if _, err := tx.Get(config.Collection.Institutions, institutionID); err != nil {
			return notFoundAs(err, apperrors.ErrInstitutionNotFound)
		}
		return tx.Create(config.Collection.Faculties, id, map[string]any{
			"name":          name,
			"institutionId": institutionID,
			"courses":       []any{},
			"createdAt":     docstore.ServerTimestamp,
		})
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Update merges fields into an existing faculty.
func (r *FacultyRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	err := r.store.Update(ctx, config.Collection.Faculties, id, fields)
	return notFoundAs(err, apperrors.ErrFacultyNotFound)
}

// Delete removes a faculty that no longer has courses.
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if _, err := tx.Get(config.Collection.Faculties, id); err != nil {
			return notFoundAs(err, apperrors.ErrFacultyNotFound)
		}

		courses, err := tx.Where(config.Collection.Courses, "facultyId", id)
		if err != nil {
			return err
		}
		if len(courses) > 0 {
			return apperrors.ErrFacultyHasCourses
		}

		return tx.Delete(config.Collection.Faculties, id)
	})
}

// AddCourse creates a course record and appends its summary to the faculty
// in one transaction. Either both writes land or neither does.
func (r *FacultyRepository) AddCourse(ctx context.Context, facultyID, name string) (*model.Course, error) {
	course := &model.Course{
		ID:        r.store.NewID(config.Collection.Courses),
		Name:      name,
		FacultyID: facultyID,
	}

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if _, err := tx.Get(config.Collection.Faculties, facultyID); err != nil {
			return notFoundAs(err, apperrors.ErrFacultyNotFound)
		}

		if err := tx.Create(config.Collection.Courses, course.ID, map[string]any{
			"name":      course.Name,
			"facultyId": course.FacultyID,
			"createdAt": docstore.ServerTimestamp,
		}); err != nil {
			return err
		}

		return tx.Update(config.Collection.Faculties, facultyID, map[string]any{
			"courses": docstore.ArrayUnion(course.Summary().Value()),
		})
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course record and its summary from the faculty in one
// transaction. A course that belongs to a different faculty is reported as
// not found.
func (r *FacultyRepository) DeleteCourse(ctx context.Context, facultyID, courseID string) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		if _, err := tx.Get(config.Collection.Faculties, facultyID); err != nil {
			return notFoundAs(err, apperrors.ErrFacultyNotFound)
		}

		snap, err := tx.Get(config.Collection.Courses, courseID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrCourseNotFound)
		}
		course, err := decodeOne[model.Course](snap)
		if err != nil {
			return err
		}
		if course.FacultyID != facultyID {
			return apperrors.ErrCourseNotFound
		}

		if err := tx.Delete(config.Collection.Courses, courseID); err != nil {
			return err
		}

		return tx.Update(config.Collection.Faculties, facultyID, map[string]any{
			"courses": docstore.ArrayRemove(course.Summary().Value()),
		})
	})
}

// ReconcileCourses rebuilds a faculty's embedded course summaries from the
// courses collection. It reports whether the stored list had drifted.
func (r *FacultyRepository) ReconcileCourses(ctx context.Context, facultyID string) (bool, error) {
	changed := false

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		changed = false

		snap, err := tx.Get(config.Collection.Faculties, facultyID)
		if err != nil {
			return notFoundAs(err, apperrors.ErrFacultyNotFound)
		}
		faculty, err := decodeOne[model.Faculty](snap)
		if err != nil {
			return err
		}

		snaps, err := tx.Where(config.Collection.Courses, "facultyId", facultyID)
		if err != nil {
			return err
		}
		courses, err := decodeAll[model.Course](snaps)
		if err != nil {
			return err
		}

		// Oldest first, matching the append order of AddCourse.
		sort.SliceStable(courses, func(i, j int) bool {
			return courses[i].CreatedTime().Before(courses[j].CreatedTime())
		})

		want := make([]model.CourseSummary, len(courses))
		for i := range courses {
			want[i] = courses[i].Summary()
		}
		if sameSummaries(faculty.Courses, want) {
			return nil
		}

		values := make([]any, len(want))
		for i, s := range want {
			values[i] = s.Value()
		}
		changed = true
		return tx.Update(config.Collection.Faculties, facultyID, map[string]any{
			"courses": values,
		})
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// sameSummaries compares two summary lists as sets.
func sameSummaries(have, want []model.CourseSummary) bool {
	if len(have) != len(want) {
		return false
	}
	seen := make(map[model.CourseSummary]int, len(have))
	for _, s := range have {
		seen[s]++
	}
	for _, s := range want {
		if seen[s] == 0 {
			return false
		}
		seen[s]--
	}
	return true
}
