package model

import "time"

// CourseSummary is the denormalized course entry embedded in a faculty.
type CourseSummary struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
}

// Value is the form stored in the faculty's courses array. Array transforms
// compare elements by value, so both fields must always be present.
func (s CourseSummary) Value() map[string]any {
	return map[string]any{"id": s.ID, "name": s.Name}
}

// Faculty belongs to an institution and caches its courses for display.
type Faculty struct {
	ID            string          `json:"id" firestore:"-"`
	Name          string          `json:"name" firestore:"name"`
	InstitutionID string          `json:"institutionId" firestore:"institutionId"`
	Courses       []CourseSummary `json:"courses" firestore:"courses"`
	CreatedAt     Timestamp       `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (f *Faculty) SetID(id string)        { f.ID = id }
func (f *Faculty) CreatedTime() time.Time { return createdOrEpoch(f.CreatedAt) }

// CreateFacultyRequest is the payload for adding a faculty to an institution.
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// UpdateFacultyRequest is a partial update of a faculty.
type UpdateFacultyRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
}

// Fields returns the document fields the update touches.
func (r UpdateFacultyRequest) Fields() map[string]any {
	fields := make(map[string]any)
	setIfPresent(fields, "name", r.Name)
	return fields
}
