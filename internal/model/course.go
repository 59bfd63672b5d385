package model

import "time"

// Course is the authoritative course record. It is only created and deleted
// through its faculty so the faculty's embedded summary stays in step.
type Course struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	FacultyID string    `json:"facultyId" firestore:"facultyId"`
	CreatedAt Timestamp `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (c *Course) SetID(id string)        { c.ID = id }
func (c *Course) CreatedTime() time.Time { return createdOrEpoch(c.CreatedAt) }

// Summary projects the course to the form embedded in its faculty.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{ID: c.ID, Name: c.Name}
}

// CreateCourseRequest is the payload for adding a course to a faculty.
type CreateCourseRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}
