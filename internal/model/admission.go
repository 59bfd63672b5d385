package model

import "time"

// Admission is an admission round published to applicants.
type Admission struct {
	ID        string    `json:"id" firestore:"-"`
	Title     string    `json:"title" firestore:"title"`
	Status    string    `json:"status" firestore:"status"`
	Published bool      `json:"published" firestore:"published"`
	CreatedAt Timestamp `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (a *Admission) SetID(id string)        { a.ID = id }
func (a *Admission) CreatedTime() time.Time { return createdOrEpoch(a.CreatedAt) }

// MaxPublishBatch is the largest number of admissions published in one commit.
const MaxPublishBatch = 500

// PublishAdmissionsRequest is the payload for publishing admissions. An absent
// or empty list is rejected by the service with its own error code.
type PublishAdmissionsRequest struct {
	AdmissionIDs []string `json:"admissionIds" binding:"max=500"`
}
