package model

import "time"

// Institution is a higher learning institution.
type Institution struct {
	ID          string    `json:"id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Location    string    `json:"location" firestore:"location"`
	Type        string    `json:"type" firestore:"type"`
	Description string    `json:"description" firestore:"description"`
	CreatedAt   Timestamp `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (i *Institution) SetID(id string)        { i.ID = id }
func (i *Institution) CreatedTime() time.Time { return createdOrEpoch(i.CreatedAt) }

// CreateInstitutionRequest is the payload for creating an institution.
type CreateInstitutionRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Location    string `json:"location" binding:"required,max=200"`
	Type        string `json:"type" binding:"required,max=50"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateInstitutionRequest is a partial update. Only non-nil fields are written.
type UpdateInstitutionRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Location    *string `json:"location" binding:"omitempty,min=1,max=200"`
	Type        *string `json:"type" binding:"omitempty,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// Fields returns the document fields the update touches.
func (r UpdateInstitutionRequest) Fields() map[string]any {
	fields := make(map[string]any)
	setIfPresent(fields, "name", r.Name)
	setIfPresent(fields, "location", r.Location)
	setIfPresent(fields, "type", r.Type)
	setIfPresent(fields, "description", r.Description)
	return fields
}

func setIfPresent(fields map[string]any, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}
