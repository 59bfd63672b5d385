package model

import "time"

// CompanyStatus is the review state of a company.
type CompanyStatus string

const (
	CompanyStatusPending   CompanyStatus = "Pending"
	CompanyStatusApproved  CompanyStatus = "Approved"
	CompanyStatusSuspended CompanyStatus = "Suspended"
)

// Company is an employer registered on the platform.
type Company struct {
	ID        string        `json:"id" firestore:"-"`
	Name      string        `json:"name" firestore:"name"`
	Email     string        `json:"email" firestore:"email"`
	Approved  bool          `json:"approved" firestore:"approved"`
	Status    CompanyStatus `json:"status" firestore:"status"`
	CreatedAt Timestamp     `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (c *Company) SetID(id string)        { c.ID = id }
func (c *Company) CreatedTime() time.Time { return createdOrEpoch(c.CreatedAt) }

// CompanyMatch records how an id-or-name identifier resolved.
type CompanyMatch string

const (
	CompanyMatchByID   CompanyMatch = "id"
	CompanyMatchByName CompanyMatch = "name"
)
