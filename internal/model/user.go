package model

import "time"

// RoleAdmin is the only role allowed through the admin API.
const RoleAdmin = "admin"

// User is a platform account. Users are created by the signup flow;
// the admin API only reads and deletes them.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Role      string    `json:"role" firestore:"role"`
	CreatedAt Timestamp `json:"createdAt,omitzero" firestore:"createdAt"`
}

func (u *User) SetID(id string)        { u.ID = id }
func (u *User) CreatedTime() time.Time { return createdOrEpoch(u.CreatedAt) }

// IsAdmin reports whether the user may use the admin API.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
