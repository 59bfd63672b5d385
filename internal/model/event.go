package model

import "time"

// EventAction is the kind of mutation an admin performed.
type EventAction string

const (
	EventCreated   EventAction = "created"
	EventUpdated   EventAction = "updated"
	EventDeleted   EventAction = "deleted"
	EventApproved  EventAction = "approved"
	EventSuspended EventAction = "suspended"
	EventPublished EventAction = "published"
)

// AdminEvent is broadcast on the admin activity feed after a successful write.
type AdminEvent struct {
	Action   EventAction `json:"type"`
	Entity   string      `json:"entity"`
	EntityID string      `json:"id"`
	ParentID string      `json:"parentId,omitempty"`
	ActorID  string      `json:"actorId,omitempty"`
	At       time.Time   `json:"at"`
}
