package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLevelChanged      EventType = "user_level_changed"
	EventOrderPlaced           EventType = "order_placed"
	EventOrderStatusChanged    EventType = "order_status_changed"
	EventSupportRequestCreated EventType = "support_request_created"
)

// AllTypes lists every event the store publishes.
func AllTypes() []EventType {
	return []EventType{
		EventUserLevelChanged,
		EventOrderPlaced,
		EventOrderStatusChanged,
		EventSupportRequestCreated,
	}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID int64     `json:"subject_id"`
	ActorID   int64     `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID, actorID int64, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserLevelChangedPayload payload. SubjectID is the user.
type UserLevelChangedPayload struct {
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
}

// OrderPlacedPayload payload. SubjectID is the order.
type OrderPlacedPayload struct {
	UserID      int64   `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	ModuleCount int     `json:"module_count"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// SupportRequestCreatedPayload payload. UserID is nil for anonymous requests.
type SupportRequestCreatedPayload struct {
	UserID *int64 `json:"user_id,omitempty"`
}
