package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCaseCreated    EventType = "case_created"
	EventCaseUpdated    EventType = "case_updated"
	EventCaseDeleted    EventType = "case_deleted"
	EventMessagePosted  EventType = "message_posted"
	EventMessageDeleted EventType = "message_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CaseID    string      `json:"case_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CaseCreatedPayload payload.
type CaseCreatedPayload struct {
	Reference string `json:"reference,omitempty"`
	Property  string `json:"property,omitempty"`
}

// CaseDeletedPayload payload.
type CaseDeletedPayload struct {
	Reference string `json:"reference,omitempty"`
}

// MessagePostedPayload payload.
type MessagePostedPayload struct {
	MessageID   string `json:"message_id"`
	Username    string `json:"username"`
	BodyPreview string `json:"body_preview"`
}
