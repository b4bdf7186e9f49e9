package models

import "time"

// EventType classifies community events
type EventType string

const (
	EventTypeWorkshop   EventType = "WORKSHOP"
	EventTypeNetworking EventType = "NETWORKING"
	EventTypeHackathon  EventType = "HACKATHON"
	EventTypeSeminar    EventType = "SEMINAR"
)

// ValidEventType reports whether the type is a known event type.
func ValidEventType(t EventType) bool {
	switch t {
	case EventTypeWorkshop, EventTypeNetworking, EventTypeHackathon, EventTypeSeminar:
		return true
	}
	return false
}

// EventStatus represents the lifecycle state of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusDraft:     {EventStatusPublished, EventStatusCancelled},
	EventStatusPublished: {EventStatusCancelled, EventStatusCompleted},
	EventStatusCancelled: {},
	EventStatusCompleted: {},
}

// CanTransitionTo reports whether the event status may move to target.
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Event defines the event model based on the 'events' table
type Event struct {
	ID               int64       `json:"id" db:"id"`
	Title            string      `json:"title" db:"title"`
	Description      string      `json:"description" db:"description"`
	Date             time.Time   `json:"date" db:"date"`
	Location         string      `json:"location" db:"location"`
	Type             EventType   `json:"type" db:"type"`
	Status           EventStatus `json:"status" db:"status"`
	MaxAttendees     *int        `json:"maxAttendees,omitempty" db:"max_attendees"`
	CurrentAttendees int         `json:"currentAttendees"` // derived from registrations
	OrganizerID      int64       `json:"organizerId" db:"organizer_id"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
	Organizer        *User       `json:"organizer,omitempty"`
}

// EventRegistration records a user's registration for an event
type EventRegistration struct {
	EventID      int64     `json:"eventId" db:"event_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
}
