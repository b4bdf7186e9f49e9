package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// CreateEventRequest represents an event creation request
type CreateEventRequest struct {
	Title        string    `json:"title" binding:"required,min=3,max=200"`
	Description  string    `json:"description" binding:"required,min=10,max=5000"`
	Date         time.Time `json:"date" binding:"required"`
	Location     string    `json:"location" binding:"required,min=2,max=300"`
	Type         string    `json:"type" binding:"required,oneof=WORKSHOP NETWORKING HACKATHON SEMINAR"`
	MaxAttendees *int      `json:"maxAttendees" binding:"omitempty,min=1"`
}

// UpdateEventRequest represents an event update request
type UpdateEventRequest struct {
	Title        string    `json:"title" binding:"required,min=3,max=200"`
	Description  string    `json:"description" binding:"required,min=10,max=5000"`
	Date         time.Time `json:"date" binding:"required"`
	Location     string    `json:"location" binding:"required,min=2,max=300"`
	Type         string    `json:"type" binding:"required,oneof=WORKSHOP NETWORKING HACKATHON SEMINAR"`
	MaxAttendees *int      `json:"maxAttendees" binding:"omitempty,min=1"`
}

// UpdateEventStatusRequest changes an event's lifecycle status
type UpdateEventStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID               int64         `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Date             string        `json:"date"`
	Location         string        `json:"location"`
	Type             string        `json:"type"`
	Status           string        `json:"status"`
	MaxAttendees     *int          `json:"maxAttendees,omitempty"`
	CurrentAttendees int           `json:"currentAttendees"`
	Organizer        *UserResponse `json:"organizer,omitempty"`
	IsRegistered     bool          `json:"isRegistered"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
}

// FromEvent converts an event model to its response representation
func FromEvent(e *models.Event) EventResponse {
	if e == nil {
		return EventResponse{}
	}
	resp := EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		Date:             e.Date.Format(time.RFC3339),
		Location:         e.Location,
		Type:             string(e.Type),
		Status:           string(e.Status),
		MaxAttendees:     e.MaxAttendees,
		CurrentAttendees: e.CurrentAttendees,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
	if e.Organizer != nil {
		organizer := FromUser(e.Organizer)
		resp.Organizer = &organizer
	}
	return resp
}

// FromEvents converts a slice of event models
func FromEvents(events []*models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, FromEvent(e))
	}
	return out
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination PaginationInfo  `json:"pagination"`
}

// AttendeeResponse represents a registered attendee
type AttendeeResponse struct {
	User         UserResponse `json:"user"`
	RegisteredAt string       `json:"registeredAt"`
}

// EventStatsResponse aggregates the public event overview counters
type EventStatsResponse struct {
	TotalEvents    int64            `json:"totalEvents"`
	UpcomingEvents int64            `json:"upcomingEvents"`
	TotalAttendees int64            `json:"totalAttendees"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ByType         map[string]int64 `json:"byType"`
}
