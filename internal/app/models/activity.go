package models

import "time"

// ActivityType classifies entries in the platform activity feed
type ActivityType string

const (
	ActivityUserRegistered        ActivityType = "USER_REGISTERED"
	ActivityProjectSubmitted      ActivityType = "PROJECT_SUBMITTED"
	ActivityProjectPublished      ActivityType = "PROJECT_PUBLISHED"
	ActivityEventCreated          ActivityType = "EVENT_CREATED"
	ActivityEventRegistration     ActivityType = "EVENT_REGISTRATION"
	ActivityJobPosted             ActivityType = "JOB_POSTED"
	ActivityJobApplication        ActivityType = "JOB_APPLICATION"
	ActivitySuggestionCreated     ActivityType = "SUGGESTION_CREATED"
	ActivitySuggestionImplemented ActivityType = "SUGGESTION_IMPLEMENTED"
)

// Activity defines a single feed entry based on the 'activities' table
type Activity struct {
	ID        int64        `json:"id" db:"id"`
	Type      ActivityType `json:"type" db:"type"`
	ActorID   *int64       `json:"actorId,omitempty" db:"actor_id"`
	Subject   string       `json:"subject" db:"subject"`
	SubjectID *int64       `json:"subjectId,omitempty" db:"subject_id"`
	Message   string       `json:"message" db:"message"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	Actor     *User        `json:"actor,omitempty"`
}
