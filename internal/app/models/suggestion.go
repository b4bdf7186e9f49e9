package models

import "time"

// SuggestionStatus represents the review state of a community suggestion
type SuggestionStatus string

const (
	SuggestionStatusPending     SuggestionStatus = "pending"
	SuggestionStatusUnderReview SuggestionStatus = "under_review"
	SuggestionStatusApproved    SuggestionStatus = "approved"
	SuggestionStatusImplemented SuggestionStatus = "implemented"
	SuggestionStatusRejected    SuggestionStatus = "rejected"
)

// ValidSuggestionStatus reports whether the status is a known suggestion status.
func ValidSuggestionStatus(s SuggestionStatus) bool {
	switch s {
	case SuggestionStatusPending, SuggestionStatusUnderReview, SuggestionStatusApproved,
		SuggestionStatusImplemented, SuggestionStatusRejected:
		return true
	}
	return false
}

// SuggestionPriority ranks suggestions for the admin review queue
type SuggestionPriority string

const (
	SuggestionPriorityLow      SuggestionPriority = "low"
	SuggestionPriorityMedium   SuggestionPriority = "medium"
	SuggestionPriorityHigh     SuggestionPriority = "high"
	SuggestionPriorityCritical SuggestionPriority = "critical"
)

// ValidSuggestionPriority reports whether the priority is known.
func ValidSuggestionPriority(p SuggestionPriority) bool {
	switch p {
	case SuggestionPriorityLow, SuggestionPriorityMedium,
		SuggestionPriorityHigh, SuggestionPriorityCritical:
		return true
	}
	return false
}

// Suggestion defines the community suggestion model based on the 'suggestions' table.
// Votes is derived from suggestion_votes and never stored directly.
type Suggestion struct {
	ID          int64              `json:"id" db:"id"`
	Title       string             `json:"title" db:"title"`
	Description string             `json:"description" db:"description"`
	Type        string             `json:"type" db:"type"`
	Tags        []string           `json:"tags" db:"tags"`
	Status      SuggestionStatus   `json:"status" db:"status"`
	Priority    SuggestionPriority `json:"priority" db:"priority"`
	AuthorID    int64              `json:"authorId" db:"author_id"`
	AdminNote   *string            `json:"adminNote,omitempty" db:"admin_note"`
	Votes       int                `json:"votes"`
	VotedByMe   bool               `json:"votedByMe"`
	CreatedAt   time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" db:"updated_at"`
	Author      *User              `json:"author,omitempty"`
}

// SuggestionVote records a single user vote on a suggestion
type SuggestionVote struct {
	SuggestionID int64     `json:"suggestionId" db:"suggestion_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
