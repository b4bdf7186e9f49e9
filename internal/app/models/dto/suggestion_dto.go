package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// CreateSuggestionRequest represents a community suggestion submission
type CreateSuggestionRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required,min=10,max=5000"`
	Type        string   `json:"type" binding:"required,min=2,max=100"`
	Tags        []string `json:"tags" binding:"omitempty,max=10,dive,min=1,max=50"`
}

// UpdateSuggestionStatusRequest changes a suggestion's review status
type UpdateSuggestionStatusRequest struct {
	Status    string  `json:"status" binding:"required,oneof=pending under_review approved implemented rejected"`
	Priority  *string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	AdminNote *string `json:"adminNote" binding:"omitempty,max=2000"`
}

// SuggestionResponse represents a suggestion in API responses
type SuggestionResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Tags        []string      `json:"tags"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	AdminNote   *string       `json:"adminNote,omitempty"`
	Votes       int           `json:"votes"`
	VotedByMe   bool          `json:"votedByMe"`
	Author      *UserResponse `json:"author,omitempty"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// FromSuggestion converts a suggestion model to its response representation
func FromSuggestion(s *models.Suggestion) SuggestionResponse {
	if s == nil {
		return SuggestionResponse{}
	}
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := SuggestionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Type:        s.Type,
		Tags:        tags,
		Status:      string(s.Status),
		Priority:    string(s.Priority),
		AdminNote:   s.AdminNote,
		Votes:       s.Votes,
		VotedByMe:   s.VotedByMe,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
	if s.Author != nil {
		author := FromUser(s.Author)
		resp.Author = &author
	}
	return resp
}

// FromSuggestions converts a slice of suggestion models
func FromSuggestions(items []*models.Suggestion) []SuggestionResponse {
	out := make([]SuggestionResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromSuggestion(s))
	}
	return out
}

// SuggestionListResponse represents a paginated list of suggestions
type SuggestionListResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// VoteResponse reports the result of a vote toggle
type VoteResponse struct {
	SuggestionID int64 `json:"suggestionId"`
	Votes        int   `json:"votes"`
	VotedByMe    bool  `json:"votedByMe"`
}
