package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// CreateProjectRequest represents a project submission
type CreateProjectRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Description  string   `json:"description" binding:"required,min=10,max=5000"`
	Technologies []string `json:"technologies" binding:"required,min=1,max=20,dive,min=1,max=50"`
	GithubURL    *string  `json:"githubUrl" binding:"omitempty,url"`
	LiveURL      *string  `json:"liveUrl" binding:"omitempty,url"`
	ImageURL     *string  `json:"imageUrl" binding:"omitempty,url"`
	ProjectType  string   `json:"projectType" binding:"omitempty,oneof=STUDENT_PROJECT PRACTICE_PROJECT"`
}

// UpdateProjectRequest represents a project update. Only draft and rejected
// projects may be edited by their author.
type UpdateProjectRequest struct {
	Title        string   `json:"title" binding:"required,min=3,max=200"`
	Description  string   `json:"description" binding:"required,min=10,max=5000"`
	Technologies []string `json:"technologies" binding:"required,min=1,max=20,dive,min=1,max=50"`
	GithubURL    *string  `json:"githubUrl" binding:"omitempty,url"`
	LiveURL      *string  `json:"liveUrl" binding:"omitempty,url"`
	ImageURL     *string  `json:"imageUrl" binding:"omitempty,url"`
}

// UpdateProjectStatusRequest changes a project's moderation status
type UpdateProjectStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT PUBLISHED REJECTED ARCHIVED"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Technologies  []string      `json:"technologies"`
	GithubURL     *string       `json:"githubUrl,omitempty"`
	LiveURL       *string       `json:"liveUrl,omitempty"`
	ImageURL      *string       `json:"imageUrl,omitempty"`
	Status        string        `json:"status"`
	ProjectType   string        `json:"projectType"`
	Author        *UserResponse `json:"author,omitempty"`
	FeedbackCount int           `json:"feedbackCount"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

// FromProject converts a project model to its response representation
func FromProject(p *models.Project) ProjectResponse {
	if p == nil {
		return ProjectResponse{}
	}
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	resp := ProjectResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Technologies:  techs,
		GithubURL:     p.GithubURL,
		LiveURL:       p.LiveURL,
		ImageURL:      p.ImageURL,
		Status:        string(p.Status),
		ProjectType:   string(p.ProjectType),
		FeedbackCount: p.FeedbackCount,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Author != nil {
		author := FromUser(p.Author)
		resp.Author = &author
	}
	return resp
}

// FromProjects converts a slice of project models
func FromProjects(projects []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, FromProject(p))
	}
	return out
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []ProjectResponse `json:"projects"`
	Pagination PaginationInfo    `json:"pagination"`
}

// CreateFeedbackRequest represents feedback left on a project
type CreateFeedbackRequest struct {
	Content string `json:"content" binding:"required,min=3,max=2000"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackResponse represents a feedback entry in API responses
type FeedbackResponse struct {
	ID        int64         `json:"id"`
	ProjectID int64         `json:"projectId"`
	Content   string        `json:"content"`
	Rating    *int          `json:"rating,omitempty"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

// FromFeedback converts a feedback model to its response representation
func FromFeedback(f *models.ProjectFeedback) FeedbackResponse {
	if f == nil {
		return FeedbackResponse{}
	}
	resp := FeedbackResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Content:   f.Content,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
	if f.Author != nil {
		author := FromUser(f.Author)
		resp.Author = &author
	}
	return resp
}

// FromFeedbackList converts a slice of feedback models
func FromFeedbackList(items []*models.ProjectFeedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(items))
	for _, f := range items {
		out = append(out, FromFeedback(f))
	}
	return out
}
