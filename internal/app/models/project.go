package models

import "time"

// ProjectStatus represents the moderation state of a project
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusPublished ProjectStatus = "PUBLISHED"
	ProjectStatusRejected  ProjectStatus = "REJECTED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// ProjectType distinguishes showcase projects from practice submissions
type ProjectType string

const (
	ProjectTypeStudent  ProjectType = "STUDENT_PROJECT"
	ProjectTypePractice ProjectType = "PRACTICE_PROJECT"
)

// projectTransitions is the authoritative transition table. Status changes are
// validated here, never in clients.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusDraft:     {ProjectStatusPublished, ProjectStatusRejected},
	ProjectStatusPublished: {ProjectStatusArchived},
	ProjectStatusRejected:  {ProjectStatusPublished},
	ProjectStatusArchived:  {},
}

// CanTransitionTo reports whether the project status may move to target.
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Project defines the project model based on the 'projects' table
type Project struct {
	ID            int64         `json:"id" db:"id"`
	Title         string        `json:"title" db:"title"`
	Description   string        `json:"description" db:"description"`
	Technologies  []string      `json:"technologies" db:"technologies"`
	GithubURL     *string       `json:"githubUrl,omitempty" db:"github_url"`
	LiveURL       *string       `json:"liveUrl,omitempty" db:"live_url"`
	ImageURL      *string       `json:"imageUrl,omitempty" db:"image_url"`
	Status        ProjectStatus `json:"status" db:"status"`
	ProjectType   ProjectType   `json:"projectType" db:"project_type"`
	AuthorID      int64         `json:"authorId" db:"author_id"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" db:"updated_at"`
	Author        *User         `json:"author,omitempty"` // relation, no db tag
	FeedbackCount int           `json:"feedbackCount"`
}

// ProjectFeedback defines a feedback entry left on a project
type ProjectFeedback struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"projectId" db:"project_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	Rating    *int      `json:"rating,omitempty" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Author    *User     `json:"author,omitempty"`
}
