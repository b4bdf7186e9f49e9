package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// DashboardStatsResponse aggregates platform-wide counters for the admin dashboard
type DashboardStatsResponse struct {
	TotalUsers         int64 `json:"totalUsers"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalProjects      int64 `json:"totalProjects"`
	PendingProjects    int64 `json:"pendingProjects"`
	TotalEvents        int64 `json:"totalEvents"`
	UpcomingEvents     int64 `json:"upcomingEvents"`
	TotalJobs          int64 `json:"totalJobs"`
	OpenJobs           int64 `json:"openJobs"`
	TotalApplications  int64 `json:"totalApplications"`
	TotalSuggestions   int64 `json:"totalSuggestions"`
	PendingSuggestions int64 `json:"pendingSuggestions"`
}

// ActivityResponse represents a feed entry in API responses
type ActivityResponse struct {
	ID        int64         `json:"id"`
	Type      string        `json:"type"`
	Subject   string        `json:"subject"`
	SubjectID *int64        `json:"subjectId,omitempty"`
	Message   string        `json:"message"`
	Actor     *UserResponse `json:"actor,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

// FromActivity converts an activity model to its response representation
func FromActivity(a *models.Activity) ActivityResponse {
	if a == nil {
		return ActivityResponse{}
	}
	resp := ActivityResponse{
		ID:        a.ID,
		Type:      string(a.Type),
		Subject:   a.Subject,
		SubjectID: a.SubjectID,
		Message:   a.Message,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.Actor != nil {
		actor := FromUser(a.Actor)
		resp.Actor = &actor
	}
	return resp
}

// FromActivities converts a slice of activity models
func FromActivities(items []*models.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromActivity(a))
	}
	return out
}

// ActivityListResponse represents a paginated activity feed
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Pagination PaginationInfo     `json:"pagination"`
}
