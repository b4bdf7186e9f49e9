package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// UserResponse represents public user information
type UserResponse struct {
	ID        int64    `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      string   `json:"role"`
	Avatar    *string  `json:"avatar,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Company   *string  `json:"company,omitempty"`
	Skills    []string `json:"skills"`
	IsActive  bool     `json:"isActive"`
	CreatedAt string   `json:"createdAt"`
}

// FromUser converts a user model to its response representation
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.AvatarURL,
		Bio:       u.Bio,
		Location:  u.Location,
		Company:   u.Company,
		Skills:    skills,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// FromUsers converts a slice of user models
func FromUsers(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Bio      *string  `json:"bio" binding:"omitempty,max=1000"`
	Location *string  `json:"location" binding:"omitempty,max=200"`
	Company  *string  `json:"company" binding:"omitempty,max=200"`
	Skills   []string `json:"skills" binding:"omitempty,max=30,dive,min=1,max=50"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// NotificationSettingsRequest updates notification preferences
type NotificationSettingsRequest struct {
	EmailNotifications *bool `json:"emailNotifications"`
	PushNotifications  *bool `json:"pushNotifications"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
