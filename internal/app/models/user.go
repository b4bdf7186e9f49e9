package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent      RoleType = "STUDENT"
	RoleProfessional RoleType = "PROFESSIONAL"
	RoleCompany      RoleType = "COMPANY"
	RoleAdmin        RoleType = "ADMIN"
)

// ValidRole reports whether the role is one of the known roles.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleStudent, RoleProfessional, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"user@itcommunity.com"`
	Password    string     `json:"-" db:"password"` // hashed, excluded from JSON
	Name        string     `json:"name" db:"name" example:"Jane Doe"`
	Role        RoleType   `json:"role" db:"role" example:"STUDENT"`
	AvatarURL   *string    `json:"avatar,omitempty" db:"avatar_url"`
	Bio         *string    `json:"bio,omitempty" db:"bio"`
	Location    *string    `json:"location,omitempty" db:"location"`
	Company     *string    `json:"company,omitempty" db:"company"`
	Skills      []string   `json:"skills" db:"skills"`
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	// Notification preferences, updated via profile settings
	EmailNotifications bool `json:"emailNotifications" db:"email_notifications"`
	PushNotifications  bool `json:"pushNotifications" db:"push_notifications"`
}
