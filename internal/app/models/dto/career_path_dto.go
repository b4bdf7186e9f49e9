package dto

import (
	"time"

	"github.com/itcommunity/platform/internal/app/models"
)

// CreateCareerPathRequest represents a career path creation request
type CreateCareerPathRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required,min=10,max=5000"`
	Category    string   `json:"category" binding:"required,min=2,max=100"`
	Level       string   `json:"level" binding:"required,oneof=JUNIOR MIDDLE SENIOR LEAD"`
	Demand      string   `json:"demand" binding:"required,oneof=low medium high"`
	SalaryMin   int      `json:"salaryMin" binding:"required,min=0"`
	SalaryMax   int      `json:"salaryMax" binding:"required,gtefield=SalaryMin"`
	Skills      []string `json:"skills" binding:"required,min=1,max=30,dive,min=1,max=100"`
	Roadmap     []string `json:"roadmap" binding:"omitempty,max=50,dive,min=1,max=300"`
}

// UpdateCareerPathRequest represents a career path update request
type UpdateCareerPathRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=200"`
	Description string   `json:"description" binding:"required,min=10,max=5000"`
	Category    string   `json:"category" binding:"required,min=2,max=100"`
	Level       string   `json:"level" binding:"required,oneof=JUNIOR MIDDLE SENIOR LEAD"`
	Demand      string   `json:"demand" binding:"required,oneof=low medium high"`
	SalaryMin   int      `json:"salaryMin" binding:"required,min=0"`
	SalaryMax   int      `json:"salaryMax" binding:"required,gtefield=SalaryMin"`
	Skills      []string `json:"skills" binding:"required,min=1,max=30,dive,min=1,max=100"`
	Roadmap     []string `json:"roadmap" binding:"omitempty,max=50,dive,min=1,max=300"`
}

// CareerPathResponse represents a career path in API responses
type CareerPathResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Demand      string   `json:"demand"`
	SalaryMin   int      `json:"salaryMin"`
	SalaryMax   int      `json:"salaryMax"`
	Skills      []string `json:"skills"`
	Roadmap     []string `json:"roadmap"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// FromCareerPath converts a career path model to its response representation
func FromCareerPath(p *models.CareerPath) CareerPathResponse {
	if p == nil {
		return CareerPathResponse{}
	}
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	roadmap := p.Roadmap
	if roadmap == nil {
		roadmap = []string{}
	}
	return CareerPathResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Level:       string(p.Level),
		Demand:      string(p.Demand),
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		Skills:      skills,
		Roadmap:     roadmap,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// FromCareerPaths converts a slice of career path models
func FromCareerPaths(paths []*models.CareerPath) []CareerPathResponse {
	out := make([]CareerPathResponse, 0, len(paths))
	for _, p := range paths {
		out = append(out, FromCareerPath(p))
	}
	return out
}

// CareerPathListResponse represents a list of career paths
type CareerPathListResponse struct {
	CareerPaths []CareerPathResponse `json:"careerPaths"`
}
