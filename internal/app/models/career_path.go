package models

import (
	"strings"
	"time"
)

// CareerLevel represents a seniority band on a career path
type CareerLevel string

const (
	CareerLevelJunior CareerLevel = "JUNIOR"
	CareerLevelMiddle CareerLevel = "MIDDLE"
	CareerLevelSenior CareerLevel = "SENIOR"
	CareerLevelLead   CareerLevel = "LEAD"
)

// DemandLevel ranks the market demand for a career path
type DemandLevel string

const (
	DemandLow    DemandLevel = "low"
	DemandMedium DemandLevel = "medium"
	DemandHigh   DemandLevel = "high"
)

// ValidDemandLevel reports whether the demand level is known.
func ValidDemandLevel(d DemandLevel) bool {
	switch d {
	case DemandLow, DemandMedium, DemandHigh:
		return true
	}
	return false
}

// CareerPath defines a role profile with salary bands and required skills
type CareerPath struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Category    string      `json:"category" db:"category"`
	Level       CareerLevel `json:"level" db:"level"`
	Demand      DemandLevel `json:"demand" db:"demand"`
	SalaryMin   int         `json:"salaryMin" db:"salary_min"`
	SalaryMax   int         `json:"salaryMax" db:"salary_max"`
	Skills      []string    `json:"skills" db:"skills"`
	Roadmap     []string    `json:"roadmap" db:"roadmap"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// CareerPathFilter selects career paths matching every active dimension:
// free-text query over title, description and skills, exact category and
// demand, and a salary band. Unset dimensions always hold, so the zero
// filter matches everything.
type CareerPathFilter struct {
	Query     string
	Category  string
	Demand    *DemandLevel
	SalaryMin int
	SalaryMax *int
}

// Matches reports whether the career path satisfies every active filter
// dimension. A path matches the salary band when its floor is at least
// SalaryMin and, when SalaryMax is set, its ceiling does not exceed it.
func (f CareerPathFilter) Matches(p *CareerPath) bool {
	if p.SalaryMin < f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && p.SalaryMax > *f.SalaryMax {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Demand != nil && p.Demand != *f.Demand {
		return false
	}
	return f.matchesQuery(p)
}

func (f CareerPathFilter) matchesQuery(p *CareerPath) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, skill := range p.Skills {
		if strings.Contains(strings.ToLower(skill), q) {
			return true
		}
	}
	return false
}
