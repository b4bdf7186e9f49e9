package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	TokenRepository       *TokenRepository
	ProjectRepository     *ProjectRepository
	EventRepository       *EventRepository
	JobRepository         *JobRepository
	ApplicationRepository *ApplicationRepository
	SuggestionRepository  *SuggestionRepository
	CareerPathRepository  *CareerPathRepository
	ActivityRepository    *ActivityRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		TokenRepository:       NewTokenRepository(db),
		ProjectRepository:     NewProjectRepository(db),
		EventRepository:       NewEventRepository(db),
		JobRepository:         NewJobRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		SuggestionRepository:  NewSuggestionRepository(db),
		CareerPathRepository:  NewCareerPathRepository(db),
		ActivityRepository:    NewActivityRepository(db),
	}
}
