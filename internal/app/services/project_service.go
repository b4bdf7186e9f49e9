package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// ProjectService handles project showcase operations
type ProjectService struct {
	projectRepo *repositories.ProjectRepository
	activities  *ActivityRecorder
	logger      zerolog.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo *repositories.ProjectRepository, activities *ActivityRecorder) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		activities:  activities,
		logger:      logger.Logger().With().Str("service", "project").Logger(),
	}
}

// Create submits a new project. It starts in DRAFT until published by a
// moderator.
func (s *ProjectService) Create(ctx context.Context, authorID int64, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	projectType := models.ProjectTypeStudent
	if req.ProjectType != "" {
		projectType = models.ProjectType(req.ProjectType)
	}

	project := &models.Project{
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		GithubURL:    req.GithubURL,
		LiveURL:      req.LiveURL,
		ImageURL:     req.ImageURL,
		ProjectType:  projectType,
		AuthorID:     authorID,
	}

	id, err := s.projectRepo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("projectID", id).Int64("authorID", authorID).Msg("Project submitted")
	s.activities.Record(ctx, models.ActivityProjectSubmitted, &authorID, "project", &id,
		fmt.Sprintf("New project submitted: %s", req.Title))

	return s.GetByID(ctx, id, authorID)
}

// GetByID retrieves a project. Unpublished projects are only visible to
// their author and admins.
func (s *ProjectService) GetByID(ctx context.Context, id, viewerID int64) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromProject(project)
	return &resp, nil
}

// GetModel retrieves the raw project model for authorization checks
func (s *ProjectService) GetModel(ctx context.Context, id int64) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// List retrieves projects with filtering and pagination
func (s *ProjectService) List(ctx context.Context, filter repositories.ProjectFilter, page, size int) (*dto.ProjectListResponse, error) {
	projects, total, err := s.projectRepo.GetAll(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.ProjectListResponse{
		Projects:   dto.FromProjects(projects),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Update edits a project's content. Published projects cannot be edited in
// place, they have to be archived and resubmitted.
func (s *ProjectService) Update(ctx context.Context, id int64, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if project.Status != models.ProjectStatusDraft && project.Status != models.ProjectStatusRejected {
		return nil, apperrors.NewBadRequestError("only draft and rejected projects can be edited")
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Technologies = req.Technologies
	project.GithubURL = req.GithubURL
	project.LiveURL = req.LiveURL
	project.ImageURL = req.ImageURL

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id, 0)
}

// UpdateStatus moves a project through its moderation lifecycle. The
// transition table decides what is legal, the client never does.
func (s *ProjectService) UpdateStatus(ctx context.Context, id int64, actorID int64, target models.ProjectStatus) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !project.Status.CanTransitionTo(target) {
		return nil, apperrors.NewIllegalTransitionError(fmt.Sprintf("cannot transition from %s to %s", project.Status, target))
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, project.Status, target); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("projectID", id).
		Str("from", string(project.Status)).Str("to", string(target)).
		Msg("Project status changed")

	if target == models.ProjectStatusPublished {
		s.activities.Record(ctx, models.ActivityProjectPublished, &actorID, "project", &id,
			fmt.Sprintf("Project published: %s", project.Title))
	}

	return s.GetByID(ctx, id, actorID)
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("projectID", id).Msg("Project deleted")
	return nil
}

// AddFeedback leaves feedback on a published project
func (s *ProjectService) AddFeedback(ctx context.Context, projectID, authorID int64, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != models.ProjectStatusPublished {
		return nil, apperrors.NewBadRequestError("feedback can only be left on published projects")
	}

	feedback := &models.ProjectFeedback{
		ProjectID: projectID,
		AuthorID:  authorID,
		Content:   req.Content,
		Rating:    req.Rating,
	}

	id, err := s.projectRepo.CreateFeedback(ctx, feedback)
	if err != nil {
		return nil, err
	}
	feedback.ID = id

	items, err := s.projectRepo.GetFeedback(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			resp := dto.FromFeedback(item)
			return &resp, nil
		}
	}

	resp := dto.FromFeedback(feedback)
	return &resp, nil
}

// ListFeedback retrieves the feedback on a project
func (s *ProjectService) ListFeedback(ctx context.Context, projectID int64) ([]dto.FeedbackResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	items, err := s.projectRepo.GetFeedback(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return dto.FromFeedbackList(items), nil
}
