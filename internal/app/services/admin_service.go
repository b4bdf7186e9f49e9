package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// AdminService executes bulk moderation operations. Items are processed
// independently: one failure is reported per item and never aborts the rest.
type AdminService struct {
	projectService    *ProjectService
	eventService      *EventService
	jobService        *JobService
	userService       *UserService
	suggestionService *SuggestionService
	logger            zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	projectService *ProjectService,
	eventService *EventService,
	jobService *JobService,
	userService *UserService,
	suggestionService *SuggestionService,
) *AdminService {
	return &AdminService{
		projectService:    projectService,
		eventService:      eventService,
		jobService:        jobService,
		userService:       userService,
		suggestionService: suggestionService,
		logger:            logger.Logger().With().Str("service", "admin").Logger(),
	}
}

// BulkUpdateProjectStatus applies a status transition to each project
func (s *AdminService) BulkUpdateProjectStatus(ctx context.Context, actorID int64, ids []int64, status string) (*dto.BulkOperationResponse, error) {
	target := models.ProjectStatus(status)
	switch target {
	case models.ProjectStatusDraft, models.ProjectStatusPublished,
		models.ProjectStatusRejected, models.ProjectStatusArchived:
	default:
		return nil, apperrors.NewBadRequestError("invalid project status")
	}

	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if _, err := s.projectService.UpdateStatus(ctx, id, actorID, target); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).
		Str("status", status).Msg("Bulk project status update")
	return result, nil
}

// BulkDeleteProjects removes each project
func (s *AdminService) BulkDeleteProjects(ctx context.Context, ids []int64) (*dto.BulkOperationResponse, error) {
	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if err := s.projectService.Delete(ctx, id); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).Msg("Bulk project delete")
	return result, nil
}

// BulkUpdateEventStatus applies a status transition to each event
func (s *AdminService) BulkUpdateEventStatus(ctx context.Context, ids []int64, status string) (*dto.BulkOperationResponse, error) {
	target := models.EventStatus(status)
	switch target {
	case models.EventStatusDraft, models.EventStatusPublished,
		models.EventStatusCancelled, models.EventStatusCompleted:
	default:
		return nil, apperrors.NewBadRequestError("invalid event status")
	}

	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if _, err := s.eventService.UpdateStatus(ctx, id, target); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).
		Str("status", status).Msg("Bulk event status update")
	return result, nil
}

// BulkDeleteEvents removes each event
func (s *AdminService) BulkDeleteEvents(ctx context.Context, ids []int64) (*dto.BulkOperationResponse, error) {
	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if err := s.eventService.Delete(ctx, id); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).Msg("Bulk event delete")
	return result, nil
}

// BulkUpdateJobStatus applies a status transition to each job
func (s *AdminService) BulkUpdateJobStatus(ctx context.Context, actorID int64, ids []int64, status string) (*dto.BulkOperationResponse, error) {
	target := models.JobStatus(status)
	switch target {
	case models.JobStatusDraft, models.JobStatusPublished,
		models.JobStatusClosed, models.JobStatusArchived:
	default:
		return nil, apperrors.NewBadRequestError("invalid job status")
	}

	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if _, err := s.jobService.UpdateStatus(ctx, id, actorID, target); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).
		Str("status", status).Msg("Bulk job status update")
	return result, nil
}

// BulkDeleteJobs removes each job posting
func (s *AdminService) BulkDeleteJobs(ctx context.Context, ids []int64) (*dto.BulkOperationResponse, error) {
	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if err := s.jobService.Delete(ctx, id); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).Msg("Bulk job delete")
	return result, nil
}

// BulkSetUserActive activates or deactivates each user account
func (s *AdminService) BulkSetUserActive(ctx context.Context, actorID int64, ids []int64, active bool) (*dto.BulkOperationResponse, error) {
	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if id == actorID {
			result.AddFailure(id, apperrors.NewBadRequestError("cannot change your own account state"))
			continue
		}
		if err := s.userService.SetUserActive(ctx, id, active); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).
		Bool("active", active).Msg("Bulk user active update")
	return result, nil
}

// BulkDeleteSuggestions removes each suggestion
func (s *AdminService) BulkDeleteSuggestions(ctx context.Context, ids []int64) (*dto.BulkOperationResponse, error) {
	result := dto.NewBulkOperationResponse()
	for _, id := range ids {
		if err := s.suggestionService.Delete(ctx, id); err != nil {
			result.AddFailure(id, err)
			continue
		}
		result.AddSuccess(id)
	}

	s.logger.Info().Int("total", len(ids)).Int("failed", len(result.Failed)).Msg("Bulk suggestion delete")
	return result, nil
}
