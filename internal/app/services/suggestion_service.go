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

// SuggestionService handles community suggestion operations
type SuggestionService struct {
	suggestionRepo *repositories.SuggestionRepository
	activities     *ActivityRecorder
	logger         zerolog.Logger
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(suggestionRepo *repositories.SuggestionRepository, activities *ActivityRecorder) *SuggestionService {
	return &SuggestionService{
		suggestionRepo: suggestionRepo,
		activities:     activities,
		logger:         logger.Logger().With().Str("service", "suggestion").Logger(),
	}
}

// Create submits a new suggestion in pending status
func (s *SuggestionService) Create(ctx context.Context, authorID int64, req *dto.CreateSuggestionRequest) (*dto.SuggestionResponse, error) {
	suggestion := &models.Suggestion{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Tags:        req.Tags,
		AuthorID:    authorID,
	}

	id, err := s.suggestionRepo.Create(ctx, suggestion)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("suggestionID", id).Int64("authorID", authorID).Msg("Suggestion submitted")
	s.activities.Record(ctx, models.ActivitySuggestionCreated, &authorID, "suggestion", &id,
		fmt.Sprintf("New suggestion: %s", req.Title))

	return s.GetByID(ctx, id, authorID)
}

// GetByID retrieves a suggestion from the viewer's perspective
func (s *SuggestionService) GetByID(ctx context.Context, id, viewerID int64) (*dto.SuggestionResponse, error) {
	suggestion, err := s.suggestionRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSuggestion(suggestion)
	return &resp, nil
}

// GetModel retrieves the raw suggestion model for authorization checks
func (s *SuggestionService) GetModel(ctx context.Context, id int64) (*models.Suggestion, error) {
	return s.suggestionRepo.GetByID(ctx, id, 0)
}

// List retrieves suggestions with filtering and pagination
func (s *SuggestionService) List(ctx context.Context, filter repositories.SuggestionFilter, viewerID int64, page, size int) (*dto.SuggestionListResponse, error) {
	suggestions, total, err := s.suggestionRepo.GetAll(ctx, filter, viewerID, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.SuggestionListResponse{
		Suggestions: dto.FromSuggestions(suggestions),
		Pagination:  helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// UpdateStatus changes a suggestion's review status, priority and admin note.
// Admin only.
func (s *SuggestionService) UpdateStatus(ctx context.Context, id int64, actorID int64, req *dto.UpdateSuggestionStatusRequest) (*dto.SuggestionResponse, error) {
	status := models.SuggestionStatus(req.Status)
	if !models.ValidSuggestionStatus(status) {
		return nil, apperrors.NewBadRequestError("invalid suggestion status")
	}

	var priority *models.SuggestionPriority
	if req.Priority != nil {
		p := models.SuggestionPriority(*req.Priority)
		if !models.ValidSuggestionPriority(p) {
			return nil, apperrors.NewBadRequestError("invalid suggestion priority")
		}
		priority = &p
	}

	if err := s.suggestionRepo.UpdateStatus(ctx, id, status, priority, req.AdminNote); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("suggestionID", id).Str("status", req.Status).Msg("Suggestion status changed")

	if status == models.SuggestionStatusImplemented {
		suggestion, err := s.suggestionRepo.GetByID(ctx, id, 0)
		if err == nil {
			s.activities.Record(ctx, models.ActivitySuggestionImplemented, &actorID, "suggestion", &id,
				fmt.Sprintf("Suggestion implemented: %s", suggestion.Title))
		}
	}

	return s.GetByID(ctx, id, actorID)
}

// Delete removes a suggestion and its votes
func (s *SuggestionService) Delete(ctx context.Context, id int64) error {
	if err := s.suggestionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("suggestionID", id).Msg("Suggestion deleted")
	return nil
}

// ToggleVote flips the caller's vote on a suggestion and returns the
// resulting count. One vote per user is enforced by the vote table's key.
func (s *SuggestionService) ToggleVote(ctx context.Context, suggestionID, userID int64) (*dto.VoteResponse, error) {
	votes, voted, err := s.suggestionRepo.ToggleVote(ctx, suggestionID, userID)
	if err != nil {
		return nil, err
	}

	return &dto.VoteResponse{
		SuggestionID: suggestionID,
		Votes:        votes,
		VotedByMe:    voted,
	}, nil
}
