package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// ActivityRecorder writes entries to the platform activity feed. Recording is
// best effort: a feed write failure never fails the operation that caused it.
type ActivityRecorder struct {
	activityRepo *repositories.ActivityRepository
	logger       zerolog.Logger
}

// NewActivityRecorder creates a new ActivityRecorder
func NewActivityRecorder(activityRepo *repositories.ActivityRepository) *ActivityRecorder {
	return &ActivityRecorder{
		activityRepo: activityRepo,
		logger:       logger.Logger().With().Str("service", "activity").Logger(),
	}
}

// Record appends an entry to the activity feed
func (r *ActivityRecorder) Record(ctx context.Context, activityType models.ActivityType, actorID *int64, subject string, subjectID *int64, message string) {
	activity := &models.Activity{
		Type:      activityType,
		ActorID:   actorID,
		Subject:   subject,
		SubjectID: subjectID,
		Message:   message,
	}
	if err := r.activityRepo.Create(ctx, activity); err != nil {
		r.logger.Warn().Err(err).Str("type", string(activityType)).Msg("Activity feed write failed")
	}
}
