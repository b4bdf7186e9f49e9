package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// ActivityRepository handles activity feed database operations
type ActivityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create records a new activity feed entry. Failures are logged but the
// caller's operation has already succeeded, so recording is best effort.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	sql, args, err := r.sb.Insert("activities").
		Columns("type", "actor_id", "subject", "subject_id", "message", "created_at").
		Values(activity.Type, activity.ActorID, activity.Subject, activity.SubjectID,
			activity.Message, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create activity query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Warn().Err(err).Str("type", string(activity.Type)).Msg("Failed to record activity")
		return fmt.Errorf("error creating activity: %w", err)
	}

	return nil
}

// GetRecent retrieves the activity feed, newest first
func (r *ActivityRepository) GetRecent(ctx context.Context, page, pageSize int) ([]*models.Activity, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("activities").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count activities query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting activities: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	sql, args, err := r.sb.Select(
		"a.id", "a.type", "a.actor_id", "a.subject", "a.subject_id", "a.message", "a.created_at",
		"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at").
		From("activities a").
		LeftJoin("users u ON u.id = a.actor_id").
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list activities query")
		return nil, 0, fmt.Errorf("error listing activities: %w", err)
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		var a models.Activity
		var actorID *int64
		var actorEmail, actorName, actorRole *string
		var actorAvatar *string
		var actorActive *bool
		var actorCreatedAt *time.Time

		err := rows.Scan(
			&a.ID, &a.Type, &a.ActorID, &a.Subject, &a.SubjectID, &a.Message, &a.CreatedAt,
			&actorID, &actorEmail, &actorName, &actorRole, &actorAvatar, &actorActive, &actorCreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning activity row: %w", err)
		}

		if actorID != nil {
			a.Actor = &models.User{
				ID:        *actorID,
				Email:     *actorEmail,
				Name:      *actorName,
				Role:      models.RoleType(*actorRole),
				AvatarURL: actorAvatar,
				IsActive:  *actorActive,
				CreatedAt: *actorCreatedAt,
			}
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, total, nil
}

// DeleteOlderThan prunes feed entries older than the cutoff
func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("activities").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build prune activities query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error pruning activities: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
