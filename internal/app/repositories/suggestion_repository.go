package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/db"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/dberrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// SuggestionFilter restricts suggestion listing queries
type SuggestionFilter struct {
	Status   *models.SuggestionStatus
	Priority *models.SuggestionPriority
	Type     string
	Search   string
	AuthorID *int64
	SortBy   string
	SortDesc bool
}

// SuggestionRepository handles suggestion database operations. Vote counts
// are always derived from suggestion_votes rows, never stored.
type SuggestionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSuggestionRepository creates a new SuggestionRepository
func NewSuggestionRepository(db *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// suggestionSelectColumns includes a derived vote count and, via viewerID
// argument, whether the viewer has voted.
func (r *SuggestionRepository) selectBuilder(viewerID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.title", "s.description", "s.type", "s.tags", "s.status", "s.priority",
		"s.author_id", "s.admin_note", "s.created_at", "s.updated_at",
		"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at",
		"(SELECT COUNT(*) FROM suggestion_votes v WHERE v.suggestion_id = s.id) AS votes").
		Column("EXISTS(SELECT 1 FROM suggestion_votes v WHERE v.suggestion_id = s.id AND v.user_id = ?) AS voted_by_me", viewerID).
		From("suggestions s").
		Join("users u ON u.id = s.author_id")
}

func scanSuggestion(row pgx.Row) (*models.Suggestion, error) {
	var s models.Suggestion
	var author models.User
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.Type, &s.Tags, &s.Status, &s.Priority,
		&s.AuthorID, &s.AdminNote, &s.CreatedAt, &s.UpdatedAt,
		&author.ID, &author.Email, &author.Name, &author.Role, &author.AvatarURL,
		&author.IsActive, &author.CreatedAt,
		&s.Votes, &s.VotedByMe,
	)
	if err != nil {
		return nil, err
	}
	s.Author = &author
	return &s, nil
}

// Create inserts a new suggestion in pending status and returns its ID
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("suggestions").
		Columns("title", "description", "type", "tags", "status", "priority",
			"author_id", "created_at", "updated_at").
		Values(suggestion.Title, suggestion.Description, suggestion.Type,
			suggestion.Tags, models.SuggestionStatusPending,
			models.SuggestionPriorityMedium, suggestion.AuthorID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create suggestion SQL")
		return 0, fmt.Errorf("failed to build create suggestion query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("authorID", suggestion.AuthorID).Msg("Error executing create suggestion query")
		return 0, fmt.Errorf("error creating suggestion: %w", err)
	}

	return id, nil
}

// GetByID retrieves a suggestion with votes from the viewer's perspective.
// viewerID may be zero for anonymous requests.
func (r *SuggestionRepository) GetByID(ctx context.Context, id, viewerID int64) (*models.Suggestion, error) {
	sql, args, err := r.selectBuilder(viewerID).
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get suggestion query: %w", err)
	}

	suggestion, err := scanSuggestion(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSuggestionNotFound
		}
		logger.Error().Err(err).Int64("suggestionID", id).Msg("Error scanning suggestion row")
		return nil, fmt.Errorf("error retrieving suggestion: %w", err)
	}

	return suggestion, nil
}

// GetAll retrieves suggestions with filtering and pagination
func (r *SuggestionRepository) GetAll(ctx context.Context, filter SuggestionFilter, viewerID int64, page, pageSize int) ([]*models.Suggestion, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"s.status": *filter.Status})
	}
	if filter.Priority != nil {
		where = append(where, squirrel.Eq{"s.priority": *filter.Priority})
	}
	if filter.Type != "" {
		where = append(where, squirrel.Eq{"s.type": filter.Type})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.title": pattern},
			squirrel.ILike{"s.description": pattern},
		})
	}
	if filter.AuthorID != nil {
		where = append(where, squirrel.Eq{"s.author_id": *filter.AuthorID})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("suggestions s")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count suggestions query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting suggestions")
		return nil, 0, fmt.Errorf("error counting suggestions: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orderBy := suggestionSortColumn(filter.SortBy)
	if filter.SortDesc {
		orderBy += " DESC"
	}

	queryBuilder := r.selectBuilder(viewerID).
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}
	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list suggestions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list suggestions query")
		return nil, 0, fmt.Errorf("error listing suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := make([]*models.Suggestion, 0)
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning suggestion row: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating suggestion rows: %w", err)
	}

	return suggestions, total, nil
}

func suggestionSortColumn(field string) string {
	switch field {
	case "votes":
		return "votes"
	case "priority":
		return "s.priority"
	default:
		return "s.created_at"
	}
}

// UpdateStatus changes a suggestion's review status, priority and admin note
func (r *SuggestionRepository) UpdateStatus(ctx context.Context, id int64, status models.SuggestionStatus, priority *models.SuggestionPriority, adminNote *string) error {
	builder := r.sb.Update("suggestions").
		Set("status", status).
		Set("updated_at", time.Now())
	if priority != nil {
		builder = builder.Set("priority", *priority)
	}
	if adminNote != nil {
		builder = builder.Set("admin_note", *adminNote)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update suggestion status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("suggestionID", id).Msg("Error executing update suggestion status query")
		return fmt.Errorf("error updating suggestion status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSuggestionNotFound
	}

	return nil
}

// Delete removes a suggestion and its votes
func (r *SuggestionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("suggestions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete suggestion query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("suggestionID", id).Msg("Error executing delete suggestion query")
		return fmt.Errorf("error deleting suggestion: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSuggestionNotFound
	}

	return nil
}

// ToggleVote adds the user's vote if absent, removes it if present, and
// returns the resulting vote count and vote state. Runs in a transaction so
// the returned count matches the toggle outcome.
func (r *SuggestionRepository) ToggleVote(ctx context.Context, suggestionID, userID int64) (votes int, voted bool, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		existsSQL, existsArgs, err := r.sb.Select("1").
			From("suggestions").
			Where(squirrel.Eq{"id": suggestionID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock suggestion query: %w", err)
		}

		var one int
		if err := tx.QueryRow(ctx, existsSQL, existsArgs...).Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrSuggestionNotFound
			}
			return fmt.Errorf("error locking suggestion row: %w", err)
		}

		deleteSQL, deleteArgs, err := r.sb.Delete("suggestion_votes").
			Where(squirrel.Eq{"suggestion_id": suggestionID, "user_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete vote query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, deleteSQL, deleteArgs...)
		if err != nil {
			return fmt.Errorf("error removing vote: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			insertSQL, insertArgs, err := r.sb.Insert("suggestion_votes").
				Columns("suggestion_id", "user_id", "created_at").
				Values(suggestionID, userID, time.Now()).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert vote query: %w", err)
			}
			if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
				return fmt.Errorf("error inserting vote: %w", err)
			}
			voted = true
		}

		countSQL, countArgs, err := r.sb.Select("COUNT(*)").
			From("suggestion_votes").
			Where(squirrel.Eq{"suggestion_id": suggestionID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build count votes query: %w", err)
		}
		if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&votes); err != nil {
			return fmt.Errorf("error counting votes: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, false, err
	}

	return votes, voted, nil
}

// CountAll returns the total number of suggestions
func (r *SuggestionRepository) CountAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("suggestions").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count suggestions query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting suggestions: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of suggestions in the given status
func (r *SuggestionRepository) CountByStatus(ctx context.Context, status models.SuggestionStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("suggestions").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count suggestions query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting suggestions: %w", err)
	}
	return count, nil
}
