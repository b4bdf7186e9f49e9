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
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/dberrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// ProjectFilter restricts project listing queries
type ProjectFilter struct {
	Status     *models.ProjectStatus
	Type       *models.ProjectType
	AuthorID   *int64
	Technology string
	Search     string
	SortBy     string
	SortDesc   bool
}

// ProjectRepository handles project database operations
type ProjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var projectSelectColumns = []string{
	"p.id", "p.title", "p.description", "p.technologies", "p.github_url",
	"p.live_url", "p.image_url", "p.status", "p.project_type", "p.author_id",
	"p.created_at", "p.updated_at",
	"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at",
	"(SELECT COUNT(*) FROM project_feedback f WHERE f.project_id = p.id) AS feedback_count",
}

func scanProjectWithAuthor(row pgx.Row) (*models.Project, error) {
	var p models.Project
	var author models.User
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Technologies, &p.GithubURL,
		&p.LiveURL, &p.ImageURL, &p.Status, &p.ProjectType, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Email, &author.Name, &author.Role, &author.AvatarURL,
		&author.IsActive, &author.CreatedAt,
		&p.FeedbackCount,
	)
	if err != nil {
		return nil, err
	}
	p.Author = &author
	return &p, nil
}

// Create inserts a new project and returns its ID. New projects always start
// in DRAFT.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("projects").
		Columns("title", "description", "technologies", "github_url", "live_url",
			"image_url", "status", "project_type", "author_id", "created_at", "updated_at").
		Values(project.Title, project.Description, project.Technologies,
			project.GithubURL, project.LiveURL, project.ImageURL,
			models.ProjectStatusDraft, project.ProjectType, project.AuthorID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create project SQL")
		return 0, fmt.Errorf("failed to build create project query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("authorID", project.AuthorID).Msg("Error executing create project query")
		return 0, fmt.Errorf("error creating project: %w", err)
	}

	return id, nil
}

// GetByID retrieves a project with its author and feedback count
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	sql, args, err := r.sb.Select(projectSelectColumns...).
		From("projects p").
		Join("users u ON u.id = p.author_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get project query: %w", err)
	}

	project, err := scanProjectWithAuthor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		logger.Error().Err(err).Int64("projectID", id).Msg("Error scanning project row")
		return nil, fmt.Errorf("error retrieving project: %w", err)
	}

	return project, nil
}

// GetAll retrieves projects with filtering and pagination
func (r *ProjectRepository) GetAll(ctx context.Context, filter ProjectFilter, page, pageSize int) ([]*models.Project, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"p.status": *filter.Status})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"p.project_type": *filter.Type})
	}
	if filter.AuthorID != nil {
		where = append(where, squirrel.Eq{"p.author_id": *filter.AuthorID})
	}
	if filter.Technology != "" {
		where = append(where, squirrel.Expr("? = ANY(p.technologies)", filter.Technology))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.description": pattern},
		})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("projects p")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count projects query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting projects")
		return nil, 0, fmt.Errorf("error counting projects: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orderBy := projectSortColumn(filter.SortBy)
	if filter.SortDesc {
		orderBy += " DESC"
	}

	queryBuilder := r.sb.Select(projectSelectColumns...).
		From("projects p").
		Join("users u ON u.id = p.author_id").
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}
	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list projects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list projects query")
		return nil, 0, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*models.Project, 0)
	for rows.Next() {
		project, err := scanProjectWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, total, nil
}

func projectSortColumn(field string) string {
	switch field {
	case "title":
		return "p.title"
	case "updatedAt":
		return "p.updated_at"
	default:
		return "p.created_at"
	}
}

// Update modifies a project's editable fields
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	sql, args, err := r.sb.Update("projects").
		Set("title", project.Title).
		Set("description", project.Description).
		Set("technologies", project.Technologies).
		Set("github_url", project.GithubURL).
		Set("live_url", project.LiveURL).
		Set("image_url", project.ImageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": project.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", project.ID).Msg("Error executing update project query")
		return fmt.Errorf("error updating project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// UpdateStatus moves a project to a new status. The expected current status
// guards against concurrent transitions.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, from, to models.ProjectStatus) error {
	sql, args, err := r.sb.Update("projects").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", id).Msg("Error executing update project status query")
		return fmt.Errorf("error updating project status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIllegalTransition
	}

	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("projects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete project query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", id).Msg("Error executing delete project query")
		return fmt.Errorf("error deleting project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// CreateFeedback adds a feedback entry to a project
func (r *ProjectRepository) CreateFeedback(ctx context.Context, feedback *models.ProjectFeedback) (int64, error) {
	sql, args, err := r.sb.Insert("project_feedback").
		Columns("project_id", "author_id", "content", "rating", "created_at").
		Values(feedback.ProjectID, feedback.AuthorID, feedback.Content, feedback.Rating, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create feedback query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrProjectNotFound
		}
		logger.Error().Err(err).Int64("projectID", feedback.ProjectID).Msg("Error executing create feedback query")
		return 0, fmt.Errorf("error creating feedback: %w", err)
	}

	return id, nil
}

// GetFeedback retrieves the feedback entries of a project, newest first
func (r *ProjectRepository) GetFeedback(ctx context.Context, projectID int64) ([]*models.ProjectFeedback, error) {
	sql, args, err := r.sb.Select(
		"f.id", "f.project_id", "f.author_id", "f.content", "f.rating", "f.created_at",
		"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at").
		From("project_feedback f").
		Join("users u ON u.id = f.author_id").
		Where(squirrel.Eq{"f.project_id": projectID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get feedback query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Msg("Error executing get feedback query")
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}
	defer rows.Close()

	items := make([]*models.ProjectFeedback, 0)
	for rows.Next() {
		var f models.ProjectFeedback
		var author models.User
		err := rows.Scan(
			&f.ID, &f.ProjectID, &f.AuthorID, &f.Content, &f.Rating, &f.CreatedAt,
			&author.ID, &author.Email, &author.Name, &author.Role, &author.AvatarURL,
			&author.IsActive, &author.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning feedback row: %w", err)
		}
		f.Author = &author
		items = append(items, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return items, nil
}

// CountByStatus returns the number of projects in the given status
func (r *ProjectRepository) CountByStatus(ctx context.Context, status models.ProjectStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("projects").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count projects query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting projects: %w", err)
	}
	return count, nil
}

// CountAll returns the total number of projects
func (r *ProjectRepository) CountAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("projects").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count projects query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting projects: %w", err)
	}
	return count, nil
}
