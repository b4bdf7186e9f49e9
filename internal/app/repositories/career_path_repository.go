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
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// CareerPathRepository handles career path database operations
type CareerPathRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCareerPathRepository creates a new CareerPathRepository
func NewCareerPathRepository(db *pgxpool.Pool) *CareerPathRepository {
	return &CareerPathRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var careerPathColumns = []string{
	"id", "title", "description", "category", "level", "demand",
	"salary_min", "salary_max", "skills", "roadmap", "created_at", "updated_at",
}

func scanCareerPath(row pgx.Row) (*models.CareerPath, error) {
	var p models.CareerPath
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Level, &p.Demand,
		&p.SalaryMin, &p.SalaryMax, &p.Skills, &p.Roadmap, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new career path and returns its ID
func (r *CareerPathRepository) Create(ctx context.Context, path *models.CareerPath) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("career_paths").
		Columns("title", "description", "category", "level", "demand",
			"salary_min", "salary_max", "skills", "roadmap", "created_at", "updated_at").
		Values(path.Title, path.Description, path.Category, path.Level, path.Demand,
			path.SalaryMin, path.SalaryMax, path.Skills, path.Roadmap, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create career path SQL")
		return 0, fmt.Errorf("failed to build create career path query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", path.Title).Msg("Error executing create career path query")
		return 0, fmt.Errorf("error creating career path: %w", err)
	}

	return id, nil
}

// GetByID retrieves a career path by ID
func (r *CareerPathRepository) GetByID(ctx context.Context, id int64) (*models.CareerPath, error) {
	sql, args, err := r.sb.Select(careerPathColumns...).
		From("career_paths").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get career path query: %w", err)
	}

	path, err := scanCareerPath(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("career path not found")
		}
		logger.Error().Err(err).Int64("careerPathID", id).Msg("Error scanning career path row")
		return nil, fmt.Errorf("error retrieving career path: %w", err)
	}

	return path, nil
}

// GetAll retrieves every career path ordered by minimum salary. Salary band
// filtering is applied in the service layer where the predicate lives.
func (r *CareerPathRepository) GetAll(ctx context.Context) ([]*models.CareerPath, error) {
	sql, args, err := r.sb.Select(careerPathColumns...).
		From("career_paths").
		OrderBy("salary_min ASC", "title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list career paths query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list career paths query")
		return nil, fmt.Errorf("error listing career paths: %w", err)
	}
	defer rows.Close()

	paths := make([]*models.CareerPath, 0)
	for rows.Next() {
		path, err := scanCareerPath(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning career path row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating career path rows: %w", err)
	}

	return paths, nil
}

// Update modifies a career path
func (r *CareerPathRepository) Update(ctx context.Context, path *models.CareerPath) error {
	sql, args, err := r.sb.Update("career_paths").
		Set("title", path.Title).
		Set("description", path.Description).
		Set("category", path.Category).
		Set("level", path.Level).
		Set("demand", path.Demand).
		Set("salary_min", path.SalaryMin).
		Set("salary_max", path.SalaryMax).
		Set("skills", path.Skills).
		Set("roadmap", path.Roadmap).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": path.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update career path query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("careerPathID", path.ID).Msg("Error executing update career path query")
		return fmt.Errorf("error updating career path: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("career path not found")
	}

	return nil
}

// Delete removes a career path
func (r *CareerPathRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("career_paths").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete career path query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("careerPathID", id).Msg("Error executing delete career path query")
		return fmt.Errorf("error deleting career path: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("career path not found")
	}

	return nil
}
