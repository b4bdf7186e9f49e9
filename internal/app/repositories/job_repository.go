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

// JobFilter restricts job listing queries
type JobFilter struct {
	Status     *models.JobStatus
	Type       *models.JobType
	PostedByID *int64
	Remote     *bool
	Location   string
	Search     string
	SortBy     string
	SortDesc   bool
}

// JobRepository handles job posting database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var jobSelectColumns = []string{
	"j.id", "j.title", "j.company", "j.description", "j.requirements",
	"j.location", "j.type", "j.status", "j.salary_min", "j.salary_max",
	"j.remote", "j.posted_by_id", "j.created_at", "j.updated_at",
	"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at",
	"(SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id) AS application_count",
}

func scanJobWithPoster(row pgx.Row) (*models.Job, error) {
	var j models.Job
	var poster models.User
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Description, &j.Requirements,
		&j.Location, &j.Type, &j.Status, &j.SalaryMin, &j.SalaryMax,
		&j.Remote, &j.PostedByID, &j.CreatedAt, &j.UpdatedAt,
		&poster.ID, &poster.Email, &poster.Name, &poster.Role,
		&poster.AvatarURL, &poster.IsActive, &poster.CreatedAt,
		&j.ApplicationCount,
	)
	if err != nil {
		return nil, err
	}
	j.PostedBy = &poster
	return &j, nil
}

// Create inserts a new job posting and returns its ID. New jobs always start in DRAFT.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("jobs").
		Columns("title", "company", "description", "requirements", "location",
			"type", "status", "salary_min", "salary_max", "remote", "posted_by_id",
			"created_at", "updated_at").
		Values(job.Title, job.Company, job.Description, job.Requirements, job.Location,
			job.Type, models.JobStatusDraft, job.SalaryMin, job.SalaryMax, job.Remote,
			job.PostedByID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create job SQL")
		return 0, fmt.Errorf("failed to build create job query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("postedByID", job.PostedByID).Msg("Error executing create job query")
		return 0, fmt.Errorf("error creating job: %w", err)
	}

	return id, nil
}

// GetByID retrieves a job posting with its poster and application count
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobSelectColumns...).
		From("jobs j").
		Join("users u ON u.id = j.posted_by_id").
		Where(squirrel.Eq{"j.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJobWithPoster(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error scanning job row")
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, nil
}

// GetAll retrieves job postings with filtering and pagination
func (r *JobRepository) GetAll(ctx context.Context, filter JobFilter, page, pageSize int) ([]*models.Job, int64, error) {
	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"j.status": *filter.Status})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"j.type": *filter.Type})
	}
	if filter.PostedByID != nil {
		where = append(where, squirrel.Eq{"j.posted_by_id": *filter.PostedByID})
	}
	if filter.Remote != nil {
		where = append(where, squirrel.Eq{"j.remote": *filter.Remote})
	}
	if filter.Location != "" {
		where = append(where, squirrel.ILike{"j.location": "%" + filter.Location + "%"})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"j.title": pattern},
			squirrel.ILike{"j.company": pattern},
			squirrel.ILike{"j.description": pattern},
		})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("jobs j")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
	}
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting jobs")
		return nil, 0, fmt.Errorf("error counting jobs: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	orderBy := jobSortColumn(filter.SortBy)
	if filter.SortDesc {
		orderBy += " DESC"
	}

	queryBuilder := r.sb.Select(jobSelectColumns...).
		From("jobs j").
		Join("users u ON u.id = j.posted_by_id").
		OrderBy(orderBy).
		Offset(offset).
		Limit(uint64(limit))
	if len(where) > 0 {
		queryBuilder = queryBuilder.Where(where)
	}
	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list jobs query")
		return nil, 0, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]*models.Job, 0)
	for rows.Next() {
		job, err := scanJobWithPoster(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating job rows: %w", err)
	}

	return jobs, total, nil
}

func jobSortColumn(field string) string {
	switch field {
	case "title":
		return "j.title"
	case "company":
		return "j.company"
	case "salaryMin":
		return "j.salary_min"
	default:
		return "j.created_at"
	}
}

// Update modifies a job posting's editable fields
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	sql, args, err := r.sb.Update("jobs").
		Set("title", job.Title).
		Set("company", job.Company).
		Set("description", job.Description).
		Set("requirements", job.Requirements).
		Set("location", job.Location).
		Set("type", job.Type).
		Set("salary_min", job.SalaryMin).
		Set("salary_max", job.SalaryMax).
		Set("remote", job.Remote).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": job.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", job.ID).Msg("Error executing update job query")
		return fmt.Errorf("error updating job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// UpdateStatus moves a job to a new status. The expected current status
// guards against concurrent transitions.
func (r *JobRepository) UpdateStatus(ctx context.Context, id int64, from, to models.JobStatus) error {
	sql, args, err := r.sb.Update("jobs").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing update job status query")
		return fmt.Errorf("error updating job status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIllegalTransition
	}

	return nil
}

// Delete removes a job posting and its applications
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", id).Msg("Error executing delete job query")
		return fmt.Errorf("error deleting job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}

	return nil
}

// CountAll returns the total number of job postings
func (r *JobRepository) CountAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("jobs").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting jobs: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of jobs in the given status
func (r *JobRepository) CountByStatus(ctx context.Context, status models.JobStatus) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("jobs").
		Where(squirrel.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting jobs: %w", err)
	}
	return count, nil
}
