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

// ApplicationRepository handles job application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var applicationSelectColumns = []string{
	"a.id", "a.job_id", "a.applicant_id", "a.status", "a.cover_letter",
	"a.resume_url", "a.skills_match_score", "a.rejection_reason", "a.recruiter_notes",
	"a.created_at", "a.updated_at",
	"u.id", "u.email", "u.name", "u.role", "u.avatar_url", "u.is_active", "u.created_at",
}

func scanApplicationWithApplicant(row pgx.Row) (*models.JobApplication, error) {
	var a models.JobApplication
	var applicant models.User
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter,
		&a.ResumeURL, &a.SkillsMatchScore, &a.RejectionReason, &a.RecruiterNotes,
		&a.CreatedAt, &a.UpdatedAt,
		&applicant.ID, &applicant.Email, &applicant.Name, &applicant.Role,
		&applicant.AvatarURL, &applicant.IsActive, &applicant.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Applicant = &applicant
	return &a, nil
}

// Create inserts a new application in PENDING status and returns its ID
func (r *ApplicationRepository) Create(ctx context.Context, app *models.JobApplication) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("job_applications").
		Columns("job_id", "applicant_id", "status", "cover_letter", "resume_url",
			"skills_match_score", "created_at", "updated_at").
		Values(app.JobID, app.ApplicantID, models.ApplicationStatusPending,
			app.CoverLetter, app.ResumeURL, app.SkillsMatchScore, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "job_applications_job_id_applicant_id_key") {
			return 0, apperrors.ErrAlreadyApplied
		}
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", app.JobID).Int64("applicantID", app.ApplicantID).
			Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	return id, nil
}

// GetByID retrieves an application with its applicant
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.JobApplication, error) {
	sql, args, err := r.sb.Select(applicationSelectColumns...).
		From("job_applications a").
		Join("users u ON u.id = a.applicant_id").
		Where(squirrel.Eq{"a.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplicationWithApplicant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// GetByResumeURL finds the application a stored resume belongs to. The URL
// is matched exactly so lookalike filenames never alias another application.
func (r *ApplicationRepository) GetByResumeURL(ctx context.Context, resumeURL string) (*models.JobApplication, error) {
	sql, args, err := r.sb.Select(applicationSelectColumns...).
		From("job_applications a").
		Join("users u ON u.id = a.applicant_id").
		Where(squirrel.Eq{"a.resume_url": resumeURL}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application by resume query: %w", err)
	}

	app, err := scanApplicationWithApplicant(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Str("resumeURL", resumeURL).Msg("Error scanning application row")
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	return app, nil
}

// GetByJob retrieves the applications submitted to a job, newest first
func (r *ApplicationRepository) GetByJob(ctx context.Context, jobID int64, page, pageSize int) ([]*models.JobApplication, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("job_applications a").
		Where(squirrel.Eq{"a.job_id": jobID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	sql, args, err := r.sb.Select(applicationSelectColumns...).
		From("job_applications a").
		Join("users u ON u.id = a.applicant_id").
		Where(squirrel.Eq{"a.job_id": jobID}).
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error executing list applications query")
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.JobApplication, 0)
	for rows.Next() {
		app, err := scanApplicationWithApplicant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, total, nil
}

// GetByApplicant retrieves a user's applications with their jobs, newest first
func (r *ApplicationRepository) GetByApplicant(ctx context.Context, applicantID int64, page, pageSize int) ([]*models.JobApplication, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("job_applications a").
		Where(squirrel.Eq{"a.applicant_id": applicantID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	sql, args, err := r.sb.Select(
		"a.id", "a.job_id", "a.applicant_id", "a.status", "a.cover_letter",
		"a.resume_url", "a.skills_match_score", "a.rejection_reason", "a.recruiter_notes",
		"a.created_at", "a.updated_at",
		"j.id", "j.title", "j.company", "j.location", "j.type", "j.status",
		"j.remote", "j.created_at").
		From("job_applications a").
		Join("jobs j ON j.id = a.job_id").
		Where(squirrel.Eq{"a.applicant_id": applicantID}).
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicantID", applicantID).Msg("Error executing list applications query")
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.JobApplication, 0)
	for rows.Next() {
		var a models.JobApplication
		var j models.Job
		err := rows.Scan(
			&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter,
			&a.ResumeURL, &a.SkillsMatchScore, &a.RejectionReason, &a.RecruiterNotes,
			&a.CreatedAt, &a.UpdatedAt,
			&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Status,
			&j.Remote, &j.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		a.Job = &j
		apps = append(apps, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	return apps, total, nil
}

// UpdateStatus moves an application to a new status, optionally recording a
// rejection reason and recruiter notes. The expected current status guards
// against concurrent transitions.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, from, to models.ApplicationStatus, rejectionReason, recruiterNotes *string) error {
	builder := r.sb.Update("job_applications").
		Set("status", to).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": from})
	if rejectionReason != nil {
		builder = builder.Set("rejection_reason", *rejectionReason)
	}
	if recruiterNotes != nil {
		builder = builder.Set("recruiter_notes", *recruiterNotes)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update application status query")
		return fmt.Errorf("error updating application status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrIllegalTransition
	}

	return nil
}

// HasApplied checks whether a user has already applied to a job
func (r *ApplicationRepository) HasApplied(ctx context.Context, jobID, applicantID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("job_applications").
		Where(squirrel.Eq{"job_id": jobID, "applicant_id": applicantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build has applied query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking application existence: %w", err)
	}

	return true, nil
}

// CountAll returns the total number of applications
func (r *ApplicationRepository) CountAll(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("job_applications").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting applications: %w", err)
	}
	return count, nil
}
