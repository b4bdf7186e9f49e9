package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/filestorage"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// JobService handles job board and application operations
type JobService struct {
	jobRepo       *repositories.JobRepository
	appRepo       *repositories.ApplicationRepository
	userRepo      *repositories.UserRepository
	activities    *ActivityRecorder
	resumeStorage *filestorage.LocalStorage
	logger        zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo *repositories.JobRepository,
	appRepo *repositories.ApplicationRepository,
	userRepo *repositories.UserRepository,
	activities *ActivityRecorder,
	resumeStorage *filestorage.LocalStorage,
) *JobService {
	return &JobService{
		jobRepo:       jobRepo,
		appRepo:       appRepo,
		userRepo:      userRepo,
		activities:    activities,
		resumeStorage: resumeStorage,
		logger:        logger.Logger().With().Str("service", "job").Logger(),
	}
}

// Create posts a new job in DRAFT status
func (s *JobService) Create(ctx context.Context, posterID int64, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, apperrors.NewBadRequestError("salaryMax cannot be below salaryMin")
	}

	job := &models.Job{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Type:         models.JobType(req.Type),
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Remote:       req.Remote,
		PostedByID:   posterID,
	}

	id, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).Int64("posterID", posterID).Msg("Job created")
	return s.GetByID(ctx, id, posterID)
}

// GetByID retrieves a job. When viewerID is set the response reports whether
// the viewer has applied.
func (s *JobService) GetByID(ctx context.Context, id, viewerID int64) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromJob(job)
	if viewerID > 0 {
		applied, err := s.appRepo.HasApplied(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
		resp.HasApplied = applied
	}

	return &resp, nil
}

// GetModel retrieves the raw job model for authorization checks
func (s *JobService) GetModel(ctx context.Context, id int64) (*models.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// List retrieves job postings with filtering and pagination
func (s *JobService) List(ctx context.Context, filter repositories.JobFilter, page, size int) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.GetAll(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.JobListResponse{
		Jobs:       dto.FromJobs(jobs),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Update edits a job posting. Archived jobs are frozen.
func (s *JobService) Update(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status == models.JobStatusArchived {
		return nil, apperrors.NewBadRequestError("archived jobs cannot be edited")
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return nil, apperrors.NewBadRequestError("salaryMax cannot be below salaryMin")
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Description = req.Description
	job.Requirements = req.Requirements
	job.Location = req.Location
	job.Type = models.JobType(req.Type)
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.Remote = req.Remote

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id, 0)
}

// UpdateStatus moves a job through its lifecycle
func (s *JobService) UpdateStatus(ctx context.Context, id int64, actorID int64, target models.JobStatus) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransitionTo(target) {
		return nil, apperrors.NewIllegalTransitionError(fmt.Sprintf("cannot transition from %s to %s", job.Status, target))
	}

	if err := s.jobRepo.UpdateStatus(ctx, id, job.Status, target); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", id).
		Str("from", string(job.Status)).Str("to", string(target)).
		Msg("Job status changed")

	if target == models.JobStatusPublished && job.Status == models.JobStatusDraft {
		s.activities.Record(ctx, models.ActivityJobPosted, &actorID, "job", &id,
			fmt.Sprintf("New job posted: %s at %s", job.Title, job.Company))
	}

	return s.GetByID(ctx, id, actorID)
}

// Delete removes a job posting and its applications
func (s *JobService) Delete(ctx context.Context, id int64) error {
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("jobID", id).Msg("Job deleted")
	return nil
}

// Apply submits an application to a published job. A resume upload, when
// present, is stored and linked to the application.
func (s *JobService) Apply(ctx context.Context, jobID, applicantID int64, req *dto.ApplyJobRequest, resume *multipart.FileHeader) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusPublished {
		return nil, apperrors.ErrJobNotPublished
	}
	if job.PostedByID == applicantID {
		return nil, apperrors.NewBadRequestError("cannot apply to your own job posting")
	}

	resumeURL := req.ResumeURL
	if resume != nil {
		stored, err := s.resumeStorage.SaveFile(resume, "")
		if err != nil {
			s.logger.Error().Err(err).Int64("jobID", jobID).Msg("Failed to store resume")
			return nil, fmt.Errorf("failed to store resume: %w", err)
		}
		resumeURL = &stored
	}

	app := &models.JobApplication{
		JobID:            jobID,
		ApplicantID:      applicantID,
		CoverLetter:      req.CoverLetter,
		ResumeURL:        resumeURL,
		SkillsMatchScore: s.skillsMatchScore(ctx, applicantID, job.Requirements),
	}

	id, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Int64("jobID", jobID).Int64("applicantID", applicantID).
		Msg("Job application submitted")
	s.activities.Record(ctx, models.ActivityJobApplication, &applicantID, "job", &jobID,
		fmt.Sprintf("New application for %s", job.Title))

	created, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromApplication(created)
	return &resp, nil
}

// skillsMatchScore reports how much of the job's requirements the applicant's
// profile skills cover, as a percentage. Nil when the job lists no
// requirements or the profile cannot be read.
func (s *JobService) skillsMatchScore(ctx context.Context, applicantID int64, requirements []string) *int {
	if len(requirements) == 0 {
		return nil
	}

	applicant, err := s.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("applicantID", applicantID).Msg("Skipping skills match score")
		return nil
	}

	skills := make(map[string]bool, len(applicant.Skills))
	for _, skill := range applicant.Skills {
		skills[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	matched := 0
	for _, requirement := range requirements {
		if skills[strings.ToLower(strings.TrimSpace(requirement))] {
			matched++
		}
	}

	score := matched * 100 / len(requirements)
	return &score
}

// ListJobApplications retrieves the applications submitted to a job
func (s *JobService) ListJobApplications(ctx context.Context, jobID int64, page, size int) (*dto.ApplicationListResponse, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	apps, total, err := s.appRepo.GetByJob(ctx, jobID, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Applications: dto.FromApplications(apps),
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// ListMyApplications retrieves the caller's applications
func (s *JobService) ListMyApplications(ctx context.Context, applicantID int64, page, size int) (*dto.ApplicationListResponse, error) {
	apps, total, err := s.appRepo.GetByApplicant(ctx, applicantID, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Applications: dto.FromApplications(apps),
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// GetApplicationModel retrieves the raw application model for authorization checks
func (s *JobService) GetApplicationModel(ctx context.Context, id int64) (*models.JobApplication, error) {
	return s.appRepo.GetByID(ctx, id)
}

// GetApplicationByResume finds the application a stored resume file belongs to
func (s *JobService) GetApplicationByResume(ctx context.Context, filename string) (*models.JobApplication, error) {
	return s.appRepo.GetByResumeURL(ctx, s.resumeStorage.URL(filename))
}

// ResumePath maps a stored resume URL to its location on disk
func (s *JobService) ResumePath(resumeURL string) string {
	return s.resumeStorage.Path(resumeURL)
}

// UpdateApplicationStatus moves an application through the review pipeline.
// The applicant may only withdraw. Every other transition belongs to the job
// owner or an admin, which the controller has already verified.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, id int64, actorID int64, isApplicant bool, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	target := models.ApplicationStatus(req.Status)

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if isApplicant && target != models.ApplicationStatusWithdrawn {
		return nil, apperrors.NewForbiddenError("applicants may only withdraw their application")
	}

	if !app.Status.CanTransitionTo(target) {
		return nil, apperrors.NewIllegalTransitionError(fmt.Sprintf("cannot transition from %s to %s", app.Status, target))
	}

	var rejectionReason, recruiterNotes *string
	if !isApplicant {
		recruiterNotes = req.RecruiterNotes
		if target == models.ApplicationStatusRejected {
			rejectionReason = req.RejectionReason
		}
	}

	if err := s.appRepo.UpdateStatus(ctx, id, app.Status, target, rejectionReason, recruiterNotes); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Int64("actorID", actorID).
		Str("from", string(app.Status)).Str("to", string(target)).
		Msg("Application status changed")

	updated, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromApplication(updated)
	return &resp, nil
}
