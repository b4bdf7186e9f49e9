package controllers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/auth"
	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/app/services"
	"github.com/itcommunity/platform/internal/middleware"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

const maxResumeSize = 10 << 20

// JobController handles job board operations
type JobController struct {
	jobService *services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService *services.JobService) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger.Logger().With().Str("controller", "job").Logger(),
	}
}

// List returns job postings. Anonymous callers only see published jobs.
// @Summary List jobs
// @Tags jobs
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param jobType query string false "Filter by job type"
// @Param remote query bool false "Filter by remote flag"
// @Param location query string false "Filter by location"
// @Param search query string false "Search in title, description and company"
// @Success 200 {object} dto.APIResponse{data=dto.JobListResponse}
// @Router /jobs [get]
func (c *JobController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	filter := repositories.JobFilter{
		Remote:   queryBool(ctx, "remote"),
		Location: ctx.Query("location"),
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sortBy"),
		SortDesc: ctx.DefaultQuery("order", "desc") == "desc",
	}
	if t := ctx.Query("jobType"); t != "" {
		jt := models.JobType(t)
		filter.Type = &jt
	}

	switch {
	case auth.IsAdmin(role):
		if requested := ctx.Query("status"); requested != "" {
			st := models.JobStatus(requested)
			filter.Status = &st
		}
	case actorID > 0 && ctx.Query("mine") == "true":
		filter.PostedByID = &actorID
		if requested := ctx.Query("status"); requested != "" {
			st := models.JobStatus(requested)
			filter.Status = &st
		}
	default:
		published := models.JobStatusPublished
		filter.Status = &published
	}

	resp, err := c.jobService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get returns a single job posting
// @Summary Get a job
// @Tags jobs
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *JobController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	job, err := c.jobService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Drafts are visible to the poster and admins only
	if job.Status == models.JobStatusDraft &&
		!auth.IsAdmin(role) && job.PostedByID != actorID {
		middleware.HandleAPIError(ctx, apperrors.ErrJobNotFound)
		return
	}

	resp, err := c.jobService.GetByID(ctx.Request.Context(), id, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Create posts a new job, company and admin accounts only
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job content"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 403 {object} dto.ErrorResponse "Role may not post jobs"
// @Router /jobs [post]
func (c *JobController) Create(ctx *gin.Context) {
	role := models.RoleType(middleware.GetRole(ctx))
	if !auth.CanPostJobs(role) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("only company accounts can post jobs"))
		return
	}

	var req dto.CreateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.jobService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Job posted"))
}

// Update edits a job owned by the caller
// @Summary Update a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobRequest true "Job content"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the job owner"
// @Router /jobs/{id} [patch]
func (c *JobController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.validateOwner(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.jobService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Job updated"))
}

// UpdateStatus moves a job through its lifecycle
// @Summary Change a job's status
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.UpdateJobStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /jobs/{id}/status [patch]
func (c *JobController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.validateOwner(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.jobService.UpdateStatus(ctx.Request.Context(), id,
		middleware.GetUserID(ctx), models.JobStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}

// Delete removes a job owned by the caller
// @Summary Delete a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the job owner"
// @Router /jobs/{id} [delete]
func (c *JobController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.validateOwner(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.jobService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Job deleted"))
}

// Apply submits an application to a published job. Multipart requests may
// carry a resume file; JSON requests may link one by URL.
// @Summary Apply to a job
// @Tags jobs
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param request body dto.ApplyJobRequest true "Application content"
// @Param resume formData file false "Resume file"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyJobRequest
	var resume *multipart.FileHeader

	if ctx.ContentType() == "multipart/form-data" {
		if err := ctx.ShouldBind(&req); err != nil {
			middleware.HandleValidationError(ctx, err)
			return
		}
		if file, err := ctx.FormFile("resume"); err == nil {
			if file.Size > maxResumeSize {
				middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("resume must not exceed 10MB"))
				return
			}
			resume = file
		}
	} else if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.jobService.Apply(ctx.Request.Context(), id, middleware.GetUserID(ctx), &req, resume)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Application submitted"))
}

// DownloadResume serves a stored resume to the job owner, the applicant or an
// admin. Filenames are restricted to a bare base name.
// @Summary Download an application resume
// @Tags jobs
// @Produce octet-stream
// @Security BearerAuth
// @Param filename path string true "Stored resume filename"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse "No access to this resume"
// @Failure 404 {object} dto.ErrorResponse "Resume not found"
// @Router /jobs/download-resume/{filename} [get]
func (c *JobController) DownloadResume(ctx *gin.Context) {
	filename := ctx.Param("filename")
	if filename == "" || filename != filepath.Base(filename) {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid filename"))
		return
	}

	app, err := c.jobService.GetApplicationByResume(ctx.Request.Context(), filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	job, err := c.jobService.GetModel(ctx.Request.Context(), app.JobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))
	if err := auth.ValidateApplicationAccess(actorID, role, app, job); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(c.jobService.ResumePath(*app.ResumeURL), filename)
}

// ListApplications returns the applications on a job for its owner
// @Summary List a job's applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the job owner"
// @Router /jobs/{id}/applications [get]
func (c *JobController) ListApplications(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	if err := c.validateOwner(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.jobService.ListJobApplications(ctx.Request.Context(), id, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// MyApplications returns the caller's own applications
// @Summary List own applications
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationListResponse}
// @Router /applications [get]
func (c *JobController) MyApplications(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.jobService.ListMyApplications(ctx.Request.Context(), middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// UpdateApplicationStatus advances or withdraws an application. The job owner
// drives the hiring pipeline, the applicant may only withdraw.
// @Summary Change an application's status
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /applications/{id}/status [patch]
func (c *JobController) UpdateApplicationStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	app, err := c.jobService.GetApplicationModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	job, err := c.jobService.GetModel(ctx.Request.Context(), app.JobID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := auth.ValidateApplicationAccess(actorID, role, app, job); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	isApplicant := actorID == app.ApplicantID && !auth.IsAdmin(role) && actorID != job.PostedByID

	resp, err := c.jobService.UpdateApplicationStatus(ctx.Request.Context(), id,
		actorID, isApplicant, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}

func (c *JobController) validateOwner(ctx *gin.Context, jobID int64) error {
	job, err := c.jobService.GetModel(ctx.Request.Context(), jobID)
	if err != nil {
		return err
	}
	return auth.ValidateJobOwner(middleware.GetUserID(ctx), models.RoleType(middleware.GetRole(ctx)), job)
}
