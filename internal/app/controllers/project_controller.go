package controllers

import (
	"net/http"

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

// ProjectController handles project showcase operations
type ProjectController struct {
	projectService *services.ProjectService
	logger         zerolog.Logger
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
		logger:         logger.Logger().With().Str("controller", "project").Logger(),
	}
}

// List returns projects. Anonymous callers only see published projects,
// authors additionally see their own, admins see everything.
// @Summary List projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param status query string false "Filter by status (restricted by role)"
// @Param projectType query string false "Filter by project type"
// @Param technology query string false "Filter by technology"
// @Param search query string false "Search in title and description"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectListResponse}
// @Router /projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	filter := repositories.ProjectFilter{
		Technology: ctx.Query("technology"),
		Search:     ctx.Query("search"),
		SortBy:     ctx.Query("sortBy"),
		SortDesc:   ctx.DefaultQuery("order", "desc") == "desc",
	}
	if t := ctx.Query("projectType"); t != "" {
		pt := models.ProjectType(t)
		filter.Type = &pt
	}

	requested := ctx.Query("status")
	switch {
	case auth.IsAdmin(role):
		if requested != "" {
			st := models.ProjectStatus(requested)
			filter.Status = &st
		}
	case actorID > 0 && ctx.Query("mine") == "true":
		// Authors see all of their own projects regardless of status
		filter.AuthorID = &actorID
		if requested != "" {
			st := models.ProjectStatus(requested)
			filter.Status = &st
		}
	default:
		published := models.ProjectStatusPublished
		filter.Status = &published
	}

	resp, err := c.projectService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get returns a single project
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	project, err := c.projectService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Unpublished projects stay hidden from everyone but the author and admins
	if !auth.CanViewUnpublishedProject(actorID, role, project) {
		middleware.HandleAPIError(ctx, apperrors.ErrProjectNotFound)
		return
	}

	resp := dto.FromProject(project)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(&resp, ""))
}

// Create submits a new project
// @Summary Submit a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project content"
// @Success 201 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Project submitted"))
}

// Update edits a project owned by the caller
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Project content"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the project owner"
// @Router /projects/{id} [patch]
func (c *ProjectController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	project, err := c.projectService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := auth.ValidateProjectOwner(middleware.GetUserID(ctx), models.RoleType(middleware.GetRole(ctx)), project); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.projectService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Project updated"))
}

// UpdateStatus moves a project through its moderation lifecycle, admin only
// @Summary Change a project's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /admin/projects/{id}/status [patch]
func (c *ProjectController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProjectStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.UpdateStatus(ctx.Request.Context(), id,
		middleware.GetUserID(ctx), models.ProjectStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}

// Approve publishes a project, admin only
// @Summary Approve a project
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /admin/projects/{id}/approve [patch]
func (c *ProjectController) Approve(ctx *gin.Context) {
	c.moderate(ctx, models.ProjectStatusPublished, "Project approved")
}

// Reject rejects a project, admin only
// @Summary Reject a project
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProjectResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /admin/projects/{id}/reject [patch]
func (c *ProjectController) Reject(ctx *gin.Context) {
	c.moderate(ctx, models.ProjectStatusRejected, "Project rejected")
}

func (c *ProjectController) moderate(ctx *gin.Context, target models.ProjectStatus, message string) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.projectService.UpdateStatus(ctx.Request.Context(), id,
		middleware.GetUserID(ctx), target)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, message))
}

// Delete removes a project owned by the caller
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the project owner"
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	project, err := c.projectService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := auth.ValidateProjectOwner(middleware.GetUserID(ctx), models.RoleType(middleware.GetRole(ctx)), project); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.projectService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Project deleted"))
}

// AddFeedback leaves feedback on a published project
// @Summary Add feedback to a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body dto.CreateFeedbackRequest true "Feedback content"
// @Success 201 {object} dto.APIResponse{data=dto.FeedbackResponse}
// @Router /projects/{id}/feedback [post]
func (c *ProjectController) AddFeedback(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.projectService.AddFeedback(ctx.Request.Context(), id, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Feedback added"))
}

// ListFeedback returns the feedback on a project
// @Summary List project feedback
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.FeedbackResponse}
// @Router /projects/{id}/feedback [get]
func (c *ProjectController) ListFeedback(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.projectService.ListFeedback(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
