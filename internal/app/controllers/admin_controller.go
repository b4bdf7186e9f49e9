package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/services"
	"github.com/itcommunity/platform/internal/middleware"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// AdminController handles user administration and bulk moderation
type AdminController struct {
	adminService *services.AdminService
	userService  *services.UserService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, userService *services.UserService) *AdminController {
	return &AdminController{
		adminService: adminService,
		userService:  userService,
		logger:       logger.Logger().With().Str("controller", "admin").Logger(),
	}
}

// UpdateUserRole changes a user's role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/role [patch]
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.SetUserRole(ctx.Request.Context(), id, models.RoleType(req.Role)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Role updated"))
}

// UpdateUserStatus activates or deactivates a user account
// @Summary Change a user's active state
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "Active flag"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/status [patch]
func (c *AdminController) UpdateUserStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	// Admins cannot lock themselves out
	if id == middleware.GetUserID(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("cannot change own account status"))
		return
	}

	if err := c.userService.SetUserActive(ctx.Request.Context(), id, req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Status updated"))
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if id == middleware.GetUserID(ctx) {
		middleware.HandleAPIError(ctx, apperrors.NewForbiddenError("cannot delete own account"))
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "User deleted"))
}

// BulkUpdateProjectStatus applies a status change to multiple projects.
// Failures are reported per item, successes are kept.
// @Summary Bulk change project statuses
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusRequest true "Project IDs and target status"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/projects/bulk/status [patch]
func (c *AdminController) BulkUpdateProjectStatus(ctx *gin.Context) {
	var req dto.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkUpdateProjectStatus(ctx.Request.Context(),
		middleware.GetUserID(ctx), req.IDs, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk update finished"))
}

// BulkDeleteProjects deletes multiple projects
// @Summary Bulk delete projects
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIDsRequest true "Project IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/projects/bulk [delete]
func (c *AdminController) BulkDeleteProjects(ctx *gin.Context) {
	var req dto.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkDeleteProjects(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk delete finished"))
}

// BulkUpdateEventStatus applies a status change to multiple events
// @Summary Bulk change event statuses
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusRequest true "Event IDs and target status"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/events/bulk/status [patch]
func (c *AdminController) BulkUpdateEventStatus(ctx *gin.Context) {
	var req dto.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkUpdateEventStatus(ctx.Request.Context(), req.IDs, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk update finished"))
}

// BulkDeleteEvents deletes multiple events
// @Summary Bulk delete events
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIDsRequest true "Event IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/events/bulk [delete]
func (c *AdminController) BulkDeleteEvents(ctx *gin.Context) {
	var req dto.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkDeleteEvents(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk delete finished"))
}

// BulkUpdateJobStatus applies a status change to multiple jobs
// @Summary Bulk change job statuses
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusRequest true "Job IDs and target status"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/jobs/bulk/status [patch]
func (c *AdminController) BulkUpdateJobStatus(ctx *gin.Context) {
	var req dto.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkUpdateJobStatus(ctx.Request.Context(),
		middleware.GetUserID(ctx), req.IDs, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk update finished"))
}

// BulkDeleteJobs deletes multiple jobs
// @Summary Bulk delete jobs
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIDsRequest true "Job IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/jobs/bulk [delete]
func (c *AdminController) BulkDeleteJobs(ctx *gin.Context) {
	var req dto.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkDeleteJobs(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk delete finished"))
}

// BulkUpdateUserStatus activates or deactivates multiple users
// @Summary Bulk change user active state
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkStatusRequest true "User IDs and active/inactive"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/users/bulk/status [patch]
func (c *AdminController) BulkUpdateUserStatus(ctx *gin.Context) {
	var req dto.BulkStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	active := req.Status == "active"
	if !active && req.Status != "inactive" {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("status must be active or inactive"))
		return
	}

	resp, err := c.adminService.BulkSetUserActive(ctx.Request.Context(),
		middleware.GetUserID(ctx), req.IDs, active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk update finished"))
}

// BulkDeleteSuggestions deletes multiple suggestions
// @Summary Bulk delete suggestions
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkIDsRequest true "Suggestion IDs"
// @Success 200 {object} dto.APIResponse{data=dto.BulkOperationResponse}
// @Router /admin/suggestions/bulk [delete]
func (c *AdminController) BulkDeleteSuggestions(ctx *gin.Context) {
	var req dto.BulkIDsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.adminService.BulkDeleteSuggestions(ctx.Request.Context(), req.IDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Bulk delete finished"))
}
