package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/app/services"
	"github.com/itcommunity/platform/internal/middleware"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// maxAvatarSize caps avatar uploads at 5 MB
const maxAvatarSize = 5 << 20

// UserController handles profile and user directory operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger.Logger().With().Str("controller", "user").Logger(),
	}
}

// GetMe returns the caller's profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Router /profile [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	resp, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// UpdateMe updates the caller's profile
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /profile/me [patch]
func (c *UserController) UpdateMe(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Profile updated"))
}

// UploadAvatar replaces the caller's avatar image
// @Summary Upload avatar
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or oversized file"
// @Router /profile/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("avatar file is required"))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("avatar must be 5 MB or smaller"))
		return
	}

	resp, err := c.userService.UploadAvatar(ctx.Request.Context(), middleware.GetUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Avatar updated"))
}

// ChangePassword changes the caller's password
// @Summary Change password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /profile/change-password [post]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), middleware.GetUserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Password changed"))
}

// UpdateNotificationSettings updates the caller's notification preferences
// @Summary Update notification settings
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NotificationSettingsRequest true "Notification preferences"
// @Success 200 {object} dto.APIResponse
// @Router /profile/settings [patch]
func (c *UserController) UpdateNotificationSettings(ctx *gin.Context) {
	var req dto.NotificationSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.UpdateNotificationSettings(ctx.Request.Context(), middleware.GetUserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Settings updated"))
}

// GetUser returns a user's public profile
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.userService.GetProfile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// ListUsers returns the user directory for admins
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param role query string false "Filter by role"
// @Param isActive query bool false "Filter by active state"
// @Param search query string false "Search in name and email"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := repositories.UserFilter{
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sortBy"),
		SortDesc: ctx.DefaultQuery("order", "desc") == "desc",
		IsActive: queryBool(ctx, "isActive"),
	}
	if role := ctx.Query("role"); role != "" {
		r := models.RoleType(role)
		filter.Role = &r
	}

	resp, err := c.userService.ListUsers(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
