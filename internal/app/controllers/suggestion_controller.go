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
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// SuggestionController handles community suggestion operations
type SuggestionController struct {
	suggestionService *services.SuggestionService
	logger            zerolog.Logger
}

// NewSuggestionController creates a new SuggestionController
func NewSuggestionController(suggestionService *services.SuggestionService) *SuggestionController {
	return &SuggestionController{
		suggestionService: suggestionService,
		logger:            logger.Logger().With().Str("controller", "suggestion").Logger(),
	}
}

// List returns suggestions ordered by votes by default
// @Summary List suggestions
// @Tags suggestions
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param type query string false "Filter by suggestion type"
// @Param search query string false "Search in title and description"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestionListResponse}
// @Router /suggestions [get]
func (c *SuggestionController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := repositories.SuggestionFilter{
		Type:     ctx.Query("type"),
		Search:   ctx.Query("search"),
		SortBy:   ctx.DefaultQuery("sortBy", "votes"),
		SortDesc: ctx.DefaultQuery("order", "desc") == "desc",
	}
	if status := ctx.Query("status"); status != "" {
		st := models.SuggestionStatus(status)
		filter.Status = &st
	}
	if priority := ctx.Query("priority"); priority != "" {
		p := models.SuggestionPriority(priority)
		filter.Priority = &p
	}

	resp, err := c.suggestionService.List(ctx.Request.Context(), filter, middleware.GetUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get returns a single suggestion
// @Summary Get a suggestion
// @Tags suggestions
// @Produce json
// @Param id path int true "Suggestion ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestionResponse}
// @Failure 404 {object} dto.ErrorResponse "Suggestion not found"
// @Router /suggestions/{id} [get]
func (c *SuggestionController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.suggestionService.GetByID(ctx.Request.Context(), id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Create submits a new suggestion
// @Summary Submit a suggestion
// @Tags suggestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSuggestionRequest true "Suggestion content"
// @Success 201 {object} dto.APIResponse{data=dto.SuggestionResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /suggestions [post]
func (c *SuggestionController) Create(ctx *gin.Context) {
	var req dto.CreateSuggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.suggestionService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Suggestion submitted"))
}

// Vote toggles the caller's vote on a suggestion
// @Summary Toggle a vote
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Suggestion ID"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResponse}
// @Failure 404 {object} dto.ErrorResponse "Suggestion not found"
// @Router /suggestions/{id}/vote [post]
func (c *SuggestionController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.suggestionService.ToggleVote(ctx.Request.Context(), id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// UpdateStatus moves a suggestion through triage, admin only
// @Summary Change a suggestion's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Suggestion ID"
// @Param request body dto.UpdateSuggestionStatusRequest true "Target status, priority and note"
// @Success 200 {object} dto.APIResponse{data=dto.SuggestionResponse}
// @Router /admin/suggestions/{id}/status [patch]
func (c *SuggestionController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSuggestionStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.suggestionService.UpdateStatus(ctx.Request.Context(), id, middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}

// Delete removes a suggestion. The author or an admin may delete.
// @Summary Delete a suggestion
// @Tags suggestions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Suggestion ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the suggestion author"
// @Router /suggestions/{id} [delete]
func (c *SuggestionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	suggestion, err := c.suggestionService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := auth.ValidateSuggestionOwner(middleware.GetUserID(ctx), models.RoleType(middleware.GetRole(ctx)), suggestion); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.suggestionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Suggestion deleted"))
}
