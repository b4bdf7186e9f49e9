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

// CareerPathController handles the career guide catalogue
type CareerPathController struct {
	careerPathService *services.CareerPathService
	logger            zerolog.Logger
}

// NewCareerPathController creates a new CareerPathController
func NewCareerPathController(careerPathService *services.CareerPathService) *CareerPathController {
	return &CareerPathController{
		careerPathService: careerPathService,
		logger:            logger.Logger().With().Str("controller", "careerPath").Logger(),
	}
}

// List returns career paths matching every active filter dimension
// @Summary List career paths
// @Tags career-paths
// @Produce json
// @Param q query string false "Search in title, description and skills"
// @Param category query string false "Filter by category"
// @Param demand query string false "Filter by demand level"
// @Param salaryMin query int false "Minimum salary floor"
// @Param salaryMax query int false "Maximum salary ceiling"
// @Success 200 {object} dto.APIResponse{data=dto.CareerPathListResponse}
// @Router /career-paths [get]
func (c *CareerPathController) List(ctx *gin.Context) {
	filter := models.CareerPathFilter{
		Query:    ctx.Query("q"),
		Category: ctx.Query("category"),
	}
	if demand := ctx.Query("demand"); demand != "" {
		d := models.DemandLevel(demand)
		if !models.ValidDemandLevel(d) {
			middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("invalid demand level"))
			return
		}
		filter.Demand = &d
	}
	if min, ok := queryInt(ctx, "salaryMin"); ok {
		filter.SalaryMin = min
	}
	if max, ok := queryInt(ctx, "salaryMax"); ok {
		filter.SalaryMax = &max
	}

	resp, err := c.careerPathService.List(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get returns a single career path
// @Summary Get a career path
// @Tags career-paths
// @Produce json
// @Param id path int true "Career path ID"
// @Success 200 {object} dto.APIResponse{data=dto.CareerPathResponse}
// @Failure 404 {object} dto.ErrorResponse "Career path not found"
// @Router /career-paths/{id} [get]
func (c *CareerPathController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.careerPathService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Create adds a career path to the catalogue, admin only
// @Summary Create a career path
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCareerPathRequest true "Career path content"
// @Success 201 {object} dto.APIResponse{data=dto.CareerPathResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /admin/career-paths [post]
func (c *CareerPathController) Create(ctx *gin.Context) {
	var req dto.CreateCareerPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.careerPathService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Career path created"))
}

// Update edits a career path, admin only
// @Summary Update a career path
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Career path ID"
// @Param request body dto.UpdateCareerPathRequest true "Career path content"
// @Success 200 {object} dto.APIResponse{data=dto.CareerPathResponse}
// @Router /admin/career-paths/{id} [patch]
func (c *CareerPathController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCareerPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.careerPathService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Career path updated"))
}

// Delete removes a career path, admin only
// @Summary Delete a career path
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Career path ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/career-paths/{id} [delete]
func (c *CareerPathController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.careerPathService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Career path deleted"))
}
