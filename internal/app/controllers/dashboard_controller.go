package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/services"
	"github.com/itcommunity/platform/internal/middleware"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// DashboardController serves the admin dashboard
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger.Logger().With().Str("controller", "dashboard").Logger(),
	}
}

// Stats returns platform-wide counters
// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse}
// @Router /admin/dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	resp, err := c.dashboardService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Activities returns the recent activity feed
// @Summary Recent platform activity
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityListResponse}
// @Router /admin/dashboard/activities [get]
func (c *DashboardController) Activities(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	resp, err := c.dashboardService.GetActivities(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}
