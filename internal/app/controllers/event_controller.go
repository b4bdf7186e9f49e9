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

// EventController handles community event operations
type EventController struct {
	eventService *services.EventService
	logger       zerolog.Logger
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
		logger:       logger.Logger().With().Str("controller", "event").Logger(),
	}
}

// List returns events. Anonymous callers only see published events.
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param eventType query string false "Filter by event type"
// @Param upcoming query bool false "Only future events"
// @Param search query string false "Search in title and description"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	filter := repositories.EventFilter{
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sortBy"),
		SortDesc: ctx.DefaultQuery("order", "asc") == "desc",
	}
	if t := ctx.Query("eventType"); t != "" {
		et := models.EventType(t)
		filter.Type = &et
	}
	if upcoming := queryBool(ctx, "upcoming"); upcoming != nil && *upcoming {
		filter.UpcomingOnly = true
	}

	switch {
	case auth.IsAdmin(role):
		if requested := ctx.Query("status"); requested != "" {
			st := models.EventStatus(requested)
			filter.Status = &st
		}
	case actorID > 0 && ctx.Query("mine") == "true":
		filter.OrganizerID = &actorID
	default:
		published := models.EventStatusPublished
		filter.Status = &published
	}

	resp, err := c.eventService.List(ctx.Request.Context(), filter, actorID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// StatsOverview returns aggregate event counters
// @Summary Event statistics overview
// @Tags events
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.EventStatsResponse}
// @Router /events/stats/overview [get]
func (c *EventController) StatsOverview(ctx *gin.Context) {
	resp, err := c.eventService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Get returns a single event
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID := middleware.GetUserID(ctx)
	role := models.RoleType(middleware.GetRole(ctx))

	event, err := c.eventService.GetModel(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Draft events are visible to the organizer and admins only
	if event.Status == models.EventStatusDraft &&
		!auth.IsAdmin(role) && event.OrganizerID != actorID {
		middleware.HandleAPIError(ctx, apperrors.ErrEventNotFound)
		return
	}

	resp, err := c.eventService.GetByID(ctx.Request.Context(), id, actorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// Create schedules a new event
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event content"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	resp, err := c.eventService.Create(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Event created"))
}

// Update edits an event owned by the caller
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event content"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the event organizer"
// @Router /events/{id} [patch]
func (c *EventController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.validateOrganizer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.eventService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Event updated"))
}

// UpdateStatus moves an event through its lifecycle
// @Summary Change an event's status
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /events/{id}/status [patch]
func (c *EventController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.validateOrganizer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.eventService.UpdateStatus(ctx.Request.Context(), id, models.EventStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Status updated"))
}

// Delete removes an event owned by the caller
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Not the event organizer"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.validateOrganizer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Event deleted"))
}

// Register registers the caller for an event
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 409 {object} dto.ErrorResponse "Already registered or event full"
// @Router /events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.Register(ctx.Request.Context(), id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Registered"))
}

// Unregister cancels the caller's registration
// @Summary Unregister from an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Not registered"
// @Router /events/{id}/register [delete]
func (c *EventController) Unregister(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.eventService.Unregister(ctx.Request.Context(), id, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Registration cancelled"))
}

// Attendees returns the attendee list for organizers and admins
// @Summary List event attendees
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AttendeeResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the event organizer"
// @Router /events/{id}/attendees [get]
func (c *EventController) Attendees(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.validateOrganizer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.eventService.GetAttendees(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

func (c *EventController) validateOrganizer(ctx *gin.Context, eventID int64) error {
	event, err := c.eventService.GetModel(ctx.Request.Context(), eventID)
	if err != nil {
		return err
	}
	return auth.ValidateEventOrganizer(middleware.GetUserID(ctx), models.RoleType(middleware.GetRole(ctx)), event)
}
