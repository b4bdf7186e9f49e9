package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// EventService handles community event operations
type EventService struct {
	eventRepo  *repositories.EventRepository
	activities *ActivityRecorder
	logger     zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo *repositories.EventRepository, activities *ActivityRecorder) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		activities: activities,
		logger:     logger.Logger().With().Str("service", "event").Logger(),
	}
}

// Create creates a new event in DRAFT status
func (s *EventService) Create(ctx context.Context, organizerID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if req.Date.Before(time.Now()) {
		return nil, apperrors.NewBadRequestError("event date must be in the future")
	}

	event := &models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		Type:         models.EventType(req.Type),
		MaxAttendees: req.MaxAttendees,
		OrganizerID:  organizerID,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).Int64("organizerID", organizerID).Msg("Event created")
	s.activities.Record(ctx, models.ActivityEventCreated, &organizerID, "event", &id,
		fmt.Sprintf("New event: %s", req.Title))

	return s.GetByID(ctx, id, organizerID)
}

// GetByID retrieves an event. When viewerID is set the response reports
// whether the viewer is registered.
func (s *EventService) GetByID(ctx context.Context, id, viewerID int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromEvent(event)
	if viewerID > 0 {
		registered, err := s.eventRepo.IsRegistered(ctx, id, viewerID)
		if err != nil {
			return nil, err
		}
		resp.IsRegistered = registered
	}

	return &resp, nil
}

// GetModel retrieves the raw event model for authorization checks
func (s *EventService) GetModel(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// List retrieves events with filtering and pagination. Registration state is
// resolved in one query for the whole page.
func (s *EventService) List(ctx context.Context, filter repositories.EventFilter, viewerID int64, page, size int) (*dto.EventListResponse, error) {
	events, total, err := s.eventRepo.GetAll(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}

	responses := dto.FromEvents(events)

	if viewerID > 0 && len(events) > 0 {
		ids := make([]int64, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		registered, err := s.eventRepo.GetRegisteredEventIDs(ctx, viewerID, ids)
		if err != nil {
			return nil, err
		}
		for i := range responses {
			responses[i].IsRegistered = registered[responses[i].ID]
		}
	}

	return &dto.EventListResponse{
		Events:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Update edits an event's content. Cancelled and completed events are frozen.
func (s *EventService) Update(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.Status == models.EventStatusCancelled || event.Status == models.EventStatusCompleted {
		return nil, apperrors.NewBadRequestError("cancelled and completed events cannot be edited")
	}

	if req.MaxAttendees != nil && *req.MaxAttendees < event.CurrentAttendees {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("capacity cannot be reduced below the current %d attendees", event.CurrentAttendees))
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	event.Location = req.Location
	event.Type = models.EventType(req.Type)
	event.MaxAttendees = req.MaxAttendees

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id, 0)
}

// UpdateStatus moves an event through its lifecycle
func (s *EventService) UpdateStatus(ctx context.Context, id int64, target models.EventStatus) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !event.Status.CanTransitionTo(target) {
		return nil, apperrors.NewIllegalTransitionError(fmt.Sprintf("cannot transition from %s to %s", event.Status, target))
	}

	if err := s.eventRepo.UpdateStatus(ctx, id, event.Status, target); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", id).
		Str("from", string(event.Status)).Str("to", string(target)).
		Msg("Event status changed")

	return s.GetByID(ctx, id, 0)
}

// Delete removes an event and its registrations
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("eventID", id).Msg("Event deleted")
	return nil
}

// Register adds the user to a published event. Capacity is enforced
// atomically in the repository.
func (s *EventService) Register(ctx context.Context, eventID, userID int64) (*dto.EventResponse, error) {
	if err := s.eventRepo.Register(ctx, eventID, userID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event registration")
	s.activities.Record(ctx, models.ActivityEventRegistration, &userID, "event", &eventID, "New event registration")

	return s.GetByID(ctx, eventID, userID)
}

// Unregister removes the user's registration
func (s *EventService) Unregister(ctx context.Context, eventID, userID int64) (*dto.EventResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Unregister(ctx, eventID, userID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Event registration removed")
	return s.GetByID(ctx, eventID, userID)
}

// Stats aggregates the public event overview counters. The counts are
// independent so they run concurrently.
func (s *EventService) Stats(ctx context.Context) (*dto.EventStatsResponse, error) {
	stats := &dto.EventStatsResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.ByStatus, err = s.eventRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ByType, err = s.eventRepo.CountByType(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEvents, err = s.eventRepo.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingEvents, err = s.eventRepo.CountUpcoming(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalAttendees, err = s.eventRepo.CountRegistrations(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect event stats")
		return nil, err
	}

	return stats, nil
}

// GetAttendees retrieves the attendee list of an event
func (s *EventService) GetAttendees(ctx context.Context, eventID int64) ([]dto.AttendeeResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	users, registeredAt, err := s.eventRepo.GetAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}

	attendees := make([]dto.AttendeeResponse, 0, len(users))
	for i, u := range users {
		attendees = append(attendees, dto.AttendeeResponse{
			User:         dto.FromUser(u),
			RegisteredAt: registeredAt[i].Format(time.RFC3339),
		})
	}

	return attendees, nil
}
