package services

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/app/repositories"
	"github.com/itcommunity/platform/internal/pkg/helpers"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// DashboardService aggregates platform statistics for the admin dashboard
type DashboardService struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repos *repositories.Repositories) *DashboardService {
	return &DashboardService{
		repos:  repos,
		logger: logger.Logger().With().Str("service", "dashboard").Logger(),
	}
}

// GetStats collects the dashboard counters. The counts are independent so
// they run concurrently.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats := &dto.DashboardStatsResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.repos.UserRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsers, err = s.repos.UserRepository.CountActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProjects, err = s.repos.ProjectRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingProjects, err = s.repos.ProjectRepository.CountByStatus(gctx, models.ProjectStatusDraft)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEvents, err = s.repos.EventRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingEvents, err = s.repos.EventRepository.CountUpcoming(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalJobs, err = s.repos.JobRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.OpenJobs, err = s.repos.JobRepository.CountByStatus(gctx, models.JobStatusPublished)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalApplications, err = s.repos.ApplicationRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalSuggestions, err = s.repos.SuggestionRepository.CountAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingSuggestions, err = s.repos.SuggestionRepository.CountByStatus(gctx, models.SuggestionStatusPending)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect dashboard stats")
		return nil, err
	}

	return stats, nil
}

// GetActivities retrieves the activity feed, newest first
func (s *DashboardService) GetActivities(ctx context.Context, page, size int) (*dto.ActivityListResponse, error) {
	activities, total, err := s.repos.ActivityRepository.GetRecent(ctx, page, size)
	if err != nil {
		return nil, err
	}

	return &dto.ActivityListResponse{
		Activities: dto.FromActivities(activities),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}
