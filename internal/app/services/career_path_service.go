package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
	"github.com/itcommunity/platform/internal/pkg/logger"
)

// CareerPathStore is the persistence surface the career path service needs
type CareerPathStore interface {
	Create(ctx context.Context, path *models.CareerPath) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.CareerPath, error)
	GetAll(ctx context.Context) ([]*models.CareerPath, error)
	Update(ctx context.Context, path *models.CareerPath) error
	Delete(ctx context.Context, id int64) error
}

// CareerPathService handles career path browsing and administration
type CareerPathService struct {
	store  CareerPathStore
	logger zerolog.Logger
}

// NewCareerPathService creates a new CareerPathService
func NewCareerPathService(store CareerPathStore) *CareerPathService {
	return &CareerPathService{
		store:  store,
		logger: logger.Logger().With().Str("service", "career_path").Logger(),
	}
}

// List retrieves career paths matching the filter. Every active dimension
// must hold: free-text query over title, description and skills, category,
// demand, and the salary band.
func (s *CareerPathService) List(ctx context.Context, filter models.CareerPathFilter) (*dto.CareerPathListResponse, error) {
	paths, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.CareerPath, 0, len(paths))
	for _, p := range paths {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	return &dto.CareerPathListResponse{CareerPaths: dto.FromCareerPaths(matched)}, nil
}

// GetByID retrieves a single career path
func (s *CareerPathService) GetByID(ctx context.Context, id int64) (*dto.CareerPathResponse, error) {
	path, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromCareerPath(path)
	return &resp, nil
}

// Create adds a new career path, admin only
func (s *CareerPathService) Create(ctx context.Context, req *dto.CreateCareerPathRequest) (*dto.CareerPathResponse, error) {
	if req.SalaryMax < req.SalaryMin {
		return nil, apperrors.NewBadRequestError("salaryMax cannot be below salaryMin")
	}

	path := &models.CareerPath{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       models.CareerLevel(req.Level),
		Demand:      models.DemandLevel(req.Demand),
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		Skills:      req.Skills,
		Roadmap:     req.Roadmap,
	}

	id, err := s.store.Create(ctx, path)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("careerPathID", id).Str("title", req.Title).Msg("Career path created")
	return s.GetByID(ctx, id)
}

// Update modifies a career path, admin only
func (s *CareerPathService) Update(ctx context.Context, id int64, req *dto.UpdateCareerPathRequest) (*dto.CareerPathResponse, error) {
	if req.SalaryMax < req.SalaryMin {
		return nil, apperrors.NewBadRequestError("salaryMax cannot be below salaryMin")
	}

	path, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path.Title = req.Title
	path.Description = req.Description
	path.Category = req.Category
	path.Level = models.CareerLevel(req.Level)
	path.Demand = models.DemandLevel(req.Demand)
	path.SalaryMin = req.SalaryMin
	path.SalaryMax = req.SalaryMax
	path.Skills = req.Skills
	path.Roadmap = req.Roadmap

	if err := s.store.Update(ctx, path); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes a career path, admin only
func (s *CareerPathService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("careerPathID", id).Msg("Career path deleted")
	return nil
}
