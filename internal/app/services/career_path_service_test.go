package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcommunity/platform/internal/app/models"
	"github.com/itcommunity/platform/internal/app/models/dto"
	"github.com/itcommunity/platform/internal/pkg/apperrors"
)

type fakeCareerPathStore struct {
	paths  map[int64]*models.CareerPath
	nextID int64
}

func newFakeCareerPathStore(paths ...*models.CareerPath) *fakeCareerPathStore {
	s := &fakeCareerPathStore{paths: make(map[int64]*models.CareerPath), nextID: 1}
	for _, p := range paths {
		p.ID = s.nextID
		s.paths[p.ID] = p
		s.nextID++
	}
	return s
}

func (s *fakeCareerPathStore) Create(_ context.Context, path *models.CareerPath) (int64, error) {
	path.ID = s.nextID
	s.paths[path.ID] = path
	s.nextID++
	return path.ID, nil
}

func (s *fakeCareerPathStore) GetByID(_ context.Context, id int64) (*models.CareerPath, error) {
	p, ok := s.paths[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("career path not found")
	}
	return p, nil
}

func (s *fakeCareerPathStore) GetAll(_ context.Context) ([]*models.CareerPath, error) {
	out := make([]*models.CareerPath, 0, len(s.paths))
	for i := int64(1); i < s.nextID; i++ {
		if p, ok := s.paths[i]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeCareerPathStore) Update(_ context.Context, path *models.CareerPath) error {
	if _, ok := s.paths[path.ID]; !ok {
		return apperrors.NewResourceNotFoundError("career path not found")
	}
	s.paths[path.ID] = path
	return nil
}

func (s *fakeCareerPathStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.paths[id]; !ok {
		return apperrors.NewResourceNotFoundError("career path not found")
	}
	delete(s.paths, id)
	return nil
}

func TestCareerPathListFiltering(t *testing.T) {
	store := newFakeCareerPathStore(
		&models.CareerPath{Title: "Frontend Developer", Category: "Engineering", Level: models.CareerLevelJunior,
			Demand: models.DemandMedium, SalaryMin: 40000, SalaryMax: 60000, Skills: []string{"React", "TypeScript"}},
		&models.CareerPath{Title: "Backend Developer", Category: "Engineering", Level: models.CareerLevelMiddle,
			Demand: models.DemandHigh, SalaryMin: 60000, SalaryMax: 90000, Skills: []string{"Go", "PostgreSQL"}},
		&models.CareerPath{Title: "Product Designer", Category: "Design", Level: models.CareerLevelMiddle,
			Demand: models.DemandMedium, SalaryMin: 55000, SalaryMax: 85000, Skills: []string{"Figma"}},
		&models.CareerPath{Title: "Engineering Lead", Category: "Engineering", Level: models.CareerLevelLead,
			Demand: models.DemandHigh, SalaryMin: 100000, SalaryMax: 150000, Skills: []string{"Go", "Architecture"}},
	)
	svc := NewCareerPathService(store)
	ctx := context.Background()

	t.Run("no filter returns all", func(t *testing.T) {
		resp, err := svc.List(ctx, models.CareerPathFilter{})
		require.NoError(t, err)
		assert.Len(t, resp.CareerPaths, 4)
	})

	t.Run("min filter drops lower paths", func(t *testing.T) {
		resp, err := svc.List(ctx, models.CareerPathFilter{SalaryMin: 60000})
		require.NoError(t, err)
		require.Len(t, resp.CareerPaths, 2)
		assert.Equal(t, "Backend Developer", resp.CareerPaths[0].Title)
	})

	t.Run("max filter drops higher paths", func(t *testing.T) {
		max := 90000
		resp, err := svc.List(ctx, models.CareerPathFilter{SalaryMax: &max})
		require.NoError(t, err)
		assert.Len(t, resp.CareerPaths, 3)
	})

	t.Run("band selects single path", func(t *testing.T) {
		max := 95000
		resp, err := svc.List(ctx, models.CareerPathFilter{SalaryMin: 60000, SalaryMax: &max})
		require.NoError(t, err)
		require.Len(t, resp.CareerPaths, 1)
		assert.Equal(t, "Backend Developer", resp.CareerPaths[0].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := svc.List(ctx, models.CareerPathFilter{Category: "Design"})
		require.NoError(t, err)
		require.Len(t, resp.CareerPaths, 1)
		assert.Equal(t, "Product Designer", resp.CareerPaths[0].Title)
	})

	t.Run("demand filter", func(t *testing.T) {
		high := models.DemandHigh
		resp, err := svc.List(ctx, models.CareerPathFilter{Demand: &high})
		require.NoError(t, err)
		assert.Len(t, resp.CareerPaths, 2)
	})

	t.Run("query matches skills", func(t *testing.T) {
		resp, err := svc.List(ctx, models.CareerPathFilter{Query: "go"})
		require.NoError(t, err)
		assert.Len(t, resp.CareerPaths, 2)
	})

	t.Run("dimensions combine as a conjunction", func(t *testing.T) {
		high := models.DemandHigh
		max := 95000
		resp, err := svc.List(ctx, models.CareerPathFilter{
			Query:     "go",
			Category:  "Engineering",
			Demand:    &high,
			SalaryMax: &max,
		})
		require.NoError(t, err)
		require.Len(t, resp.CareerPaths, 1)
		assert.Equal(t, "Backend Developer", resp.CareerPaths[0].Title)
	})
}

func TestCareerPathCreateValidatesSalaryRange(t *testing.T) {
	svc := NewCareerPathService(newFakeCareerPathStore())

	_, err := svc.Create(context.Background(), &dto.CreateCareerPathRequest{
		Title:       "DevOps Engineer",
		Description: "Infrastructure and delivery",
		Category:    "Engineering",
		Level:       string(models.CareerLevelSenior),
		Demand:      string(models.DemandHigh),
		SalaryMin:   90000,
		SalaryMax:   70000,
	})
	assert.Error(t, err)
}

func TestCareerPathUpdate(t *testing.T) {
	store := newFakeCareerPathStore(
		&models.CareerPath{Title: "Data Engineer", Category: "Engineering", Level: models.CareerLevelMiddle,
			Demand: models.DemandMedium, SalaryMin: 70000, SalaryMax: 100000},
	)
	svc := NewCareerPathService(store)

	resp, err := svc.Update(context.Background(), 1, &dto.UpdateCareerPathRequest{
		Title:       "Data Engineer",
		Description: "Pipelines and warehousing",
		Category:    "Engineering",
		Level:       string(models.CareerLevelSenior),
		Demand:      string(models.DemandHigh),
		SalaryMin:   80000,
		SalaryMax:   120000,
		Skills:      []string{"SQL", "Airflow"},
		Roadmap:     []string{"SQL basics", "Batch pipelines", "Streaming"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.CareerLevelSenior), resp.Level)
	assert.Equal(t, string(models.DemandHigh), resp.Demand)
	assert.Equal(t, 80000, resp.SalaryMin)
}

func TestCareerPathGetByIDNotFound(t *testing.T) {
	svc := NewCareerPathService(newFakeCareerPathStore())

	_, err := svc.GetByID(context.Background(), 42)
	assert.Error(t, err)
}
