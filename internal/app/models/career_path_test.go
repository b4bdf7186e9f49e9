package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCareerPathFilterMatches(t *testing.T) {
	path := &CareerPath{
		Title:       "Backend Developer",
		Description: "Builds and operates server-side systems",
		Category:    "Engineering",
		Demand:      DemandHigh,
		SalaryMin:   50000,
		SalaryMax:   90000,
		Skills:      []string{"Go", "PostgreSQL", "Docker"},
	}

	t.Run("zero filter matches everything", func(t *testing.T) {
		assert.True(t, CareerPathFilter{}.Matches(path))
	})

	t.Run("salary min bound", func(t *testing.T) {
		assert.True(t, CareerPathFilter{SalaryMin: 50000}.Matches(path))
		assert.True(t, CareerPathFilter{SalaryMin: 40000}.Matches(path))
		assert.False(t, CareerPathFilter{SalaryMin: 60000}.Matches(path))
	})

	t.Run("salary max bound", func(t *testing.T) {
		max := 90000
		assert.True(t, CareerPathFilter{SalaryMax: &max}.Matches(path))

		low := 80000
		assert.False(t, CareerPathFilter{SalaryMax: &low}.Matches(path))
	})

	t.Run("category is case-insensitive exact", func(t *testing.T) {
		assert.True(t, CareerPathFilter{Category: "engineering"}.Matches(path))
		assert.False(t, CareerPathFilter{Category: "Design"}.Matches(path))
	})

	t.Run("demand", func(t *testing.T) {
		high := DemandHigh
		assert.True(t, CareerPathFilter{Demand: &high}.Matches(path))

		low := DemandLow
		assert.False(t, CareerPathFilter{Demand: &low}.Matches(path))
	})

	t.Run("query searches title description and skills", func(t *testing.T) {
		assert.True(t, CareerPathFilter{Query: "backend"}.Matches(path))
		assert.True(t, CareerPathFilter{Query: "server-side"}.Matches(path))
		assert.True(t, CareerPathFilter{Query: "postgres"}.Matches(path))
		assert.False(t, CareerPathFilter{Query: "kubernetes"}.Matches(path))
	})

	t.Run("all dimensions must hold", func(t *testing.T) {
		high := DemandHigh
		max := 100000
		assert.True(t, CareerPathFilter{
			Query:     "go",
			Category:  "Engineering",
			Demand:    &high,
			SalaryMin: 45000,
			SalaryMax: &max,
		}.Matches(path))

		// One failing dimension rejects the path even when the rest match
		assert.False(t, CareerPathFilter{
			Query:     "go",
			Category:  "Engineering",
			Demand:    &high,
			SalaryMin: 60000,
		}.Matches(path))
		assert.False(t, CareerPathFilter{
			Query:    "kubernetes",
			Category: "Engineering",
			Demand:   &high,
		}.Matches(path))
	})
}

func TestValidDemandLevel(t *testing.T) {
	assert.True(t, ValidDemandLevel(DemandLow))
	assert.True(t, ValidDemandLevel(DemandMedium))
	assert.True(t, ValidDemandLevel(DemandHigh))
	assert.False(t, ValidDemandLevel("critical"))
	assert.False(t, ValidDemandLevel(""))
}
