package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itcommunity/platform/internal/app/models"
)

func TestCanPostJobs(t *testing.T) {
	assert.True(t, CanPostJobs(models.RoleCompany))
	assert.True(t, CanPostJobs(models.RoleAdmin))
	assert.False(t, CanPostJobs(models.RoleStudent))
	assert.False(t, CanPostJobs(models.RoleProfessional))
}

func TestValidateProjectOwner(t *testing.T) {
	project := &models.Project{AuthorID: 7}

	assert.NoError(t, ValidateProjectOwner(7, models.RoleStudent, project))
	assert.NoError(t, ValidateProjectOwner(99, models.RoleAdmin, project))
	assert.Error(t, ValidateProjectOwner(8, models.RoleStudent, project))
}

func TestValidateEventOrganizer(t *testing.T) {
	event := &models.Event{OrganizerID: 3}

	assert.NoError(t, ValidateEventOrganizer(3, models.RoleProfessional, event))
	assert.NoError(t, ValidateEventOrganizer(1, models.RoleAdmin, event))
	assert.Error(t, ValidateEventOrganizer(4, models.RoleProfessional, event))
}

func TestValidateApplicationAccess(t *testing.T) {
	app := &models.JobApplication{ApplicantID: 10}
	job := &models.Job{PostedByID: 20}

	assert.NoError(t, ValidateApplicationAccess(10, models.RoleStudent, app, job))
	assert.NoError(t, ValidateApplicationAccess(20, models.RoleCompany, app, job))
	assert.NoError(t, ValidateApplicationAccess(1, models.RoleAdmin, app, job))
	assert.Error(t, ValidateApplicationAccess(30, models.RoleStudent, app, job))
}

func TestCanViewUnpublishedProject(t *testing.T) {
	draft := &models.Project{AuthorID: 5, Status: models.ProjectStatusDraft}
	published := &models.Project{AuthorID: 5, Status: models.ProjectStatusPublished}

	assert.True(t, CanViewUnpublishedProject(0, "", published))
	assert.True(t, CanViewUnpublishedProject(5, models.RoleStudent, draft))
	assert.True(t, CanViewUnpublishedProject(99, models.RoleAdmin, draft))
	assert.False(t, CanViewUnpublishedProject(6, models.RoleStudent, draft))
	assert.False(t, CanViewUnpublishedProject(0, "", draft))
}
